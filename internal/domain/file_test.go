package domain

import "testing"

func TestKindForContentType(t *testing.T) {
	tests := []struct {
		contentType string
		wantKind    FileKind
		importable  bool
	}{
		{"application/pdf", FileKindDocument, true},
		{"video/mp4", FileKindVideo, true},
		{"audio/mpeg", FileKindAudio, true},
		{"audio/wav", FileKindAudio, true},
		{"application/zip", FileKindOther, false},
		{"text/html", FileKindOther, false},
		{"", FileKindOther, false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			kind, ok := KindForContentType(tt.contentType)
			if kind != tt.wantKind || ok != tt.importable {
				t.Errorf("KindForContentType(%q) = (%s, %v), want (%s, %v)",
					tt.contentType, kind, ok, tt.wantKind, tt.importable)
			}
		})
	}
}
