package lms

import "testing"

func TestParseNextLink(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			name:   "empty header",
			header: "",
			want:   "",
		},
		{
			name:   "single next link",
			header: `<https://lms.example.com/api/v1/courses?page=2&per_page=100>; rel="next"`,
			want:   "https://lms.example.com/api/v1/courses?page=2&per_page=100",
		},
		{
			name: "full link set",
			header: `<https://lms.example.com/api/v1/courses?page=1>; rel="current",` +
				`<https://lms.example.com/api/v1/courses?page=2>; rel="next",` +
				`<https://lms.example.com/api/v1/courses?page=1>; rel="first",` +
				`<https://lms.example.com/api/v1/courses?page=5>; rel="last"`,
			want: "https://lms.example.com/api/v1/courses?page=2",
		},
		{
			name:   "no next on last page",
			header: `<https://lms.example.com/api/v1/courses?page=5>; rel="current",<https://lms.example.com/api/v1/courses?page=1>; rel="first"`,
			want:   "",
		},
		{
			name:   "malformed header",
			header: "not a link header",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseNextLink(tt.header); got != tt.want {
				t.Errorf("ParseNextLink() = %q, want %q", got, tt.want)
			}
		})
	}
}
