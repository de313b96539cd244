package domain

import "time"

type FileKind string

const (
	FileKindDocument FileKind = "document"
	FileKindAudio    FileKind = "audio"
	FileKindVideo    FileKind = "video"
	FileKindOther    FileKind = "other"
)

// importableTypes is the closed set of remote content types the sync engine
// will import. Anything else is skipped, not failed.
var importableTypes = map[string]FileKind{
	"application/pdf": FileKindDocument,
	"video/mp4":       FileKindVideo,
	"audio/mpeg":      FileKindAudio,
	"audio/wav":       FileKindAudio,
}

// KindForContentType classifies a raw content-type string. The second return
// reports whether the type is importable at all.
func KindForContentType(contentType string) (FileKind, bool) {
	kind, ok := importableTypes[contentType]
	if !ok {
		return FileKindOther, false
	}
	return kind, true
}

type File struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	CourseID    string    `json:"course_id"`
	Name        string    `json:"name"`
	Kind        FileKind  `json:"kind"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	DownloadURL string    `json:"download_url"`
	ExternalID  *string   `json:"external_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateFileRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	ContentType string `json:"content_type" validate:"required"`
	Size        int64  `json:"size" validate:"gte=0"`
	DownloadURL string `json:"download_url" validate:"required,url"`
}

type FileResponse struct {
	ID          string    `json:"id"`
	CourseID    string    `json:"course_id"`
	Name        string    `json:"name"`
	Kind        FileKind  `json:"kind"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	DownloadURL string    `json:"download_url"`
	ExternalID  *string   `json:"external_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
