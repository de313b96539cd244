package domain

import "time"

// RemoteCourse is a course as reported by the LMS API. It is never persisted;
// it only drives reconciliation.
type RemoteCourse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	CourseCode    string    `json:"course_code"`
	CreatedAt     time.Time `json:"created_at"`
	WorkflowState string    `json:"workflow_state"`
}

// RemoteFile is a file as reported by the LMS API. The URL points at the
// remote copy; bytes are fetched lazily, never during sync.
type RemoteFile struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"display_name"`
	ContentType string    `json:"content-type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

// SyncResult reports what one sync run created. Informational only.
type SyncResult struct {
	CoursesAdded int `json:"courses_added"`
	FilesAdded   int `json:"files_added"`
}

type ConnectLMSRequest struct {
	Token string `json:"token" validate:"required"`
}

type SyncLMSRequest struct {
	// Optional; when empty the user's stored LMS token is used.
	Token string `json:"token"`
}
