package domain

import "time"

type CourseSource string

const (
	CourseSourceLMS    CourseSource = "lms"
	CourseSourceUpload CourseSource = "upload"
)

type Course struct {
	ID         string       `json:"id"`
	UserID     string       `json:"user_id"`
	Name       string       `json:"name"`
	Source     CourseSource `json:"source"`
	ExternalID *string      `json:"external_id"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

type CreateCourseRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
}

type CourseResponse struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Source     CourseSource `json:"source"`
	ExternalID *string      `json:"external_id"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
