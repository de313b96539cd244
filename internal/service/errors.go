package service

import "errors"

var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("resource does not belong to user")
	ErrNoLMSToken = errors.New("no LMS token on record")
)
