package repository

import (
	"net/http"

	"github.com/go-kivik/kivik/v4"
)

// IsConflict reports whether the store rejected a write because a document
// with the same key already exists. Synced records use key-derived document
// ids, so this is how the external-id uniqueness invariant fails loudly
// under concurrent writers.
func IsConflict(err error) bool {
	return kivik.HTTPStatus(err) == http.StatusConflict
}

// IsNotFound reports whether a lookup missed.
func IsNotFound(err error) bool {
	return kivik.HTTPStatus(err) == http.StatusNotFound
}
