package lms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"studydeck-server/internal/domain"
)

const (
	coursesEndpoint = "/api/v1/courses"
	selfEndpoint    = "/api/v1/users/self"
)

// Client talks to the LMS REST API. List calls follow Link-header pagination
// sequentially until exhausted and return the full collection, or an error
// and no partial collection.
type Client struct {
	baseURL  string
	pageSize int
	client   *http.Client
}

func NewClient(baseURL string, pageSize int, timeout time.Duration) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		pageSize: pageSize,
		client:   &http.Client{Timeout: timeout},
	}
}

// ListCourses returns every course visible to the token's owner.
func (c *Client) ListCourses(ctx context.Context, token string) ([]domain.RemoteCourse, error) {
	var courses []domain.RemoteCourse
	err := c.fetchAll(ctx, coursesEndpoint, token, func(body io.Reader) error {
		var page []domain.RemoteCourse
		if err := json.NewDecoder(body).Decode(&page); err != nil {
			return err
		}
		courses = append(courses, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// ListCourseFiles returns every file of one remote course.
func (c *Client) ListCourseFiles(ctx context.Context, token, courseID string) ([]domain.RemoteFile, error) {
	endpoint := fmt.Sprintf("%s/%s/files", coursesEndpoint, courseID)

	var files []domain.RemoteFile
	err := c.fetchAll(ctx, endpoint, token, func(body io.Reader) error {
		var page []domain.RemoteFile
		if err := json.NewDecoder(body).Decode(&page); err != nil {
			return err
		}
		files = append(files, page...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// VerifyToken checks the token against the "who am I" endpoint. A 4xx means
// the token is rejected, which is a reportable outcome, not an error; only
// transport failures and 5xx responses surface as errors.
func (c *Client) VerifyToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+selfEndpoint, nil)
	if err != nil {
		return false, fmt.Errorf("lms: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return false, nil
	default:
		return false, &APIError{StatusCode: resp.StatusCode, Endpoint: selfEndpoint}
	}
}

// fetchAll GETs endpoint and every page linked from it, strictly in order,
// passing each response body to accumulate. Pages are never fetched
// concurrently: the next page is only discoverable from the previous
// response, and the LMS rate-limits aggressive clients.
func (c *Client) fetchAll(ctx context.Context, endpoint, token string, accumulate func(body io.Reader) error) error {
	if token == "" {
		return fmt.Errorf("lms: empty access token")
	}
	if strings.Contains(endpoint, "per_page=") {
		return fmt.Errorf("lms: endpoint %s already sets a page size", endpoint)
	}

	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	url := fmt.Sprintf("%s%s%sper_page=%d", c.baseURL, endpoint, sep, c.pageSize)

	for url != "" {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("lms: build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return &APIError{StatusCode: resp.StatusCode, Endpoint: endpoint}
		}

		if err := accumulate(resp.Body); err != nil {
			resp.Body.Close()
			return fmt.Errorf("lms: decode %s: %w", endpoint, err)
		}

		next := ParseNextLink(resp.Header.Get("Link"))
		resp.Body.Close()
		url = next
	}

	return nil
}
