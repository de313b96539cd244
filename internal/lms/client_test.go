package lms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(serverURL string) *Client {
	return NewClient(serverURL, 2, 5*time.Second)
}

func TestListCoursesFollowsPagination(t *testing.T) {
	var gotAuth []string

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))

		switch r.URL.Query().Get("page") {
		case "", "1":
			if r.URL.Query().Get("per_page") != "2" {
				t.Errorf("expected per_page=2, got %q", r.URL.Query().Get("per_page"))
			}
			w.Header().Set("Link", fmt.Sprintf(`<%s/api/v1/courses?page=2&per_page=2>; rel="next"`, server.URL))
			fmt.Fprint(w, `[{"id":1,"name":"Algebra","workflow_state":"available"},{"id":2,"name":"Biology","workflow_state":"available"}]`)
		case "2":
			fmt.Fprint(w, `[{"id":3,"name":"Chemistry","workflow_state":"completed"}]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	courses, err := client.ListCourses(context.Background(), "tok-123")
	if err != nil {
		t.Fatalf("ListCourses() error = %v", err)
	}

	if len(courses) != 3 {
		t.Fatalf("expected 3 courses across pages, got %d", len(courses))
	}
	if courses[0].Name != "Algebra" || courses[2].Name != "Chemistry" {
		t.Errorf("courses out of page order: %+v", courses)
	}

	for _, auth := range gotAuth {
		if auth != "Bearer tok-123" {
			t.Errorf("expected bearer auth on every page, got %q", auth)
		}
	}
	if len(gotAuth) != 2 {
		t.Errorf("expected 2 sequential page fetches, got %d", len(gotAuth))
	}
}

func TestListCoursesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	courses, err := client.ListCourses(context.Background(), "expired-token")
	if err == nil {
		t.Fatal("expected error for 401 response")
	}
	if courses != nil {
		t.Errorf("expected no partial collection, got %d courses", len(courses))
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.StatusCode)
	}
	if !IsUnauthorized(err) {
		t.Error("IsUnauthorized() = false for 401")
	}
}

func TestListCoursesFailureMidPagination(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/api/v1/courses?page=2&per_page=2>; rel="next"`, server.URL))
		fmt.Fprint(w, `[{"id":1,"name":"Algebra"}]`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	courses, err := client.ListCourses(context.Background(), "tok")
	if err == nil {
		t.Fatal("expected error when a later page fails")
	}
	if courses != nil {
		t.Error("expected all-or-nothing: no partial collection on page failure")
	}
}

func TestListCoursesRemoteUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(server.URL)

	_, err := client.ListCourses(context.Background(), "tok")
	if !IsUnavailable(err) {
		t.Fatalf("expected ErrRemoteUnavailable, got %v", err)
	}
}

func TestListCoursesEmptyToken(t *testing.T) {
	client := newTestClient("http://localhost:0")

	if _, err := client.ListCourses(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestListCourseFiles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/courses/42/files" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `[{"id":7,"display_name":"lecture.pdf","content-type":"application/pdf","size":1024,"url":"https://cdn.example.com/lecture.pdf"}]`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	files, err := client.ListCourseFiles(context.Background(), "tok", "42")
	if err != nil {
		t.Fatalf("ListCourseFiles() error = %v", err)
	}

	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].ContentType != "application/pdf" {
		t.Errorf("content-type not decoded, got %q", files[0].ContentType)
	}
	if files[0].URL != "https://cdn.example.com/lecture.pdf" {
		t.Errorf("unexpected download url %q", files[0].URL)
	}
}

func TestVerifyToken(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		want       bool
		wantErr    bool
		wantAPIErr bool
	}{
		{name: "accepted", status: http.StatusOK, want: true},
		{name: "rejected 401", status: http.StatusUnauthorized, want: false},
		{name: "rejected 403", status: http.StatusForbidden, want: false},
		{name: "server error", status: http.StatusBadGateway, wantErr: true, wantAPIErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/v1/users/self" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := newTestClient(server.URL)

			ok, err := client.VerifyToken(context.Background(), "tok")

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				var apiErr *APIError
				if tt.wantAPIErr && !errors.As(err, &apiErr) {
					t.Errorf("expected *APIError, got %T", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("VerifyToken() error = %v", err)
			}
			if ok != tt.want {
				t.Errorf("VerifyToken() = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestVerifyTokenUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)

	_, err := client.VerifyToken(context.Background(), "tok")
	if !IsUnavailable(err) {
		t.Fatalf("expected ErrRemoteUnavailable so callers can tell outage from rejection, got %v", err)
	}
}
