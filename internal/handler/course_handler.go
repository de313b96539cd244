package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"studydeck-server/internal/domain"
	"studydeck-server/internal/middleware"
	"studydeck-server/internal/service"
	"studydeck-server/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type CourseHandler struct {
	service  *service.CourseService
	validate *validator.Validate
}

func NewCourseHandler(service *service.CourseService) *CourseHandler {
	return &CourseHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	userID := middleware.GetUserID(r)

	course, err := h.service.Create(userID, &req)
	if err != nil {
		response.InternalError(w, "Failed to create course")
		return
	}

	response.Created(w, course)
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)

	courses, err := h.service.List(userID)
	if err != nil {
		response.InternalError(w, "Failed to list courses")
		return
	}

	response.Success(w, courses)
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["id"]
	if courseID == "" {
		response.BadRequest(w, "Course ID is required")
		return
	}

	userID := middleware.GetUserID(r)

	course, err := h.service.GetByID(userID, courseID)
	if err != nil {
		writeCourseError(w, err)
		return
	}

	response.Success(w, course)
}

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["id"]
	if courseID == "" {
		response.BadRequest(w, "Course ID is required")
		return
	}

	userID := middleware.GetUserID(r)

	if err := h.service.Delete(userID, courseID); err != nil {
		writeCourseError(w, err)
		return
	}

	response.Message(w, "Course deleted successfully")
}

func writeCourseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(w, "Course not found")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(w, err.Error())
	default:
		response.InternalError(w, "Course operation failed")
	}
}
