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

type FileHandler struct {
	service  *service.FileService
	validate *validator.Validate
}

func NewFileHandler(service *service.FileService) *FileHandler {
	return &FileHandler{
		service:  service,
		validate: validator.New(),
	}
}

func (h *FileHandler) Create(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["id"]
	if courseID == "" {
		response.BadRequest(w, "Course ID is required")
		return
	}

	var req domain.CreateFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	userID := middleware.GetUserID(r)

	file, err := h.service.Create(userID, courseID, &req)
	if err != nil {
		writeFileError(w, err)
		return
	}

	response.Created(w, file)
}

func (h *FileHandler) ListByCourse(w http.ResponseWriter, r *http.Request) {
	courseID := mux.Vars(r)["id"]
	if courseID == "" {
		response.BadRequest(w, "Course ID is required")
		return
	}

	userID := middleware.GetUserID(r)

	files, err := h.service.ListByCourse(userID, courseID)
	if err != nil {
		writeFileError(w, err)
		return
	}

	response.Success(w, files)
}

func (h *FileHandler) Get(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["id"]
	if fileID == "" {
		response.BadRequest(w, "File ID is required")
		return
	}

	userID := middleware.GetUserID(r)

	file, err := h.service.GetByID(userID, fileID)
	if err != nil {
		writeFileError(w, err)
		return
	}

	response.Success(w, file)
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	fileID := mux.Vars(r)["id"]
	if fileID == "" {
		response.BadRequest(w, "File ID is required")
		return
	}

	userID := middleware.GetUserID(r)

	if err := h.service.Delete(userID, fileID); err != nil {
		writeFileError(w, err)
		return
	}

	response.Message(w, "File deleted successfully")
}

func writeFileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(w, "Not found")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(w, err.Error())
	default:
		response.InternalError(w, "File operation failed")
	}
}
