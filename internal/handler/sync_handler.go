package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"studydeck-server/internal/domain"
	"studydeck-server/internal/lms"
	"studydeck-server/internal/middleware"
	"studydeck-server/internal/service"
	"studydeck-server/pkg/response"

	"github.com/go-playground/validator/v10"
)

type SyncHandler struct {
	syncService *service.SyncService
	validate    *validator.Validate
}

func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
		validate:    validator.New(),
	}
}

// Connect verifies an LMS token and stores it for future sync runs.
func (h *SyncHandler) Connect(w http.ResponseWriter, r *http.Request) {
	var req domain.ConnectLMSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request payload")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	userID := middleware.GetUserID(r)

	ok, err := h.syncService.ConnectAccount(r.Context(), userID, req.Token)
	if err != nil {
		if lms.IsUnavailable(err) {
			response.BadGateway(w, "LMS unreachable, try again later")
			return
		}
		response.InternalError(w, "Failed to verify LMS token")
		return
	}

	if !ok {
		response.Unauthorized(w, "LMS rejected the token")
		return
	}

	response.Success(w, map[string]bool{"connected": true})
}

// Sync runs a full catalog sync and reports what was created.
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req domain.SyncLMSRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request payload")
			return
		}
	}

	userID := middleware.GetUserID(r)

	result, err := h.syncService.SyncCourses(r.Context(), userID, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoLMSToken):
			response.BadRequest(w, "Connect your LMS account first")
		case lms.IsUnauthorized(err):
			response.Unauthorized(w, "Reconnect your LMS account")
		case lms.IsUnavailable(err):
			response.BadGateway(w, "LMS unreachable, try again later")
		default:
			response.InternalError(w, "Sync failed")
		}
		return
	}

	response.Success(w, result)
}
