package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/avelasquezg/chambeaya/internal/services/auth"
	userssvc "github.com/avelasquezg/chambeaya/internal/services/users"
	"github.com/avelasquezg/chambeaya/internal/transport/http/dto"
	httperrors "github.com/avelasquezg/chambeaya/internal/transport/http/errors"
)

type UsersHandler struct {
	service *userssvc.Service
}

func NewUsersHandler(service *userssvc.Service) *UsersHandler {
	return &UsersHandler{service: service}
}

func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "USERS_SERVICE_UNAVAILABLE", "users service is unavailable")
		return
	}

	result, err := h.service.GetWithProfile(r.Context(), identity.UserID)
	if err != nil {
		handleUsersError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.UserWithProfileResponse{
		User:    dto.MapUser(result.User),
		Profile: dto.MapProfile(result.Profile),
	})
}

func (h *UsersHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "USERS_SERVICE_UNAVAILABLE", "users service is unavailable")
		return
	}

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || userID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user id")
		return
	}

	result, err := h.service.GetWithProfile(r.Context(), userID)
	if err != nil {
		handleUsersError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.UserWithProfileResponse{
		User:    dto.MapUser(result.User),
		Profile: dto.MapProfile(result.Profile),
	})
}

func handleUsersError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, userssvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid user request")
	case errors.Is(err, userssvc.ErrNotFound):
		writeNotFound(w, "USER_NOT_FOUND", "user not found")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to load user")
	}
}
