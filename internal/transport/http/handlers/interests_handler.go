package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/avelasquezg/chambeaya/internal/services/auth"
	interestssvc "github.com/avelasquezg/chambeaya/internal/services/interests"
	"github.com/avelasquezg/chambeaya/internal/transport/http/dto"
	httperrors "github.com/avelasquezg/chambeaya/internal/transport/http/errors"
)

type InterestsHandler struct {
	service *interestssvc.Service
}

func NewInterestsHandler(service *interestssvc.Service) *InterestsHandler {
	return &InterestsHandler{service: service}
}

func (h *InterestsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "INTERESTS_SERVICE_UNAVAILABLE", "interests service is unavailable")
		return
	}

	interests, err := h.service.List(r.Context())
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list interests")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MapInterests(interests))
}

func (h *InterestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if _, ok := authsvc.IdentityFromContext(r.Context()); !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "INTERESTS_SERVICE_UNAVAILABLE", "interests service is unavailable")
		return
	}

	var req dto.InterestCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	interest, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, interestssvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "interest name is required")
			return
		}
		writeInternal(w, "INTERNAL_ERROR", "failed to create interest")
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.InterestResponse{ID: interest.ID, Name: interest.Name})
}

func (h *InterestsHandler) Mine(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "INTERESTS_SERVICE_UNAVAILABLE", "interests service is unavailable")
		return
	}

	interests, err := h.service.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list user interests")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MapInterests(interests))
}

func (h *InterestsHandler) Add(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "INTERESTS_SERVICE_UNAVAILABLE", "interests service is unavailable")
		return
	}

	var req dto.InterestAttachRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.AddToUser(r.Context(), identity.UserID, req.InterestID); err != nil {
		switch {
		case errors.Is(err, interestssvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "interest_id is required")
		case errors.Is(err, interestssvc.ErrAlreadyAdded):
			httperrors.Write(w, http.StatusConflict, httperrors.APIError{Code: "INTEREST_ALREADY_ADDED", Message: "interest already added"})
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to add interest")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}

func (h *InterestsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "INTERESTS_SERVICE_UNAVAILABLE", "interests service is unavailable")
		return
	}

	interestID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || interestID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid interest id")
		return
	}

	if err := h.service.RemoveFromUser(r.Context(), identity.UserID, interestID); err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to remove interest")
		return
	}

	httperrors.Write(w, http.StatusOK, struct {
		OK bool `json:"ok"`
	}{OK: true})
}
