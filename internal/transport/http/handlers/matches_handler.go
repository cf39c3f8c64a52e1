package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	authsvc "github.com/avelasquezg/chambeaya/internal/services/auth"
	matchessvc "github.com/avelasquezg/chambeaya/internal/services/matches"
	"github.com/avelasquezg/chambeaya/internal/transport/http/dto"
	httperrors "github.com/avelasquezg/chambeaya/internal/transport/http/errors"
)

type MatchesHandler struct {
	service *matchessvc.Service
}

func NewMatchesHandler(service *matchessvc.Service) *MatchesHandler {
	return &MatchesHandler{service: service}
}

func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	views, err := h.service.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to list matches")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MapMatchViews(views))
}

func (h *MatchesHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "MATCHES_SERVICE_UNAVAILABLE", "matches service is unavailable")
		return
	}

	matchID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || matchID <= 0 {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid match id")
		return
	}

	var req dto.MatchStatusUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	match, err := h.service.UpdateStatus(r.Context(), identity.UserID, matchID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, matchessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid match status")
		case errors.Is(err, matchessvc.ErrNotFound):
			writeNotFound(w, "MATCH_NOT_FOUND", "match not found")
		case errors.Is(err, matchessvc.ErrNotPartOfPair):
			httperrors.Write(w, http.StatusForbidden, httperrors.APIError{Code: "FORBIDDEN", Message: "only participants can update a match"})
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to update match")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MapMatch(match))
}
