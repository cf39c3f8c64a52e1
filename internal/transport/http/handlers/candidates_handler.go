package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/avelasquezg/chambeaya/internal/services/auth"
	candidatessvc "github.com/avelasquezg/chambeaya/internal/services/candidates"
	"github.com/avelasquezg/chambeaya/internal/transport/http/dto"
	httperrors "github.com/avelasquezg/chambeaya/internal/transport/http/errors"
)

type CandidatesHandler struct {
	service *candidatessvc.Service
}

func NewCandidatesHandler(service *candidatessvc.Service) *CandidatesHandler {
	return &CandidatesHandler{service: service}
}

func (h *CandidatesHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "CANDIDATES_SERVICE_UNAVAILABLE", "candidates service is unavailable")
		return
	}

	candidates, err := h.service.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, candidatessvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid candidates request")
		case errors.Is(err, candidatessvc.ErrNotFound):
			writeNotFound(w, "USER_NOT_FOUND", "user not found")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to build candidate feed")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MapCandidates(candidates))
}
