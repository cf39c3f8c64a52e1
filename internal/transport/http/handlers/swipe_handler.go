package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/avelasquezg/chambeaya/internal/domain/rules"
	authsvc "github.com/avelasquezg/chambeaya/internal/services/auth"
	swipesvc "github.com/avelasquezg/chambeaya/internal/services/swipes"
	"github.com/avelasquezg/chambeaya/internal/transport/http/dto"
	httperrors "github.com/avelasquezg/chambeaya/internal/transport/http/errors"
)

type SwipeHandler struct {
	service *swipesvc.Service
}

func NewSwipeHandler(service *swipesvc.Service) *SwipeHandler {
	return &SwipeHandler{service: service}
}

func (h *SwipeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "SWIPE_SERVICE_UNAVAILABLE", "swipe service is unavailable")
		return
	}

	var req dto.SwipeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}
	if req.SwipedID <= 0 || strings.TrimSpace(req.Direction) == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "swiped_id and direction are required")
		return
	}

	result, err := h.service.RecordSwipe(r.Context(), identity.UserID, req.SwipedID, req.Direction)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrRoleConflict):
			// the swipe was stored; only the pairing is impossible
			writeBadRequest(w, "ROLE_CONFLICT", "cannot match two users of the same type")
		case errors.Is(err, swipesvc.ErrSelfSwipe):
			writeBadRequest(w, "VALIDATION_ERROR", "cannot swipe yourself")
		case errors.Is(err, swipesvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid swipe request")
		case errors.Is(err, swipesvc.ErrUserNotFound):
			writeNotFound(w, "USER_NOT_FOUND", "swiped user not found")
		default:
			if tf, ok := swipesvc.IsTooFast(err); ok {
				httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
					Code:          "TOO_FAST",
					Message:       "too many swipes, slow down",
					RetryAfterSec: tf.RetryAfter(),
				})
				return
			}
			writeInternal(w, "INTERNAL_ERROR", "failed to process swipe")
		}
		return
	}

	response := dto.SwipeResultResponse{
		Swipe:   dto.MapSwipe(result.Swipe),
		Matched: result.Match != nil,
	}
	if result.Match != nil {
		match := dto.MapMatch(*result.Match)
		response.Match = &match
	}

	httperrors.Write(w, http.StatusOK, response)
}
