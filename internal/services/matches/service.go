package matches

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelasquezg/chambeaya/internal/domain/enums"
	"github.com/avelasquezg/chambeaya/internal/domain/model"
	pgrepo "github.com/avelasquezg/chambeaya/internal/repo/postgres"
)

const defaultListLimit = 100

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("match not found")
	ErrNotPartOfPair = errors.New("user is not part of this match")
)

type MatchStore interface {
	GetByID(ctx context.Context, matchID int64) (pgrepo.MatchRecord, error)
	ListForUser(ctx context.Context, userID int64, limit int) ([]pgrepo.MatchWithCounterpart, error)
	UpdateStatus(ctx context.Context, matchID int64, status string) (pgrepo.MatchRecord, error)
}

// Counterpart is the other side of a match as shown in listings.
type Counterpart struct {
	UserID     int64          `json:"user_id"`
	Username   string         `json:"username"`
	FullName   string         `json:"full_name"`
	UserType   enums.UserType `json:"user_type"`
	ProfilePic string         `json:"profile_pic,omitempty"`
	Bio        string         `json:"bio,omitempty"`
	Completion int            `json:"completion_percentage"`
}

type MatchView struct {
	Match     model.Match `json:"match"`
	OtherUser Counterpart `json:"other_user"`
}

type Service struct {
	store MatchStore
	limit int
}

func NewService(store MatchStore, listLimit int) *Service {
	if listLimit <= 0 {
		listLimit = defaultListLimit
	}
	return &Service{store: store, limit: listLimit}
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]MatchView, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}

	rows, err := s.store.ListForUser(ctx, userID, s.limit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	views := make([]MatchView, 0, len(rows))
	for _, row := range rows {
		views = append(views, MatchView{
			Match: toModel(row.Match),
			OtherUser: Counterpart{
				UserID:     row.OtherUserID,
				Username:   row.OtherUsername,
				FullName:   row.OtherFullName,
				UserType:   enums.UserType(row.OtherUserType),
				ProfilePic: row.OtherProfilePic,
				Bio:        row.OtherBio,
				Completion: row.OtherCompletion,
			},
		})
	}
	return views, nil
}

// UpdateStatus lets either participant move the match between pending,
// accepted and rejected. Outsiders get rejected before any write happens.
func (s *Service) UpdateStatus(ctx context.Context, actorID, matchID int64, rawStatus string) (model.Match, error) {
	if actorID <= 0 || matchID <= 0 {
		return model.Match{}, ErrValidation
	}

	status, ok := enums.ParseMatchStatus(rawStatus)
	if !ok {
		return model.Match{}, fmt.Errorf("%w: unknown match status %q", ErrValidation, rawStatus)
	}

	current, err := s.store.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return model.Match{}, ErrNotFound
		}
		return model.Match{}, fmt.Errorf("load match: %w", err)
	}
	if current.StudentID != actorID && current.BusinessID != actorID {
		return model.Match{}, ErrNotPartOfPair
	}

	updated, err := s.store.UpdateStatus(ctx, matchID, string(status))
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return model.Match{}, ErrNotFound
		}
		return model.Match{}, fmt.Errorf("update match status: %w", err)
	}

	return toModel(updated), nil
}

func toModel(record pgrepo.MatchRecord) model.Match {
	return model.Match{
		ID:         record.ID,
		StudentID:  record.StudentID,
		BusinessID: record.BusinessID,
		Status:     enums.MatchStatus(record.Status),
		CreatedAt:  record.CreatedAt,
	}
}
