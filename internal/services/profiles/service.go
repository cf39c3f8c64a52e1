package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avelasquezg/chambeaya/internal/domain/model"
	"github.com/avelasquezg/chambeaya/internal/domain/rules"
	pgrepo "github.com/avelasquezg/chambeaya/internal/repo/postgres"
)

const maxBioLen = 500

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("profile not found")
)

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (pgrepo.ProfileRecord, error)
	Update(ctx context.Context, userID int64, bio string, education, experience []string, completion int) (pgrepo.ProfileRecord, error)
}

type InterestStore interface {
	ListForUser(ctx context.Context, userID int64) ([]pgrepo.InterestRecord, error)
}

type UpdateInput struct {
	Bio        string
	Education  []string
	Experience []string
}

type Service struct {
	profiles  ProfileStore
	interests InterestStore
}

func NewService(profiles ProfileStore, interests InterestStore) *Service {
	return &Service{
		profiles:  profiles,
		interests: interests,
	}
}

func (s *Service) Get(ctx context.Context, userID int64) (model.Profile, error) {
	if userID <= 0 {
		return model.Profile{}, ErrValidation
	}

	record, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return model.Profile{}, ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("load profile: %w", err)
	}

	return toModel(record), nil
}

// Update rewrites the profile and recomputes the completion percentage from
// the new content plus the user's current interest count.
func (s *Service) Update(ctx context.Context, userID int64, input UpdateInput) (model.Profile, error) {
	if userID <= 0 {
		return model.Profile{}, ErrValidation
	}

	bio := strings.TrimSpace(input.Bio)
	if len(bio) > maxBioLen {
		return model.Profile{}, fmt.Errorf("%w: bio is limited to %d characters", ErrValidation, maxBioLen)
	}

	education := cleanEntries(input.Education)
	experience := cleanEntries(input.Experience)

	interests, err := s.interests.ListForUser(ctx, userID)
	if err != nil {
		return model.Profile{}, fmt.Errorf("count interests: %w", err)
	}

	completion := rules.CompletionPercentage(bio, education, experience, len(interests))

	record, err := s.profiles.Update(ctx, userID, bio, education, experience, completion)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return model.Profile{}, ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("update profile: %w", err)
	}

	return toModel(record), nil
}

func cleanEntries(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func toModel(record pgrepo.ProfileRecord) model.Profile {
	return model.Profile{
		ID:                   record.ID,
		UserID:               record.UserID,
		Bio:                  record.Bio,
		Education:            record.Education,
		Experience:           record.Experience,
		CompletionPercentage: record.CompletionPercentage,
	}
}
