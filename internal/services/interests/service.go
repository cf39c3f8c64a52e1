package interests

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avelasquezg/chambeaya/internal/domain/model"
	pgrepo "github.com/avelasquezg/chambeaya/internal/repo/postgres"
)

const maxNameLen = 64

var (
	ErrValidation   = errors.New("validation error")
	ErrAlreadyAdded = errors.New("interest already added")
)

type InterestStore interface {
	List(ctx context.Context) ([]pgrepo.InterestRecord, error)
	GetOrCreate(ctx context.Context, name string) (pgrepo.InterestRecord, error)
	AddToUser(ctx context.Context, userID, interestID int64) error
	RemoveFromUser(ctx context.Context, userID, interestID int64) error
	ListForUser(ctx context.Context, userID int64) ([]pgrepo.InterestRecord, error)
}

type Service struct {
	store InterestStore
}

func NewService(store InterestStore) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]model.Interest, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}
	return toModels(records), nil
}

func (s *Service) Create(ctx context.Context, name string) (model.Interest, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLen {
		return model.Interest{}, ErrValidation
	}

	record, err := s.store.GetOrCreate(ctx, name)
	if err != nil {
		return model.Interest{}, fmt.Errorf("get or create interest: %w", err)
	}
	return model.Interest{ID: record.ID, Name: record.Name}, nil
}

func (s *Service) AddToUser(ctx context.Context, userID, interestID int64) error {
	if userID <= 0 || interestID <= 0 {
		return ErrValidation
	}

	if err := s.store.AddToUser(ctx, userID, interestID); err != nil {
		if errors.Is(err, pgrepo.ErrUserInterestExists) {
			return ErrAlreadyAdded
		}
		return fmt.Errorf("add interest to user: %w", err)
	}
	return nil
}

func (s *Service) RemoveFromUser(ctx context.Context, userID, interestID int64) error {
	if userID <= 0 || interestID <= 0 {
		return ErrValidation
	}
	if err := s.store.RemoveFromUser(ctx, userID, interestID); err != nil {
		return fmt.Errorf("remove interest from user: %w", err)
	}
	return nil
}

func (s *Service) ListForUser(ctx context.Context, userID int64) ([]model.Interest, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}

	records, err := s.store.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user interests: %w", err)
	}
	return toModels(records), nil
}

// EnsureDefaults seeds the catalog on startup. Existing names are reused
// rather than duplicated, so repeated boots are harmless.
func (s *Service) EnsureDefaults(ctx context.Context, names []string) error {
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, err := s.store.GetOrCreate(ctx, name); err != nil {
			return fmt.Errorf("seed interest %q: %w", name, err)
		}
	}
	return nil
}

func toModels(records []pgrepo.InterestRecord) []model.Interest {
	out := make([]model.Interest, 0, len(records))
	for _, record := range records {
		out = append(out, model.Interest{ID: record.ID, Name: record.Name})
	}
	return out
}
