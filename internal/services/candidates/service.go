package candidates

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelasquezg/chambeaya/internal/domain/enums"
	"github.com/avelasquezg/chambeaya/internal/domain/model"
	pgrepo "github.com/avelasquezg/chambeaya/internal/repo/postgres"
)

const defaultLimit = 20

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("user not found")
)

type UserStore interface {
	GetByID(ctx context.Context, userID int64) (pgrepo.UserRecord, error)
	ListByType(ctx context.Context, userType string, excludeUserID int64, limit int) ([]pgrepo.UserRecord, error)
}

type SwipeStore interface {
	ListSwipedIDs(ctx context.Context, swiperID int64) ([]int64, error)
}

type ProfileStore interface {
	ListForUsers(ctx context.Context, userIDs []int64) (map[int64]pgrepo.ProfileRecord, error)
}

type InterestStore interface {
	ListForUsers(ctx context.Context, userIDs []int64) (map[int64][]pgrepo.InterestRecord, error)
}

// Candidate is a feed entry: the opposite-type user with profile content
// attached so the client can render a card without extra round trips.
type Candidate struct {
	User      model.User       `json:"user"`
	Profile   model.Profile    `json:"profile"`
	Interests []model.Interest `json:"interests"`
}

type Service struct {
	users     UserStore
	swipes    SwipeStore
	profiles  ProfileStore
	interests InterestStore
	limit     int
}

func NewService(users UserStore, swipes SwipeStore, profiles ProfileStore, interests InterestStore, limit int) *Service {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Service{
		users:     users,
		swipes:    swipes,
		profiles:  profiles,
		interests: interests,
		limit:     limit,
	}
}

// ListForUser builds the swipe feed: opposite-type users the viewer has not
// decided on yet. Everyone already present in the viewer's ledger is excluded,
// whatever the recorded direction was.
func (s *Service) ListForUser(ctx context.Context, viewerID int64) ([]Candidate, error) {
	if viewerID <= 0 {
		return nil, ErrValidation
	}

	viewer, err := s.users.GetByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load viewer: %w", err)
	}

	viewerType, ok := enums.ParseUserType(viewer.UserType)
	if !ok {
		return nil, fmt.Errorf("viewer %d has unknown user type %q", viewerID, viewer.UserType)
	}

	swipedIDs, err := s.swipes.ListSwipedIDs(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("load swiped ids: %w", err)
	}
	swiped := make(map[int64]bool, len(swipedIDs))
	for _, id := range swipedIDs {
		swiped[id] = true
	}

	pool, err := s.users.ListByType(ctx, string(viewerType.Opposite()), viewerID, s.limit+len(swiped))
	if err != nil {
		return nil, fmt.Errorf("list counterpart users: %w", err)
	}

	fresh := make([]pgrepo.UserRecord, 0, len(pool))
	ids := make([]int64, 0, len(pool))
	for _, record := range pool {
		if swiped[record.ID] {
			continue
		}
		fresh = append(fresh, record)
		ids = append(ids, record.ID)
		if len(fresh) >= s.limit {
			break
		}
	}
	if len(fresh) == 0 {
		return []Candidate{}, nil
	}

	profileByUser, err := s.profiles.ListForUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load candidate profiles: %w", err)
	}
	interestsByUser, err := s.interests.ListForUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load candidate interests: %w", err)
	}

	out := make([]Candidate, 0, len(fresh))
	for _, record := range fresh {
		candidate := Candidate{
			User: model.User{
				ID:         record.ID,
				Username:   record.Username,
				Email:      record.Email,
				FullName:   record.FullName,
				UserType:   enums.UserType(record.UserType),
				ProfilePic: record.ProfilePic,
				CreatedAt:  record.CreatedAt,
			},
			Profile:   model.Profile{UserID: record.ID},
			Interests: []model.Interest{},
		}
		if profile, ok := profileByUser[record.ID]; ok {
			candidate.Profile = model.Profile{
				ID:                   profile.ID,
				UserID:               profile.UserID,
				Bio:                  profile.Bio,
				Education:            profile.Education,
				Experience:           profile.Experience,
				CompletionPercentage: profile.CompletionPercentage,
			}
		}
		for _, interest := range interestsByUser[record.ID] {
			candidate.Interests = append(candidate.Interests, model.Interest{ID: interest.ID, Name: interest.Name})
		}
		out = append(out, candidate)
	}

	return out, nil
}
