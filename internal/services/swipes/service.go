package swipes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelasquezg/chambeaya/internal/domain/enums"
	"github.com/avelasquezg/chambeaya/internal/domain/model"
	"github.com/avelasquezg/chambeaya/internal/domain/rules"
	pgrepo "github.com/avelasquezg/chambeaya/internal/repo/postgres"
)

var (
	ErrValidation   = errors.New("validation error")
	ErrUserNotFound = errors.New("swipe user not found")
	ErrSelfSwipe    = errors.New("cannot swipe yourself")
)

type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return "too fast"
}

func (e TooFastError) RetryAfter() int64 {
	if e.RetryAfterSec <= 0 {
		return 1
	}
	return e.RetryAfterSec
}

func IsTooFast(err error) (*TooFastError, bool) {
	var tf TooFastError
	if errors.As(err, &tf) {
		return &tf, true
	}
	return nil, false
}

type UserStore interface {
	GetByID(ctx context.Context, userID int64) (pgrepo.UserRecord, error)
}

type SwipeStore interface {
	Upsert(ctx context.Context, tx pgx.Tx, swiperID, swipedID int64, direction string, now time.Time) (pgrepo.SwipeRecord, bool, error)
	HasReciprocalInterest(ctx context.Context, tx pgx.Tx, swiperID, swipedID int64) (bool, error)
}

type MatchStore interface {
	CreateIfAbsent(ctx context.Context, tx pgx.Tx, studentID, businessID int64, now time.Time) (pgrepo.MatchRecord, error)
}

type RateLimiter interface {
	AllowSwipe(ctx context.Context, userID int64) (int64, bool, error)
}

type SwipeResult struct {
	Swipe model.Swipe
	Match *model.Match
}

type Service struct {
	pool        *pgxpool.Pool
	users       UserStore
	swipeStore  SwipeStore
	matchStore  MatchStore
	rateLimiter RateLimiter
	runTx       func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error
	now         func() time.Time
}

type Dependencies struct {
	Pool        *pgxpool.Pool
	Users       UserStore
	SwipeStore  SwipeStore
	MatchStore  MatchStore
	RateLimiter RateLimiter
}

func NewService(deps Dependencies) *Service {
	s := &Service{
		pool:        deps.Pool,
		users:       deps.Users,
		swipeStore:  deps.SwipeStore,
		matchStore:  deps.MatchStore,
		rateLimiter: deps.RateLimiter,
		now:         time.Now,
	}
	s.runTx = func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
		if s.pool == nil {
			return fn(ctx, nil)
		}
		return pgrepo.WithTx(ctx, s.pool, fn)
	}
	return s
}

// RecordSwipe writes the decision and, for a reciprocal interest, creates the
// match inside the same transaction. Repeating a swipe returns the stored
// decision unchanged, so a retried request observes the exact same outcome.
//
// A swipe onto a same-type user is still recorded, but the role conflict is
// reported and no match can ever form from that pair.
func (s *Service) RecordSwipe(ctx context.Context, swiperID, swipedID int64, direction string) (SwipeResult, error) {
	if swiperID <= 0 || swipedID <= 0 {
		return SwipeResult{}, ErrValidation
	}
	if swiperID == swipedID {
		return SwipeResult{}, ErrSelfSwipe
	}
	if s.users == nil || s.swipeStore == nil || s.matchStore == nil {
		return SwipeResult{}, fmt.Errorf("swipe dependencies are not configured")
	}

	dir, ok := enums.ParseSwipeDirection(direction)
	if !ok {
		return SwipeResult{}, fmt.Errorf("%w: unknown swipe direction %q", ErrValidation, direction)
	}

	swiper, err := s.users.GetByID(ctx, swiperID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return SwipeResult{}, ErrUserNotFound
		}
		return SwipeResult{}, fmt.Errorf("load swiper: %w", err)
	}
	swiped, err := s.users.GetByID(ctx, swipedID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return SwipeResult{}, ErrUserNotFound
		}
		return SwipeResult{}, fmt.Errorf("load swiped user: %w", err)
	}

	if s.rateLimiter != nil {
		retryAfter, allowed, limitErr := s.rateLimiter.AllowSwipe(ctx, swiperID)
		if limitErr == nil && !allowed {
			return SwipeResult{}, TooFastError{RetryAfterSec: retryAfter}
		}
	}

	roles, roleErr := rules.AssignRoles(swiper.ID, enums.UserType(swiper.UserType), swiped.ID, enums.UserType(swiped.UserType))

	now := s.now().UTC()
	var (
		storedSwipe pgrepo.SwipeRecord
		matchRecord *pgrepo.MatchRecord
	)
	if err := s.runTx(ctx, func(txCtx context.Context, tx pgx.Tx) error {
		record, _, err := s.swipeStore.Upsert(txCtx, tx, swiperID, swipedID, string(dir), now)
		if err != nil {
			return err
		}
		storedSwipe = record

		// The stored direction wins over the requested one: a pair's first
		// decision is final, and only interest can produce a match.
		if storedSwipe.Direction != string(enums.DirectionInterested) || roleErr != nil {
			return nil
		}

		reciprocal, err := s.swipeStore.HasReciprocalInterest(txCtx, tx, swiperID, swipedID)
		if err != nil {
			return err
		}
		if !reciprocal {
			return nil
		}

		created, err := s.matchStore.CreateIfAbsent(txCtx, tx, roles.StudentID, roles.BusinessID, now)
		if err != nil {
			return err
		}
		matchRecord = &created
		return nil
	}); err != nil {
		return SwipeResult{}, err
	}

	result := SwipeResult{Swipe: toModelSwipe(storedSwipe)}
	if matchRecord != nil {
		match := toModelMatch(*matchRecord)
		result.Match = &match
	}

	if roleErr != nil {
		return result, roleErr
	}
	return result, nil
}

func toModelSwipe(record pgrepo.SwipeRecord) model.Swipe {
	return model.Swipe{
		ID:        record.ID,
		SwiperID:  record.SwiperID,
		SwipedID:  record.SwipedID,
		Direction: enums.SwipeDirection(record.Direction),
		CreatedAt: record.CreatedAt,
	}
}

func toModelMatch(record pgrepo.MatchRecord) model.Match {
	return model.Match{
		ID:         record.ID,
		StudentID:  record.StudentID,
		BusinessID: record.BusinessID,
		Status:     enums.MatchStatus(record.Status),
		CreatedAt:  record.CreatedAt,
	}
}
