package swipes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/avelasquezg/chambeaya/internal/domain/rules"
	pgrepo "github.com/avelasquezg/chambeaya/internal/repo/postgres"
)

type swipePair struct {
	swiperID int64
	swipedID int64
}

type fakeUserStore struct {
	users map[int64]pgrepo.UserRecord
}

func (f *fakeUserStore) GetByID(_ context.Context, userID int64) (pgrepo.UserRecord, error) {
	record, ok := f.users[userID]
	if !ok {
		return pgrepo.UserRecord{}, pgrepo.ErrUserNotFound
	}
	return record, nil
}

type fakeSwipeStore struct {
	nextID int64
	rows   map[swipePair]pgrepo.SwipeRecord
}

func newFakeSwipeStore() *fakeSwipeStore {
	return &fakeSwipeStore{nextID: 1, rows: map[swipePair]pgrepo.SwipeRecord{}}
}

func (f *fakeSwipeStore) Upsert(_ context.Context, _ pgx.Tx, swiperID, swipedID int64, direction string, now time.Time) (pgrepo.SwipeRecord, bool, error) {
	key := swipePair{swiperID, swipedID}
	if existing, ok := f.rows[key]; ok {
		return existing, false, nil
	}
	record := pgrepo.SwipeRecord{
		ID:        f.nextID,
		SwiperID:  swiperID,
		SwipedID:  swipedID,
		Direction: direction,
		CreatedAt: now,
	}
	f.nextID++
	f.rows[key] = record
	return record, true, nil
}

func (f *fakeSwipeStore) HasReciprocalInterest(_ context.Context, _ pgx.Tx, swiperID, swipedID int64) (bool, error) {
	reverse, ok := f.rows[swipePair{swipedID, swiperID}]
	return ok && reverse.Direction == "interested", nil
}

type fakeMatchStore struct {
	nextID int64
	rows   map[swipePair]pgrepo.MatchRecord
}

func newFakeMatchStore() *fakeMatchStore {
	return &fakeMatchStore{nextID: 1, rows: map[swipePair]pgrepo.MatchRecord{}}
}

func (f *fakeMatchStore) CreateIfAbsent(_ context.Context, _ pgx.Tx, studentID, businessID int64, now time.Time) (pgrepo.MatchRecord, error) {
	key := swipePair{studentID, businessID}
	if existing, ok := f.rows[key]; ok {
		return existing, nil
	}
	record := pgrepo.MatchRecord{
		ID:         f.nextID,
		StudentID:  studentID,
		BusinessID: businessID,
		Status:     "accepted",
		CreatedAt:  now,
	}
	f.nextID++
	f.rows[key] = record
	return record, nil
}

type limiterStub struct {
	allowed    bool
	retryAfter int64
	err        error
}

func (s limiterStub) AllowSwipe(context.Context, int64) (int64, bool, error) {
	return s.retryAfter, s.allowed, s.err
}

const (
	studentID  = int64(1)
	businessID = int64(2)
)

func newSwipeServiceForTest() (*Service, *fakeSwipeStore, *fakeMatchStore) {
	users := &fakeUserStore{users: map[int64]pgrepo.UserRecord{
		studentID:  {ID: studentID, Username: "ana_student", UserType: "student"},
		businessID: {ID: businessID, Username: "acme", UserType: "business"},
		3:          {ID: 3, Username: "lucho_student", UserType: "student"},
		4:          {ID: 4, Username: "fintech_co", UserType: "business"},
	}}
	swipeStore := newFakeSwipeStore()
	matchStore := newFakeMatchStore()

	svc := NewService(Dependencies{
		Users:      users,
		SwipeStore: swipeStore,
		MatchStore: matchStore,
	})
	svc.runTx = func(ctx context.Context, fn func(context.Context, pgx.Tx) error) error {
		return fn(ctx, nil)
	}
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	return svc, swipeStore, matchStore
}

func TestReciprocalInterestCreatesMatch(t *testing.T) {
	svc, _, _ := newSwipeServiceForTest()
	ctx := context.Background()

	first, err := svc.RecordSwipe(ctx, studentID, businessID, "right")
	if err != nil {
		t.Fatalf("first swipe: %v", err)
	}
	if first.Match != nil {
		t.Fatalf("one-sided interest must not match")
	}

	second, err := svc.RecordSwipe(ctx, businessID, studentID, "right")
	if err != nil {
		t.Fatalf("second swipe: %v", err)
	}
	if second.Match == nil {
		t.Fatalf("reciprocal interest should create a match")
	}
	if second.Match.StudentID != studentID || second.Match.BusinessID != businessID {
		t.Fatalf("wrong role assignment: student=%d business=%d", second.Match.StudentID, second.Match.BusinessID)
	}
}

func TestRolesIndependentOfSwipeOrder(t *testing.T) {
	svc, _, _ := newSwipeServiceForTest()
	ctx := context.Background()

	// business swipes first this time
	if _, err := svc.RecordSwipe(ctx, businessID, studentID, "right"); err != nil {
		t.Fatalf("business swipe: %v", err)
	}
	result, err := svc.RecordSwipe(ctx, studentID, businessID, "right")
	if err != nil {
		t.Fatalf("student swipe: %v", err)
	}
	if result.Match == nil {
		t.Fatalf("expected match")
	}
	if result.Match.StudentID != studentID || result.Match.BusinessID != businessID {
		t.Fatalf("roles must not depend on swipe order: student=%d business=%d", result.Match.StudentID, result.Match.BusinessID)
	}
}

func TestPassNeverMatches(t *testing.T) {
	svc, _, matchStore := newSwipeServiceForTest()
	ctx := context.Background()

	if _, err := svc.RecordSwipe(ctx, businessID, studentID, "right"); err != nil {
		t.Fatalf("business interest: %v", err)
	}
	result, err := svc.RecordSwipe(ctx, studentID, businessID, "left")
	if err != nil {
		t.Fatalf("student pass: %v", err)
	}
	if result.Match != nil {
		t.Fatalf("a pass must never create a match")
	}
	if result.Swipe.Direction != "passed" {
		t.Fatalf("expected stored direction passed, got %q", result.Swipe.Direction)
	}
	if len(matchStore.rows) != 0 {
		t.Fatalf("no match rows expected, got %d", len(matchStore.rows))
	}
}

func TestInterestAfterCounterpartPassedDoesNotMatch(t *testing.T) {
	svc, _, matchStore := newSwipeServiceForTest()
	ctx := context.Background()

	if _, err := svc.RecordSwipe(ctx, businessID, studentID, "left"); err != nil {
		t.Fatalf("business pass: %v", err)
	}
	result, err := svc.RecordSwipe(ctx, studentID, businessID, "right")
	if err != nil {
		t.Fatalf("student interest: %v", err)
	}
	if result.Match != nil || len(matchStore.rows) != 0 {
		t.Fatalf("interest against a recorded pass must not match")
	}
}

func TestRepeatedSwipeKeepsFirstDecision(t *testing.T) {
	svc, swipeStore, _ := newSwipeServiceForTest()
	ctx := context.Background()

	first, err := svc.RecordSwipe(ctx, studentID, businessID, "left")
	if err != nil {
		t.Fatalf("first swipe: %v", err)
	}

	// the opposite direction afterwards does not overwrite the stored pass
	repeat, err := svc.RecordSwipe(ctx, studentID, businessID, "right")
	if err != nil {
		t.Fatalf("repeat swipe: %v", err)
	}
	if repeat.Swipe.ID != first.Swipe.ID {
		t.Fatalf("expected the stored swipe back, got id %d vs %d", repeat.Swipe.ID, first.Swipe.ID)
	}
	if repeat.Swipe.Direction != "passed" {
		t.Fatalf("first decision must stand, got %q", repeat.Swipe.Direction)
	}
	if len(swipeStore.rows) != 1 {
		t.Fatalf("expected a single ledger row, got %d", len(swipeStore.rows))
	}
}

func TestMatchCreationIsIdempotent(t *testing.T) {
	svc, _, matchStore := newSwipeServiceForTest()
	ctx := context.Background()

	if _, err := svc.RecordSwipe(ctx, businessID, studentID, "right"); err != nil {
		t.Fatalf("business interest: %v", err)
	}
	first, err := svc.RecordSwipe(ctx, studentID, businessID, "right")
	if err != nil {
		t.Fatalf("student interest: %v", err)
	}
	if first.Match == nil {
		t.Fatalf("expected match")
	}

	retry, err := svc.RecordSwipe(ctx, studentID, businessID, "right")
	if err != nil {
		t.Fatalf("retried swipe: %v", err)
	}
	if retry.Match == nil || retry.Match.ID != first.Match.ID {
		t.Fatalf("retried swipe should observe the same match")
	}
	if len(matchStore.rows) != 1 {
		t.Fatalf("expected a single match row, got %d", len(matchStore.rows))
	}
}

func TestSameTypePairIsRoleConflict(t *testing.T) {
	svc, swipeStore, matchStore := newSwipeServiceForTest()
	ctx := context.Background()

	result, err := svc.RecordSwipe(ctx, studentID, 3, "right")
	if !errors.Is(err, rules.ErrRoleConflict) {
		t.Fatalf("expected role conflict, got %v", err)
	}
	if result.Swipe.ID == 0 {
		t.Fatalf("the swipe itself must still be recorded")
	}
	if _, ok := swipeStore.rows[swipePair{studentID, 3}]; !ok {
		t.Fatalf("swipe row missing from ledger")
	}

	// even reciprocal same-type interest never produces a match
	if _, err := svc.RecordSwipe(ctx, 3, studentID, "right"); !errors.Is(err, rules.ErrRoleConflict) {
		t.Fatalf("expected role conflict on reciprocal swipe, got %v", err)
	}
	if len(matchStore.rows) != 0 {
		t.Fatalf("same-type pair must never match")
	}
}

func TestSwipeValidation(t *testing.T) {
	svc, _, _ := newSwipeServiceForTest()
	ctx := context.Background()

	if _, err := svc.RecordSwipe(ctx, studentID, studentID, "right"); !errors.Is(err, ErrSelfSwipe) {
		t.Fatalf("expected self swipe error, got %v", err)
	}
	if _, err := svc.RecordSwipe(ctx, studentID, 999, "right"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected user not found, got %v", err)
	}
	if _, err := svc.RecordSwipe(ctx, 999, businessID, "right"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected user not found for swiper, got %v", err)
	}
	if _, err := svc.RecordSwipe(ctx, studentID, businessID, "upwards"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error on unknown direction, got %v", err)
	}
	if _, err := svc.RecordSwipe(ctx, 0, businessID, "right"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error on zero swiper, got %v", err)
	}
}

func TestWireDirectionsMapToStoredValues(t *testing.T) {
	svc, _, _ := newSwipeServiceForTest()
	ctx := context.Background()

	right, err := svc.RecordSwipe(ctx, studentID, businessID, "right")
	if err != nil {
		t.Fatalf("right swipe: %v", err)
	}
	if right.Swipe.Direction != "interested" {
		t.Fatalf("right should store interested, got %q", right.Swipe.Direction)
	}

	left, err := svc.RecordSwipe(ctx, 3, businessID, "left")
	if err != nil {
		t.Fatalf("left swipe: %v", err)
	}
	if left.Swipe.Direction != "passed" {
		t.Fatalf("left should store passed, got %q", left.Swipe.Direction)
	}
}

func TestRateLimitedSwipe(t *testing.T) {
	svc, swipeStore, _ := newSwipeServiceForTest()
	svc.rateLimiter = limiterStub{allowed: false, retryAfter: 7}
	ctx := context.Background()

	_, err := svc.RecordSwipe(ctx, studentID, businessID, "right")
	tooFast, ok := IsTooFast(err)
	if !ok {
		t.Fatalf("expected too fast error, got %v", err)
	}
	if tooFast.RetryAfter() != 7 {
		t.Fatalf("expected retry_after 7, got %d", tooFast.RetryAfter())
	}
	if len(swipeStore.rows) != 0 {
		t.Fatalf("limited swipe must not reach the ledger")
	}
}

func TestRateLimiterFailureDoesNotBlockSwipes(t *testing.T) {
	svc, _, _ := newSwipeServiceForTest()
	svc.rateLimiter = limiterStub{err: errors.New("redis down")}
	ctx := context.Background()

	if _, err := svc.RecordSwipe(ctx, studentID, businessID, "right"); err != nil {
		t.Fatalf("limiter outage should not block swipes: %v", err)
	}
}
