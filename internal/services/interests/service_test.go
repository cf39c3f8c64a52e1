package interests_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	pgrepo "github.com/avelasquezg/chambeaya/internal/repo/postgres"
	interestssvc "github.com/avelasquezg/chambeaya/internal/services/interests"
)

type fakeInterestStore struct {
	nextID   int64
	byName   map[string]pgrepo.InterestRecord
	perUser  map[int64]map[int64]bool
	ordering []pgrepo.InterestRecord
}

func newFakeInterestStore() *fakeInterestStore {
	return &fakeInterestStore{
		nextID:  1,
		byName:  map[string]pgrepo.InterestRecord{},
		perUser: map[int64]map[int64]bool{},
	}
}

func (f *fakeInterestStore) List(_ context.Context) ([]pgrepo.InterestRecord, error) {
	return f.ordering, nil
}

func (f *fakeInterestStore) GetOrCreate(_ context.Context, name string) (pgrepo.InterestRecord, error) {
	if record, ok := f.byName[strings.ToLower(name)]; ok {
		return record, nil
	}
	record := pgrepo.InterestRecord{ID: f.nextID, Name: name}
	f.nextID++
	f.byName[strings.ToLower(name)] = record
	f.ordering = append(f.ordering, record)
	return record, nil
}

func (f *fakeInterestStore) AddToUser(_ context.Context, userID, interestID int64) error {
	set := f.perUser[userID]
	if set == nil {
		set = map[int64]bool{}
		f.perUser[userID] = set
	}
	if set[interestID] {
		return pgrepo.ErrUserInterestExists
	}
	set[interestID] = true
	return nil
}

func (f *fakeInterestStore) RemoveFromUser(_ context.Context, userID, interestID int64) error {
	delete(f.perUser[userID], interestID)
	return nil
}

func (f *fakeInterestStore) ListForUser(_ context.Context, userID int64) ([]pgrepo.InterestRecord, error) {
	var out []pgrepo.InterestRecord
	for _, record := range f.ordering {
		if f.perUser[userID][record.ID] {
			out = append(out, record)
		}
	}
	return out, nil
}

func TestCreateReusesExistingName(t *testing.T) {
	store := newFakeInterestStore()
	svc := interestssvc.NewService(store)
	ctx := context.Background()

	first, err := svc.Create(ctx, "Marketing Digital")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, "marketing digital")
	if err != nil {
		t.Fatalf("create again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same interest reused, got ids %d and %d", first.ID, second.ID)
	}
}

func TestAddToUserTwice(t *testing.T) {
	store := newFakeInterestStore()
	svc := interestssvc.NewService(store)
	ctx := context.Background()

	interest, err := svc.Create(ctx, "React")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.AddToUser(ctx, 5, interest.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.AddToUser(ctx, 5, interest.ID); !errors.Is(err, interestssvc.ErrAlreadyAdded) {
		t.Fatalf("expected already added, got %v", err)
	}

	mine, err := svc.ListForUser(ctx, 5)
	if err != nil {
		t.Fatalf("list for user: %v", err)
	}
	if len(mine) != 1 || mine[0].Name != "React" {
		t.Fatalf("unexpected user interests %v", mine)
	}
}

func TestEnsureDefaultsIsIdempotent(t *testing.T) {
	store := newFakeInterestStore()
	svc := interestssvc.NewService(store)
	ctx := context.Background()

	names := []string{"Desarrollo Web", "React", "Desarrollo Web"}
	if err := svc.EnsureDefaults(ctx, names); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.EnsureDefaults(ctx, names); err != nil {
		t.Fatalf("reseed: %v", err)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 catalog entries, got %d", len(all))
	}
}
