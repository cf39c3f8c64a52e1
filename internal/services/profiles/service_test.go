package profiles_test

import (
	"context"
	"errors"
	"testing"

	pgrepo "github.com/avelasquezg/chambeaya/internal/repo/postgres"
	profilessvc "github.com/avelasquezg/chambeaya/internal/services/profiles"
)

type fakeProfileStore struct {
	byUserID map[int64]pgrepo.ProfileRecord
}

func (f *fakeProfileStore) GetByUserID(_ context.Context, userID int64) (pgrepo.ProfileRecord, error) {
	record, ok := f.byUserID[userID]
	if !ok {
		return pgrepo.ProfileRecord{}, pgrepo.ErrProfileNotFound
	}
	return record, nil
}

func (f *fakeProfileStore) Update(_ context.Context, userID int64, bio string, education, experience []string, completion int) (pgrepo.ProfileRecord, error) {
	record, ok := f.byUserID[userID]
	if !ok {
		return pgrepo.ProfileRecord{}, pgrepo.ErrProfileNotFound
	}
	record.Bio = bio
	record.Education = education
	record.Experience = experience
	record.CompletionPercentage = completion
	f.byUserID[userID] = record
	return record, nil
}

type fakeInterestStore struct {
	byUserID map[int64][]pgrepo.InterestRecord
}

func (f *fakeInterestStore) ListForUser(_ context.Context, userID int64) ([]pgrepo.InterestRecord, error) {
	return f.byUserID[userID], nil
}

func TestUpdateRecomputesCompletion(t *testing.T) {
	profileStore := &fakeProfileStore{byUserID: map[int64]pgrepo.ProfileRecord{
		7: {ID: 1, UserID: 7},
	}}
	interestStore := &fakeInterestStore{byUserID: map[int64][]pgrepo.InterestRecord{
		7: {{ID: 1, Name: "React"}},
	}}
	svc := profilessvc.NewService(profileStore, interestStore)

	updated, err := svc.Update(context.Background(), 7, profilessvc.UpdateInput{
		Bio:       "backend developer in training",
		Education: []string{"cs degree"},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	// bio 40 + education 20 + interests 20
	if updated.CompletionPercentage != 80 {
		t.Fatalf("expected completion 80, got %d", updated.CompletionPercentage)
	}
	if updated.Bio != "backend developer in training" {
		t.Fatalf("unexpected bio %q", updated.Bio)
	}
}

func TestUpdateDropsBlankEntries(t *testing.T) {
	profileStore := &fakeProfileStore{byUserID: map[int64]pgrepo.ProfileRecord{
		3: {ID: 2, UserID: 3},
	}}
	svc := profilessvc.NewService(profileStore, &fakeInterestStore{byUserID: map[int64][]pgrepo.InterestRecord{}})

	updated, err := svc.Update(context.Background(), 3, profilessvc.UpdateInput{
		Experience: []string{"  ", "internship at a startup", ""},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Experience) != 1 || updated.Experience[0] != "internship at a startup" {
		t.Fatalf("expected blank entries removed, got %v", updated.Experience)
	}
	if updated.CompletionPercentage != 20 {
		t.Fatalf("expected completion 20, got %d", updated.CompletionPercentage)
	}
}

func TestGetMissingProfile(t *testing.T) {
	svc := profilessvc.NewService(&fakeProfileStore{byUserID: map[int64]pgrepo.ProfileRecord{}}, &fakeInterestStore{})

	if _, err := svc.Get(context.Background(), 99); !errors.Is(err, profilessvc.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
