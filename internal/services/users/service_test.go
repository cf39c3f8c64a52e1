package users_test

import (
	"context"
	"errors"
	"testing"

	pgrepo "github.com/avelasquezg/chambeaya/internal/repo/postgres"
	userssvc "github.com/avelasquezg/chambeaya/internal/services/users"
)

type fakeUserStore struct {
	nextID  int64
	byID    map[int64]pgrepo.UserRecord
	byName  map[string]pgrepo.UserRecord
	byEmail map[string]pgrepo.UserRecord
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		nextID:  1,
		byID:    map[int64]pgrepo.UserRecord{},
		byName:  map[string]pgrepo.UserRecord{},
		byEmail: map[string]pgrepo.UserRecord{},
	}
}

func (f *fakeUserStore) Create(_ context.Context, username, email, fullName, userType, profilePic, passwordHash string) (pgrepo.UserRecord, error) {
	if _, ok := f.byName[username]; ok {
		return pgrepo.UserRecord{}, pgrepo.ErrUsernameTaken
	}
	if _, ok := f.byEmail[email]; ok {
		return pgrepo.UserRecord{}, pgrepo.ErrEmailTaken
	}

	record := pgrepo.UserRecord{
		ID:           f.nextID,
		Username:     username,
		Email:        email,
		FullName:     fullName,
		UserType:     userType,
		ProfilePic:   profilePic,
		PasswordHash: passwordHash,
	}
	f.nextID++
	f.byID[record.ID] = record
	f.byName[username] = record
	f.byEmail[email] = record
	return record, nil
}

func (f *fakeUserStore) GetByID(_ context.Context, userID int64) (pgrepo.UserRecord, error) {
	record, ok := f.byID[userID]
	if !ok {
		return pgrepo.UserRecord{}, pgrepo.ErrUserNotFound
	}
	return record, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (pgrepo.UserRecord, error) {
	record, ok := f.byName[username]
	if !ok {
		return pgrepo.UserRecord{}, pgrepo.ErrUserNotFound
	}
	return record, nil
}

type fakeProfileStore struct {
	nextID   int64
	byUserID map[int64]pgrepo.ProfileRecord
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{nextID: 1, byUserID: map[int64]pgrepo.ProfileRecord{}}
}

func (f *fakeProfileStore) Create(_ context.Context, userID int64, bio string, education, experience []string, completion int) (pgrepo.ProfileRecord, error) {
	record := pgrepo.ProfileRecord{
		ID:                   f.nextID,
		UserID:               userID,
		Bio:                  bio,
		Education:            education,
		Experience:           experience,
		CompletionPercentage: completion,
	}
	f.nextID++
	f.byUserID[userID] = record
	return record, nil
}

func (f *fakeProfileStore) GetByUserID(_ context.Context, userID int64) (pgrepo.ProfileRecord, error) {
	record, ok := f.byUserID[userID]
	if !ok {
		return pgrepo.ProfileRecord{}, pgrepo.ErrProfileNotFound
	}
	return record, nil
}

func validRegisterInput() userssvc.RegisterInput {
	return userssvc.RegisterInput{
		Username: "maria_dev",
		Email:    "maria@example.com",
		Password: "secret123",
		FullName: "Maria Velasquez",
		UserType: "student",
	}
}

func TestRegisterCreatesUserAndEmptyProfile(t *testing.T) {
	userStore := newFakeUserStore()
	profileStore := newFakeProfileStore()
	svc := userssvc.NewService(userStore, profileStore)

	ctx := context.Background()
	user, err := svc.Register(ctx, validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID <= 0 {
		t.Fatalf("expected assigned user id, got %d", user.ID)
	}
	if string(user.UserType) != "student" {
		t.Fatalf("expected user_type student, got %q", user.UserType)
	}

	profile, err := profileStore.GetByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("expected profile created alongside user: %v", err)
	}
	if profile.CompletionPercentage != 0 {
		t.Fatalf("fresh profile should be 0%% complete, got %d", profile.CompletionPercentage)
	}

	stored, err := userStore.GetByUsername(ctx, "maria_dev")
	if err != nil {
		t.Fatalf("load stored user: %v", err)
	}
	if stored.PasswordHash == "secret123" || stored.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	svc := userssvc.NewService(newFakeUserStore(), newFakeProfileStore())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*userssvc.RegisterInput)
	}{
		{"short username", func(in *userssvc.RegisterInput) { in.Username = "ab" }},
		{"bad email", func(in *userssvc.RegisterInput) { in.Email = "not-an-email" }},
		{"short password", func(in *userssvc.RegisterInput) { in.Password = "12345" }},
		{"missing full name", func(in *userssvc.RegisterInput) { in.FullName = "  " }},
		{"unknown user type", func(in *userssvc.RegisterInput) { in.UserType = "admin" }},
	}
	for _, tc := range cases {
		input := validRegisterInput()
		tc.mutate(&input)
		if _, err := svc.Register(ctx, input); !errors.Is(err, userssvc.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := userssvc.NewService(newFakeUserStore(), newFakeProfileStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegisterInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	dup := validRegisterInput()
	dup.Email = "other@example.com"
	if _, err := svc.Register(ctx, dup); !errors.Is(err, userssvc.ErrUsernameTaken) {
		t.Fatalf("expected username taken, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := userssvc.NewService(newFakeUserStore(), newFakeProfileStore())
	ctx := context.Background()

	registered, err := svc.Register(ctx, validRegisterInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.Authenticate(ctx, "maria_dev", "secret123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %d, got %d", registered.ID, user.ID)
	}

	if _, err := svc.Authenticate(ctx, "maria_dev", "wrong-pass"); !errors.Is(err, userssvc.ErrBadCredentials) {
		t.Fatalf("expected bad credentials on wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody", "secret123"); !errors.Is(err, userssvc.ErrBadCredentials) {
		t.Fatalf("expected bad credentials on unknown user, got %v", err)
	}
}

func TestGetWithProfileMissingUser(t *testing.T) {
	svc := userssvc.NewService(newFakeUserStore(), newFakeProfileStore())

	if _, err := svc.GetWithProfile(context.Background(), 404); !errors.Is(err, userssvc.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
