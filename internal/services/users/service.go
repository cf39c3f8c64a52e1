package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/avelasquezg/chambeaya/internal/domain/enums"
	"github.com/avelasquezg/chambeaya/internal/domain/model"
	"github.com/avelasquezg/chambeaya/internal/pkg/validate"
	pgrepo "github.com/avelasquezg/chambeaya/internal/repo/postgres"
	"github.com/avelasquezg/chambeaya/internal/security"
)

const (
	minUsernameLen = 3
	minPasswordLen = 6
)

var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("user not found")
	ErrUsernameTaken  = errors.New("username already taken")
	ErrEmailTaken     = errors.New("email already taken")
	ErrBadCredentials = errors.New("bad credentials")
)

type UserStore interface {
	Create(ctx context.Context, username, email, fullName, userType, profilePic, passwordHash string) (pgrepo.UserRecord, error)
	GetByID(ctx context.Context, userID int64) (pgrepo.UserRecord, error)
	GetByUsername(ctx context.Context, username string) (pgrepo.UserRecord, error)
}

type ProfileStore interface {
	Create(ctx context.Context, userID int64, bio string, education, experience []string, completion int) (pgrepo.ProfileRecord, error)
	GetByUserID(ctx context.Context, userID int64) (pgrepo.ProfileRecord, error)
}

type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	FullName   string
	UserType   string
	ProfilePic string
}

type UserWithProfile struct {
	User    model.User
	Profile model.Profile
}

type Service struct {
	users    UserStore
	profiles ProfileStore
	now      func() time.Time
}

func NewService(users UserStore, profiles ProfileStore) *Service {
	return &Service{
		users:    users,
		profiles: profiles,
		now:      time.Now,
	}
}

// Register creates the user together with an empty profile so that every
// account can be enriched and listed right away.
func (s *Service) Register(ctx context.Context, input RegisterInput) (model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	fullName := strings.TrimSpace(input.FullName)

	if len(username) < minUsernameLen {
		return model.User{}, fmt.Errorf("%w: username must be at least %d characters", ErrValidation, minUsernameLen)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.User{}, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(input.Password) < minPasswordLen {
		return model.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}
	if !validate.Required(fullName) {
		return model.User{}, fmt.Errorf("%w: full name is required", ErrValidation)
	}

	userType, ok := enums.ParseUserType(input.UserType)
	if !ok {
		return model.User{}, fmt.Errorf("%w: unknown user type %q", ErrValidation, input.UserType)
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	record, err := s.users.Create(ctx, username, email, fullName, string(userType), strings.TrimSpace(input.ProfilePic), passwordHash)
	if err != nil {
		switch {
		case errors.Is(err, pgrepo.ErrUsernameTaken):
			return model.User{}, ErrUsernameTaken
		case errors.Is(err, pgrepo.ErrEmailTaken):
			return model.User{}, ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("create user: %w", err)
	}

	if _, err := s.profiles.Create(ctx, record.ID, "", nil, nil, 0); err != nil {
		return model.User{}, fmt.Errorf("create profile: %w", err)
	}

	return toModelUser(record), nil
}

func (s *Service) Authenticate(ctx context.Context, username, password string) (model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.User{}, ErrValidation
	}

	record, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.User{}, ErrBadCredentials
		}
		return model.User{}, fmt.Errorf("load user: %w", err)
	}

	if err := security.CheckPassword(record.PasswordHash, password); err != nil {
		return model.User{}, ErrBadCredentials
	}

	return toModelUser(record), nil
}

func (s *Service) GetByID(ctx context.Context, userID int64) (model.User, error) {
	if userID <= 0 {
		return model.User{}, ErrValidation
	}

	record, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrUserNotFound) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("load user: %w", err)
	}

	return toModelUser(record), nil
}

func (s *Service) GetWithProfile(ctx context.Context, userID int64) (UserWithProfile, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return UserWithProfile{}, err
	}

	result := UserWithProfile{User: user}

	profile, err := s.profiles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		result.Profile = toModelProfile(profile)
	case errors.Is(err, pgrepo.ErrProfileNotFound):
		result.Profile = model.Profile{UserID: userID}
	default:
		return UserWithProfile{}, fmt.Errorf("load profile: %w", err)
	}

	return result, nil
}

func toModelUser(record pgrepo.UserRecord) model.User {
	return model.User{
		ID:         record.ID,
		Username:   record.Username,
		Email:      record.Email,
		FullName:   record.FullName,
		UserType:   enums.UserType(record.UserType),
		ProfilePic: record.ProfilePic,
		CreatedAt:  record.CreatedAt,
	}
}

func toModelProfile(record pgrepo.ProfileRecord) model.Profile {
	return model.Profile{
		ID:                   record.ID,
		UserID:               record.UserID,
		Bio:                  record.Bio,
		Education:            record.Education,
		Experience:           record.Experience,
		CompletionPercentage: record.CompletionPercentage,
	}
}
