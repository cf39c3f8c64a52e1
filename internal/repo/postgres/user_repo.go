package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
)

type UserRepo struct {
	pool *pgxpool.Pool
}

type UserRecord struct {
	ID           int64
	Username     string
	Email        string
	FullName     string
	UserType     string
	ProfilePic   string
	PasswordHash string
	CreatedAt    time.Time
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, username, email, fullName, userType, profilePic, passwordHash string) (UserRecord, error) {
	if r.pool == nil {
		return UserRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var rec UserRecord
	err := r.pool.QueryRow(ctx, `
INSERT INTO users (username, email, full_name, user_type, profile_pic, password_hash, created_at)
VALUES ($1, $2, $3, $4, $5, $6, NOW())
RETURNING id, username, email, full_name, user_type, COALESCE(profile_pic, ''), password_hash, created_at
`, strings.TrimSpace(username), strings.ToLower(strings.TrimSpace(email)), strings.TrimSpace(fullName), userType, nullIfEmpty(profilePic), passwordHash).Scan(
		&rec.ID,
		&rec.Username,
		&rec.Email,
		&rec.FullName,
		&rec.UserType,
		&rec.ProfilePic,
		&rec.PasswordHash,
		&rec.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch {
			case strings.Contains(pgErr.ConstraintName, "email"):
				return UserRecord{}, ErrEmailTaken
			default:
				return UserRecord{}, ErrUsernameTaken
			}
		}
		return UserRecord{}, fmt.Errorf("create user: %w", err)
	}

	return rec, nil
}

func (r *UserRepo) GetByID(ctx context.Context, userID int64) (UserRecord, error) {
	if userID <= 0 {
		return UserRecord{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return UserRecord{}, fmt.Errorf("postgres pool is nil")
	}

	return r.scanOne(r.pool.QueryRow(ctx, `
SELECT id, username, email, full_name, user_type, COALESCE(profile_pic, ''), password_hash, created_at
FROM users
WHERE id = $1
`, userID))
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (UserRecord, error) {
	if strings.TrimSpace(username) == "" {
		return UserRecord{}, ErrUserNotFound
	}
	if r.pool == nil {
		return UserRecord{}, fmt.Errorf("postgres pool is nil")
	}

	return r.scanOne(r.pool.QueryRow(ctx, `
SELECT id, username, email, full_name, user_type, COALESCE(profile_pic, ''), password_hash, created_at
FROM users
WHERE username = $1
`, strings.TrimSpace(username)))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (UserRecord, error) {
	if strings.TrimSpace(email) == "" {
		return UserRecord{}, ErrUserNotFound
	}
	if r.pool == nil {
		return UserRecord{}, fmt.Errorf("postgres pool is nil")
	}

	return r.scanOne(r.pool.QueryRow(ctx, `
SELECT id, username, email, full_name, user_type, COALESCE(profile_pic, ''), password_hash, created_at
FROM users
WHERE email = $1
`, strings.ToLower(strings.TrimSpace(email))))
}

// ListByType powers candidate discovery: every user of the requested type
// except the viewer, newest first.
func (r *UserRepo) ListByType(ctx context.Context, userType string, excludeUserID int64, limit int) ([]UserRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if r.pool == nil {
		return []UserRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, username, email, full_name, user_type, COALESCE(profile_pic, ''), password_hash, created_at
FROM users
WHERE user_type = $1 AND id <> $2
ORDER BY created_at DESC, id DESC
LIMIT $3
`, userType, excludeUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("list users by type: %w", err)
	}
	defer rows.Close()

	items := make([]UserRecord, 0, limit)
	for rows.Next() {
		var rec UserRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Username,
			&rec.Email,
			&rec.FullName,
			&rec.UserType,
			&rec.ProfilePic,
			&rec.PasswordHash,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		items = append(items, rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate users: %w", rows.Err())
	}

	return items, nil
}

func (r *UserRepo) scanOne(row pgx.Row) (UserRecord, error) {
	var rec UserRecord
	err := row.Scan(
		&rec.ID,
		&rec.Username,
		&rec.Email,
		&rec.FullName,
		&rec.UserType,
		&rec.ProfilePic,
		&rec.PasswordHash,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserRecord{}, ErrUserNotFound
		}
		return UserRecord{}, fmt.Errorf("get user: %w", err)
	}
	return rec, nil
}

func nullIfEmpty(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
