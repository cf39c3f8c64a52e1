package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo struct {
	pool *pgxpool.Pool
}

type ProfileRecord struct {
	ID                   int64
	UserID               int64
	Bio                  string
	Education            []string
	Experience           []string
	CompletionPercentage int
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) Create(ctx context.Context, userID int64, bio string, education, experience []string, completion int) (ProfileRecord, error) {
	if userID <= 0 {
		return ProfileRecord{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return ProfileRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var rec ProfileRecord
	err := r.pool.QueryRow(ctx, `
INSERT INTO profiles (user_id, bio, education, experience, completion_percentage)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, user_id, COALESCE(bio, ''), education, experience, COALESCE(completion_percentage, 0)
`, userID, bio, stringArray(education), stringArray(experience), completion).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Bio,
		&rec.Education,
		&rec.Experience,
		&rec.CompletionPercentage,
	)
	if err != nil {
		return ProfileRecord{}, fmt.Errorf("create profile: %w", err)
	}

	return rec, nil
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID int64) (ProfileRecord, error) {
	if userID <= 0 {
		return ProfileRecord{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return ProfileRecord{}, ErrProfileNotFound
	}

	var rec ProfileRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, user_id, COALESCE(bio, ''), education, experience, COALESCE(completion_percentage, 0)
FROM profiles
WHERE user_id = $1
`, userID).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Bio,
		&rec.Education,
		&rec.Experience,
		&rec.CompletionPercentage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProfileRecord{}, ErrProfileNotFound
		}
		return ProfileRecord{}, fmt.Errorf("get profile: %w", err)
	}

	return rec, nil
}

func (r *ProfileRepo) Update(ctx context.Context, userID int64, bio string, education, experience []string, completion int) (ProfileRecord, error) {
	if userID <= 0 {
		return ProfileRecord{}, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return ProfileRecord{}, ErrProfileNotFound
	}

	var rec ProfileRecord
	err := r.pool.QueryRow(ctx, `
UPDATE profiles
SET bio = $2, education = $3, experience = $4, completion_percentage = $5
WHERE user_id = $1
RETURNING id, user_id, COALESCE(bio, ''), education, experience, COALESCE(completion_percentage, 0)
`, userID, bio, stringArray(education), stringArray(experience), completion).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Bio,
		&rec.Education,
		&rec.Experience,
		&rec.CompletionPercentage,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProfileRecord{}, ErrProfileNotFound
		}
		return ProfileRecord{}, fmt.Errorf("update profile: %w", err)
	}

	return rec, nil
}

// ListForUsers fetches profiles for a candidate batch in one query.
func (r *ProfileRepo) ListForUsers(ctx context.Context, userIDs []int64) (map[int64]ProfileRecord, error) {
	out := make(map[int64]ProfileRecord, len(userIDs))
	if len(userIDs) == 0 || r.pool == nil {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, COALESCE(bio, ''), education, experience, COALESCE(completion_percentage, 0)
FROM profiles
WHERE user_id = ANY($1)
`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec ProfileRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Bio,
			&rec.Education,
			&rec.Experience,
			&rec.CompletionPercentage,
		); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out[rec.UserID] = rec
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate profiles: %w", rows.Err())
	}

	return out, nil
}

func stringArray(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
