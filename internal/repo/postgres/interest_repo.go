package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserInterestExists = errors.New("user already has this interest")

type InterestRepo struct {
	pool *pgxpool.Pool
}

type InterestRecord struct {
	ID   int64
	Name string
}

func NewInterestRepo(pool *pgxpool.Pool) *InterestRepo {
	return &InterestRepo{pool: pool}
}

func (r *InterestRepo) List(ctx context.Context) ([]InterestRecord, error) {
	if r.pool == nil {
		return []InterestRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, name
FROM interests
ORDER BY name ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}
	defer rows.Close()

	return scanInterests(rows)
}

// GetOrCreate matches by case-insensitive name so "react" and "React" stay a
// single catalog entry.
func (r *InterestRepo) GetOrCreate(ctx context.Context, name string) (InterestRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return InterestRecord{}, fmt.Errorf("interest name is required")
	}
	if r.pool == nil {
		return InterestRecord{}, fmt.Errorf("postgres pool is nil")
	}

	var rec InterestRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, name FROM interests WHERE LOWER(name) = LOWER($1)
`, name).Scan(&rec.ID, &rec.Name)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return InterestRecord{}, fmt.Errorf("lookup interest: %w", err)
	}

	err = r.pool.QueryRow(ctx, `
INSERT INTO interests (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id, name
`, name).Scan(&rec.ID, &rec.Name)
	if err != nil {
		return InterestRecord{}, fmt.Errorf("create interest: %w", err)
	}

	return rec, nil
}

func (r *InterestRepo) AddToUser(ctx context.Context, userID, interestID int64) error {
	if userID <= 0 || interestID <= 0 {
		return fmt.Errorf("invalid user interest payload")
	}
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
INSERT INTO user_interests (user_id, interest_id)
VALUES ($1, $2)
`, userID, interestID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrUserInterestExists
		}
		return fmt.Errorf("add user interest: %w", err)
	}

	return nil
}

func (r *InterestRepo) RemoveFromUser(ctx context.Context, userID, interestID int64) error {
	if userID <= 0 || interestID <= 0 {
		return fmt.Errorf("invalid user interest payload")
	}
	if r.pool == nil {
		return nil
	}

	if _, err := r.pool.Exec(ctx, `
DELETE FROM user_interests
WHERE user_id = $1 AND interest_id = $2
`, userID, interestID); err != nil {
		return fmt.Errorf("remove user interest: %w", err)
	}

	return nil
}

func (r *InterestRepo) ListForUser(ctx context.Context, userID int64) ([]InterestRecord, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if r.pool == nil {
		return []InterestRecord{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT i.id, i.name
FROM interests i
JOIN user_interests ui ON ui.interest_id = i.id
WHERE ui.user_id = $1
ORDER BY i.name ASC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user interests: %w", err)
	}
	defer rows.Close()

	return scanInterests(rows)
}

// ListForUsers fetches interests for a candidate batch keyed by user id.
func (r *InterestRepo) ListForUsers(ctx context.Context, userIDs []int64) (map[int64][]InterestRecord, error) {
	out := make(map[int64][]InterestRecord, len(userIDs))
	if len(userIDs) == 0 || r.pool == nil {
		return out, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT ui.user_id, i.id, i.name
FROM interests i
JOIN user_interests ui ON ui.interest_id = i.id
WHERE ui.user_id = ANY($1)
ORDER BY i.name ASC
`, userIDs)
	if err != nil {
		return nil, fmt.Errorf("list interests for users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		var rec InterestRecord
		if err := rows.Scan(&userID, &rec.ID, &rec.Name); err != nil {
			return nil, fmt.Errorf("scan user interest: %w", err)
		}
		out[userID] = append(out[userID], rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate user interests: %w", rows.Err())
	}

	return out, nil
}

func scanInterests(rows pgx.Rows) ([]InterestRecord, error) {
	items := make([]InterestRecord, 0, 16)
	for rows.Next() {
		var rec InterestRecord
		if err := rows.Scan(&rec.ID, &rec.Name); err != nil {
			return nil, fmt.Errorf("scan interest: %w", err)
		}
		items = append(items, rec)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate interests: %w", rows.Err())
	}

	return items, nil
}
