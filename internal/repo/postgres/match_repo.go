package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepo struct {
	pool *pgxpool.Pool
}

type MatchRecord struct {
	ID         int64
	StudentID  int64
	BusinessID int64
	Status     string
	CreatedAt  time.Time
}

type MatchWithCounterpart struct {
	Match           MatchRecord
	OtherUserID     int64
	OtherUsername   string
	OtherFullName   string
	OtherUserType   string
	OtherProfilePic string
	OtherBio        string
	OtherCompletion int
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

// CreateIfAbsent inserts the match for a pair, or returns the existing one.
// The unique constraint on (student_id, business_id) is what serializes
// concurrent reciprocal swipes: the loser of the insert race reads the
// winner's row instead of creating a second match.
func (r *MatchRepo) CreateIfAbsent(ctx context.Context, tx pgx.Tx, studentID, businessID int64, now time.Time) (MatchRecord, error) {
	if studentID <= 0 || businessID <= 0 {
		return MatchRecord{}, fmt.Errorf("invalid match payload")
	}
	if tx == nil {
		return MatchRecord{}, fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var rec MatchRecord
	err := tx.QueryRow(ctx, `
INSERT INTO matches (student_id, business_id, status, created_at)
VALUES ($1, $2, 'accepted', $3)
ON CONFLICT (student_id, business_id) DO NOTHING
RETURNING id, student_id, business_id, status, created_at
`, studentID, businessID, now.UTC()).Scan(
		&rec.ID,
		&rec.StudentID,
		&rec.BusinessID,
		&rec.Status,
		&rec.CreatedAt,
	)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return MatchRecord{}, fmt.Errorf("create match: %w", err)
	}

	err = tx.QueryRow(ctx, `
SELECT id, student_id, business_id, status, created_at
FROM matches
WHERE student_id = $1 AND business_id = $2
`, studentID, businessID).Scan(
		&rec.ID,
		&rec.StudentID,
		&rec.BusinessID,
		&rec.Status,
		&rec.CreatedAt,
	)
	if err != nil {
		return MatchRecord{}, fmt.Errorf("get match after conflict: %w", err)
	}

	return rec, nil
}

func (r *MatchRepo) GetByID(ctx context.Context, matchID int64) (MatchRecord, error) {
	if matchID <= 0 {
		return MatchRecord{}, fmt.Errorf("invalid match id")
	}
	if r.pool == nil {
		return MatchRecord{}, ErrMatchNotFound
	}

	var rec MatchRecord
	err := r.pool.QueryRow(ctx, `
SELECT id, student_id, business_id, status, created_at
FROM matches
WHERE id = $1
`, matchID).Scan(
		&rec.ID,
		&rec.StudentID,
		&rec.BusinessID,
		&rec.Status,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return MatchRecord{}, ErrMatchNotFound
		}
		return MatchRecord{}, fmt.Errorf("get match: %w", err)
	}

	return rec, nil
}

// ListForUser joins each match with the counterpart's public fields. The
// password hash is never selected here.
func (r *MatchRepo) ListForUser(ctx context.Context, userID int64, limit int) ([]MatchWithCounterpart, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []MatchWithCounterpart{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	m.id,
	m.student_id,
	m.business_id,
	m.status,
	m.created_at,
	u.id,
	u.username,
	u.full_name,
	u.user_type,
	COALESCE(u.profile_pic, ''),
	COALESCE(p.bio, ''),
	COALESCE(p.completion_percentage, 0)
FROM matches m
JOIN users u ON u.id = CASE WHEN m.student_id = $1 THEN m.business_id ELSE m.student_id END
LEFT JOIN profiles p ON p.user_id = u.id
WHERE m.student_id = $1 OR m.business_id = $1
ORDER BY m.created_at DESC, m.id DESC
LIMIT $2
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	items := make([]MatchWithCounterpart, 0, limit)
	for rows.Next() {
		var item MatchWithCounterpart
		if err := rows.Scan(
			&item.Match.ID,
			&item.Match.StudentID,
			&item.Match.BusinessID,
			&item.Match.Status,
			&item.Match.CreatedAt,
			&item.OtherUserID,
			&item.OtherUsername,
			&item.OtherFullName,
			&item.OtherUserType,
			&item.OtherProfilePic,
			&item.OtherBio,
			&item.OtherCompletion,
		); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate matches: %w", rows.Err())
	}

	return items, nil
}

func (r *MatchRepo) UpdateStatus(ctx context.Context, matchID int64, status string) (MatchRecord, error) {
	if matchID <= 0 {
		return MatchRecord{}, fmt.Errorf("invalid match id")
	}
	if r.pool == nil {
		return MatchRecord{}, ErrMatchNotFound
	}

	var rec MatchRecord
	err := r.pool.QueryRow(ctx, `
UPDATE matches
SET status = $2
WHERE id = $1
RETURNING id, student_id, business_id, status, created_at
`, matchID, status).Scan(
		&rec.ID,
		&rec.StudentID,
		&rec.BusinessID,
		&rec.Status,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return MatchRecord{}, ErrMatchNotFound
		}
		return MatchRecord{}, fmt.Errorf("update match status: %w", err)
	}

	return rec, nil
}
