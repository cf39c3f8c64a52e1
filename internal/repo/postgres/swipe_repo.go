package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSwipeNotFound = errors.New("swipe not found")

type SwipeRepo struct {
	pool *pgxpool.Pool
}

func NewSwipeRepo(pool *pgxpool.Pool) *SwipeRepo {
	return &SwipeRepo{pool: pool}
}

type SwipeRecord struct {
	ID        int64
	SwiperID  int64
	SwipedID  int64
	Direction string
	CreatedAt time.Time
}

// Upsert appends a swipe. The ledger holds at most one row per (swiper,
// swiped) pair: a repeat swipe is a no-op that returns the stored row, so
// retries of the same request are safe and the first decision stands.
func (r *SwipeRepo) Upsert(ctx context.Context, tx pgx.Tx, swiperID, swipedID int64, direction string, now time.Time) (SwipeRecord, bool, error) {
	if swiperID <= 0 || swipedID <= 0 || strings.TrimSpace(direction) == "" {
		return SwipeRecord{}, false, fmt.Errorf("invalid swipe payload")
	}
	if tx == nil {
		return SwipeRecord{}, false, fmt.Errorf("transaction is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var rec SwipeRecord
	err := tx.QueryRow(ctx, `
INSERT INTO swipes (swiper_id, swiped_id, direction, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (swiper_id, swiped_id) DO NOTHING
RETURNING id, swiper_id, swiped_id, direction, created_at
`, swiperID, swipedID, direction, now.UTC()).Scan(
		&rec.ID,
		&rec.SwiperID,
		&rec.SwipedID,
		&rec.Direction,
		&rec.CreatedAt,
	)
	if err == nil {
		return rec, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return SwipeRecord{}, false, fmt.Errorf("create swipe: %w", err)
	}

	existing, err := r.getByPair(ctx, tx, swiperID, swipedID)
	if err != nil {
		return SwipeRecord{}, false, err
	}
	return existing, false, nil
}

// HasReciprocalInterest reports whether the swiped user has already expressed
// interest in the swiper. A passed swipe never counts.
func (r *SwipeRepo) HasReciprocalInterest(ctx context.Context, tx pgx.Tx, swiperID, swipedID int64) (bool, error) {
	if swiperID <= 0 || swipedID <= 0 {
		return false, fmt.Errorf("invalid reciprocity payload")
	}
	if tx == nil {
		return false, fmt.Errorf("transaction is required")
	}

	var one int
	err := tx.QueryRow(ctx, `
SELECT 1
FROM swipes
WHERE swiper_id = $1 AND swiped_id = $2 AND direction = 'interested'
LIMIT 1
`, swipedID, swiperID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lookup reciprocal swipe: %w", err)
	}

	return true, nil
}

// ListSwipedIDs returns every user the swiper has already decided on, in
// either direction. Used to keep them out of the candidate feed for good.
func (r *SwipeRepo) ListSwipedIDs(ctx context.Context, swiperID int64) ([]int64, error) {
	if swiperID <= 0 {
		return nil, fmt.Errorf("invalid swiper id")
	}
	if r.pool == nil {
		return []int64{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT swiped_id
FROM swipes
WHERE swiper_id = $1
`, swiperID)
	if err != nil {
		return nil, fmt.Errorf("list swiped ids: %w", err)
	}
	defer rows.Close()

	ids := make([]int64, 0, 32)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan swiped id: %w", err)
		}
		ids = append(ids, id)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate swiped ids: %w", rows.Err())
	}

	return ids, nil
}

func (r *SwipeRepo) getByPair(ctx context.Context, tx pgx.Tx, swiperID, swipedID int64) (SwipeRecord, error) {
	var rec SwipeRecord
	err := tx.QueryRow(ctx, `
SELECT id, swiper_id, swiped_id, direction, created_at
FROM swipes
WHERE swiper_id = $1 AND swiped_id = $2
`, swiperID, swipedID).Scan(
		&rec.ID,
		&rec.SwiperID,
		&rec.SwipedID,
		&rec.Direction,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SwipeRecord{}, ErrSwipeNotFound
		}
		return SwipeRecord{}, fmt.Errorf("get swipe by pair: %w", err)
	}

	return rec, nil
}
