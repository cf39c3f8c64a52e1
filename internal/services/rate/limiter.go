package rate

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const (
	swipesSecondWindow = time.Second
	swipes10SecWindow  = 10 * time.Second
	swipesMinuteWindow = time.Minute
)

type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	WindowState(ctx context.Context, key string) (int64, time.Duration, error)
}

type Limiter struct {
	store     WindowStore
	perSecond int
	per10Sec  int
	perMinute int
}

func NewLimiter(store WindowStore, perSecond, per10Sec, perMinute int) *Limiter {
	if perSecond < 0 {
		perSecond = 0
	}
	if per10Sec < 0 {
		per10Sec = 0
	}
	if perMinute < 0 {
		perMinute = 0
	}

	return &Limiter{
		store:     store,
		perSecond: perSecond,
		per10Sec:  per10Sec,
		perMinute: perMinute,
	}
}

func (l *Limiter) AllowSwipe(ctx context.Context, userID int64) (int64, bool, error) {
	if userID <= 0 {
		return 0, false, fmt.Errorf("invalid user id")
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	retryAfterSec := int64(0)

	if l.perSecond > 0 {
		count, ttl, err := l.store.IncrementWindow(ctx, secondKey(userID), swipesSecondWindow)
		if err != nil {
			return 0, false, err
		}
		if count > int64(l.perSecond) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if l.per10Sec > 0 {
		count, ttl, err := l.store.IncrementWindow(ctx, tenSecKey(userID), swipes10SecWindow)
		if err != nil {
			return 0, false, err
		}
		if count > int64(l.per10Sec) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if l.perMinute > 0 {
		count, ttl, err := l.store.IncrementWindow(ctx, minuteKey(userID), swipesMinuteWindow)
		if err != nil {
			return 0, false, err
		}
		if count > int64(l.perMinute) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	if retryAfterSec > 0 {
		return retryAfterSec, false, nil
	}

	return 0, true, nil
}

func (l *Limiter) RetryAfterSwipe(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, fmt.Errorf("invalid user id")
	}
	if l.store == nil {
		return 0, fmt.Errorf("rate limiter store is nil")
	}

	retryAfterSec := int64(0)

	windows := []struct {
		key   string
		limit int
	}{
		{secondKey(userID), l.perSecond},
		{tenSecKey(userID), l.per10Sec},
		{minuteKey(userID), l.perMinute},
	}
	for _, w := range windows {
		if w.limit <= 0 {
			continue
		}
		count, ttl, err := l.store.WindowState(ctx, w.key)
		if err != nil {
			return 0, err
		}
		if count >= int64(w.limit) {
			retryAfterSec = maxInt64(retryAfterSec, ceilSeconds(ttl))
		}
	}

	return retryAfterSec, nil
}

func secondKey(userID int64) string {
	return "rate:swipes:sec:" + strconv.FormatInt(userID, 10)
}

func tenSecKey(userID int64) string {
	return "rate:swipes:10s:" + strconv.FormatInt(userID, 10)
}

func minuteKey(userID int64) string {
	return "rate:swipes:min:" + strconv.FormatInt(userID, 10)
}

func ceilSeconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	sec := int64(d / time.Second)
	if d%time.Second != 0 {
		sec++
	}
	if sec <= 0 {
		sec = 1
	}
	return sec
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
