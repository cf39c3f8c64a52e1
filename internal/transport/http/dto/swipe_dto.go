package dto

import (
	"time"

	"github.com/avelasquezg/chambeaya/internal/domain/model"
)

type SwipeRequest struct {
	SwipedID  int64  `json:"swiped_id"`
	Direction string `json:"direction"`
}

type SwipeResponse struct {
	ID        int64     `json:"id"`
	SwiperID  int64     `json:"swiper_id"`
	SwipedID  int64     `json:"swiped_id"`
	Direction string    `json:"direction"`
	CreatedAt time.Time `json:"created_at"`
}

type SwipeResultResponse struct {
	Swipe   SwipeResponse  `json:"swipe"`
	Matched bool           `json:"matched"`
	Match   *MatchResponse `json:"match,omitempty"`
}

func MapSwipe(swipe model.Swipe) SwipeResponse {
	return SwipeResponse{
		ID:        swipe.ID,
		SwiperID:  swipe.SwiperID,
		SwipedID:  swipe.SwipedID,
		Direction: string(swipe.Direction),
		CreatedAt: swipe.CreatedAt,
	}
}
