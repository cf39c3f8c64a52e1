package model

import (
	"time"

	"github.com/avelasquezg/chambeaya/internal/domain/enums"
)

type Swipe struct {
	ID        int64                `json:"id"`
	SwiperID  int64                `json:"swiper_id"`
	SwipedID  int64                `json:"swiped_id"`
	Direction enums.SwipeDirection `json:"direction"`
	CreatedAt time.Time            `json:"created_at"`
}
