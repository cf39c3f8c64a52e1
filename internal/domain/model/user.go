package model

import (
	"time"

	"github.com/avelasquezg/chambeaya/internal/domain/enums"
)

type User struct {
	ID         int64          `json:"id"`
	Username   string         `json:"username"`
	Email      string         `json:"email"`
	FullName   string         `json:"full_name"`
	UserType   enums.UserType `json:"user_type"`
	ProfilePic string         `json:"profile_pic,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
