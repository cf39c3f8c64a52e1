package dto

import (
	"time"

	"github.com/avelasquezg/chambeaya/internal/domain/model"
)

type UserResponse struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	UserType   string    `json:"user_type"`
	ProfilePic string    `json:"profile_pic,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type UserWithProfileResponse struct {
	User    UserResponse    `json:"user"`
	Profile ProfileResponse `json:"profile"`
}

func MapUser(user model.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		UserType:   string(user.UserType),
		ProfilePic: user.ProfilePic,
		CreatedAt:  user.CreatedAt,
	}
}
