package dto

import (
	"time"

	"github.com/avelasquezg/chambeaya/internal/domain/model"
	matchessvc "github.com/avelasquezg/chambeaya/internal/services/matches"
)

type MatchResponse struct {
	ID         int64     `json:"id"`
	StudentID  int64     `json:"student_id"`
	BusinessID int64     `json:"business_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type MatchCounterpartResponse struct {
	UserID               int64  `json:"user_id"`
	Username             string `json:"username"`
	FullName             string `json:"full_name"`
	UserType             string `json:"user_type"`
	ProfilePic           string `json:"profile_pic,omitempty"`
	Bio                  string `json:"bio,omitempty"`
	CompletionPercentage int    `json:"completion_percentage"`
}

type MatchViewResponse struct {
	Match     MatchResponse            `json:"match"`
	OtherUser MatchCounterpartResponse `json:"other_user"`
}

type MatchStatusUpdateRequest struct {
	Status string `json:"status"`
}

func MapMatch(match model.Match) MatchResponse {
	return MatchResponse{
		ID:         match.ID,
		StudentID:  match.StudentID,
		BusinessID: match.BusinessID,
		Status:     string(match.Status),
		CreatedAt:  match.CreatedAt,
	}
}

func MapMatchViews(views []matchessvc.MatchView) []MatchViewResponse {
	out := make([]MatchViewResponse, 0, len(views))
	for _, view := range views {
		out = append(out, MatchViewResponse{
			Match: MapMatch(view.Match),
			OtherUser: MatchCounterpartResponse{
				UserID:               view.OtherUser.UserID,
				Username:             view.OtherUser.Username,
				FullName:             view.OtherUser.FullName,
				UserType:             string(view.OtherUser.UserType),
				ProfilePic:           view.OtherUser.ProfilePic,
				Bio:                  view.OtherUser.Bio,
				CompletionPercentage: view.OtherUser.Completion,
			},
		})
	}
	return out
}
