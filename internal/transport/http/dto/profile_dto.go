package dto

import "github.com/avelasquezg/chambeaya/internal/domain/model"

type ProfileUpdateRequest struct {
	Bio        string   `json:"bio"`
	Education  []string `json:"education"`
	Experience []string `json:"experience"`
}

type ProfileResponse struct {
	ID                   int64    `json:"id"`
	UserID               int64    `json:"user_id"`
	Bio                  string   `json:"bio"`
	Education            []string `json:"education"`
	Experience           []string `json:"experience"`
	CompletionPercentage int      `json:"completion_percentage"`
}

func MapProfile(profile model.Profile) ProfileResponse {
	education := profile.Education
	if education == nil {
		education = []string{}
	}
	experience := profile.Experience
	if experience == nil {
		experience = []string{}
	}
	return ProfileResponse{
		ID:                   profile.ID,
		UserID:               profile.UserID,
		Bio:                  profile.Bio,
		Education:            education,
		Experience:           experience,
		CompletionPercentage: profile.CompletionPercentage,
	}
}
