package dto

import "github.com/avelasquezg/chambeaya/internal/domain/model"

type InterestCreateRequest struct {
	Name string `json:"name"`
}

type InterestAttachRequest struct {
	InterestID int64 `json:"interest_id"`
}

type InterestResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func MapInterests(interests []model.Interest) []InterestResponse {
	out := make([]InterestResponse, 0, len(interests))
	for _, interest := range interests {
		out = append(out, InterestResponse{ID: interest.ID, Name: interest.Name})
	}
	return out
}
