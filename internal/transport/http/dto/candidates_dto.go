package dto

import candidatessvc "github.com/avelasquezg/chambeaya/internal/services/candidates"

type CandidateResponse struct {
	User      UserResponse       `json:"user"`
	Profile   ProfileResponse    `json:"profile"`
	Interests []InterestResponse `json:"interests"`
}

func MapCandidates(candidates []candidatessvc.Candidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(candidates))
	for _, candidate := range candidates {
		out = append(out, CandidateResponse{
			User:      MapUser(candidate.User),
			Profile:   MapProfile(candidate.Profile),
			Interests: MapInterests(candidate.Interests),
		})
	}
	return out
}
