package model

type Profile struct {
	ID                   int64    `json:"id"`
	UserID               int64    `json:"user_id"`
	Bio                  string   `json:"bio"`
	Education            []string `json:"education"`
	Experience           []string `json:"experience"`
	CompletionPercentage int      `json:"completion_percentage"`
}
