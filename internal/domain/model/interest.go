package model

type Interest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
