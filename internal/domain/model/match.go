package model

import (
	"time"

	"github.com/avelasquezg/chambeaya/internal/domain/enums"
)

// Match joins exactly one student and one business. At most one row exists per
// {student_id, business_id} pair over the lifetime of the system.
type Match struct {
	ID         int64             `json:"id"`
	StudentID  int64             `json:"student_id"`
	BusinessID int64             `json:"business_id"`
	Status     enums.MatchStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}
