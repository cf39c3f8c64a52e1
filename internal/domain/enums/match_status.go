package enums

import "strings"

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusAccepted MatchStatus = "accepted"
	MatchStatusRejected MatchStatus = "rejected"
)

func ParseMatchStatus(raw string) (MatchStatus, bool) {
	switch MatchStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case MatchStatusPending:
		return MatchStatusPending, true
	case MatchStatusAccepted:
		return MatchStatusAccepted, true
	case MatchStatusRejected:
		return MatchStatusRejected, true
	default:
		return "", false
	}
}
