package enums

import "strings"

type UserType string

const (
	UserTypeStudent  UserType = "student"
	UserTypeBusiness UserType = "business"
)

func ParseUserType(raw string) (UserType, bool) {
	switch UserType(strings.ToLower(strings.TrimSpace(raw))) {
	case UserTypeStudent:
		return UserTypeStudent, true
	case UserTypeBusiness:
		return UserTypeBusiness, true
	default:
		return "", false
	}
}

func (t UserType) Opposite() UserType {
	if t == UserTypeStudent {
		return UserTypeBusiness
	}
	return UserTypeStudent
}
