package rules

import (
	"errors"

	"github.com/avelasquezg/chambeaya/internal/domain/enums"
)

// ErrRoleConflict means both sides of a prospective match share the same user
// type, so no student/business assignment exists.
var ErrRoleConflict = errors.New("both users have the same type")

type RoleAssignment struct {
	StudentID  int64
	BusinessID int64
}

// AssignRoles decides which side of a pair is the student and which is the
// business. It is independent of swipe order: the same pair always produces
// the same assignment.
func AssignRoles(userAID int64, typeA enums.UserType, userBID int64, typeB enums.UserType) (RoleAssignment, error) {
	switch {
	case typeA == enums.UserTypeStudent && typeB == enums.UserTypeBusiness:
		return RoleAssignment{StudentID: userAID, BusinessID: userBID}, nil
	case typeA == enums.UserTypeBusiness && typeB == enums.UserTypeStudent:
		return RoleAssignment{StudentID: userBID, BusinessID: userAID}, nil
	default:
		return RoleAssignment{}, ErrRoleConflict
	}
}
