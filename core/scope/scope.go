// Package scope derives the organizational boundary (a department id) that a
// dashboard screen's data must be restricted to.
package scope

import (
	"errors"

	"github.com/trezcool/mahafali/core/table"
)

// ErrUnresolvedScope means no department could be determined for the actor.
// Callers must treat this as an empty result set, never as "all departments";
// the system fails closed.
var ErrUnresolvedScope = errors.New("no department scope resolved for actor")

// Actor is the authenticated caller's identity as carried by its token
// claims. It is passed explicitly into the resolver and the view services;
// nothing reads it from ambient state.
type Actor struct {
	ID           int
	DepartmentID int // 0 when not directly known
	Name         string
	Username     string
	Email        string
	Roles        []string
	IsStaff      bool
	IsSuperuser  bool
}

// Elevated reports whether the actor holds an elevated account flag.
func (a Actor) Elevated() bool { return a.IsStaff || a.IsSuperuser }

// ResolveDepartment determines the actor's owning department.
// A directly-known department takes absolute precedence; otherwise the first
// affiliation row (in store order, not by date) whose user_id matches wins.
// Ids are numerically coerced on both sides before comparison.
func ResolveDepartment(actor Actor, affiliations []table.Row) (int, error) {
	if actor.DepartmentID != 0 {
		return actor.DepartmentID, nil
	}
	for _, aff := range affiliations {
		uid, ok := aff.Int("user_id")
		if !ok || uid != actor.ID {
			continue
		}
		if dept, ok := aff.Int("department_id"); ok {
			return dept, nil
		}
		// first match wins even when its department is unusable
		break
	}
	return 0, ErrUnresolvedScope
}
