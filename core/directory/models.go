package directory

import (
	"strings"

	"github.com/trezcool/mahafali/core"
	"github.com/trezcool/mahafali/core/roles"
)

// Member is one user of the actor's department, with their role labels
// already normalized for rendering.
type Member struct {
	ID       int              `json:"id"`
	Name     string           `json:"name"`
	Username string           `json:"username"`
	Email    string           `json:"email"`
	IsActive bool             `json:"is_active"`
	Roles    []roles.Category `json:"roles"`
}

func (m Member) hasRole(cat roles.Category) bool {
	for _, r := range m.Roles {
		if r == cat {
			return true
		}
	}
	return false
}

// QueryFilter narrows the directory listing. Role must be one of the
// normalizer's categories when set.
type QueryFilter struct {
	Search string `query:"search"`
	Role   string `query:"role"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Role = core.CleanString(qf.Role, true /* lower */)
}

// Apply matches Search case-insensitively against name, username and email,
// and keeps only members holding the Role category when one is given.
// An empty filter returns the input unchanged.
func (qf QueryFilter) Apply(members []Member) []Member {
	if qf.Search == "" && qf.Role == "" {
		return members
	}
	kw := strings.ToLower(qf.Search)

	filtered := make([]Member, 0, len(members))
	for _, m := range members {
		if kw != "" &&
			!strings.Contains(strings.ToLower(m.Name), kw) &&
			!strings.Contains(strings.ToLower(m.Username), kw) &&
			!strings.Contains(strings.ToLower(m.Email), kw) {
			continue
		}
		if qf.Role != "" && !m.hasRole(roles.Category(qf.Role)) {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}
