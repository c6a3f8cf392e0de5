// Package directory materializes the "users of my department" screen:
// users joined to their academic affiliations, restricted to the actor's
// scope, with normalized academic roles.
package directory

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/mahafali/core"
	"github.com/trezcool/mahafali/core/project"
	"github.com/trezcool/mahafali/core/roles"
	"github.com/trezcool/mahafali/core/scope"
	"github.com/trezcool/mahafali/core/table"
)

var memberRequests = []table.Request{
	table.MustRequest(table.Users),
	table.MustRequest(table.AcademicAffiliations, "user_id", "department_id"),
}

type Service struct {
	fetcher table.Fetcher
	logger  core.Logger
}

func NewService(fetcher table.Fetcher, logger core.Logger) *Service {
	return &Service{fetcher: fetcher, logger: logger}
}

// Query lists the members of the actor's department, excluding the actor
// themselves. Users whose labels normalize to no academic category at all
// (e.g. department heads) are left out of this screen by design.
func (svc *Service) Query(ctx context.Context, actor scope.Actor, filter QueryFilter) ([]Member, error) {
	rows, err := svc.fetcher.BulkFetch(ctx, memberRequests)
	if err != nil {
		svc.logger.Error("directory: bulk fetch failed", err)
		return nil, errors.Wrap(err, "bulk fetching directory tables")
	}

	affiliations := rows.Table(table.AcademicAffiliations)
	deptID, err := scope.ResolveDepartment(actor, affiliations)
	if err != nil {
		svc.logger.Warn("directory: unresolved scope", map[string]interface{}{"actor": actor.ID})
		return []Member{}, nil
	}

	deptUserIDs := make(map[int]bool)
	for _, aff := range affiliations {
		if dept, ok := aff.Int("department_id"); ok && dept == deptID {
			if uid, ok := aff.Int("user_id"); ok {
				deptUserIDs[uid] = true
			}
		}
	}

	members := make([]Member, 0, len(deptUserIDs))
	for _, usr := range rows.Table(table.Users) {
		id, ok := usr.Int("id")
		if !ok || !deptUserIDs[id] || id == actor.ID {
			continue
		}
		cats := roles.Categories(usr.Strings("roles"))
		if len(cats) == 0 {
			continue
		}
		members = append(members, Member{
			ID:       id,
			Name:     project.DisplayName(usr),
			Username: usr.String("username"),
			Email:    usr.String("email"),
			IsActive: usr.Bool("is_active"),
			Roles:    cats,
		})
	}

	filter.Clean()
	return filter.Apply(members), nil
}
