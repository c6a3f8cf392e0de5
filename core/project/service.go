package project

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/mahafali/core"
	"github.com/trezcool/mahafali/core/scope"
	"github.com/trezcool/mahafali/core/table"
)

// viewRequests lists the tables one materialization cycle needs.
// Narrow field sets keep the bulk payload close to what the views render.
var viewRequests = []table.Request{
	table.MustRequest(table.Projects),
	table.MustRequest(table.Groups),
	table.MustRequest(table.GroupMembers, "user", "group"),
	table.MustRequest(table.GroupSupervisors, "user", "group", "type"),
	table.MustRequest(table.Users, "id", "username", "name", "email"),
	table.MustRequest(table.AcademicAffiliations, "user_id", "department_id"),
}

type Service struct {
	fetcher table.Fetcher
	logger  core.Logger
}

func NewService(fetcher table.Fetcher, logger core.Logger) *Service {
	return &Service{fetcher: fetcher, logger: logger}
}

// Query runs one full fetch-and-materialize cycle for the actor's scope and
// applies the view filter. Each call builds a fresh row set; nothing is
// cached across cycles.
//
// An unresolved scope yields an empty list, not an error: the caller must
// never be shown another department's data. A failed bulk fetch aborts the
// cycle and is returned as a *table.FetchFailure for the transport layer to
// absorb.
func (svc *Service) Query(ctx context.Context, actor scope.Actor, filter QueryFilter) ([]View, error) {
	cycle := uuid.New().String()

	rows, err := svc.fetcher.BulkFetch(ctx, viewRequests)
	if err != nil {
		svc.logger.Error("project views: bulk fetch failed", err, map[string]interface{}{"cycle": cycle})
		return nil, errors.Wrap(err, "bulk fetching dashboard tables")
	}

	deptID, err := scope.ResolveDepartment(actor, rows.Table(table.AcademicAffiliations))
	if err != nil {
		// fail closed: no scope means no rows, never all rows
		svc.logger.Warn("project views: unresolved scope", map[string]interface{}{"cycle": cycle, "actor": actor.ID})
		return []View{}, nil
	}

	views := Materialize(rows, deptID)
	filter.Clean()
	views = filter.Apply(views)

	svc.logger.Debug("project views materialized", map[string]interface{}{
		"cycle": cycle, "department": deptID, "views": len(views),
	})
	return views, nil
}

// QuerySummary materializes the actor's scope and reduces it to counts by
// project state.
func (svc *Service) QuerySummary(ctx context.Context, actor scope.Actor) (Summary, error) {
	views, err := svc.Query(ctx, actor, QueryFilter{})
	if err != nil {
		return Summary{}, err
	}
	return Summarize(views), nil
}
