package group

import (
	"context"
	"errors"
	"net/mail"

	pkgerrors "github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/mahafali/core"
	"github.com/trezcool/mahafali/core/project"
	"github.com/trezcool/mahafali/core/scope"
	"github.com/trezcool/mahafali/core/table"
)

var ErrNotFound = errors.New("group not found")

type (
	// Repository is the upstream's single-table CRUD surface for groups.
	Repository interface {
		ListGroups(ctx context.Context) ([]Group, error)
		GetGroup(ctx context.Context, id int) (Group, error)
		CreateGroup(ctx context.Context, grp Group) (Group, error)
		UpdateGroup(ctx context.Context, grp Group) (Group, error)
	}

	Service struct {
		repo    Repository
		fetcher table.Fetcher
		mailSvc core.EmailService
		logger  core.Logger
	}
)

func NewService(repo Repository, fetcher table.Fetcher, mailSvc core.EmailService, logger core.Logger) *Service {
	return &Service{repo: repo, fetcher: fetcher, mailSvc: mailSvc, logger: logger}
}

// Query lists the groups of the actor's department. Listing is scoped the
// same way the materialized views are: unresolved scope means an empty
// list, never every department's groups.
func (svc *Service) Query(ctx context.Context, actor scope.Actor) ([]Group, error) {
	deptID, err := svc.resolveScope(ctx, actor)
	if err != nil {
		return []Group{}, nil
	}

	groups, err := svc.repo.ListGroups(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "listing groups")
	}

	scoped := make([]Group, 0, len(groups))
	for _, grp := range groups {
		if grp.Department == deptID {
			scoped = append(scoped, grp)
		}
	}
	return scoped, nil
}

// Create registers a new group in the actor's department. The actor becomes
// the default supervisor when none is given, and the (possibly different)
// supervisor is invited by email.
func (svc *Service) Create(ctx context.Context, actor scope.Actor, ng NewGroup) (Group, error) {
	grp := Group{
		Name:        ng.Name,
		Description: ng.Description,
		Department:  ng.Department,
		Supervisor:  ng.Supervisor,
	}
	if grp.Department == 0 {
		deptID, err := svc.resolveScope(ctx, actor)
		if err != nil {
			return Group{}, core.NewValidationError(err, core.FieldError{Field: "department", Error: "no department could be determined"})
		}
		grp.Department = deptID
	}
	if !grp.Supervisor.Valid {
		grp.Supervisor = null.IntFrom(actor.ID)
	}

	grp, err := svc.repo.CreateGroup(ctx, grp)
	if err != nil {
		return Group{}, pkgerrors.Wrap(err, "creating group")
	}
	svc.inviteSupervisor(ctx, grp)
	return grp, nil
}

func (svc *Service) Get(ctx context.Context, id int) (Group, error) {
	return svc.repo.GetGroup(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, ug UpdateGroup) (Group, error) {
	grp, err := svc.repo.GetGroup(ctx, id)
	if err != nil {
		return Group{}, err
	}
	grp.Name = ug.Name
	grp.Description = ug.Description
	return svc.repo.UpdateGroup(ctx, grp)
}

func (svc *Service) resolveScope(ctx context.Context, actor scope.Actor) (int, error) {
	if actor.DepartmentID != 0 {
		return actor.DepartmentID, nil
	}
	req := table.MustRequest(table.AcademicAffiliations, "user_id", "department_id")
	rows, err := svc.fetcher.BulkFetch(ctx, []table.Request{req})
	if err != nil {
		svc.logger.Error("groups: affiliations fetch failed", err)
		return 0, scope.ErrUnresolvedScope
	}
	return scope.ResolveDepartment(actor, rows.Table(table.AcademicAffiliations))
}

// inviteSupervisor emails the assigned supervisor about the new group.
// Invitations are best effort; a missing user row or email just skips it.
func (svc *Service) inviteSupervisor(ctx context.Context, grp Group) {
	if !grp.Supervisor.Valid {
		return
	}
	req := table.MustRequest(table.Users, "id", "name", "username", "email")
	rows, err := svc.fetcher.BulkFetch(ctx, []table.Request{req})
	if err != nil {
		svc.logger.Warn("groups: invitation skipped, users fetch failed", err)
		return
	}

	for _, usr := range rows.Table(table.Users) {
		id, ok := usr.Int("id")
		if !ok || id != grp.Supervisor.Int {
			continue
		}
		email := core.CleanString(usr.String("email"), true /* lower */)
		if email == "" {
			return
		}
		svc.mailSvc.SendMessages(&core.EmailMessage{
			To:           []mail.Address{{Name: project.DisplayName(usr), Address: email}},
			Subject:      "New group assignment",
			TemplateName: core.GroupInvitationTemplate,
			TemplateData: map[string]interface{}{
				"SupervisorName": project.DisplayName(usr),
				"GroupName":      grp.Name,
			},
		})
		return
	}
}
