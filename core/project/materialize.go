package project

import (
	"strings"

	"github.com/trezcool/mahafali/core"
	"github.com/trezcool/mahafali/core/roles"
	"github.com/trezcool/mahafali/core/table"
)

// Materialize joins the flat tables of one fetch cycle into the denormalized
// project views of the given department scope.
//
// The scope bounds the join's cost: groups are filtered to the department
// first, and only projects reachable through a scoped group are considered.
// A project with no group in scope is excluded outright, never rendered with
// empty fields. The function reads and projects only; input rows are never
// mutated, so identical inputs always yield structurally identical output.
func Materialize(rows *table.RowSet, deptID int) []View {
	var scopedGroups []table.Row
	scopedProjectIDs := make(map[int]bool)
	for _, g := range rows.Table(table.Groups) {
		dept, ok := g.Int("department")
		if !ok || dept != deptID {
			continue
		}
		scopedGroups = append(scopedGroups, g)
		// a group may reference no project; it still participates in
		// scoping but yields no view
		if pid, ok := g.Int("project"); ok {
			scopedProjectIDs[pid] = true
		}
	}

	usersByID := make(map[int]table.Row)
	for _, u := range rows.Table(table.Users) {
		if id, ok := u.Int("id"); ok {
			if _, seen := usersByID[id]; !seen {
				usersByID[id] = u
			}
		}
	}

	memberships := rows.Table(table.GroupMembers)
	supervisions := rows.Table(table.GroupSupervisors)

	views := make([]View, 0, len(scopedProjectIDs))
	for _, p := range rows.Table(table.Projects) {
		pid, ok := p.Int("project_id")
		if !ok || !scopedProjectIDs[pid] {
			continue
		}

		// first scoped group referencing the project wins when several do
		var grp table.Row
		for _, g := range scopedGroups {
			if ref, ok := g.Int("project"); ok && ref == pid {
				grp = g
				break
			}
		}

		v := View{
			ID:          pid,
			Title:       p.String("title"),
			Kind:        p.String("type"),
			Status:      p.String("state"),
			StartDate:   p.String("start_date"),
			Description: p.String("description"),
			GroupName:   UnspecifiedGroup,
			Members:     []string{},
			Supervisors: []string{},
		}
		if grp == nil {
			views = append(views, v)
			continue
		}

		if name := core.CleanString(grp.String("group_name")); name != "" {
			v.GroupName = name
		}
		gid, ok := grp.Int("group_id")
		if !ok {
			views = append(views, v)
			continue
		}

		for _, m := range memberships {
			if name, ok := resolveName(m, gid, usersByID); ok {
				v.Members = append(v.Members, name)
			}
		}
		for _, s := range supervisions {
			name, ok := resolveName(s, gid, usersByID)
			if !ok {
				continue
			}
			v.Supervisors = append(v.Supervisors, name)
			switch cat, _ := roles.Normalize(s.String("type")); cat {
			case roles.Supervisor:
				if v.Supervisor == "" {
					v.Supervisor = name
				}
			case roles.CoSupervisor:
				if v.CoSupervisor == "" {
					v.CoSupervisor = name
				}
			}
		}
		views = append(views, v)
	}
	return views
}

// resolveName follows an edge row's user ref for the given group.
// Edges of other groups and edges with a dangling user ref report !ok;
// dangling refs are dropped silently, never rendered as a placeholder.
// A user row with every name field blank still counts, with an empty name.
func resolveName(edge table.Row, gid int, usersByID map[int]table.Row) (string, bool) {
	ref, ok := edge.Int("group")
	if !ok || ref != gid {
		return "", false
	}
	uid, ok := edge.Int("user")
	if !ok {
		return "", false
	}
	usr, ok := usersByID[uid]
	if !ok {
		return "", false
	}
	return DisplayName(usr), true
}

// DisplayName picks a user row's renderable name: `name`, else first+last
// name, else username.
func DisplayName(usr table.Row) string {
	if name := core.CleanString(usr.String("name")); name != "" {
		return name
	}
	full := strings.TrimSpace(usr.String("first_name") + " " + usr.String("last_name"))
	if full != "" {
		return full
	}
	return core.CleanString(usr.String("username"))
}
