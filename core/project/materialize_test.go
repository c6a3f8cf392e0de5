package project_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/mahafali/core/project"
	"github.com/trezcool/mahafali/core/table"
)

func fixtureRows() *table.RowSet {
	return table.NewRowSet(map[table.Name][]table.Row{
		table.Projects: {
			{"project_id": 1, "title": "Solar Tracker", "type": "hardware", "state": "in_progress", "start_date": "2025-09-01", "description": "sun tracking rig"},
			{"project_id": 3, "title": "Water Quality", "type": "software", "state": "proposed"},
		},
		table.Groups: {
			{"group_id": 1, "group_name": "Alpha", "project": 1, "department": 5},
			{"group_id": 2, "group_name": "Beta", "project": nil, "department": 5},
			{"group_id": 3, "group_name": "Gamma", "project": 3, "department": 9},
		},
		table.GroupMembers: {
			{"user": 10, "group": 1},
			{"user": 11, "group": 1},
			{"user": 99, "group": 1}, // dangling user ref
			{"user": 12, "group": 3},
		},
		table.GroupSupervisors: {
			{"user": 20, "group": 1, "type": "Supervisor"},
			{"user": 21, "group": 1, "type": "Co-Supervisor"},
			{"user": 22, "group": 3, "type": "Supervisor"},
		},
		table.Users: {
			{"id": 10, "name": "Amina Khalid", "username": "amina"},
			{"id": 11, "name": "", "first_name": "Yusuf", "last_name": "Ali", "username": "yusuf"},
			{"id": 12, "name": "Sara Noor", "username": "sara"},
			{"id": 20, "name": "Dr. Omar", "username": "omar"},
			{"id": 21, "username": "lina"},
			{"id": 22, "name": "Dr. Huda", "username": "huda"},
		},
	})
}

func TestMaterialize(t *testing.T) {
	views := Materialize(fixtureRows(), 5)
	require.Len(t, views, 1) // only the project reachable through a dept-5 group

	v := views[0]
	assert.Equal(t, 1, v.ID)
	assert.Equal(t, "Solar Tracker", v.Title)
	assert.Equal(t, "hardware", v.Kind)
	assert.Equal(t, "in_progress", v.Status)
	assert.Equal(t, "2025-09-01", v.StartDate)
	assert.Equal(t, "Alpha", v.GroupName)
	assert.Equal(t, []string{"Amina Khalid", "Yusuf Ali"}, v.Members) // dangling ref dropped
	assert.Equal(t, []string{"Dr. Omar", "lina"}, v.Supervisors)
	assert.Equal(t, "Dr. Omar", v.Supervisor)
	assert.Equal(t, "lina", v.CoSupervisor)
}

func TestMaterialize_otherScope(t *testing.T) {
	views := Materialize(fixtureRows(), 9)
	require.Len(t, views, 1)
	assert.Equal(t, 3, views[0].ID)
	assert.Equal(t, "Gamma", views[0].GroupName)
	assert.Equal(t, []string{"Sara Noor"}, views[0].Members)
	assert.Equal(t, "Dr. Huda", views[0].Supervisor)
	assert.Empty(t, views[0].CoSupervisor)
}

func TestMaterialize_emptyScope(t *testing.T) {
	views := Materialize(fixtureRows(), 42)
	assert.Empty(t, views)
}

// ids that arrive as strings on one side and numbers on the other must
// still join
func TestMaterialize_coercedIDs(t *testing.T) {
	rows := table.NewRowSet(map[table.Name][]table.Row{
		table.Projects:     {{"project_id": "1", "title": "Solar Tracker", "state": "in_progress"}},
		table.Groups:       {{"group_id": float64(1), "group_name": "Alpha", "project": 1, "department": "5"}},
		table.GroupMembers: {{"user": "10", "group": 1}},
		table.Users:        {{"id": 10, "name": "Amina Khalid"}},
	})

	views := Materialize(rows, 5)
	require.Len(t, views, 1)
	assert.Equal(t, []string{"Amina Khalid"}, views[0].Members)
}

// the first scoped group referencing a project wins when several do
func TestMaterialize_firstGroupWins(t *testing.T) {
	rows := table.NewRowSet(map[table.Name][]table.Row{
		table.Projects: {{"project_id": 1, "title": "Solar Tracker"}},
		table.Groups: {
			{"group_id": 1, "group_name": "Alpha", "project": 1, "department": 5},
			{"group_id": 2, "group_name": "Beta", "project": 1, "department": 5},
		},
	})

	views := Materialize(rows, 5)
	require.Len(t, views, 1)
	assert.Equal(t, "Alpha", views[0].GroupName)
}

func TestMaterialize_unnamedGroup(t *testing.T) {
	rows := table.NewRowSet(map[table.Name][]table.Row{
		table.Projects: {{"project_id": 1, "title": "Solar Tracker"}},
		table.Groups:   {{"group_id": 1, "group_name": "  ", "project": 1, "department": 5}},
	})

	views := Materialize(rows, 5)
	require.Len(t, views, 1)
	assert.Equal(t, UnspecifiedGroup, views[0].GroupName)
	assert.Empty(t, views[0].Members)
	assert.Empty(t, views[0].Supervisors)
}

// a member whose user row exists but carries no name at all is kept with
// an empty name; only dangling refs are dropped
func TestMaterialize_namelessMemberKept(t *testing.T) {
	rows := table.NewRowSet(map[table.Name][]table.Row{
		table.Projects: {{"project_id": 1, "title": "Solar Tracker"}},
		table.Groups:   {{"group_id": 1, "group_name": "Alpha", "project": 1, "department": 5}},
		table.GroupMembers: {
			{"user": 10, "group": 1},
			{"user": 11, "group": 1},
			{"user": 99, "group": 1}, // dangling user ref
		},
		table.Users: {
			{"id": 10, "name": "Amina Said"},
			{"id": 11, "name": "  ", "first_name": "", "username": ""},
		},
	})

	views := Materialize(rows, 5)
	require.Len(t, views, 1)
	assert.Equal(t, []string{"Amina Said", ""}, views[0].Members)
}

// identical inputs always yield structurally identical output; the join
// never mutates its input rows
func TestMaterialize_idempotent(t *testing.T) {
	rows := fixtureRows()
	first := Materialize(rows, 5)
	second := Materialize(rows, 5)
	assert.Equal(t, first, second)
	assert.Equal(t, Materialize(fixtureRows(), 5), first)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Amina Khalid", DisplayName(table.Row{"name": "Amina Khalid", "username": "amina"}))
	assert.Equal(t, "Yusuf Ali", DisplayName(table.Row{"first_name": "Yusuf", "last_name": "Ali", "username": "yusuf"}))
	assert.Equal(t, "Yusuf", DisplayName(table.Row{"first_name": "Yusuf"}))
	assert.Equal(t, "amina", DisplayName(table.Row{"name": " ", "username": "amina"}))
	assert.Equal(t, "", DisplayName(table.Row{}))
}
