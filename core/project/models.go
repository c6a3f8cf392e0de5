package project

import (
	"strings"

	"github.com/trezcool/mahafali/core"
)

// UnspecifiedGroup is rendered when a project's group carries no usable name.
const UnspecifiedGroup = "unspecified"

// View is one denormalized project entity: the project's own fields plus the
// group, member and supervisor data reachable from it. Views are immutable
// once produced; JSON keys mirror the upstream column names so the list
// stays a flat, export-friendly record array.
type View struct {
	ID           int      `json:"project_id"`
	Title        string   `json:"title"`
	Kind         string   `json:"type"`
	Status       string   `json:"state"`
	StartDate    string   `json:"start_date"`
	Description  string   `json:"description"`
	GroupName    string   `json:"group_name"`
	Members      []string `json:"members"`
	Supervisors  []string `json:"supervisors"`
	Supervisor   string   `json:"supervisor,omitempty"`
	CoSupervisor string   `json:"co_supervisor,omitempty"`
}

// QueryFilter narrows a materialized view list.
type QueryFilter struct {
	Search string `query:"search"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// Apply does a case-insensitive substring match of Search against each
// view's title, group name and people names. An empty query returns the
// input unchanged: same elements, same order.
func (qf QueryFilter) Apply(views []View) []View {
	if qf.Search == "" {
		return views
	}
	kw := strings.ToLower(qf.Search)

	filtered := make([]View, 0, len(views))
	for _, v := range views {
		if v.matches(kw) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

func (v View) matches(kw string) bool {
	if strings.Contains(strings.ToLower(v.Title), kw) ||
		strings.Contains(strings.ToLower(v.GroupName), kw) {
		return true
	}
	for _, name := range v.Members {
		if strings.Contains(strings.ToLower(name), kw) {
			return true
		}
	}
	for _, name := range v.Supervisors {
		if strings.Contains(strings.ToLower(name), kw) {
			return true
		}
	}
	return false
}

// Window is the incremental "visible rows" slice of a filtered list.
// It only ever grows within a session ("load more"), never shrinks, and
// imposes no ordering of its own beyond the engine's emission order.
type Window struct {
	size int
}

func NewWindow(size int) Window {
	if size < 0 {
		size = 0
	}
	return Window{size: size}
}

func (w Window) Size() int { return w.size }

// Grow widens the window by `increment`; non-positive increments are no-ops.
func (w Window) Grow(increment int) Window {
	if increment > 0 {
		w.size += increment
	}
	return w
}

// Bound caps a list length at the window size. Slices of any element
// type cut themselves with it; Apply is the view-list shorthand.
func (w Window) Bound(n int) int {
	if n <= w.size {
		return n
	}
	return w.size
}

// Apply returns the first Size views of the list.
func (w Window) Apply(views []View) []View {
	return views[:w.Bound(len(views))]
}

// Summary counts a view list by project status; it feeds the report
// screen's stat cards.
type Summary struct {
	Total   int            `json:"total"`
	ByState map[string]int `json:"by_state"`
}

func Summarize(views []View) Summary {
	sum := Summary{Total: len(views), ByState: make(map[string]int)}
	for _, v := range views {
		sum.ByState[v.Status]++
	}
	return sum
}
