package echoapi

import (
	"github.com/trezcool/mahafali/core"
	"github.com/trezcool/mahafali/core/project"
)

// ListParams are the query parameters shared by the dashboard list endpoints.
type ListParams struct {
	Search string `query:"search"`
	Role   string `query:"role"`
	Limit  int    `query:"limit"`
}

// Window maps the requested limit onto the stepped "load more" sizes: the
// window starts at the configured size and widens by whole increments until
// it covers the limit. A missing or non-positive limit keeps the default.
func (lp ListParams) Window(conf core.ViewConfig) project.Window {
	w := project.NewWindow(conf.WindowSize)
	if conf.WindowIncrement <= 0 {
		return w
	}
	for w.Size() < lp.Limit {
		w = w.Grow(conf.WindowIncrement)
	}
	return w
}
