package echoapi

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/mahafali/core"
	"github.com/trezcool/mahafali/core/project"
	"github.com/trezcool/mahafali/core/table"
)

type projectApi struct {
	svc  *project.Service
	conf *core.Config
}

func registerProjectAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := projectApi{
		svc:  deps.ProjectSvc,
		conf: deps.Conf,
	}

	pg := g.Group("/dashboard/projects", jwt)
	pg.GET("", api.query)
	pg.GET("/summary", api.summary)
	pg.GET("/export", api.export)
}

// Handlers

func (api *projectApi) query(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}

	var params ListParams
	if err := ctx.Bind(&params); err != nil {
		return ctx.JSON(http.StatusOK, []project.View{})
	}
	filter := project.QueryFilter{Search: params.Search}
	filter.Clean()

	views, err := api.svc.Query(ctx.Request().Context(), actor, filter)
	if err != nil {
		if table.IsFetchFailure(err) {
			// an upstream outage renders as an empty dashboard
			return ctx.JSON(http.StatusOK, []project.View{})
		}
		return errors.Wrap(err, "querying project views")
	}
	views = params.Window(api.conf.View).Apply(views)
	if views == nil {
		views = []project.View{}
	}
	return ctx.JSON(http.StatusOK, views)
}

func (api *projectApi) summary(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}

	summary, err := api.svc.QuerySummary(ctx.Request().Context(), actor)
	if err != nil {
		if table.IsFetchFailure(err) {
			return ctx.JSON(http.StatusOK, project.Summarize(nil))
		}
		return errors.Wrap(err, "querying project summary")
	}
	return ctx.JSON(http.StatusOK, summary)
}

var exportHeader = []string{
	"project_id", "title", "type", "state", "start_date",
	"group_name", "members", "supervisor", "co_supervisor",
}

// export streams the full filtered list (no window) as CSV.
func (api *projectApi) export(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}

	var params ListParams
	_ = ctx.Bind(&params)
	filter := project.QueryFilter{Search: params.Search}
	filter.Clean()

	views, err := api.svc.Query(ctx.Request().Context(), actor, filter)
	if err != nil {
		if !table.IsFetchFailure(err) {
			return errors.Wrap(err, "querying project views")
		}
		views = nil // outage exports an empty sheet
	}

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="projects.csv"`)
	res.WriteHeader(http.StatusOK)

	w := csv.NewWriter(res)
	if err := w.Write(exportHeader); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	for _, v := range views {
		record := []string{
			strconv.Itoa(v.ID), v.Title, v.Kind, v.Status, v.StartDate,
			v.GroupName, strings.Join(v.Members, "; "), v.Supervisor, v.CoSupervisor,
		}
		if err := w.Write(record); err != nil {
			return errors.Wrap(err, "writing csv record")
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "flushing csv")
}
