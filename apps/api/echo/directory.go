package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/mahafali/core"
	"github.com/trezcool/mahafali/core/directory"
	"github.com/trezcool/mahafali/core/table"
)

type directoryApi struct {
	svc  *directory.Service
	conf *core.Config
}

func registerDirectoryAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := directoryApi{
		svc:  deps.DirectorySvc,
		conf: deps.Conf,
	}

	g.GET("/dashboard/members", api.query, jwt)
}

func (api *directoryApi) query(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}

	var params ListParams
	if err := ctx.Bind(&params); err != nil {
		return ctx.JSON(http.StatusOK, []directory.Member{})
	}
	filter := directory.QueryFilter{Search: params.Search, Role: params.Role}
	filter.Clean()

	members, err := api.svc.Query(ctx.Request().Context(), actor, filter)
	if err != nil {
		if table.IsFetchFailure(err) {
			return ctx.JSON(http.StatusOK, []directory.Member{})
		}
		return errors.Wrap(err, "querying department members")
	}
	w := params.Window(api.conf.View)
	members = members[:w.Bound(len(members))]
	if members == nil {
		members = []directory.Member{}
	}
	return ctx.JSON(http.StatusOK, members)
}
