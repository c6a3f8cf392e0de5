package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/mahafali/core/group"
	"github.com/trezcool/mahafali/core/table"
)

type groupApi struct {
	svc      *group.Service
	validate *validator.Validate
}

func registerGroupAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := groupApi{
		svc:      deps.GroupSvc,
		validate: deps.Validate,
	}

	gg := g.Group("/groups", jwt)
	gg.GET("", api.query)
	gg.POST("", api.create, staffMiddleware())
	gg.PUT("/:id", api.update, staffMiddleware())
}

// Handlers

func (api *groupApi) query(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}

	groups, err := api.svc.Query(ctx.Request().Context(), actor)
	if err != nil {
		if table.IsFetchFailure(err) {
			return ctx.JSON(http.StatusOK, []group.Group{})
		}
		return errors.Wrap(err, "querying groups")
	}
	if groups == nil {
		groups = []group.Group{}
	}
	return ctx.JSON(http.StatusOK, groups)
}

func (api *groupApi) create(ctx echo.Context) error {
	actor, err := getContextActor(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context actor")
	}

	var data group.NewGroup
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGroup")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	grp, err := api.svc.Create(ctx.Request().Context(), actor, data)
	if err != nil {
		return errors.Wrap(err, "creating group")
	}
	return ctx.JSON(http.StatusCreated, grp)
}

func (api *groupApi) update(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	grp, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		if errors.Cause(err) == group.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding group by ID")
	}

	var data group.UpdateGroup
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateGroup")
	}
	if err := data.Validate(api.validate, grp); err != nil {
		return err
	}

	grp, err = api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating group")
	}
	return ctx.JSON(http.StatusOK, grp)
}
