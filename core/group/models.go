package group

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/mahafali/core"
)

// Group is the upstream's student-group record as exposed by its
// single-table CRUD endpoints (not the bulk-fetch shape).
type Group struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description,omitempty"`
	Department  int         `json:"department"`
	Supervisor  null.Int    `json:"supervisor,omitempty"`
}

// NewGroup contains information needed to create a new Group.
type NewGroup struct {
	Name        string      `json:"name" validate:"required,alphanum_"`
	Description null.String `json:"description"`
	Department  int         `json:"department"`
	Supervisor  null.Int    `json:"supervisor"`
}

func (ng *NewGroup) Validate(validate *validator.Validate) error {
	ng.Name = core.CleanString(ng.Name)
	return validate.Struct(ng)
}

// UpdateGroup defines what information may be provided to modify an existing Group.
type UpdateGroup struct {
	Name        string      `json:"name" validate:"alphanum_"`
	Description null.String `json:"description"`
}

func (ug *UpdateGroup) Validate(validate *validator.Validate, origGrp Group) error {
	name := core.CleanString(ug.Name)
	if name != "" {
		ug.Name = name
	} else {
		ug.Name = origGrp.Name
	}
	if !ug.Description.Valid {
		ug.Description = origGrp.Description
	}
	return validate.Struct(ug)
}
