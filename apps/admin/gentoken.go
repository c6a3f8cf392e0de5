package main

import (
	"fmt"
	"strings"

	echoapi "github.com/trezcool/mahafali/apps/api/echo"
	"github.com/trezcool/mahafali/core"
	"github.com/trezcool/mahafali/core/scope"
)

func (cli *commandLine) genToken(id int, username, email string, dept int, rawRoles string, staff, super bool) error {
	token, err := cli.mintToken(id, username, email, dept, rawRoles, staff, super)
	if err != nil {
		return err
	}
	fmt.Println(token)
	fmt.Printf("expires in %v\n", cli.conf.Server.JWTExpirationDelta)
	return nil
}

func (cli *commandLine) mintToken(id int, username, email string, dept int, rawRoles string, staff, super bool) (string, error) {
	actor := scope.Actor{
		ID:           id,
		DepartmentID: dept,
		Username:     username,
		Email:        email,
		Roles:        splitList(rawRoles),
		IsStaff:      staff,
		IsSuperuser:  super,
	}
	return echoapi.GenerateToken(echoapi.NewClaims(actor, cli.conf), cli.conf)
}

func splitList(raw string) []string {
	var vals []string
	for _, v := range strings.Split(raw, ",") {
		if v = core.CleanString(v); v != "" {
			vals = append(vals, v)
		}
	}
	return vals
}
