package main

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	echoapi "github.com/trezcool/mahafali/apps/api/echo"
	"github.com/trezcool/mahafali/core"
	"github.com/trezcool/mahafali/core/table"
	fakeupstream "github.com/trezcool/mahafali/storage/upstream/fake"
)

func setup(t *testing.T) (*commandLine, *fakeupstream.Fetcher) {
	t.Helper()

	conf := &core.Config{
		AppName:   "Mahafali",
		SecretKey: "sesame",
	}
	conf.Server.JWTExpirationDelta = time.Hour

	fetcher := fakeupstream.NewFetcher()
	cli := &commandLine{
		conf:    conf,
		fetcher: fetcher,
	}
	return cli, fetcher
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
}

func Test_commandLine_genToken(t *testing.T) {
	cli, _ := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"gentoken"}, wantErr: errHelp},
		{name: "minted", args: []string{"gentoken", "-user", "20"}},
		{name: "full identity", args: []string{"gentoken", "-user", "20", "-username", "omar", "-email", "omar@uni.edu", "-dept", "5", "-roles", "Supervisor, Head", "-staff"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_genToken_claims(t *testing.T) {
	cli, _ := setup(t)

	minted, err := cli.mintToken(20, "omar", "omar@uni.edu", 5, "Supervisor,مشرف مساعد", true, false)
	if err != nil {
		t.Fatalf("mintToken(): %v", err)
	}

	// the minted token must verify with the configured key
	token, err := jwt.ParseWithClaims(
		minted, new(echoapi.Claims),
		func(token *jwt.Token) (interface{}, error) { return []byte(cli.conf.SecretKey), nil },
	)
	if err != nil {
		t.Fatalf("ParseWithClaims(): %v", err)
	}
	claims := token.Claims.(*echoapi.Claims)
	if claims.Subject != "20" || claims.Username != "omar" || claims.DepartmentID != 5 || !claims.IsStaff {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if len(claims.Roles) != 2 {
		t.Errorf("roles = %v; want 2 labels", claims.Roles)
	}
}

func Test_commandLine_fetch(t *testing.T) {
	cli, fetcher := setup(t)
	fetcher.SetTable(table.Projects, []table.Row{{"project_id": 1, "title": "Solar Tracker"}})

	tests := []cliTest{
		{name: "no args", args: []string{"fetch"}, wantErr: errHelp},
		{name: "known table", args: []string{"fetch", "-table", "projects"}},
		{name: "narrowed fields", args: []string{"fetch", "-table", "projects", "-fields", "project_id, title"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if err := cli.fetch("lol", ""); err == nil {
		t.Error("fetch() expected an unknown-table error")
	}
}
