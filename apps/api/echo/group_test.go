package echoapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/mahafali/core/group"
	"github.com/trezcool/mahafali/core/scope"
)

func seedGroups(t *testing.T) (alpha, gamma group.Group) {
	t.Helper()
	seedTables()
	groupRepo.Reset()
	mailSvc.messages = nil

	var err error
	if alpha, err = groupRepo.CreateGroup(context.Background(), group.Group{Name: "Alpha", Department: 5, Supervisor: null.IntFrom(20)}); err != nil {
		t.Fatalf("seeding groups: %v", err)
	}
	if gamma, err = groupRepo.CreateGroup(context.Background(), group.Group{Name: "Gamma", Department: 9}); err != nil {
		t.Fatalf("seeding groups: %v", err)
	}
	return alpha, gamma
}

func Test_groupApi_query(t *testing.T) {
	alpha, gamma := seedGroups(t)
	empty := marchallList(t)

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name:     "Scoped to department",
			token:    getToken(t, scope.Actor{ID: 20, DepartmentID: 5, Username: "omar"}),
			wantData: marchallList(t, alpha),
		},
		{
			name:     "Scope from affiliations",
			token:    getToken(t, scope.Actor{ID: 12, Username: "sara"}),
			wantData: marchallList(t, gamma),
		},
		{
			name:     "Unresolved scope fails closed",
			token:    getToken(t, scope.Actor{ID: 99, Username: "ghost"}),
			wantData: empty,
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
		tt.path = "/v1/groups"
		if tt.wantCode == 0 {
			tt.wantCode = http.StatusOK
		}

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_groupApi_create(t *testing.T) {
	seedGroups(t)

	staffToken := getToken(t, scope.Actor{ID: 20, DepartmentID: 5, Username: "omar", IsStaff: true})

	tests := []httpTest{
		{name: "Auth required", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Staff required", token: getToken(t, scope.Actor{ID: 10, DepartmentID: 5, Username: "amina"}),
			body:     marchallObj(t, group.NewGroup{Name: "Delta"}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Name required", token: staffToken,
			body:     marchallObj(t, group.NewGroup{Name: "  "}),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"name": "this field is required"}),
		},
		{
			name: "Name characters checked", token: staffToken,
			body:     marchallObj(t, group.NewGroup{Name: "Delta!?"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "only alphanumeric characters, spaces and underscores are allowed"}),
		},
		{
			name: "Created with defaults", token: staffToken,
			body:     marchallObj(t, group.NewGroup{Name: "Delta"}),
			wantCode: http.StatusCreated,
			wantData: marchallObj(t, group.Group{ID: 3, Name: "Delta", Department: 5, Supervisor: null.IntFrom(20)}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/groups"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// the defaulted supervisor got their invitation
	if len(mailSvc.messages) != 1 {
		t.Fatalf("got %d invitations; want 1", len(mailSvc.messages))
	}
	msg := mailSvc.messages[0]
	if len(msg.To) != 1 || msg.To[0].Address != "omar@uni.edu" {
		t.Errorf("unexpected invitation recipient: %v", msg.To)
	}
}

func Test_groupApi_update(t *testing.T) {
	alpha, _ := seedGroups(t)

	staffToken := getToken(t, scope.Actor{ID: 20, DepartmentID: 5, Username: "omar", IsStaff: true})

	renamed := alpha
	renamed.Name = "Alpha Prime"
	renamed.Description = null.StringFrom("renamed")

	tests := []httpTest{
		{name: "Auth required", path: "/v1/groups/1", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Staff required", path: "/v1/groups/1",
			token:    getToken(t, scope.Actor{ID: 10, DepartmentID: 5, Username: "amina"}),
			body:     marchallObj(t, group.UpdateGroup{Name: "lol"}),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{
			name: "Not found", path: "/v1/groups/99", token: staffToken,
			body:     marchallObj(t, group.UpdateGroup{Name: "lol"}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "Non-numeric id", path: "/v1/groups/lol", token: staffToken,
			body:     marchallObj(t, group.UpdateGroup{Name: "lol"}),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name: "Renamed", path: "/v1/groups/1", token: staffToken,
			body:     marchallObj(t, group.UpdateGroup{Name: "Alpha Prime", Description: null.StringFrom("renamed")}),
			wantCode: http.StatusOK, wantData: marchallObj(t, renamed),
		},
		{
			name: "Blank fields keep current values", path: "/v1/groups/1", token: staffToken,
			body:     marchallObj(t, group.UpdateGroup{}),
			wantCode: http.StatusOK, wantData: marchallObj(t, renamed),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPut

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
