package echoapi

import (
	"net/http"
	"testing"

	"github.com/trezcool/mahafali/core/directory"
	"github.com/trezcool/mahafali/core/roles"
	"github.com/trezcool/mahafali/core/scope"
)

var (
	aminaMember = directory.Member{ID: 10, Name: "Amina Khalid", Username: "amina", Email: "amina@uni.edu", IsActive: true, Roles: []roles.Category{roles.Student}}
	yusufMember = directory.Member{ID: 11, Name: "Yusuf Ali", Username: "yusuf", Email: "yusuf@uni.edu", IsActive: true, Roles: []roles.Category{roles.Student}}
	omarMember  = directory.Member{ID: 20, Name: "Dr. Omar", Username: "omar", Email: "omar@uni.edu", IsActive: true, Roles: []roles.Category{roles.Supervisor}}
	linaMember  = directory.Member{ID: 21, Name: "Lina F", Username: "lina", Email: "lina@uni.edu", IsActive: true, Roles: []roles.Category{roles.CoSupervisor}}
)

func Test_directoryApi_query(t *testing.T) {
	seedTables()

	deptToken := getToken(t, scope.Actor{ID: 10, DepartmentID: 5, Username: "amina"})
	empty := marchallList(t)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/dashboard/members", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Department members, actor excluded, default window", path: "/v1/dashboard/members", token: deptToken,
			wantData: marchallList(t, yusufMember, omarMember),
		},
		{
			name: "limit grows the window", path: "/v1/dashboard/members?limit=3", token: deptToken,
			wantData: marchallList(t, yusufMember, omarMember, linaMember),
		},
		{
			name: "search", path: "/v1/dashboard/members?search=uni.edu&limit=10", token: deptToken,
			wantData: marchallList(t, yusufMember, omarMember, linaMember),
		},
		{
			name: "role filter", path: "/v1/dashboard/members?role=supervisor", token: deptToken,
			wantData: marchallList(t, omarMember),
		},
		{
			name: "role filter (co_supervisor)", path: "/v1/dashboard/members?role=co_supervisor", token: deptToken,
			wantData: marchallList(t, linaMember),
		},
		{
			name: "Scope from affiliations", path: "/v1/dashboard/members",
			token:    getToken(t, scope.Actor{ID: 20, Username: "omar"}),
			wantData: marchallList(t, aminaMember, yusufMember),
		},
		{
			name: "Unresolved scope fails closed", path: "/v1/dashboard/members",
			token: getToken(t, scope.Actor{ID: 99, Username: "ghost"}), wantData: empty,
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet
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
