package table

import "github.com/pkg/errors"

// Name identifies a flat table served by the upstream bulk-fetch endpoint.
type Name string

const (
	Projects             Name = "projects"
	Groups               Name = "groups"
	GroupMembers         Name = "group_members"
	GroupSupervisors     Name = "group_supervisors"
	Users                Name = "users"
	AcademicAffiliations Name = "academic_affiliations"
	Colleges             Name = "colleges"
	Departments          Name = "departments"
	Universities         Name = "universities"
)

type (
	// Spec declares a table's primary-key column and its default field set.
	// Callers may request a narrower field subset; over-fetching is allowed
	// but discouraged.
	Spec struct {
		PK     string
		Fields []string
	}

	// Request asks the upstream for a set of fields of one table.
	Request struct {
		Table  Name     `json:"table"`
		Fields []string `json:"fields"`
	}
)

// Registry is the closed set of tables the upstream serves.
// Field names mirror the upstream's column names; note the inconsistent
// primary keys (project_id, group_id, cid, uid...) inherited from its schema.
var Registry = map[Name]Spec{
	Projects:             {PK: "project_id", Fields: []string{"project_id", "title", "type", "state", "start_date", "description"}},
	Groups:               {PK: "group_id", Fields: []string{"group_id", "group_name", "project", "department", "program", "academic_year"}},
	GroupMembers:         {PK: "id", Fields: []string{"id", "user", "group"}},
	GroupSupervisors:     {PK: "id", Fields: []string{"id", "user", "group", "type"}},
	Users:                {PK: "id", Fields: []string{"id", "username", "name", "email", "is_active", "is_staff", "is_superuser", "roles"}},
	AcademicAffiliations: {PK: "affiliation_id", Fields: []string{"affiliation_id", "user_id", "university_id", "college_id", "department_id", "start_date", "end_date"}},
	Colleges:             {PK: "cid", Fields: []string{"cid", "name_ar", "branch"}},
	Departments:          {PK: "department_id", Fields: []string{"department_id", "name", "college"}},
	Universities:         {PK: "uid", Fields: []string{"uid", "uname_ar"}},
}

// NewRequest builds a Request for `name` with its default field set.
func NewRequest(name Name, fields ...string) (Request, error) {
	spec, ok := Registry[name]
	if !ok {
		return Request{}, errors.Errorf("unknown table %q", name)
	}
	if len(fields) == 0 {
		fields = spec.Fields
	}
	return Request{Table: name, Fields: fields}, nil
}

// MustRequest is NewRequest for statically-known table names.
func MustRequest(name Name, fields ...string) Request {
	req, err := NewRequest(name, fields...)
	if err != nil {
		panic(err)
	}
	return req
}
