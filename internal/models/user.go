package models

// Role is the single authorization dimension in the system.
type Role string

const (
	RoleCandidate Role = "CANDIDATE"
	RoleEmployer  Role = "EMPLOYER"
)

// Roles lists every known role. Redirect maps must be total over it.
var Roles = []Role{RoleCandidate, RoleEmployer}

func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleEmployer
}

// User is the session view of the authenticated user, derived 1:1 from the
// token payload and rebuilt from storage on boot.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
