package domain

// Role is the closed enumeration of caller roles.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Identity is the authenticated principal reconstructed from a verified token.
// Name and Email are carried for convenience and never drive authorization
// decisions.
type Identity struct {
	SubjectID string
	Role      Role
	Name      string
	Email     string
}
