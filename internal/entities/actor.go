package entities

const RoleAdmin = "admin"

// Actor is the already-authenticated identity supplied by the auth
// collaborator with every request.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
