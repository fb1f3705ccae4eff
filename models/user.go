package models

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Banned bool   `json:"banned,omitempty"`
}

const RoleAdmin = "admin"

// Session is the externally supplied user-session shape. The repository never
// sees it; handlers use it only to decide which surface to expose.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the session belongs to the admin role.
func IsAdmin(s Session) bool {
	return s.Role == RoleAdmin
}
