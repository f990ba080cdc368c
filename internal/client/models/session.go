// Package models defines the client-side data model: the authenticated
// session, videos, comments and the request/result shapes exchanged with
// the backend gateway.
package models

// Role values used by the platform.
const (
	RoleViewer  = "viewer"
	RoleCreator = "creator"
)

// Session is the authenticated identity. It is replaced wholesale on
// login/logout, never mutated in place.
type Session struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsCreator reports whether the session may upload and browse own videos.
func (s *Session) IsCreator() bool {
	return s != nil && s.Role == RoleCreator
}

// Credentials is the sign-in request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignupProfile is the sign-up request body. Type is always "user";
// Role selects viewer or creator.
type SignupProfile struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Username  string `json:"username"`
	Role      string `json:"userrole"`
	Type      string `json:"type"`
}

// AuthResult is the normalized outcome of sign-in/sign-up.
type AuthResult struct {
	Token string
	User  Session
}
