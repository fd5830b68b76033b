package models

// User is the authenticated identity for a session. Login is simulated, so
// there is exactly one demo user.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginRequest carries the (ignored) credentials of the simulated login form
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the session user and a bearer token
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
