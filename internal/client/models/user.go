// Package models contains the domain types exchanged with the vacation
// statistics backend and persisted by the client.
package models

// User is the immutable account snapshot returned by the login endpoint.
// It is replaced wholesale on the next login and never mutated in place.
type User struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName returns the friendliest available name for the user.
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.Email
}

// Credentials is a transient login payload. It is never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the login endpoint's success payload.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
