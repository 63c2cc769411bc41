package model

// Identity is the authenticated user reference carried through sessions and ownership checks.
type Identity struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}
