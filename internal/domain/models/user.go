package model

import "time"

// User is keyed by Email. PasswordHash is never the plaintext.
type User struct {
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}
