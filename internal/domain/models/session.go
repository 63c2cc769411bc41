package model

import "time"

// Session is the decoded form of a bearer token.
type Session struct {
	TokenID   string    `json:"token_id"`
	Identity  Identity  `json:"identity"`
	ExpiresAt time.Time `json:"expires_at"`
}
