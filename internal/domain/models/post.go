package model

import "time"

type Post struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Author      string     `json:"author"`
	AuthorEmail string     `json:"author_email"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// OwnedBy reports whether the identity may mutate the post.
func (p *Post) OwnedBy(identity Identity) bool {
	return identity.Email != "" && p.AuthorEmail == identity.Email
}
