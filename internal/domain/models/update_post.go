package model

type UpdatePostDTO struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
