package model

type RegisterDTO struct {
	Email                string `json:"email"`
	PhoneNumber          string `json:"phone_number"`
	Username             string `json:"username"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}
