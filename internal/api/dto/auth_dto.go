package dto

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}
