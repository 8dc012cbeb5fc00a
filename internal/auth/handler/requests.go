package handler

// The manager applies the field rules itself, so the bodies here stay plain
// carriers; only shapes that would reach it malformed get a Validate.

// RegisterRequest is the HTTP request body for POST /auth/register.
type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Supporter bool   `json:"supporter"`
}

// LoginRequest is the HTTP request body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StaffLoginRequest is the HTTP request body for POST /auth/staff/login.
type StaffLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SupporterRequest is the HTTP request body for PUT /auth/supporter.
type SupporterRequest struct {
	Supporter bool `json:"supporter"`
}
