package models

// Credentials is the sign-in form and the body of POST /api/signIn.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up form and the body of POST /api/signUp.
type Registration struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	RepeatPassword string `json:"repeatPassword"`
}

// AuthResponse is the envelope returned by both auth endpoints.
type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
