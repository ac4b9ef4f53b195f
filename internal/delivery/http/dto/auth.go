package dto

type SignupRequest struct {
	Email    string `json:"email" validate:"required,max=320"`
	Password string `json:"password" validate:"required,max=72"`
	Name     string `json:"name" validate:"max=200"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,max=320"`
	Password string `json:"password" validate:"required,max=72"`
}

type SignupResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type LoginResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type MeResponse struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	CallsMade int    `json:"calls_made"`
	CallLimit int    `json:"call_limit"`
}
