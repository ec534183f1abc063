package models

// RegisterRequest creates a customer account.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// LoginRequest exchanges credentials for a bearer token.
type LoginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// LoginResponse carries the token issued by the auth service.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}
