package dto

// Data Transfer Objects for signup and token exchange

// SignUpRequest: payload for requesting a confirmation code
type SignUpRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// SignUpResponse: echo of the signed-up identity, the code goes by mail only
type SignUpResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest: payload for exchanging a confirmation code
type TokenRequest struct {
	Username         string `json:"username" binding:"required"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// TokenResponse: the issued access token
type TokenResponse struct {
	Access string `json:"access"`
}
