package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ActorID     string `json:"actor_id"`
	ActorRole   string `json:"actor_role"`
	ExpiresIn   int    `json:"expires_in"`
}
