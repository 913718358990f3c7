package dto

// SignupRequest creates a new free-tier account.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	FullName string `json:"full_name" binding:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserInfo is the user shape returned to the frontend. Password hash and
// payment provider ids never leave the server.
type UserInfo struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Tier      string `json:"tier"`
	LiveQuota int    `json:"live_quota"`
	LiveUsed  int    `json:"live_used"`
	CreatedAt string `json:"created_at,omitempty"`
}
