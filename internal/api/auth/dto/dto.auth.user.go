package authdto

import models "github.com/Soybean501/clipvox-ai/internal/api/auth/models"

// RegisterInput đầu vào đăng ký tài khoản.
type RegisterInput struct {
	Name     string `json:"name" validate:"omitempty,max=120,no_xss"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginInput đầu vào đăng nhập.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=128"`
}

// AuthOutput trả về sau khi đăng ký/đăng nhập thành công.
type AuthOutput struct {
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expiresAt"`
	User      *models.User `json:"user"`
}
