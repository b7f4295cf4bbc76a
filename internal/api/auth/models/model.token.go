package models

import "github.com/dgrijalva/jwt-go"

// JwtToken chứa data được mã hóa trong JWT token.
type JwtToken struct {
	UserID string `json:"userId"`
	Email  string `json:"email,omitempty"`
	jwt.StandardClaims
}
