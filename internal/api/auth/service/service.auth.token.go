package authsvc

import (
	"errors"
	"fmt"
	"time"

	models "github.com/Soybean501/clipvox-ai/internal/api/auth/models"
	"github.com/Soybean501/clipvox-ai/internal/common"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

const tokenIssuer = "clipvox"

// TokenService ký và xác thực JWT (HS256)
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService tạo TokenService; ttl <= 0 dùng 7 ngày
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue tạo token cho user, trả về token và thời điểm hết hạn (Unix milli)
func (s *TokenService) Issue(user *models.User) (string, int64, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := models.JwtToken{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   user.ID.Hex(),
			Issuer:    tokenIssuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt.UnixMilli(), nil
}

// Parse xác thực chữ ký và hạn của token
func (s *TokenService) Parse(raw string) (*models.JwtToken, error) {
	claims := &models.JwtToken{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == "" {
		return nil, common.ErrTokenInvalid
	}
	return claims, nil
}
