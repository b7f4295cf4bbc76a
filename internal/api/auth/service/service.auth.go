package authsvc

import (
	"context"
	"errors"
	"strings"

	authdto "github.com/Soybean501/clipvox-ai/internal/api/auth/dto"
	models "github.com/Soybean501/clipvox-ai/internal/api/auth/models"
	"github.com/Soybean501/clipvox-ai/internal/common"
	"github.com/Soybean501/clipvox-ai/internal/logger"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost là cost dùng khi hash mật khẩu
const BcryptCost = 10

// AuthService xử lý đăng ký, đăng nhập và lấy thông tin người dùng hiện tại
type AuthService struct {
	users  UserRepository
	tokens *TokenService
}

// NewAuthService tạo mới AuthService
func NewAuthService(users UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register tạo tài khoản mới và trả về token đăng nhập
func (s *AuthService) Register(ctx context.Context, input *authdto.RegisterInput) (*authdto.AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), BcryptCost)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, err)
	}

	user, err := s.users.Create(ctx, models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	logger.GetAuditLogger().WithFields(logrus.Fields{
		"user_id": user.ID.Hex(),
		"action":  "register",
	}).Info("Tạo tài khoản mới")

	return s.issue(user)
}

// Login kiểm tra email/mật khẩu và trả về token
func (s *AuthService) Login(ctx context.Context, input *authdto.LoginInput) (*authdto.AuthOutput, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		logger.WithContext(ctx).WithField("user_id", user.ID.Hex()).Warn("Đăng nhập sai mật khẩu")
		return nil, common.ErrInvalidCredentials
	}
	return s.issue(user)
}

// Me trả về thông tin user đang đăng nhập
func (s *AuthService) Me(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ParseToken xác thực JWT, dùng bởi AuthMiddleware
func (s *AuthService) ParseToken(raw string) (*models.JwtToken, error) {
	return s.tokens.Parse(raw)
}

func (s *AuthService) issue(user *models.User) (*authdto.AuthOutput, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, err)
	}
	return &authdto.AuthOutput{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
