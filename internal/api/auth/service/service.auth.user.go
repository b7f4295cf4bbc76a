// Package authsvc - đăng ký, đăng nhập và JWT cho người dùng.
package authsvc

import (
	"context"
	"errors"
	"strings"

	models "github.com/Soybean501/clipvox-ai/internal/api/auth/models"
	basesvc "github.com/Soybean501/clipvox-ai/internal/api/base/service"
	"github.com/Soybean501/clipvox-ai/internal/common"
	"github.com/Soybean501/clipvox-ai/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository là phần lưu trữ người dùng mà AuthService cần
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, user models.User) (*models.User, error)
}

// UserService lưu người dùng trong MongoDB
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	base, err := basesvc.NewRegisteredMongo[models.User](global.MongoDB_ColNames.Users)
	if err != nil {
		return nil, err
	}
	return &UserService{BaseServiceMongoImpl: base}, nil
}

// FindByEmail tìm user theo email (đã chuẩn hóa chữ thường)
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.FindOne(ctx, bson.M{"email": strings.ToLower(email)})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID tìm user theo id
func (s *UserService) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create thêm user mới; trùng email trả về ErrEmailTaken
func (s *UserService) Create(ctx context.Context, user models.User) (*models.User, error) {
	created, err := s.InsertOne(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrMongoDuplicate) {
			return nil, common.ErrEmailTaken
		}
		return nil, err
	}
	return &created, nil
}
