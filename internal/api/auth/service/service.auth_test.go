package authsvc

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	authdto "github.com/Soybean501/clipvox-ai/internal/api/auth/dto"
	models "github.com/Soybean501/clipvox-ai/internal/api/auth/models"
	"github.com/Soybean501/clipvox-ai/internal/common"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMain(m *testing.M) {
	os.Setenv("LOG_OUTPUT", "stdout")
	os.Exit(m.Run())
}

type memoryUsers struct {
	mu    sync.Mutex
	users []models.User
}

func (m *memoryUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memoryUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *memoryUsers) Create(_ context.Context, user models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = primitive.NewObjectID()
	m.users = append(m.users, user)
	return &user, nil
}

func newAuthService() *AuthService {
	return NewAuthService(&memoryUsers{}, NewTokenService("test-secret", time.Hour))
}

func TestRegisterLoginMe(t *testing.T) {
	svc := newAuthService()
	ctx := context.Background()

	out, err := svc.Register(ctx, &authdto.RegisterInput{Name: " Ann ", Email: "Ann@Example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", out.User.Email)
	assert.Equal(t, "Ann", out.User.Name)
	assert.NotEqual(t, "password123", out.User.PasswordHash)
	assert.NotEmpty(t, out.Token)

	claims, err := svc.ParseToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID.Hex(), claims.UserID)

	login, err := svc.Login(ctx, &authdto.LoginInput{Email: "ANN@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, login.User.ID)

	me, err := svc.Me(ctx, out.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", me.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthService()
	input := &authdto.RegisterInput{Email: "a@b.co", Password: "password123"}
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), input)
	assert.ErrorIs(t, err, common.ErrEmailTaken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newAuthService()
	_, err := svc.Register(context.Background(), &authdto.RegisterInput{Email: "a@b.co", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &authdto.LoginInput{Email: "a@b.co", Password: "wrong-password"})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &authdto.LoginInput{Email: "nobody@b.co", Password: "password123"})
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestMe_UnknownUser(t *testing.T) {
	_, err := newAuthService().Me(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, common.ErrUserNotFound)
}

func TestTokenService_Expired(t *testing.T) {
	tokens := NewTokenService("secret", time.Hour)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	raw, _, err := tokens.Issue(&models.User{ID: primitive.NewObjectID()})
	require.NoError(t, err)

	_, err = tokens.Parse(raw)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	issuer := NewTokenService("one", time.Hour)
	verifier := NewTokenService("two", time.Hour)

	raw, _, err := issuer.Issue(&models.User{ID: primitive.NewObjectID()})
	require.NoError(t, err)

	_, err = verifier.Parse(raw)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)

	_, err = verifier.Parse("garbage")
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestTokenService_RejectsNoneAlgorithm(t *testing.T) {
	claims := models.JwtToken{UserID: primitive.NewObjectID().Hex()}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService("secret", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}
