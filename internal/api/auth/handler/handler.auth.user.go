package authhdl

import (
	authdto "github.com/Soybean501/clipvox-ai/internal/api/auth/dto"
	authsvc "github.com/Soybean501/clipvox-ai/internal/api/auth/service"
	basehdl "github.com/Soybean501/clipvox-ai/internal/api/base/handler"
	"github.com/Soybean501/clipvox-ai/internal/common"

	"github.com/gofiber/fiber/v3"
)

// UserHandler xử lý đăng ký, đăng nhập và thông tin người dùng
type UserHandler struct {
	*basehdl.BaseHandler
	authService *authsvc.AuthService
}

// NewUserHandler tạo instance mới của UserHandler
func NewUserHandler(authService *authsvc.AuthService) *UserHandler {
	return &UserHandler{
		BaseHandler: basehdl.NewBaseHandler(),
		authService: authService,
	}
}

// HandleRegister đăng ký tài khoản bằng email/mật khẩu
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.RegisterInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		out, err := h.authService.Register(c.Context(), &input)
		h.HandleResponseWithStatus(c, common.StatusCreated, out, err)
		return nil
	})
}

// HandleLogin đăng nhập và nhận JWT
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.LoginInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		out, err := h.authService.Login(c.Context(), &input)
		h.HandleResponse(c, out, err)
		return nil
	})
}

// HandleMe trả về thông tin người dùng đang đăng nhập
func (h *UserHandler) HandleMe(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		user, err := h.authService.Me(c.Context(), userID)
		h.HandleResponse(c, user, err)
		return nil
	})
}
