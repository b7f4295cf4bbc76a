// Package router đăng ký các route thuộc domain auth và route hệ thống.
package router

import (
	"github.com/gofiber/fiber/v3"

	authhdl "github.com/Soybean501/clipvox-ai/internal/api/auth/handler"
	basehdl "github.com/Soybean501/clipvox-ai/internal/api/base/handler"
	apirouter "github.com/Soybean501/clipvox-ai/internal/api/router"
)

// Register trả về hàm đăng ký /system/health và /auth/*.
func Register(h *authhdl.UserHandler, authMiddleware fiber.Handler) apirouter.RegisterFunc {
	return func(v1 fiber.Router) error {
		v1.Get("/system/health", basehdl.NewSystemHandler().HandleHealth)

		v1.Post("/auth/register", h.HandleRegister)
		v1.Post("/auth/login", h.HandleLogin)
		apirouter.RegisterRouteWithMiddleware(v1, "/auth/me", fiber.MethodGet, "", []fiber.Handler{authMiddleware}, h.HandleMe)
		return nil
	}
}
