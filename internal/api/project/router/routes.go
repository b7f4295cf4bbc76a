// Package router đăng ký các route thuộc domain project.
package router

import (
	"github.com/gofiber/fiber/v3"

	projecthdl "github.com/Soybean501/clipvox-ai/internal/api/project/handler"
	apirouter "github.com/Soybean501/clipvox-ai/internal/api/router"
)

// Register trả về hàm đăng ký route /projects; mọi route đều cần đăng nhập.
func Register(h *projecthdl.ProjectHandler, authMiddleware fiber.Handler) apirouter.RegisterFunc {
	return func(v1 fiber.Router) error {
		apirouter.RegisterRoutesWithMiddleware(v1, "/projects", []fiber.Handler{authMiddleware},
			apirouter.Route{Method: fiber.MethodGet, Path: "", Handler: h.HandleList},
			apirouter.Route{Method: fiber.MethodPost, Path: "", Handler: h.HandleCreate},
			apirouter.Route{Method: fiber.MethodGet, Path: "/:id", Handler: h.HandleGet},
			apirouter.Route{Method: fiber.MethodPatch, Path: "/:id", Handler: h.HandleUpdate},
			apirouter.Route{Method: fiber.MethodDelete, Path: "/:id", Handler: h.HandleDelete},
		)
		return nil
	}
}
