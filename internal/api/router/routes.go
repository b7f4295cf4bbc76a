// Package router chứa các helper đăng ký route dùng chung cho các domain router.
package router

import (
	"github.com/gofiber/fiber/v3"
)

// RoutePrefix chứa các prefix cơ bản cho API
type RoutePrefix struct {
	Base string // Prefix cơ bản (/api)
	V1   string // Prefix cho API version 1 (/api/v1)
}

// NewRoutePrefix tạo mới một instance của RoutePrefix với các giá trị mặc định
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// Route là một route trong group
type Route struct {
	Method  string
	Path    string
	Handler fiber.Handler
}

// RegisterRouteWithMiddleware đăng ký route với middleware qua .Use() của một group.
//
// Fiber v3 không gọi middleware khi truyền trực tiếp router.Get(path, middleware, handler),
// vì vậy mọi route cần middleware phải đăng ký qua hàm này (hoặc RegisterRoutesWithMiddleware).
//
//	authMiddleware := middleware.AuthMiddleware(authService)
//	RegisterRouteWithMiddleware(v1, "/auth/me", "GET", "", []fiber.Handler{authMiddleware}, handler)
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	RegisterRoutesWithMiddleware(router, prefix, middlewares, Route{Method: method, Path: path, Handler: handler})
}

// RegisterRoutesWithMiddleware tạo một group cho prefix, gắn middleware một lần rồi đăng ký các route.
// Middleware áp dụng cho mọi path dưới prefix nên route công khai phải nằm ở prefix khác.
func RegisterRoutesWithMiddleware(router fiber.Router, prefix string, middlewares []fiber.Handler, routes ...Route) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	for _, r := range routes {
		switch r.Method {
		case fiber.MethodGet:
			routeGroup.Get(r.Path, r.Handler)
		case fiber.MethodPost:
			routeGroup.Post(r.Path, r.Handler)
		case fiber.MethodPut:
			routeGroup.Put(r.Path, r.Handler)
		case fiber.MethodPatch:
			routeGroup.Patch(r.Path, r.Handler)
		case fiber.MethodDelete:
			routeGroup.Delete(r.Path, r.Handler)
		}
	}
}

// RegisterFunc là hàm đăng ký route của một domain (do domain/router export).
type RegisterFunc func(v1 fiber.Router) error

// SetupRoutes thiết lập tất cả các route cho ứng dụng. Caller truyền lần lượt Register của từng domain để tránh import cycle.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	v1 := app.Group(NewRoutePrefix().V1)
	for _, reg := range regs {
		if err := reg(v1); err != nil {
			return err
		}
	}
	return nil
}
