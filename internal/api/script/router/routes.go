// Package router đăng ký các route thuộc domain script.
package router

import (
	"github.com/gofiber/fiber/v3"

	apirouter "github.com/Soybean501/clipvox-ai/internal/api/router"
	scripthdl "github.com/Soybean501/clipvox-ai/internal/api/script/handler"
)

// Register trả về hàm đăng ký route /scripts (cần đăng nhập) và /voices (công khai).
func Register(h *scripthdl.ScriptHandler, authMiddleware fiber.Handler) apirouter.RegisterFunc {
	return func(v1 fiber.Router) error {
		v1.Get("/voices", h.HandleListVoices)

		apirouter.RegisterRoutesWithMiddleware(v1, "/scripts", []fiber.Handler{authMiddleware},
			apirouter.Route{Method: fiber.MethodGet, Path: "", Handler: h.HandleList},
			apirouter.Route{Method: fiber.MethodPost, Path: "", Handler: h.HandleCreate},
			apirouter.Route{Method: fiber.MethodGet, Path: "/:id", Handler: h.HandleGet},
			apirouter.Route{Method: fiber.MethodPatch, Path: "/:id", Handler: h.HandleUpdate},
			apirouter.Route{Method: fiber.MethodDelete, Path: "/:id", Handler: h.HandleDelete},
			apirouter.Route{Method: fiber.MethodPost, Path: "/:id/generate", Handler: h.HandleRegenerate},
			apirouter.Route{Method: fiber.MethodGet, Path: "/:id/estimate", Handler: h.HandleEstimate},
			apirouter.Route{Method: fiber.MethodGet, Path: "/:id/export", Handler: h.HandleExport},
			apirouter.Route{Method: fiber.MethodGet, Path: "/:id/voice", Handler: h.HandleGetVoice},
			apirouter.Route{Method: fiber.MethodPost, Path: "/:id/voice", Handler: h.HandleSynthesizeVoice},
			apirouter.Route{Method: fiber.MethodGet, Path: "/:id/voice/audio", Handler: h.HandleVoiceAudio},
		)
		return nil
	}
}
