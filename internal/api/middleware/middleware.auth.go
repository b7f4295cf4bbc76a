package middleware

import (
	"strings"

	models "github.com/Soybean501/clipvox-ai/internal/api/auth/models"
	basehdl "github.com/Soybean501/clipvox-ai/internal/api/base/handler"
	"github.com/Soybean501/clipvox-ai/internal/common"
	"github.com/Soybean501/clipvox-ai/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// TokenParser xác thực JWT và trả về claims
type TokenParser interface {
	ParseToken(raw string) (*models.JwtToken, error)
}

// AuthMiddleware middleware xác thực Bearer JWT cho Fiber.
// Thành công thì gắn user id vào Locals("user_id") và vào context của request.
func AuthMiddleware(tokens TokenParser) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			basehdl.HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			basehdl.HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		claims, err := tokens.ParseToken(parts[1])
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token không hợp lệ")
			basehdl.HandleErrorResponse(c, err)
			return nil
		}

		c.Locals("user_id", claims.UserID)
		c.SetContext(logger.ContextWithUserID(c.Context(), claims.UserID))
		return c.Next()
	}
}
