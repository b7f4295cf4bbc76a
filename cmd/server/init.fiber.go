package main

import (
	"errors"
	"strings"
	"time"

	"github.com/Soybean501/clipvox-ai/internal/api/middleware"
	apirouter "github.com/Soybean501/clipvox-ai/internal/api/router"
	"github.com/Soybean501/clipvox-ai/internal/common"
	"github.com/Soybean501/clipvox-ai/internal/global"
	"github.com/Soybean501/clipvox-ai/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const healthPath = "/api/v1/system/health"

// errorHandler trả lỗi chưa được handler xử lý (404 route, body quá lớn, ...) theo format chuẩn
func errorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := common.MsgInternalError
	errorCode := common.ErrCodeInternalServer.Code

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
		switch code {
		case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge:
			errorCode = common.ErrCodeValidationInput.Code
		case fiber.StatusUnauthorized:
			errorCode = common.ErrCodeAuthToken.Code
		case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
			errorCode = common.ErrCodeDatabaseQuery.Code
		case fiber.StatusTooManyRequests:
			errorCode = common.ErrCodeBusinessRateLimit.Code
		}
	}

	entry := logger.WithRequest(c).WithFields(logrus.Fields{
		"code":      code,
		"errorCode": errorCode,
	})
	if code >= fiber.StatusInternalServerError {
		entry.WithError(err).Error("Request error")
	} else {
		entry.Debug(message)
	}

	return c.Status(code).JSON(fiber.Map{
		"code":    errorCode,
		"message": message,
		"status":  "error",
	})
}

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết
func InitFiberApp(routes ...apirouter.RegisterFunc) *fiber.App {
	cfg := global.ServerConfig
	log := logger.GetAppLogger()

	app := fiber.New(fiber.Config{
		AppName:       "ClipVox API",
		ServerHeader:  "ClipVox API",
		StrictRouting: true,
		CaseSensitive: true,
		UnescapePath:  true,

		BodyLimit:       2 * 1024 * 1024, // Kịch bản tối đa 30000 ký tự, 2MB là dư
		Concurrency:     256 * 1024,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,

		// Sinh kịch bản có thể mất tới GENERATION_TIMEOUT
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.GenerationTimeout() + 30*time.Second,
		IdleTimeout:  120 * time.Second,

		ErrorHandler: errorHandler,
	})

	// 1. Request ID để trace log
	app.Use(requestid.New(requestid.Config{
		Header:    "X-Request-ID",
		Generator: uuid.NewString,
	}))
	app.Use(middleware.RequestContextMiddleware())

	// 2. CORS, đặt trước các middleware khác để xử lý preflight
	var allowOrigins []string
	if cfg.CORS_Origins == "*" {
		allowOrigins = []string{"*"}
	} else {
		for _, origin := range strings.Split(cfg.CORS_Origins, ",") {
			if o := strings.TrimSpace(origin); o != "" {
				allowOrigins = append(allowOrigins, o)
			}
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-Requested-With"},
		AllowCredentials: cfg.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	// 3. Security headers
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 4. Giới hạn request toàn cục theo IP (giới hạn tạo kịch bản theo user nằm trong ScriptService)
	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateLimit_Max,
			Expiration: time.Duration(cfg.RateLimit_Window) * time.Second,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"code":    common.ErrCodeBusinessRateLimit.Code,
					"message": common.MsgTooManyRequests,
					"status":  "error",
				})
			},
			Next: func(c fiber.Ctx) bool {
				return c.Path() == healthPath || c.Method() == fiber.MethodOptions
			},
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	// 5. Recover
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithField("panic", e).Error("Panic recovered")
		},
	}))

	if err := apirouter.SetupRoutes(app, routes...); err != nil {
		log.Fatalf("Failed to setup routes: %v", err)
	}
	return app
}
