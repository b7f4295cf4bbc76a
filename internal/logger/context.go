package logger

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// ContextKey là type cho context keys
type ContextKey string

const (
	// RequestIDKey là key cho request ID trong context
	RequestIDKey ContextKey = "requestID"
	// UserIDKey là key cho user ID trong context
	UserIDKey ContextKey = "userID"
)

// ContextWithRequestID gắn request ID vào context cho các service
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// ContextWithUserID gắn user ID vào context cho các service
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, UserIDKey, userID)
}

// WithContext trả về logger entry với các field lấy từ context
func WithContext(ctx context.Context) *logrus.Entry {
	entry := GetAppLogger().WithContext(ctx)
	if ctx == nil {
		return entry
	}
	if requestID := ctx.Value(RequestIDKey); requestID != nil {
		entry = entry.WithField("request_id", requestID)
	}
	if userID := ctx.Value(UserIDKey); userID != nil {
		entry = entry.WithField("user_id", userID)
	}
	return entry
}

// RequestID lấy request ID mà middleware requestid đã gắn (Locals hoặc header)
func RequestID(c fiber.Ctx) string {
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		return rid
	}
	if rid := c.Get("X-Request-ID"); rid != "" {
		return rid
	}
	return c.GetRespHeader("X-Request-ID")
}

// WithRequest trả về logger entry với thông tin request từ Fiber
func WithRequest(c fiber.Ctx) *logrus.Entry {
	entry := GetAppLogger().WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	})
	if requestID := RequestID(c); requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}
	if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
		entry = entry.WithField("user_id", userID)
	}
	return entry
}

// WithModule trả về logger entry với module name (ví dụ: "script", "ratelimit", "ai")
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}

// WithError trả về logger entry với error
func WithError(err error) *logrus.Entry {
	return GetAppLogger().WithError(err)
}
