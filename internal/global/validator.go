package global

import (
	"strings"

	"github.com/Soybean501/clipvox-ai/internal/pacing"

	"github.com/go-playground/validator/v10"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
	_ = Validate.RegisterValidation("not_blank", validateNotBlank)
	_ = Validate.RegisterValidation("script_tone", validateScriptTone)
}

// validateNoXSS kiểm tra XSS
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"onmouseover=",
		"eval(",
		"document.cookie",
		"document.write",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}

// validateNotBlank từ chối chuỗi chỉ gồm khoảng trắng
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateScriptTone chỉ chấp nhận các tone đã biết
func validateScriptTone(fl validator.FieldLevel) bool {
	return pacing.IsKnownTone(fl.Field().String())
}
