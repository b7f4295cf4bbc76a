package logger

import (
	"os"
	"strings"

	"github.com/caarlos0/env"
)

// LogConfig chứa cấu hình cho hệ thống logging
type LogConfig struct {
	// Log Level: trace, debug, info, warn, error, fatal
	Level string `env:"LOG_LEVEL" envDefault:"info"`

	// Log Format: json, text
	Format string `env:"LOG_FORMAT" envDefault:"text"`

	// Log Output: file, stdout, both
	Output string `env:"LOG_OUTPUT" envDefault:"both"`

	// Log Rotation
	MaxSize    int  `env:"LOG_MAX_SIZE" envDefault:"100"`  // MB
	MaxBackups int  `env:"LOG_MAX_BACKUPS" envDefault:"7"` // Số file cũ giữ lại
	MaxAge     int  `env:"LOG_MAX_AGE" envDefault:"7"`     // Số ngày giữ lại
	Compress   bool `env:"LOG_COMPRESS" envDefault:"true"` // Nén file cũ

	// Log Paths
	LogPath         string `env:"LOG_PATH" envDefault:"./logs"`
	AppFile         string `env:"LOG_APP_FILE" envDefault:"app.log"`
	AuditFile       string `env:"LOG_AUDIT_FILE" envDefault:"audit.log"`
	PerformanceFile string `env:"LOG_PERF_FILE" envDefault:"performance.log"`
	ErrorFile       string `env:"LOG_ERROR_FILE" envDefault:"error.log"`

	// Bộ lọc (phân cách bởi dấu phẩy, rỗng hoặc "*" = tất cả)
	FilterModules  string `env:"LOG_FILTER_MODULES" envDefault:"*"` // ví dụ: script,ratelimit
	FilterLogTypes string `env:"LOG_FILTER_TYPES" envDefault:"*"`   // ví dụ: info,warn,error
	FilterMethods  string `env:"LOG_FILTER_METHODS" envDefault:"*"` // ví dụ: POST,PATCH
}

// DefaultConfig đọc cấu hình từ biến môi trường.
// Khi không đặt LOG_LEVEL/LOG_FORMAT, development dùng debug/text, môi trường khác dùng info/json.
func DefaultConfig() *LogConfig {
	cfg := &LogConfig{}
	if err := env.Parse(cfg); err != nil {
		cfg = &LogConfig{
			Level:           "info",
			Format:          "text",
			Output:          "both",
			MaxSize:         100,
			MaxBackups:      7,
			MaxAge:          7,
			Compress:        true,
			LogPath:         "./logs",
			AppFile:         "app.log",
			AuditFile:       "audit.log",
			PerformanceFile: "performance.log",
			ErrorFile:       "error.log",
		}
	}

	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}
	if os.Getenv("LOG_LEVEL") == "" {
		if goEnv == "development" {
			cfg.Level = "debug"
		} else {
			cfg.Level = "info"
		}
	}
	if os.Getenv("LOG_FORMAT") == "" {
		if goEnv == "development" {
			cfg.Format = "text"
		} else {
			cfg.Format = "json"
		}
	}

	cfg.Level = strings.ToLower(cfg.Level)
	cfg.Format = strings.ToLower(cfg.Format)
	cfg.Output = strings.ToLower(cfg.Output)
	return cfg
}
