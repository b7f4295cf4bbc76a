package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`                 // Cổng server
	JwtSecret             string `env:"JWT_SECRET,required"`                       // Bí mật JWT
	JwtTTLHours           int    `env:"JWT_TTL_HOURS" envDefault:"168"`            // Thời gian sống của token (giờ)
	MongoDB_URI           string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối cơ sở dữ liệu
	MongoDB_Name          string `env:"MONGODB_DBNAME,required"`                   // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials

	// Giới hạn toàn cục theo IP (middleware limiter của Fiber)
	RateLimit_Max     int  `env:"RATE_LIMIT_MAX" envDefault:"100"`   // Số request tối đa trong window (0 = tắt)
	RateLimit_Window  int  `env:"RATE_LIMIT_WINDOW" envDefault:"60"` // Thời gian window (giây)
	RateLimit_Enabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`

	// Giới hạn tạo kịch bản theo user
	ScriptRateLimit_Max    int `env:"SCRIPT_RATE_LIMIT_MAX" envDefault:"5"`
	ScriptRateLimit_Window int `env:"SCRIPT_RATE_LIMIT_WINDOW" envDefault:"60"` // giây

	// NATS JetStream (tùy chọn). Khi có URL, bộ đếm rate limit và file âm thanh dùng chung qua NATS
	NATS_URL         string `env:"NATS_URL"`
	RateLimit_Bucket string `env:"RATE_LIMIT_BUCKET" envDefault:"clipvox_rate_limit"`
	Audio_Bucket     string `env:"AUDIO_BUCKET" envDefault:"clipvox_voice_audio"`

	// Mô hình ngôn ngữ & TTS
	AI_Provider        string `env:"AI_PROVIDER" envDefault:"openai"` // openai | mock
	OpenAI_APIKey      string `env:"OPENAI_API_KEY"`
	OpenAI_BaseURL     string `env:"OPENAI_BASE_URL"`
	OpenAI_Model       string `env:"OPENAI_MODEL" envDefault:"gpt-4.1-mini"`
	OpenAI_TTSModel    string `env:"OPENAI_TTS_MODEL" envDefault:"gpt-4o-mini-tts"`
	Generation_Timeout int    `env:"GENERATION_TIMEOUT" envDefault:"120"` // giây
	VoiceCatalog_Path  string `env:"VOICE_CATALOG_PATH"`

	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn đến file certificate (.crt hoặc .pem)
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn đến file private key (.key)
}

// ScriptRateWindow trả về window giới hạn tạo kịch bản
func (c *Configuration) ScriptRateWindow() time.Duration {
	return time.Duration(c.ScriptRateLimit_Window) * time.Second
}

// GenerationTimeout trả về timeout cho một lần gọi sinh kịch bản
func (c *Configuration) GenerationTimeout() time.Duration {
	return time.Duration(c.Generation_Timeout) * time.Second
}

// JwtTTL trả về thời gian sống của JWT
func (c *Configuration) JwtTTL() time.Duration {
	return time.Duration(c.JwtTTLHours) * time.Hour
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env bằng cách đi lên dần
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", env))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc cấu hình từ file env (nếu có) rồi parse biến môi trường.
// Thiếu file env không phải lỗi: khi deploy bằng container biến môi trường được truyền trực tiếp.
func NewConfig() (*Configuration, error) {
	if envPath := getEnvPath(); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return nil, fmt.Errorf("không thể load file env tại %s: %w", envPath, err)
			}
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("lỗi khi parse config: %w", err)
	}
	return &cfg, nil
}
