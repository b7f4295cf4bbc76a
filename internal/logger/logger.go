// Package logger cung cấp các logger logrus theo tên (app, audit, performance, error),
// ghi ra stdout và/hoặc file xoay vòng (lumberjack) qua AsyncHook.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	timestampLayout = "2006-01-02 15:04:05.000"
	hookBuffer      = 1000
)

var (
	mu      sync.Mutex
	config  *LogConfig
	loggers = map[string]*logrus.Logger{}
	hooks   []*AsyncHook
)

// Init nạp cấu hình logging (nil = DefaultConfig) và tạo thư mục log khi cần ghi file
func Init(cfg *LogConfig) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	config = cfg

	if !config.toFile() {
		return nil
	}
	if err := os.MkdirAll(logDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	return nil
}

func (c *LogConfig) toFile() bool   { return c.Output == "file" || c.Output == "both" }
func (c *LogConfig) toStdout() bool { return c.Output == "stdout" || c.Output == "both" }

// logDir: LOG_PATH tương đối được tính từ LOG_ROOT_DIR, không có thì từ working directory
func logDir() string {
	if filepath.IsAbs(config.LogPath) {
		return config.LogPath
	}
	root := os.Getenv("LOG_ROOT_DIR")
	if root == "" {
		root, _ = os.Getwd()
	}
	return filepath.Join(root, config.LogPath)
}

// fileName trả về tên file của logger; logger ngoài bốn loại chuẩn ghi vào <name>.log
func fileName(name string) string {
	known := map[string]string{
		"app":         config.AppFile,
		"audit":       config.AuditFile,
		"performance": config.PerformanceFile,
		"error":       config.ErrorFile,
	}
	if file, ok := known[name]; ok && file != "" {
		return file
	}
	return name + ".log"
}

// GetLogger trả về logger theo tên, tạo ở lần gọi đầu
func GetLogger(name string) *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()

	if config == nil {
		if err := Init(nil); err != nil {
			panic(fmt.Sprintf("Failed to initialize logger: %v", err))
		}
	}
	if l, ok := loggers[name]; ok {
		return l
	}
	l := newLogger(name)
	loggers[name] = l
	return l
}

func newLogger(name string) *logrus.Logger {
	l := logrus.New()
	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)
	l.SetFormatter(newFormatter(config.Format))
	l.SetReportCaller(true)

	// Logger không ghi trực tiếp: FilterHook đánh dấu trước, AsyncHook ghi sau
	l.SetOutput(io.Discard)
	l.AddHook(NewFilterHook(config))
	if writers := sinks(name); len(writers) > 0 {
		hook := NewAsyncHookWithWriters(writers, hookBuffer)
		l.AddHook(hook)
		hooks = append(hooks, hook)
	}

	l.WithFields(logrus.Fields{"logger": name, "level": level.String(), "output": config.Output}).
		Debug("Logger initialized")
	return l
}

func newFormatter(format string) logrus.Formatter {
	if format == "json" {
		return &logrus.JSONFormatter{
			TimestampFormat: timestampLayout,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
				logrus.FieldKeyFunc: "function",
			},
		}
	}
	return &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: timestampLayout,
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			return filepath.Base(f.Function), fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
		},
	}
}

func sinks(name string) []io.Writer {
	var writers []io.Writer
	if config.toFile() {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(logDir(), fileName(name)),
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}
	if config.toStdout() {
		writers = append(writers, os.Stdout)
	}
	return writers
}

// Shutdown ghi nốt các entry còn trong buffer rồi bỏ cache logger
func Shutdown() {
	mu.Lock()
	defer mu.Unlock()
	for _, h := range hooks {
		_ = h.Close()
	}
	hooks = nil
	loggers = map[string]*logrus.Logger{}
}

func GetAppLogger() *logrus.Logger         { return GetLogger("app") }
func GetAuditLogger() *logrus.Logger       { return GetLogger("audit") }
func GetPerformanceLogger() *logrus.Logger { return GetLogger("performance") }
func GetErrorLogger() *logrus.Logger       { return GetLogger("error") }
