package main

import (
	"crypto/tls"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Soybean501/clipvox-ai/internal/database"
	"github.com/Soybean501/clipvox-ai/internal/global"
	"github.com/Soybean501/clipvox-ai/internal/logger"
	"github.com/Soybean501/clipvox-ai/internal/utility"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// initLogger khởi tạo logger; cấu hình đọc từ biến môi trường LOG_*
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// resolvePath tính đường dẫn tương đối theo thư mục gốc chứa config/env
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	currentDir, err := os.Getwd()
	if err != nil {
		return path
	}
	for {
		if _, err := os.Stat(filepath.Join(currentDir, "config", "env")); err == nil {
			return filepath.Join(currentDir, path)
		}
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return path
		}
		currentDir = parentDir
	}
}

// listen chạy server (HTTP hoặc HTTPS) tới khi app bị shutdown
func listen(app *fiber.App) error {
	cfg := global.ServerConfig
	address := ":" + cfg.Address
	log := logger.GetAppLogger()
	listenConfig := fiber.ListenConfig{DisableStartupMessage: true}

	if cfg.EnableTLS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		certPath := resolvePath(cfg.TLSCertFile)
		keyPath := resolvePath(cfg.TLSKeyFile)

		cert, err := tls.LoadX509KeyPair(certPath, keyPath)
		if err != nil {
			return fmt.Errorf("error loading TLS certificate: %w", err)
		}
		ln, err := net.Listen("tcp", address)
		if err != nil {
			return fmt.Errorf("error creating listener: %w", err)
		}
		tlsListener := tls.NewListener(ln, &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		})

		log.WithFields(logrus.Fields{"address": address, "cert": certPath}).Info("Starting server with HTTPS/TLS")
		return app.Listener(tlsListener, listenConfig)
	}

	log.WithFields(logrus.Fields{"address": address, "protocol": "HTTP"}).Info("Starting server with HTTP")
	return app.Listen(address, listenConfig)
}

// shutdown dừng server rồi đóng các kết nối
func shutdown(app *fiber.App) {
	log := logger.GetAppLogger()
	if err := app.ShutdownWithTimeout(15 * time.Second); err != nil {
		log.WithError(err).Error("Fiber shutdown error")
	}
	if global.NATS_Conn != nil {
		if err := global.NATS_Conn.Drain(); err != nil {
			log.WithError(err).Warn("NATS drain error")
		}
	}
	if count, err := global.RegistryCollections.ClearAll(nil); err == nil {
		log.Infof("Cleared %d registered collections", count)
	}
	if global.MongoDB_Session != nil {
		_ = database.CloseInstance(global.MongoDB_Session)
	}
	log.Info("Server stopped")
}

func main() {
	initLogger()
	defer logger.Shutdown()

	InitGlobal()
	InitRegistry()

	app := InitFiberApp(InitRoutes()...)

	errCh := make(chan error, 1)
	go utility.GoProtect(func() {
		errCh <- listen(app)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.GetAppLogger().WithField("signal", sig.String()).Info("Shutting down server")
	case err := <-errCh:
		if err != nil {
			logger.GetAppLogger().WithError(err).Error("Server stopped unexpectedly")
		}
	}
	shutdown(app)
}
