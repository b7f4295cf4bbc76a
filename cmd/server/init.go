package main

import (
	"context"
	"time"

	"github.com/Soybean501/clipvox-ai/config"
	authmodels "github.com/Soybean501/clipvox-ai/internal/api/auth/models"
	projectmodels "github.com/Soybean501/clipvox-ai/internal/api/project/models"
	scriptmodels "github.com/Soybean501/clipvox-ai/internal/api/script/models"
	"github.com/Soybean501/clipvox-ai/internal/database"
	"github.com/Soybean501/clipvox-ai/internal/global"
	"github.com/Soybean501/clipvox-ai/internal/logger"
	"github.com/Soybean501/clipvox-ai/internal/storage"

	"github.com/nats-io/nats.go"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initNATS()             // Kết nối NATS (tùy chọn)
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Users = "auth_users"
	global.MongoDB_ColNames.Projects = "projects"
	global.MongoDB_ColNames.Scripts = "scripts"
	global.MongoDB_ColNames.VoiceAudio = "script_voice_audio"

	logger.GetAppLogger().Info("Initialized collection names")
}

// collectionNames trả về tên tất cả collection mà ứng dụng dùng
func collectionNames() []string {
	return []string{
		global.MongoDB_ColNames.Users,
		global.MongoDB_ColNames.Projects,
		global.MongoDB_ColNames.Scripts,
		global.MongoDB_ColNames.VoiceAudio,
	}
}

// Hàm khởi tạo validator (đăng ký custom validators: no_xss, not_blank, script_tone)
func initValidator() {
	global.InitValidator()
	logger.GetAppLogger().Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	cfg, err := config.NewConfig()
	if err != nil {
		logger.GetAppLogger().Fatalf("Failed to initialize config: %v", err)
	}
	global.ServerConfig = cfg
	logger.GetAppLogger().Info("Initialized server config")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	log := logger.GetAppLogger()

	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	log.Info("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := global.MongoDB_Session.Database(global.ServerConfig.MongoDB_Name)
	if err := database.EnsureCollections(ctx, db, collectionNames()); err != nil {
		log.Fatalf("Failed to ensure collections: %v", err)
	}
	log.Info("Ensured database and collections")

	// Khởi tạo các index theo tag `index` trên model
	indexes := []struct {
		name  string
		model interface{}
	}{
		{global.MongoDB_ColNames.Users, authmodels.User{}},
		{global.MongoDB_ColNames.Projects, projectmodels.Project{}},
		{global.MongoDB_ColNames.Scripts, scriptmodels.Script{}},
		{global.MongoDB_ColNames.VoiceAudio, storage.AudioDocument{}},
	}
	for _, idx := range indexes {
		if err := database.CreateIndexes(ctx, db.Collection(idx.name), idx.model); err != nil {
			log.WithError(err).Errorf("Failed to create indexes for %s", idx.name)
		}
	}
}

// initNATS kết nối NATS khi có NATS_URL. Lỗi kết nối không dừng ứng dụng:
// rate limit và audio sẽ dùng bộ nhớ / MongoDB.
func initNATS() {
	cfg := global.ServerConfig
	log := logger.WithModule("nats")
	if cfg.NATS_URL == "" {
		log.Info("NATS_URL not set, dùng MemoryLimiter và MongoAudioStore")
		return
	}

	nc, err := nats.Connect(cfg.NATS_URL,
		nats.Name("clipvox-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.WithError(err).Warn("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
	)
	if err != nil {
		log.WithError(err).Error("Không kết nối được NATS, dùng MemoryLimiter và MongoAudioStore")
		return
	}
	global.NATS_Conn = nc
	log.WithField("url", nc.ConnectedUrl()).Info("Connected to NATS")
}
