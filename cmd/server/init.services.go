package main

import (
	"github.com/Soybean501/clipvox-ai/internal/ai"
	authhdl "github.com/Soybean501/clipvox-ai/internal/api/auth/handler"
	authrouter "github.com/Soybean501/clipvox-ai/internal/api/auth/router"
	authsvc "github.com/Soybean501/clipvox-ai/internal/api/auth/service"
	"github.com/Soybean501/clipvox-ai/internal/api/middleware"
	projecthdl "github.com/Soybean501/clipvox-ai/internal/api/project/handler"
	projectrouter "github.com/Soybean501/clipvox-ai/internal/api/project/router"
	projectsvc "github.com/Soybean501/clipvox-ai/internal/api/project/service"
	apirouter "github.com/Soybean501/clipvox-ai/internal/api/router"
	scripthdl "github.com/Soybean501/clipvox-ai/internal/api/script/handler"
	scriptrouter "github.com/Soybean501/clipvox-ai/internal/api/script/router"
	scriptsvc "github.com/Soybean501/clipvox-ai/internal/api/script/service"
	"github.com/Soybean501/clipvox-ai/internal/global"
	"github.com/Soybean501/clipvox-ai/internal/logger"
	"github.com/Soybean501/clipvox-ai/internal/ratelimit"
	"github.com/Soybean501/clipvox-ai/internal/storage"
	"github.com/Soybean501/clipvox-ai/internal/voice"
)

// initScriptBackends chọn bộ đếm rate limit và kho audio: NATS JetStream khi có kết nối,
// ngược lại MemoryLimiter và collection script_voice_audio.
func initScriptBackends() (ratelimit.Limiter, storage.AudioStore) {
	cfg := global.ServerConfig
	log := logger.WithModule("init")

	if global.NATS_Conn != nil {
		js, err := global.NATS_Conn.JetStream()
		if err == nil {
			limiter, limErr := ratelimit.NewNatsKVLimiter(js, cfg.RateLimit_Bucket, cfg.ScriptRateWindow())
			audio, audErr := storage.NewNatsAudioStore(js, cfg.Audio_Bucket)
			if limErr == nil && audErr == nil {
				log.Info("Rate limit và audio dùng NATS JetStream")
				return limiter, audio
			}
			log.WithField("limiter_error", limErr).WithField("audio_error", audErr).Error("Không tạo được bucket NATS")
		} else {
			log.WithError(err).Error("Không lấy được JetStream context")
		}
	}

	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.VoiceAudio)
	if !exist {
		log.Fatal("Voice audio collection chưa được đăng ký")
	}
	log.Info("Rate limit dùng MemoryLimiter, audio lưu trong MongoDB")
	return ratelimit.NewMemoryLimiter(), storage.NewMongoAudioStore(collection)
}

// InitRoutes tạo các service, handler và trả về hàm đăng ký route của từng domain
func InitRoutes() []apirouter.RegisterFunc {
	cfg := global.ServerConfig
	log := logger.GetAppLogger()

	// Auth
	users, err := authsvc.NewUserService()
	if err != nil {
		log.Fatalf("Failed to create user service: %v", err)
	}
	authService := authsvc.NewAuthService(users, authsvc.NewTokenService(cfg.JwtSecret, cfg.JwtTTL()))
	authMiddleware := middleware.AuthMiddleware(authService)

	// Script (dự án cần ScriptService để xóa kịch bản khi xóa dự án)
	projectRepo, err := projectsvc.NewProjectMongoRepository()
	if err != nil {
		log.Fatalf("Failed to create project repository: %v", err)
	}
	scriptRepo, err := scriptsvc.NewScriptMongoRepository()
	if err != nil {
		log.Fatalf("Failed to create script repository: %v", err)
	}
	catalog, err := voice.Load(cfg.VoiceCatalog_Path)
	if err != nil {
		log.Fatalf("Failed to load voice catalog: %v", err)
	}
	limiter, audio := initScriptBackends()

	scriptService := scriptsvc.NewScriptService(scriptsvc.Dependencies{
		Scripts:           scriptRepo,
		Projects:          projectRepo,
		Generator:         ai.NewScriptGenerator(cfg),
		Synthesizer:       ai.NewSpeechSynthesizer(cfg),
		Audio:             audio,
		Limiter:           limiter,
		Voices:            catalog,
		RateMax:           cfg.ScriptRateLimit_Max,
		RateWindow:        cfg.ScriptRateWindow(),
		GenerationTimeout: cfg.GenerationTimeout(),
	})
	projectService := projectsvc.NewProjectService(projectRepo, scriptService)

	return []apirouter.RegisterFunc{
		authrouter.Register(authhdl.NewUserHandler(authService), authMiddleware),
		projectrouter.Register(projecthdl.NewProjectHandler(projectService), authMiddleware),
		scriptrouter.Register(scripthdl.NewScriptHandler(scriptService), authMiddleware),
	}
}
