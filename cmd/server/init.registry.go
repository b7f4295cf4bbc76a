package main

import (
	"strings"

	"github.com/Soybean501/clipvox-ai/config"
	"github.com/Soybean501/clipvox-ai/internal/global"
	"github.com/Soybean501/clipvox-ai/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
)

func InitRegistry() {
	log := logger.GetAppLogger()

	// Khởi tạo registry và đăng ký các collections
	if err := InitCollections(global.MongoDB_Session, global.ServerConfig); err != nil {
		log.Fatalf("Failed to initialize collections: %v", err)
	}
	log.Infof("Initialized collection registry: %s", strings.Join(global.RegistryCollections.Names(), ", "))
}

// InitCollections khởi tạo và đăng ký các collections MongoDB
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_Name)
	log := logger.GetAppLogger()

	for _, name := range collectionNames() {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			log.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}
		if !registered {
			log.Warnf("Collection %s already registered", name)
		}
	}
	return nil
}
