package global

import (
	"github.com/Soybean501/clipvox-ai/config"
	"github.com/Soybean501/clipvox-ai/internal/registry"

	"github.com/go-playground/validator/v10"
	"github.com/nats-io/nats.go"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Users      string // Người dùng
	Projects   string // Dự án
	Scripts    string // Kịch bản (mỗi dự án tối đa một kịch bản)
	VoiceAudio string // File âm thanh của kịch bản khi không dùng NATS object store
}

// Các biến toàn cục
var Validate *validator.Validate                                       // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                      // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration                                 // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = MongoDB_CollectionName{} // Tên các collection
var NATS_Conn *nats.Conn                                               // Kết nối NATS (nil khi không cấu hình NATS_URL)

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
