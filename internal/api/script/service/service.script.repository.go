package scriptsvc

import (
	"context"

	basesvc "github.com/Soybean501/clipvox-ai/internal/api/base/service"
	models "github.com/Soybean501/clipvox-ai/internal/api/script/models"
	"github.com/Soybean501/clipvox-ai/internal/common"
	"github.com/Soybean501/clipvox-ai/internal/global"
	"github.com/Soybean501/clipvox-ai/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScriptRepository là phần lưu trữ kịch bản mà ScriptService cần.
// Mọi truy vấn đều lọc theo ownerId.
type ScriptRepository interface {
	Create(ctx context.Context, script models.Script) (*models.Script, error)
	FindOwned(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Script, error)
	ListByProject(ctx context.Context, ownerID, projectID primitive.ObjectID) ([]models.Script, error)
	ExistsForProject(ctx context.Context, ownerID, projectID primitive.ObjectID) (bool, error)
	// Save ghi đè toàn bộ field có thể thay đổi; Voice nil thì xóa voice
	Save(ctx context.Context, script *models.Script) (*models.Script, error)
	DeleteOwned(ctx context.Context, ownerID, id primitive.ObjectID) error
	DeleteByProject(ctx context.Context, ownerID, projectID primitive.ObjectID) (int64, error)
}

// ScriptMongoRepository lưu kịch bản trong MongoDB
type ScriptMongoRepository struct {
	*basesvc.BaseServiceMongoImpl[models.Script]
}

// NewScriptMongoRepository tạo repository từ collection đã đăng ký
func NewScriptMongoRepository() (*ScriptMongoRepository, error) {
	base, err := basesvc.NewRegisteredMongo[models.Script](global.MongoDB_ColNames.Scripts)
	if err != nil {
		return nil, err
	}
	return &ScriptMongoRepository{BaseServiceMongoImpl: base}, nil
}

// Create thêm kịch bản mới
func (r *ScriptMongoRepository) Create(ctx context.Context, script models.Script) (*models.Script, error) {
	created, err := r.InsertOne(ctx, script)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// FindOwned tìm kịch bản của owner
func (r *ScriptMongoRepository) FindOwned(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Script, error) {
	script, err := r.FindOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return nil, err
	}
	return &script, nil
}

// ListByProject liệt kê kịch bản của dự án, mới cập nhật trước
func (r *ScriptMongoRepository) ListByProject(ctx context.Context, ownerID, projectID primitive.ObjectID) ([]models.Script, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	return r.Find(ctx, bson.M{"ownerId": ownerID, "projectId": projectID}, opts)
}

// ExistsForProject kiểm tra dự án đã có kịch bản chưa
func (r *ScriptMongoRepository) ExistsForProject(ctx context.Context, ownerID, projectID primitive.ObjectID) (bool, error) {
	return r.DocumentExists(ctx, bson.M{"ownerId": ownerID, "projectId": projectID})
}

// immutableKeys không bao giờ được ghi lại bởi Save
var immutableKeys = []string{"_id", "ownerId", "projectId", "createdAt"}

// saveUpdate dựng update document cho Save; Voice nil thì $unset voice
func saveUpdate(script *models.Script) (*basesvc.UpdateData, error) {
	set, err := utility.ToMap(script)
	if err != nil {
		return nil, common.ErrInvalidFormat
	}
	for _, key := range immutableKeys {
		delete(set, key)
	}

	update := &basesvc.UpdateData{Set: set}
	if script.Voice == nil {
		delete(set, "voice")
		update.Unset = bson.M{"voice": ""}
	}
	return update, nil
}

// Save ghi lại kịch bản; _id, ownerId, projectId và createdAt không bao giờ đổi
func (r *ScriptMongoRepository) Save(ctx context.Context, script *models.Script) (*models.Script, error) {
	update, err := saveUpdate(script)
	if err != nil {
		return nil, err
	}

	saved, err := r.UpdateOne(ctx, bson.M{"_id": script.ID, "ownerId": script.OwnerID}, update)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteOwned xóa kịch bản của owner
func (r *ScriptMongoRepository) DeleteOwned(ctx context.Context, ownerID, id primitive.ObjectID) error {
	return r.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
}

// DeleteByProject xóa mọi kịch bản của dự án
func (r *ScriptMongoRepository) DeleteByProject(ctx context.Context, ownerID, projectID primitive.ObjectID) (int64, error) {
	return r.DeleteMany(ctx, bson.M{"ownerId": ownerID, "projectId": projectID})
}
