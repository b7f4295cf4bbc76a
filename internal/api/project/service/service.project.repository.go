package projectsvc

import (
	"context"

	basemodels "github.com/Soybean501/clipvox-ai/internal/api/base/models"
	basesvc "github.com/Soybean501/clipvox-ai/internal/api/base/service"
	models "github.com/Soybean501/clipvox-ai/internal/api/project/models"
	"github.com/Soybean501/clipvox-ai/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectRepository là phần lưu trữ dự án mà ProjectService cần.
// Mọi truy vấn đều lọc theo ownerId.
type ProjectRepository interface {
	Create(ctx context.Context, project models.Project) (*models.Project, error)
	FindOwned(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Project, error)
	ListOwned(ctx context.Context, ownerID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[models.Project], error)
	UpdateOwned(ctx context.Context, ownerID, id primitive.ObjectID, set map[string]interface{}) (*models.Project, error)
	DeleteOwned(ctx context.Context, ownerID, id primitive.ObjectID) error
}

// ProjectMongoRepository lưu dự án trong MongoDB
type ProjectMongoRepository struct {
	*basesvc.BaseServiceMongoImpl[models.Project]
}

// NewProjectMongoRepository tạo repository từ collection đã đăng ký
func NewProjectMongoRepository() (*ProjectMongoRepository, error) {
	base, err := basesvc.NewRegisteredMongo[models.Project](global.MongoDB_ColNames.Projects)
	if err != nil {
		return nil, err
	}
	return &ProjectMongoRepository{BaseServiceMongoImpl: base}, nil
}

func ownedFilter(ownerID, id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "ownerId": ownerID}
}

// Create thêm dự án mới
func (r *ProjectMongoRepository) Create(ctx context.Context, project models.Project) (*models.Project, error) {
	created, err := r.InsertOne(ctx, project)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// FindOwned tìm dự án của owner
func (r *ProjectMongoRepository) FindOwned(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Project, error) {
	project, err := r.FindOne(ctx, ownedFilter(ownerID, id))
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListOwned liệt kê dự án của owner, mới cập nhật trước
func (r *ProjectMongoRepository) ListOwned(ctx context.Context, ownerID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[models.Project], error) {
	return r.FindPage(ctx, bson.M{"ownerId": ownerID}, page, limit, bson.D{{Key: "updatedAt", Value: -1}})
}

// UpdateOwned cập nhật các field trong set
func (r *ProjectMongoRepository) UpdateOwned(ctx context.Context, ownerID, id primitive.ObjectID, set map[string]interface{}) (*models.Project, error) {
	updated, err := r.UpdateOne(ctx, ownedFilter(ownerID, id), &basesvc.UpdateData{Set: set})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteOwned xóa dự án của owner
func (r *ProjectMongoRepository) DeleteOwned(ctx context.Context, ownerID, id primitive.ObjectID) error {
	return r.DeleteOne(ctx, ownedFilter(ownerID, id))
}
