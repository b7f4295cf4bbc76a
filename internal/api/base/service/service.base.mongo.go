// Package basesvc gom các thao tác CRUD chung trên một collection MongoDB.
// Repository của từng domain nhúng BaseServiceMongoImpl rồi chỉ viết thêm filter theo owner.
package basesvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/Soybean501/clipvox-ai/internal/api/base/models"
	"github.com/Soybean501/clipvox-ai/internal/common"
	"github.com/Soybean501/clipvox-ai/internal/global"
	"github.com/Soybean501/clipvox-ai/internal/utility"
)

// UpdateData là một update document với các toán tử được hỗ trợ
type UpdateData struct {
	Set         bson.M `bson:"$set,omitempty"`
	SetOnInsert bson.M `bson:"$setOnInsert,omitempty"`
	Unset       bson.M `bson:"$unset,omitempty"`
}

// ToUpdateData nhận UpdateData, map có sẵn toán tử ($set/$unset/$setOnInsert)
// hoặc struct/map thường (được bọc vào $set)
func ToUpdateData(data interface{}) (*UpdateData, error) {
	switch v := data.(type) {
	case *UpdateData:
		return v, nil
	case UpdateData:
		return &v, nil
	}

	fields, err := utility.ToMap(data)
	if err != nil {
		return nil, err
	}
	if _, ok := fields["$set"]; !ok {
		return &UpdateData{Set: fields}, nil
	}
	return &UpdateData{
		Set:         operand(fields["$set"]),
		SetOnInsert: operand(fields["$setOnInsert"]),
		Unset:       operand(fields["$unset"]),
	}, nil
}

// operand đọc vế phải của một toán tử; document lồng nhau có thể decode ra bson.D
func operand(v interface{}) bson.M {
	switch val := v.(type) {
	case map[string]interface{}:
		return val
	case bson.M:
		return val
	case primitive.D:
		return val.Map()
	}
	return nil
}

// BaseServiceMongoImpl bọc một collection; model T phải có tag bson createdAt/updatedAt
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo tạo service trên collection cho trước
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{collection: collection}
}

// NewRegisteredMongo tạo service trên collection đã đăng ký trong global.RegistryCollections
func NewRegisteredMongo[T any](name string) (*BaseServiceMongoImpl[T], error) {
	collection, err := global.RegistryCollections.MustGet(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get %s collection: %w", name, err)
	}
	return NewBaseServiceMongo[T](collection), nil
}

func orAll(filter bson.M) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return filter
}

// insertDocument chuyển data thành document để insert và gán createdAt/updatedAt.
// Field chuỗi rỗng bị bỏ để sparse unique index không coi "" là giá trị.
func insertDocument(data interface{}, now int64) (bson.M, error) {
	doc, err := utility.ToMap(data)
	if err != nil {
		return nil, common.ErrInvalidFormat
	}
	for key, value := range doc {
		if str, ok := value.(string); ok && str == "" {
			delete(doc, key)
		}
	}
	doc["createdAt"], doc["updatedAt"] = now, now
	return doc, nil
}

// InsertOne thêm document và trả về bản ghi đọc lại từ DB
func (s *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	doc, err := insertDocument(data, utility.CurrentTimeInMilli())
	if err != nil {
		return zero, err
	}

	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return s.FindOne(ctx, bson.M{"_id": result.InsertedID})
}

// FindOne trả về ErrNotFound khi không có document khớp
func (s *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (T, error) {
	var zero, doc T
	err := s.collection.FindOne(ctx, orAll(filter), opts...).Decode(&doc)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return doc, nil
}

// FindOneById tìm theo _id
func (s *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return s.FindOne(ctx, bson.M{"_id": id})
}

// Find luôn trả về slice khác nil
func (s *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := s.collection.Find(ctx, orAll(filter), opts...)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return docs, nil
}

// FindPage trả về một trang theo thứ tự sort, kèm tổng số document khớp filter
func (s *BaseServiceMongoImpl[T]) FindPage(ctx context.Context, filter bson.M, page, limit int64, sort bson.D) (*basemodels.PaginateResult[T], error) {
	page, limit, skip := NormalizePage(page, limit)
	filter = orAll(filter)

	total, err := s.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	opts := options.Find().SetSkip(skip).SetLimit(limit)
	if len(sort) > 0 {
		opts.SetSort(sort)
	}
	items, err := s.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return &basemodels.PaginateResult[T]{
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(items)),
		Items:     items,
		Total:     total,
		TotalPage: TotalPages(total, limit),
	}, nil
}

// UpdateOne áp update lên document khớp filter (không upsert), luôn đổi updatedAt,
// và trả về document sau khi cập nhật
func (s *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter bson.M, update interface{}) (T, error) {
	var zero, doc T

	data, err := ToUpdateData(update)
	if err != nil {
		return zero, common.ErrInvalidFormat
	}
	if data.Set == nil {
		data.Set = bson.M{}
	}
	data.Set["updatedAt"] = utility.CurrentTimeInMilli()

	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = s.collection.FindOneAndUpdate(ctx, orAll(filter), data, after).Decode(&doc)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}
	return doc, nil
}

// DeleteOne trả về ErrNotFound khi không xóa được document nào
func (s *BaseServiceMongoImpl[T]) DeleteOne(ctx context.Context, filter bson.M) error {
	result, err := s.collection.DeleteOne(ctx, orAll(filter))
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteMany trả về số document đã xóa
func (s *BaseServiceMongoImpl[T]) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	result, err := s.collection.DeleteMany(ctx, orAll(filter))
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.DeletedCount, nil
}

// DocumentExists dừng đếm ở document đầu tiên
func (s *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter bson.M) (bool, error) {
	count, err := s.collection.CountDocuments(ctx, orAll(filter), options.Count().SetLimit(1))
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return count > 0, nil
}

// NormalizePage đưa page về >= 1, limit về 10 khi không hợp lệ, và tính skip
func NormalizePage(page, limit int64) (int64, int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return page, limit, (page - 1) * limit
}

// TotalPages làm tròn lên; không có document thì 0 trang
func TotalPages(total, limit int64) int64 {
	if total == 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
