package database

import (
	"context"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/Soybean501/clipvox-ai/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureCollections tạo các collection còn thiếu trong database
func EnsureCollections(ctx context.Context, db *mongo.Database, names []string) error {
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, name := range existing {
		have[name] = true
	}

	for _, name := range names {
		if name == "" || have[name] {
			continue
		}
		logger.GetAppLogger().Infof("Collection %s chưa tồn tại, tạo mới.", name)
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}
	return nil
}

// parseOrder trích thứ tự sắp xếp từ tag (1 hoặc -1)
func parseOrder(tag string) int {
	if strings.Contains(tag, "order:-1") {
		return -1
	}
	return 1
}

// parseIndexTag tách tag index: các cấu hình cách nhau bởi ';', mỗi cấu hình gồm key[:value] cách nhau bởi ','
func parseIndexTag(tag string) []map[string]string {
	result := []map[string]string{}
	for _, part := range strings.Split(tag, ";") {
		entry := map[string]string{}
		for _, subPart := range strings.Split(part, ",") {
			kv := strings.SplitN(subPart, ":", 2)
			if len(kv) == 2 {
				entry[kv[0]] = kv[1]
			} else {
				entry[kv[0]] = ""
			}
		}
		result = append(result, entry)
	}
	return result
}

// compareIndex so sánh index hiện có với cấu hình mới (keys, unique, TTL)
func compareIndex(existingIndex bson.M, keys bson.D, opts *options.IndexOptions) bool {
	existingKeys, ok := existingIndex["key"].(bson.M)
	if !ok {
		return false
	}
	if len(existingKeys) != len(keys) {
		return false
	}

	for _, key := range keys {
		existingValue, exists := existingKeys[key.Key]
		if !exists {
			return false
		}

		newVal, isInt := key.Value.(int)
		if !isInt {
			if existingValue != key.Value {
				return false
			}
			continue
		}
		switch ev := existingValue.(type) {
		case int32:
			if int(ev) != newVal {
				return false
			}
		case int64:
			if int(ev) != newVal {
				return false
			}
		case float64:
			if int(ev) != newVal {
				return false
			}
		default:
			return false
		}
	}

	wantUnique := opts.Unique != nil && *opts.Unique
	unique, _ := existingIndex["unique"].(bool)
	if unique != wantUnique {
		return false
	}

	if ttl, ok := existingIndex["expireAfterSeconds"].(int32); ok && opts.ExpireAfterSeconds != nil {
		if ttl != *opts.ExpireAfterSeconds {
			return false
		}
	}
	return true
}

// checkAndReplaceIndex tạo index, hoặc xóa rồi tạo lại khi cấu hình khác
func checkAndReplaceIndex(
	ctx context.Context,
	collection *mongo.Collection,
	existingIndexes map[string]bson.M,
	indexName string,
	keys bson.D,
	opts *options.IndexOptions,
) error {
	log := logger.GetAppLogger().WithField("collection", collection.Name())

	if existingIndex, exists := existingIndexes[indexName]; exists {
		if compareIndex(existingIndex, keys, opts) {
			log.Debugf("Index %s đã tồn tại và đúng cấu hình, bỏ qua", indexName)
			return nil
		}
		if _, err := collection.Indexes().DropOne(ctx, indexName); err != nil {
			return fmt.Errorf("không thể xóa index %s: %w", indexName, err)
		}
		log.Infof("Đã xóa index cũ: %s", indexName)
	}

	if _, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys,
		Options: opts,
	}); err != nil {
		return fmt.Errorf("không thể tạo index %s: %w", indexName, err)
	}
	log.Infof("Đã tạo index: %s", indexName)
	return nil
}

// indexSpec là một index cần tạo, suy ra từ struct tag `index`
type indexSpec struct {
	name string
	keys bson.D
	opts *options.IndexOptions
}

// indexSpecs đọc tag `index` của model.
// Hỗ trợ: single, unique (kèm sparse), ttl:<giây>, text, compound:<tên nhóm> (nhóm có "_unique" là unique), order:-1.
func indexSpecs(model interface{}) ([]indexSpec, error) {
	modelType := reflect.TypeOf(model)
	if modelType.Kind() == reflect.Ptr {
		modelType = modelType.Elem()
	}

	var specs []indexSpec
	var groupOrder []string
	groups := map[string]*indexSpec{}

	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		tag, ok := field.Tag.Lookup("index")
		if !ok {
			continue
		}
		bsonField := strings.Split(field.Tag.Get("bson"), ",")[0]
		if bsonField == "" || bsonField == "-" {
			continue
		}

		for _, cfg := range parseIndexTag(tag) {
			order := parseOrder(tag)
			_, sparse := cfg["sparse"]

			if _, ok := cfg["text"]; ok {
				name := bsonField + "_text"
				specs = append(specs, indexSpec{name, bson.D{{Key: bsonField, Value: "text"}}, options.Index().SetName(name)})
			}
			if _, ok := cfg["single"]; ok {
				name := bsonField + "_single"
				specs = append(specs, indexSpec{name, bson.D{{Key: bsonField, Value: order}}, options.Index().SetName(name)})
			}
			if _, ok := cfg["unique"]; ok {
				name := bsonField + "_unique"
				opts := options.Index().SetName(name).SetUnique(true)
				if sparse {
					opts = opts.SetSparse(true)
				}
				specs = append(specs, indexSpec{name, bson.D{{Key: bsonField, Value: 1}}, opts})
			}
			if ttlValue, ok := cfg["ttl"]; ok {
				ttl, err := strconv.Atoi(ttlValue)
				if err != nil {
					return nil, fmt.Errorf("TTL không hợp lệ: %w", err)
				}
				name := bsonField + "_ttl"
				specs = append(specs, indexSpec{name, bson.D{{Key: bsonField, Value: 1}}, options.Index().SetName(name).SetExpireAfterSeconds(int32(ttl))})
			}
			if groupName, ok := cfg["compound"]; ok && groupName != "" {
				g, exists := groups[groupName]
				if !exists {
					g = &indexSpec{name: groupName, opts: options.Index().SetName(groupName)}
					if strings.Contains(groupName, "_unique") {
						g.opts = g.opts.SetUnique(true)
					}
					groups[groupName] = g
					groupOrder = append(groupOrder, groupName)
				}
				g.keys = append(g.keys, bson.E{Key: bsonField, Value: order})
				if sparse {
					g.opts = g.opts.SetSparse(true)
				}
			}
		}
	}

	for _, name := range groupOrder {
		specs = append(specs, *groups[name])
	}
	return specs, nil
}

// CreateIndexes đồng bộ index của collection với tag `index` trong model
func CreateIndexes(ctx context.Context, collection *mongo.Collection, model interface{}) error {
	specs, err := indexSpecs(model)
	if err != nil {
		return err
	}

	cursor, err := collection.Indexes().List(ctx)
	if err != nil {
		return fmt.Errorf("không thể lấy danh sách index: %w", err)
	}
	defer cursor.Close(ctx)

	existingIndexes := map[string]bson.M{}
	for cursor.Next(ctx) {
		var indexInfo bson.M
		if err := cursor.Decode(&indexInfo); err != nil {
			return fmt.Errorf("không thể giải mã thông tin index: %w", err)
		}
		if name, ok := indexInfo["name"].(string); ok {
			existingIndexes[name] = indexInfo
		}
	}

	for _, spec := range specs {
		if err := checkAndReplaceIndex(ctx, collection, existingIndexes, spec.name, spec.keys, spec.opts); err != nil {
			return err
		}
	}
	return nil
}
