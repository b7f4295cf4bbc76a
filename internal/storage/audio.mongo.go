package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AudioDocument là một file audio lưu trong MongoDB (khi không cấu hình NATS)
type AudioDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Key         string             `bson:"key" index:"unique"`
	ContentType string             `bson:"contentType"`
	Data        []byte             `bson:"data"`
	CreatedAt   int64              `bson:"createdAt"`
	UpdatedAt   int64              `bson:"updatedAt"`
}

// MongoAudioStore lưu audio trong collection script_voice_audio.
// Audio TTS của một kịch bản nằm dưới giới hạn 16MB của một document.
type MongoAudioStore struct {
	collection *mongo.Collection
}

// NewMongoAudioStore tạo store trên collection cho trước
func NewMongoAudioStore(collection *mongo.Collection) *MongoAudioStore {
	return &MongoAudioStore{collection: collection}
}

// Put ghi (upsert) audio theo key
func (m *MongoAudioStore) Put(ctx context.Context, key string, audio Audio) error {
	now := time.Now().UnixMilli()
	_, err := m.collection.UpdateOne(ctx,
		bson.M{"key": key},
		bson.M{
			"$set": bson.M{
				"contentType": audio.ContentType,
				"data":        audio.Data,
				"updatedAt":   now,
			},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to store audio '%s': %w", key, err)
	}
	return nil
}

// Get đọc audio theo key
func (m *MongoAudioStore) Get(ctx context.Context, key string) (*Audio, error) {
	var doc AudioDocument
	err := m.collection.FindOne(ctx, bson.M{"key": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAudioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load audio '%s': %w", key, err)
	}
	return &Audio{Data: doc.Data, ContentType: doc.ContentType}, nil
}

// Delete xóa audio theo key
func (m *MongoAudioStore) Delete(ctx context.Context, key string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"key": key}); err != nil {
		return fmt.Errorf("failed to delete audio '%s': %w", key, err)
	}
	return nil
}
