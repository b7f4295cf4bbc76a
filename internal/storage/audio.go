// Package storage lưu file âm thanh của kịch bản theo key.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrAudioNotFound trả về khi key không tồn tại
var ErrAudioNotFound = errors.New("audio not found")

// Audio là nội dung một file âm thanh
type Audio struct {
	Data        []byte
	ContentType string
}

// AudioStore lưu/đọc/xóa audio theo key. Delete với key không tồn tại không phải lỗi.
type AudioStore interface {
	Put(ctx context.Context, key string, audio Audio) error
	Get(ctx context.Context, key string) (*Audio, error)
	Delete(ctx context.Context, key string) error
}

// NewAudioKey tạo key mới cho audio của kịch bản: voice/<scriptId>/<uuid>.mp3
func NewAudioKey(scriptID string) string {
	return fmt.Sprintf("voice/%s/%s.mp3", scriptID, uuid.NewString())
}
