package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Soybean501/clipvox-ai/internal/logger"

	"github.com/nats-io/nats.go"
)

const (
	// maxCASRetries là số lần thử lại khi revision bị tiến trình khác cập nhật trước
	maxCASRetries = 8
	// defaultBucketTTL là thời gian sống tối đa của một entry trong KV bucket
	defaultBucketTTL = time.Hour
)

// invalidKeyChars là các ký tự không hợp lệ trong key của NATS KV
var invalidKeyChars = regexp.MustCompile(`[^-/_=.a-zA-Z0-9]`)

// ErrContention trả về khi không cập nhật được bộ đếm sau maxCASRetries lần
var ErrContention = errors.New("rate limit counter contention")

// NatsKVLimiter lưu bộ đếm dạng JSON trong JetStream key-value, cập nhật bằng compare-and-set theo revision
type NatsKVLimiter struct {
	kv  nats.KeyValue
	now func() time.Time
}

// NewNatsKVLimiter bind vào KV bucket, tạo mới nếu chưa có.
// ttl là thời gian sống của entry, phải ≥ window dài nhất được dùng (0 = 1 giờ).
func NewNatsKVLimiter(js nats.JetStreamContext, bucketName string, ttl time.Duration) (*NatsKVLimiter, error) {
	if ttl <= 0 {
		ttl = defaultBucketTTL
	}

	kv, err := js.KeyValue(bucketName)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket:      bucketName,
			Description: "ClipVox rate limit counters",
			TTL:         ttl,
			History:     1,
			Storage:     nats.FileStorage,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to bind key-value bucket '%s': %w", bucketName, err)
	}

	return &NatsKVLimiter{kv: kv, now: time.Now}, nil
}

// Check ghi nhận một request cho key. limit ≤ 0 nghĩa là không giới hạn.
func (l *NatsKVLimiter) Check(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	if limit <= 0 {
		return Result{Allowed: true}, nil
	}
	kvKey := sanitizeKey(key)

	for attempt := 0; attempt < maxCASRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		var current *bucket
		var revision uint64
		entry, err := l.kv.Get(kvKey)
		switch {
		case errors.Is(err, nats.ErrKeyNotFound):
		case err != nil:
			return Result{}, fmt.Errorf("failed to read counter '%s': %w", kvKey, err)
		default:
			var b bucket
			if jsonErr := json.Unmarshal(entry.Value(), &b); jsonErr == nil {
				current = &b
			}
			revision = entry.Revision()
		}

		next, res, changed := apply(current, l.now(), limit, window)
		if !changed {
			return res, nil
		}

		data, err := json.Marshal(next)
		if err != nil {
			return Result{}, err
		}
		if revision == 0 {
			_, err = l.kv.Create(kvKey, data)
		} else {
			_, err = l.kv.Update(kvKey, data, revision)
		}
		if err == nil {
			return res, nil
		}
		if !isConflict(err) {
			return Result{}, fmt.Errorf("failed to write counter '%s': %w", kvKey, err)
		}
		logger.WithModule("ratelimit").WithField("key", kvKey).Debugf("Counter bị cập nhật đồng thời, thử lại lần %d", attempt+1)
	}
	return Result{}, ErrContention
}

// isConflict nhận diện lỗi revision không khớp của Create/Update (wrong last sequence)
func isConflict(err error) bool {
	return errors.Is(err, nats.ErrKeyExists)
}

// sanitizeKey đổi các ký tự không hợp lệ (ví dụ ':') thành '_' và bỏ '.' ở hai đầu
func sanitizeKey(key string) string {
	cleaned := strings.Trim(invalidKeyChars.ReplaceAllString(key, "_"), ".")
	if cleaned == "" {
		return "_"
	}
	return cleaned
}
