// Package ratelimit giới hạn số request theo key trong cửa sổ thời gian cố định.
//
// MemoryLimiter dùng cho một tiến trình; NatsKVLimiter lưu bộ đếm trong NATS JetStream
// key-value để nhiều tiến trình dùng chung.
package ratelimit

import (
	"context"
	"time"
)

// Result là kết quả một lần kiểm tra
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration // > 0 khi bị từ chối
}

// Limiter kiểm tra và ghi nhận một request cho key
type Limiter interface {
	Check(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
}

// bucket là bộ đếm của một key trong cửa sổ hiện tại
type bucket struct {
	Count     int   `json:"count"`
	ExpiresAt int64 `json:"expiresAt"` // Unix milli
}

// apply tính trạng thái mới của bucket cho một request tại now.
// changed = false khi request bị từ chối (không cần ghi lại).
func apply(b *bucket, now time.Time, limit int, window time.Duration) (next bucket, res Result, changed bool) {
	nowMs := now.UnixMilli()
	if b == nil || nowMs >= b.ExpiresAt {
		next = bucket{Count: 1, ExpiresAt: now.Add(window).UnixMilli()}
		return next, Result{Allowed: true, Remaining: limit - 1}, true
	}
	if b.Count >= limit {
		retry := time.Duration(b.ExpiresAt-nowMs) * time.Millisecond
		return *b, Result{Allowed: false, Remaining: 0, RetryAfter: retry}, false
	}
	next = bucket{Count: b.Count + 1, ExpiresAt: b.ExpiresAt}
	return next, Result{Allowed: true, Remaining: limit - next.Count}, true
}
