package ratelimit

import (
	"context"
	"sync"
	"time"
)

// sweepInterval là khoảng thời gian tối thiểu giữa hai lần dọn bucket hết hạn
const sweepInterval = time.Minute

// MemoryLimiter giữ bộ đếm trong bộ nhớ, bảo vệ bằng mutex
type MemoryLimiter struct {
	mu        sync.Mutex
	buckets   map[string]bucket
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryLimiter tạo limiter trong bộ nhớ
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		buckets: make(map[string]bucket),
		now:     time.Now,
	}
}

// Check ghi nhận một request cho key. limit ≤ 0 nghĩa là không giới hạn.
func (l *MemoryLimiter) Check(_ context.Context, key string, limit int, window time.Duration) (Result, error) {
	if limit <= 0 {
		return Result{Allowed: true}, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	var current *bucket
	if b, ok := l.buckets[key]; ok {
		current = &b
	}
	next, res, changed := apply(current, now, limit, window)
	if changed {
		l.buckets[key] = next
	}
	return res, nil
}

// sweep xóa bucket đã hết hạn; gọi khi đang giữ mu
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now
	nowMs := now.UnixMilli()
	for key, b := range l.buckets {
		if nowMs >= b.ExpiresAt {
			delete(l.buckets, key)
		}
	}
}

// Len trả về số bucket đang giữ
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
