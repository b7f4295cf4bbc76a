package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startJetStream chạy NATS server nhúng có JetStream cho test
func startJetStream(t *testing.T) (*server.Server, nats.JetStreamContext) {
	t.Helper()

	opts := test.DefaultTestOptions
	opts.Port = -1
	opts.JetStream = true
	opts.StoreDir = t.TempDir()
	srv := test.RunServer(&opts)
	t.Cleanup(srv.Shutdown)

	nc, err := nats.Connect(srv.ClientURL())
	require.NoError(t, err)
	t.Cleanup(nc.Close)

	js, err := nc.JetStream()
	require.NoError(t, err)
	return srv, js
}

func TestNatsKVLimiter_FixedWindow(t *testing.T) {
	_, js := startJetStream(t)

	l, err := NewNatsKVLimiter(js, "test_rate_limit", 0)
	require.NoError(t, err)
	clock := newClock()
	l.now = clock.Now

	assertFixedWindow(t, l, clock)
}

func TestNatsKVLimiter_BindsExistingBucket(t *testing.T) {
	_, js := startJetStream(t)

	first, err := NewNatsKVLimiter(js, "shared_bucket", time.Minute)
	require.NoError(t, err)
	res, err := first.Check(context.Background(), "scripts:u", 2, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Remaining)

	// Tiến trình thứ hai dùng chung bộ đếm
	second, err := NewNatsKVLimiter(js, "shared_bucket", time.Minute)
	require.NoError(t, err)
	res, err = second.Check(context.Background(), "scripts:u", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	res, err = first.Check(context.Background(), "scripts:u", 2, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

func TestNatsKVLimiter_ConcurrentChecksNeverExceedLimit(t *testing.T) {
	_, js := startJetStream(t)
	l, err := NewNatsKVLimiter(js, "concurrent_bucket", 0)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := l.Check(context.Background(), "scripts:hot", 3, time.Minute)
			if err == nil && res.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, allowed, 3)
}
