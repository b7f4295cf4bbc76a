package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/nats-io/nats-server/v2/test"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startJetStream chạy NATS server nhúng có JetStream cho test
func startJetStream(t *testing.T) nats.JetStreamContext {
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
	return js
}

func TestNewAudioKey(t *testing.T) {
	a := NewAudioKey("64f0c0ffee")
	b := NewAudioKey("64f0c0ffee")

	assert.True(t, strings.HasPrefix(a, "voice/64f0c0ffee/"))
	assert.True(t, strings.HasSuffix(a, ".mp3"))
	assert.NotEqual(t, a, b)
}

func TestNatsAudioStore_PutGetDelete(t *testing.T) {
	js := startJetStream(t)
	store, err := NewNatsAudioStore(js, "test_audio")
	require.NoError(t, err)

	ctx := context.Background()
	key := NewAudioKey("script-1")
	audio := Audio{Data: []byte("ID3 audio bytes"), ContentType: "audio/mp3"}

	require.NoError(t, store.Put(ctx, key, audio))

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, audio.Data, got.Data)
	assert.Equal(t, "audio/mp3", got.ContentType)

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrAudioNotFound)

	// Xóa key không tồn tại không phải lỗi
	assert.NoError(t, store.Delete(ctx, key))
}

func TestNatsAudioStore_RebindsExistingBucket(t *testing.T) {
	js := startJetStream(t)
	first, err := NewNatsAudioStore(js, "shared_audio")
	require.NoError(t, err)
	require.NoError(t, first.Put(context.Background(), "voice/a/b.mp3", Audio{Data: []byte("x"), ContentType: "audio/mp3"}))

	second, err := NewNatsAudioStore(js, "shared_audio")
	require.NoError(t, err)
	got, err := second.Get(context.Background(), "voice/a/b.mp3")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got.Data)
}

var _ AudioStore = (*NatsAudioStore)(nil)
var _ AudioStore = (*MongoAudioStore)(nil)
