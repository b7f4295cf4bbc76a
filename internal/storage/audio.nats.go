package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nats-io/nats.go"
)

const contentTypeHeader = "Content-Type"

// NatsAudioStore lưu audio trong JetStream object store
type NatsAudioStore struct {
	bucket string
	store  nats.ObjectStore
}

// NewNatsAudioStore bind vào object store bucket, tạo mới nếu chưa có
func NewNatsAudioStore(js nats.JetStreamContext, bucketName string) (*NatsAudioStore, error) {
	store, err := js.ObjectStore(bucketName)
	if errors.Is(err, nats.ErrStreamNotFound) || errors.Is(err, nats.ErrBucketNotFound) {
		store, err = js.CreateObjectStore(&nats.ObjectStoreConfig{
			Bucket:      bucketName,
			Description: fmt.Sprintf("Storage for the %s bucket.", bucketName),
			Storage:     nats.FileStorage,
			Replicas:    1,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to bind object store bucket '%s': %w", bucketName, err)
	}

	return &NatsAudioStore{bucket: bucketName, store: store}, nil
}

// Put ghi audio, content type lưu trong header của object
func (n *NatsAudioStore) Put(_ context.Context, key string, audio Audio) error {
	headers := nats.Header{}
	headers.Set(contentTypeHeader, audio.ContentType)

	_, err := n.store.Put(&nats.ObjectMeta{
		Name:    key,
		Headers: headers,
	}, bytes.NewReader(audio.Data))
	if err != nil {
		return fmt.Errorf("failed to put object '%s' to bucket '%s': %w", key, n.bucket, err)
	}
	return nil
}

// Get đọc audio theo key
func (n *NatsAudioStore) Get(_ context.Context, key string) (*Audio, error) {
	obj, err := n.store.Get(key)
	if errors.Is(err, nats.ErrObjectNotFound) {
		return nil, ErrAudioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get object '%s' from bucket '%s': %w", key, n.bucket, err)
	}

	data, readErr := io.ReadAll(obj)
	closeErr := obj.Close()
	if readErr != nil {
		return nil, fmt.Errorf("failed to read object '%s': %w", key, readErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close object '%s': %w", key, closeErr)
	}

	audio := &Audio{Data: data}
	if info, err := obj.Info(); err == nil && info.Headers != nil {
		audio.ContentType = info.Headers.Get(contentTypeHeader)
	}
	return audio, nil
}

// Delete xóa audio; key không tồn tại được bỏ qua
func (n *NatsAudioStore) Delete(_ context.Context, key string) error {
	err := n.store.Delete(key)
	if err != nil && !errors.Is(err, nats.ErrObjectNotFound) {
		return fmt.Errorf("failed to delete object '%s' from bucket '%s': %w", key, n.bucket, err)
	}
	return nil
}
