// Package registry quản lý các singleton (collection MongoDB, ...) theo tên, an toàn khi dùng đồng thời.
package registry

import (
	"fmt"
	"sync"

	"github.com/Soybean501/clipvox-ai/internal/common"
)

// Registry là registry generic, thread-safe nhờ sync.RWMutex.
//
// Example:
//
//	colls := NewRegistry[*mongo.Collection]()
//	colls.Register("scripts", db.Collection("scripts"))
//	if coll, ok := colls.Get("scripts"); ok {
//	    ...
//	}
type Registry[T any] struct {
	items map[string]T
	mu    sync.RWMutex
}

// NewRegistry tạo registry rỗng
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register đăng ký item theo tên, ghi đè nếu đã tồn tại.
// isNew = false khi ghi đè item cũ.
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, fmt.Errorf("name cannot be empty: %w", common.ErrRequiredField)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get lấy item theo tên
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

// MustGet lấy item theo tên, trả về lỗi ErrNotFound nếu chưa đăng ký
func (r *Registry[T]) MustGet(name string) (T, error) {
	item, ok := r.Get(name)
	if !ok {
		return item, fmt.Errorf("item not registered: %s: %w", name, common.ErrNotFound)
	}
	return item, nil
}

// Names trả về tên các item đã đăng ký (không theo thứ tự)
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	return names
}

// ClearAll xóa tất cả items, gọi cleanup (nếu có) cho từng item trước khi xóa
func (r *Registry[T]) ClearAll(cleanup func(T) error) (count int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count = len(r.items)
	if count == 0 {
		return 0, nil
	}

	if cleanup != nil {
		var errs []error
		for name, item := range r.items {
			if err := cleanup(item); err != nil {
				errs = append(errs, fmt.Errorf("failed to cleanup %s: %w", name, err))
			}
		}
		if len(errs) > 0 {
			return 0, fmt.Errorf("cleanup errors occurred: %v", errs)
		}
	}

	r.items = make(map[string]T)
	return count, nil
}
