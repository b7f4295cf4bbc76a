package registry

import (
	"errors"
	"sort"
	"testing"

	"github.com/Soybean501/clipvox-ai/internal/common"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("scripts", 1)
	if err != nil || !isNew {
		t.Fatalf("lần đăng ký đầu phải là item mới, isNew=%v err=%v", isNew, err)
	}
	isNew, _ = r.Register("scripts", 2)
	if isNew {
		t.Errorf("đăng ký lại phải trả về isNew=false")
	}
	if v, ok := r.Get("scripts"); !ok || v != 2 {
		t.Errorf("Get trả về %d,%v; mong đợi 2,true", v, ok)
	}
	if _, err := r.Register("", 3); !errors.Is(err, common.ErrRequiredField) {
		t.Errorf("tên rỗng phải trả về ErrRequiredField, nhận %v", err)
	}
}

func TestRegistry_MustGetMissing(t *testing.T) {
	r := NewRegistry[string]()
	if _, err := r.MustGet("projects"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("mong đợi ErrNotFound, nhận %v", err)
	}
}

func TestRegistry_ClearAll(t *testing.T) {
	r := NewRegistry[int]()
	_, _ = r.Register("a", 1)
	_, _ = r.Register("b", 2)

	names := r.Names()
	sort.Strings(names)
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("Names = %v", names)
	}

	cleaned := 0
	count, err := r.ClearAll(func(int) error { cleaned++; return nil })
	if err != nil || count != 2 || cleaned != 2 {
		t.Errorf("ClearAll count=%d cleaned=%d err=%v", count, cleaned, err)
	}
	if _, ok := r.Get("a"); ok {
		t.Errorf("item vẫn còn sau ClearAll")
	}
}
