package logger

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// FilterHook đánh dấu (field "_filtered") các entry không khớp bộ lọc theo
// module, HTTP method và log type. AsyncHook bỏ qua các entry đã đánh dấu.
// Entry không có field tương ứng thì không bị lọc theo tiêu chí đó.
type FilterHook struct {
	allowedModules  map[string]bool
	allowedMethods  map[string]bool
	allowedLogTypes map[string]bool

	mu sync.RWMutex
}

// NewFilterHook tạo filter hook từ cấu hình
func NewFilterHook(cfg *LogConfig) *FilterHook {
	hook := &FilterHook{}
	hook.UpdateFilters(cfg)
	return hook
}

// UpdateFilters cập nhật bộ lọc (có thể gọi lúc runtime)
func (h *FilterHook) UpdateFilters(cfg *LogConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.allowedModules = parseFilter(cfg.FilterModules)
	h.allowedMethods = parseFilter(cfg.FilterMethods)
	h.allowedLogTypes = parseFilter(cfg.FilterLogTypes)
}

// parseFilter parse "a,b,c" thành set (lowercase). Trả về nil khi cho phép tất cả.
func parseFilter(filterStr string) map[string]bool {
	filterStr = strings.TrimSpace(filterStr)
	if filterStr == "" || filterStr == "*" {
		return nil
	}

	result := make(map[string]bool)
	for _, v := range strings.Split(filterStr, ",") {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "*" {
			return nil
		}
		if v != "" {
			result[v] = true
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// Levels trả về các log levels mà hook này xử lý
func (h *FilterHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đánh dấu entry bị lọc
func (h *FilterHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.allowedLogTypes != nil && !h.allowedLogTypes[entry.Level.String()] {
		entry.Data[filteredField] = true
		return nil
	}
	if !matchField(h.allowedModules, entry.Data["module"]) || !matchField(h.allowedMethods, entry.Data["method"]) {
		entry.Data[filteredField] = true
	}
	return nil
}

func matchField(allowed map[string]bool, value interface{}) bool {
	if allowed == nil {
		return true
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return true
	}
	return allowed[strings.ToLower(s)]
}
