package utility

import (
	"fmt"
	"strconv"
)

// FormatBytes chuyển số bytes thành chuỗi dễ đọc (KB, MB, GB)
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// ParsePagination đọc page/limit dạng chuỗi từ query.
// Giá trị thiếu hoặc không hợp lệ dùng mặc định; limit bị chặn ở maxLimit.
func ParsePagination(pageStr, limitStr string, defaultLimit, maxLimit int64) (page, limit int64) {
	page, err := strconv.ParseInt(pageStr, 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
