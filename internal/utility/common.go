package utility

import (
	"time"

	"github.com/Soybean501/clipvox-ai/internal/logger"
)

// GoProtect chạy f và bắt panic, ghi log thay vì làm dừng chương trình
func GoProtect(f func()) {
	defer func() {
		if err := recover(); err != nil {
			logger.GetErrorLogger().WithField("panic", err).Error("Đã bắt lỗi panic")
		}
	}()
	f()
}

// CurrentTimeInMilli trả về thời gian hiện tại tính bằng mili giây
func CurrentTimeInMilli() int64 {
	return time.Now().UnixMilli()
}
