package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

// filteredField đánh dấu entry đã bị FilterHook loại
const filteredField = "_filtered"

// AsyncHook ghi log bất đồng bộ vào nhiều writers (file, stdout) để không block request
type AsyncHook struct {
	writers []io.Writer
	entries chan *logrus.Entry
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// NewAsyncHookWithWriters tạo async hook với buffer bufferSize entries (mặc định 1000)
func NewAsyncHookWithWriters(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	hook := &AsyncHook{
		writers: writers,
		entries: make(chan *logrus.Entry, bufferSize),
	}

	hook.wg.Add(1)
	go hook.processEntries()

	return hook
}

// Levels trả về các log levels mà hook này xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire chỉ đưa entry vào channel, không block.
// Channel đầy thì bỏ entry.
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		// Hook đã đóng: ghi trực tiếp
		h.write(cloneEntry(entry))
		return nil
	}

	select {
	case h.entries <- cloneEntry(entry):
	default:
	}
	return nil
}

// cloneEntry sao chép entry để goroutine ghi log không dùng chung Data/Buffer với logrus.
// Entry.Dup không giữ Level, Message và Caller nên không dùng được ở đây.
func cloneEntry(entry *logrus.Entry) *logrus.Entry {
	data := make(logrus.Fields, len(entry.Data))
	for k, v := range entry.Data {
		data[k] = v
	}
	return &logrus.Entry{
		Logger:  entry.Logger,
		Data:    data,
		Time:    entry.Time,
		Level:   entry.Level,
		Caller:  entry.Caller,
		Message: entry.Message,
		Context: entry.Context,
	}
}

// processEntries chạy trong goroutine riêng, có recover để logger không làm crash server
func (h *AsyncHook) processEntries() {
	defer h.wg.Done()

	for entry := range h.entries {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// Không dùng logger ở đây để tránh vòng lặp
					fmt.Fprintf(os.Stderr, "[LOGGER PANIC] Logger goroutine panic recovered: %v\n", r)
					debug.PrintStack()
				}
			}()
			h.write(entry)
		}()
	}
}

func (h *AsyncHook) write(entry *logrus.Entry) {
	if filtered, ok := entry.Data[filteredField].(bool); ok && filtered {
		return
	}
	delete(entry.Data, filteredField)

	var data []byte
	var err error
	if entry.Logger != nil && entry.Logger.Formatter != nil {
		data, err = entry.Logger.Formatter.Format(entry)
	} else {
		var line string
		line, err = entry.String()
		data = []byte(line)
	}
	if err != nil {
		return
	}

	for _, writer := range h.writers {
		// Writer chậm hoặc lỗi không ảnh hưởng writer khác
		_, _ = writer.Write(data)
	}
}

// Close đóng hook và đợi ghi xong các entries còn trong buffer
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.entries)
	h.mu.Unlock()

	h.wg.Wait()
	return nil
}
