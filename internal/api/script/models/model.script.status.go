package models

import (
	"github.com/Soybean501/clipvox-ai/internal/common"
)

// ScriptStatus là trạng thái của quy trình sinh kịch bản
type ScriptStatus string

const (
	StatusDraft      ScriptStatus = "draft"      // Vừa tạo, chưa sinh
	StatusGenerating ScriptStatus = "generating" // Đang gọi mô hình ngôn ngữ
	StatusReady      ScriptStatus = "ready"      // Sinh thành công
	StatusError      ScriptStatus = "error"      // Lần sinh gần nhất thất bại
)

// transitions liệt kê các chuyển trạng thái hợp lệ.
// ready/error -> generating chỉ xảy ra khi người dùng yêu cầu sinh lại.
var transitions = map[ScriptStatus][]ScriptStatus{
	StatusDraft:      {StatusGenerating},
	StatusGenerating: {StatusReady, StatusError},
	StatusReady:      {StatusGenerating},
	StatusError:      {StatusGenerating},
}

// IsValid kiểm tra trạng thái có thuộc tập đã biết
func (s ScriptStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition trả về true khi được phép chuyển từ s sang to
func (s ScriptStatus) CanTransition(to ScriptStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition trả về trạng thái mới, hoặc ErrInvalidState (kèm from/to trong Details) khi không được phép
func (s ScriptStatus) Transition(to ScriptStatus) (ScriptStatus, error) {
	if !s.CanTransition(to) {
		return s, common.NewError(
			common.ErrCodeBusinessState,
			common.ErrInvalidState.Error(),
			common.StatusConflict,
			map[string]string{"from": string(s), "to": string(to)},
		)
	}
	return to, nil
}
