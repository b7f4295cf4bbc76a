package scriptdto

import (
	"fmt"

	models "github.com/Soybean501/clipvox-ai/internal/api/script/models"
)

// ScriptCreateInput đầu vào tạo kịch bản cho một dự án.
type ScriptCreateInput struct {
	ProjectID     string `json:"projectId" validate:"required"`
	Topic         string `json:"topic" validate:"required,not_blank,min=5,max=200,no_xss"`
	Tone          string `json:"tone" validate:"omitempty,script_tone"` // rỗng = educational
	Style         string `json:"style" validate:"max=120,no_xss"`
	LengthMinutes int    `json:"lengthMinutes" validate:"required,min=1,max=300"`
	Chapters      int    `json:"chapters" validate:"required,min=1,max=50"`
}

// ScriptUpdateInput đầu vào cập nhật một phần kịch bản; field nil là không đổi.
type ScriptUpdateInput struct {
	Topic         *string `json:"topic" validate:"omitnil,not_blank,min=5,max=200,no_xss"`
	Tone          *string `json:"tone" validate:"omitnil,script_tone"`
	Style         *string `json:"style" validate:"omitnil,max=120,no_xss"`
	LengthMinutes *int    `json:"lengthMinutes" validate:"omitnil,min=1,max=300"`
	Chapters      *int    `json:"chapters" validate:"omitnil,min=1,max=50"`
	Content       *string `json:"content" validate:"omitnil,max=30000"`
}

// IsEmpty trả về true khi không có field nào được gửi lên
func (in *ScriptUpdateInput) IsEmpty() bool {
	return in.Topic == nil && in.Tone == nil && in.Style == nil &&
		in.LengthMinutes == nil && in.Chapters == nil && in.Content == nil
}

// SynthesizeVoiceInput đầu vào tạo giọng đọc.
type SynthesizeVoiceInput struct {
	VoiceID string `json:"voiceId" validate:"required,max=64"`
}

// VoiceOutput là giọng đọc trả về cho client, kèm đường dẫn tải audio
type VoiceOutput struct {
	models.ScriptVoice
	AudioURL string `json:"audioUrl"`
}

// ScriptOutput là kịch bản trả về cho client.
// Field Voice ở đây che field Voice của models.Script khi encode JSON.
type ScriptOutput struct {
	models.Script
	Voice *VoiceOutput `json:"voice"`
}

// AudioURL trả về đường dẫn tải audio; ts đổi mỗi lần tạo lại để tránh cache
func AudioURL(scriptID string, updatedAt int64) string {
	return fmt.Sprintf("/api/v1/scripts/%s/voice/audio?ts=%d", scriptID, updatedAt)
}

// NewVoiceOutput chuyển giọng đọc của kịch bản sang output; nil khi chưa có
func NewVoiceOutput(s *models.Script) *VoiceOutput {
	if s == nil || s.Voice == nil {
		return nil
	}
	return &VoiceOutput{
		ScriptVoice: *s.Voice,
		AudioURL:    AudioURL(s.ID.Hex(), s.Voice.UpdatedAt),
	}
}

// NewScriptOutput chuyển kịch bản sang output
func NewScriptOutput(s *models.Script) *ScriptOutput {
	if s == nil {
		return nil
	}
	out := &ScriptOutput{Script: *s, Voice: NewVoiceOutput(s)}
	if out.Outline == nil {
		out.Outline = []string{}
	}
	return out
}

// NewScriptOutputs chuyển danh sách kịch bản sang output
func NewScriptOutputs(scripts []models.Script) []*ScriptOutput {
	out := make([]*ScriptOutput, 0, len(scripts))
	for i := range scripts {
		out = append(out, NewScriptOutput(&scripts[i]))
	}
	return out
}
