// Package ai chứa các collaborator gọi mô hình bên ngoài: sinh kịch bản (chat completion)
// và chuyển văn bản thành giọng nói (TTS).
package ai

import (
	"context"
	"strings"

	"github.com/Soybean501/clipvox-ai/config"
	"github.com/Soybean501/clipvox-ai/internal/logger"
)

// ProviderMock chọn các collaborator chạy offline
const ProviderMock = "mock"

// GenerateRequest là brief gửi cho bộ sinh kịch bản
type GenerateRequest struct {
	Topic           string
	Tone            string
	Style           string
	Chapters        int
	TargetWordCount int
}

// GenerateResult là kịch bản đã sinh
type GenerateResult struct {
	Content         string
	Outline         []string
	ActualWordCount int
}

// ScriptGenerator sinh nội dung kịch bản từ brief.
// Lỗi trả về mang thông điệp đọc được để ghi vào kịch bản.
type ScriptGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
}

// useMock: AI_PROVIDER=mock hoặc không có OPENAI_API_KEY
func useMock(cfg *config.Configuration) bool {
	return strings.EqualFold(cfg.AI_Provider, ProviderMock) || cfg.OpenAI_APIKey == ""
}

// NewScriptGenerator chọn bộ sinh kịch bản theo cấu hình
func NewScriptGenerator(cfg *config.Configuration) ScriptGenerator {
	if useMock(cfg) {
		logger.WithModule("ai").Warn("Dùng MockScriptGenerator (AI_PROVIDER=mock hoặc thiếu OPENAI_API_KEY)")
		return MockScriptGenerator{}
	}
	return NewOpenAIScriptGenerator(cfg.OpenAI_Model, clientOptions(cfg)...)
}

// NewSpeechSynthesizer chọn bộ TTS theo cấu hình
func NewSpeechSynthesizer(cfg *config.Configuration) SpeechSynthesizer {
	if useMock(cfg) {
		logger.WithModule("ai").Warn("Dùng MockSpeechSynthesizer (AI_PROVIDER=mock hoặc thiếu OPENAI_API_KEY)")
		return MockSpeechSynthesizer{}
	}
	return NewOpenAISpeechSynthesizer(cfg.OpenAI_TTSModel, clientOptions(cfg)...)
}
