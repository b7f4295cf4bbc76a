package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Soybean501/clipvox-ai/internal/voice"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// AudioFormatMP3 là content type của audio được tạo
const AudioFormatMP3 = "audio/mp3"

// ErrEmptySpeechText trả về khi không có nội dung để đọc
var ErrEmptySpeechText = errors.New("Script has no content to synthesize.")

// Speech là audio đã tổng hợp
type Speech struct {
	Audio       []byte
	ContentType string
}

// SpeechSynthesizer chuyển văn bản thành audio với giọng trong danh mục
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string, v voice.Voice) (*Speech, error)
}

// OpenAISpeechSynthesizer dùng API audio/speech của OpenAI
type OpenAISpeechSynthesizer struct {
	client openai.Client
	model  string
}

// NewOpenAISpeechSynthesizer tạo synthesizer với model mặc định (giọng có thể ghi đè model)
func NewOpenAISpeechSynthesizer(model string, opts ...option.RequestOption) *OpenAISpeechSynthesizer {
	return &OpenAISpeechSynthesizer{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Synthesize trả về audio mp3 của text
func (s *OpenAISpeechSynthesizer) Synthesize(ctx context.Context, text string, v voice.Voice) (*Speech, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptySpeechText
	}
	model := s.model
	if v.Model != "" {
		model = v.Model
	}

	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Input:          text,
		Model:          openai.SpeechModel(model),
		Voice:          openai.AudioSpeechNewParamsVoice(v.ProviderVoice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read speech audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, errors.New("speech API returned empty audio")
	}
	return &Speech{Audio: audio, ContentType: AudioFormatMP3}, nil
}
