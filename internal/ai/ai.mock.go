package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/Soybean501/clipvox-ai/internal/pacing"
	"github.com/Soybean501/clipvox-ai/internal/voice"
)

// mockVocabulary là từ vựng để sinh thân chương
var mockVocabulary = []string{
	"the", "story", "moves", "through", "quiet", "rooms", "where", "history",
	"waits", "and", "every", "voice", "adds", "another", "layer", "of", "meaning",
}

// MockScriptGenerator sinh kịch bản giả lập có cấu trúc giống kết quả thật:
// intro, các chương "# Chapter N: Part N", đoạn kết; tổng số từ bằng target khi target đủ lớn.
type MockScriptGenerator struct{}

// Generate sinh kịch bản xác định (cùng brief cho cùng kết quả)
func (MockScriptGenerator) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	chapters := req.Chapters
	if chapters < 1 {
		chapters = 1
	}

	intro := fmt.Sprintf("This %s narration explores %s.", req.Tone, req.Topic)
	closing := "Thank you for listening."
	headings := make([]string, chapters)
	fixed := pacing.CountWords(intro) + pacing.CountWords(closing)
	for i := range headings {
		headings[i] = fmt.Sprintf("# Chapter %d: Part %d", i+1, i+1)
		fixed += pacing.CountWords(headings[i])
	}

	body := req.TargetWordCount - fixed
	if body < chapters {
		body = chapters
	}
	perChapter := body / chapters

	var sb strings.Builder
	sb.WriteString(intro)
	sb.WriteString("\n\n")
	for i, heading := range headings {
		n := perChapter
		if i == chapters-1 {
			n = body - perChapter*(chapters-1)
		}
		sb.WriteString(heading)
		sb.WriteString("\n\n")
		sb.WriteString(mockParagraph(n, i))
		sb.WriteString("\n\n")
	}
	sb.WriteString(closing)

	content := sb.String()
	return &GenerateResult{
		Content:         content,
		Outline:         pacing.ExtractOutline(content),
		ActualWordCount: pacing.CountWords(content),
	}, nil
}

func mockParagraph(words, offset int) string {
	parts := make([]string, words)
	for i := range parts {
		parts[i] = mockVocabulary[(i+offset)%len(mockVocabulary)]
	}
	return strings.Join(parts, " ") + "."
}

// MockSpeechSynthesizer trả về audio giả (header ID3 + văn bản) để chạy offline
type MockSpeechSynthesizer struct{}

// Synthesize trả về dữ liệu giả lập
func (MockSpeechSynthesizer) Synthesize(ctx context.Context, text string, v voice.Voice) (*Speech, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptySpeechText
	}
	audio := append([]byte("ID3"), []byte(v.ProviderVoice+":"+text)...)
	return &Speech{Audio: audio, ContentType: AudioFormatMP3}, nil
}
