package ai

import (
	"context"
	"errors"
	"strings"

	"github.com/Soybean501/clipvox-ai/config"
	"github.com/Soybean501/clipvox-ai/internal/pacing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ErrEmptyCompletion trả về khi mô hình không trả nội dung
var ErrEmptyCompletion = errors.New("No content returned from OpenAI")

const defaultTemperature = 0.7

// clientOptions dựng option cho openai client từ cấu hình
func clientOptions(cfg *config.Configuration) []option.RequestOption {
	opts := []option.RequestOption{option.WithAPIKey(cfg.OpenAI_APIKey)}
	if cfg.OpenAI_BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAI_BaseURL))
	}
	return opts
}

// OpenAIScriptGenerator sinh kịch bản bằng chat completion của OpenAI
type OpenAIScriptGenerator struct {
	client openai.Client
	model  string
}

// NewOpenAIScriptGenerator tạo generator với model và các option của client
func NewOpenAIScriptGenerator(model string, opts ...option.RequestOption) *OpenAIScriptGenerator {
	return &OpenAIScriptGenerator{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Generate gọi mô hình một lần; outline và số từ tính lại từ nội dung trả về
func (g *OpenAIScriptGenerator) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(BuildSystemPrompt()),
			openai.UserMessage(BuildUserPrompt(req)),
		},
		Temperature: openai.Float(defaultTemperature),
	})
	if err != nil {
		return nil, err
	}

	var content string
	if len(resp.Choices) > 0 {
		content = strings.TrimSpace(resp.Choices[0].Message.Content)
	}
	if content == "" {
		return nil, ErrEmptyCompletion
	}

	return &GenerateResult{
		Content:         content,
		Outline:         pacing.ExtractOutline(content),
		ActualWordCount: pacing.CountWords(content),
	}, nil
}
