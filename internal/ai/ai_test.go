package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Soybean501/clipvox-ai/config"
	"github.com/Soybean501/clipvox-ai/internal/pacing"
	"github.com/Soybean501/clipvox-ai/internal/voice"

	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUserPrompt(t *testing.T) {
	prompt := BuildUserPrompt(GenerateRequest{
		Topic:           "The fall of Rome",
		Tone:            "documentary",
		Chapters:        3,
		TargetWordCount: 750,
	})

	assert.Contains(t, prompt, "Topic: The fall of Rome\n")
	assert.Contains(t, prompt, "Style: default\n")
	assert.Contains(t, prompt, "TargetWordCount: 750\n")
	assert.Contains(t, prompt, "Then 3 chapters")
	assert.Contains(t, prompt, `"Chapter N: <Title>"`)

	prompt = BuildUserPrompt(GenerateRequest{Style: "slow and calm"})
	assert.Contains(t, prompt, "Style: slow and calm\n")
}

func TestBuildSystemPrompt(t *testing.T) {
	assert.True(t, strings.HasPrefix(BuildSystemPrompt(), "You are ClipVox's ScriptPlanner."))
	assert.Contains(t, BuildSystemPrompt(), "±10%")
}

func TestMockScriptGenerator_HitsTarget(t *testing.T) {
	res, err := MockScriptGenerator{}.Generate(context.Background(), GenerateRequest{
		Topic:           "Deep sea creatures",
		Tone:            "educational",
		Chapters:        4,
		TargetWordCount: 750,
	})
	require.NoError(t, err)

	assert.Equal(t, 750, res.ActualWordCount)
	assert.Equal(t, pacing.CountWords(res.Content), res.ActualWordCount)
	assert.Equal(t, []string{"Chapter 1: Part 1", "Chapter 2: Part 2", "Chapter 3: Part 3", "Chapter 4: Part 4"}, res.Outline)
}

func TestMockScriptGenerator_TinyTarget(t *testing.T) {
	res, err := MockScriptGenerator{}.Generate(context.Background(), GenerateRequest{
		Topic: "Owls", Tone: "bedtime", Chapters: 5, TargetWordCount: 10,
	})
	require.NoError(t, err)
	assert.Len(t, res.Outline, 5)
	assert.Greater(t, res.ActualWordCount, 0)
}

func TestMockSpeechSynthesizer(t *testing.T) {
	v := voice.Voice{ID: "aurora", ProviderVoice: "coral"}
	speech, err := MockSpeechSynthesizer{}.Synthesize(context.Background(), "hello", v)
	require.NoError(t, err)
	assert.Equal(t, AudioFormatMP3, speech.ContentType)
	assert.True(t, strings.HasPrefix(string(speech.Audio), "ID3"))

	_, err = MockSpeechSynthesizer{}.Synthesize(context.Background(), "   ", v)
	assert.ErrorIs(t, err, ErrEmptySpeechText)
}

// fakeOpenAI giả lập các endpoint chat/completions và audio/speech
func fakeOpenAI(t *testing.T, completion string, captured *map[string]interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if captured != nil {
			_ = json.Unmarshal(body, captured)
		}
		switch {
		case strings.HasSuffix(r.URL.Path, "/chat/completions"):
			w.Header().Set("Content-Type", "application/json")
			resp := map[string]interface{}{
				"id":      "chatcmpl-test",
				"object":  "chat.completion",
				"created": 1700000000,
				"model":   "gpt-4.1-mini",
				"choices": []map[string]interface{}{{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]interface{}{"role": "assistant", "content": completion},
				}},
			}
			_ = json.NewEncoder(w).Encode(resp)
		case strings.HasSuffix(r.URL.Path, "/audio/speech"):
			w.Header().Set("Content-Type", "audio/mpeg")
			_, _ = w.Write([]byte("ID3fake-audio"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testOptions(srv *httptest.Server) []option.RequestOption {
	return []option.RequestOption{
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL + "/"),
		option.WithMaxRetries(0),
	}
}

func TestOpenAIScriptGenerator_Generate(t *testing.T) {
	var captured map[string]interface{}
	content := "  Intro line.\n# Chapter 1: Dawn\nbody text\n# Chapter 2: Dusk\nmore body  "
	srv := fakeOpenAI(t, content, &captured)

	gen := NewOpenAIScriptGenerator("gpt-4.1-mini", testOptions(srv)...)
	res, err := gen.Generate(context.Background(), GenerateRequest{
		Topic: "Dawn and dusk", Tone: "dramatic", Chapters: 2, TargetWordCount: 280,
	})
	require.NoError(t, err)

	assert.Equal(t, strings.TrimSpace(content), res.Content)
	assert.Equal(t, []string{"Chapter 1: Dawn", "Chapter 2: Dusk"}, res.Outline)
	assert.Equal(t, pacing.CountWords(content), res.ActualWordCount)

	assert.Equal(t, "gpt-4.1-mini", captured["model"])
	assert.InDelta(t, 0.7, captured["temperature"], 0.0001)
	messages, ok := captured["messages"].([]interface{})
	require.True(t, ok)
	assert.Len(t, messages, 2)
}

func TestOpenAIScriptGenerator_EmptyCompletion(t *testing.T) {
	srv := fakeOpenAI(t, "   ", nil)
	gen := NewOpenAIScriptGenerator("gpt-4.1-mini", testOptions(srv)...)

	_, err := gen.Generate(context.Background(), GenerateRequest{Topic: "x", Tone: "custom", Chapters: 1})
	require.Error(t, err)
	assert.Equal(t, "No content returned from OpenAI", err.Error())
}

func TestOpenAISpeechSynthesizer_Synthesize(t *testing.T) {
	var captured map[string]interface{}
	srv := fakeOpenAI(t, "", &captured)
	synth := NewOpenAISpeechSynthesizer("gpt-4o-mini-tts", testOptions(srv)...)

	speech, err := synth.Synthesize(context.Background(), "Once upon a time", voice.Voice{ID: "ember", ProviderVoice: "shimmer"})
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3fake-audio"), speech.Audio)
	assert.Equal(t, AudioFormatMP3, speech.ContentType)
	assert.Equal(t, "shimmer", captured["voice"])
	assert.Equal(t, "gpt-4o-mini-tts", captured["model"])
	assert.Equal(t, "mp3", captured["response_format"])

	_, err = synth.Synthesize(context.Background(), "Hi", voice.Voice{ProviderVoice: "ash", Model: "tts-1"})
	require.NoError(t, err)
	assert.Equal(t, "tts-1", captured["model"])
}

func TestNewScriptGenerator_FallsBackToMock(t *testing.T) {
	cfg := &config.Configuration{AI_Provider: "openai"}
	_, isMock := NewScriptGenerator(cfg).(MockScriptGenerator)
	assert.True(t, isMock, "thiếu API key phải dùng mock")

	cfg = &config.Configuration{AI_Provider: "openai", OpenAI_APIKey: "sk-test", OpenAI_Model: "gpt-4.1-mini"}
	_, isOpenAI := NewScriptGenerator(cfg).(*OpenAIScriptGenerator)
	assert.True(t, isOpenAI)

	cfg = &config.Configuration{AI_Provider: "mock", OpenAI_APIKey: "sk-test"}
	_, isMock = NewSpeechSynthesizer(cfg).(MockSpeechSynthesizer)
	assert.True(t, isMock)
}
