package pacing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordsPerMinute_BaseTable(t *testing.T) {
	want := map[string]int{
		"bedtime":        125,
		"documentary":    150,
		"educational":    150,
		"conversational": 170,
		"dramatic":       140,
		"custom":         160,
		"whispering":     160,
		"":               160,
	}
	for tone, wpm := range want {
		assert.Equal(t, wpm, WordsPerMinute(tone, ""), "tone=%q", tone)
	}
}

func TestWordsPerMinute_WithinBounds(t *testing.T) {
	styles := []string{"", "fast pace", "slow pace", "Fast and SLOW", "calm"}
	for _, tone := range Tones() {
		for _, style := range styles {
			wpm := WordsPerMinute(tone, style)
			assert.GreaterOrEqual(t, wpm, MinWordsPerMinute)
			assert.LessOrEqual(t, wpm, MaxWordsPerMinute)
		}
	}
}

func TestWordsPerMinute_BedtimeSlowerThanConversational(t *testing.T) {
	assert.Less(t, WordsPerMinute(ToneBedtime, ""), WordsPerMinute(ToneConversational, ""))
}

func TestWordsPerMinute_StyleModifiers(t *testing.T) {
	for _, tone := range Tones() {
		base := WordsPerMinute(tone, "")
		assert.Greater(t, WordsPerMinute(tone, "fast pace"), base, tone)
		assert.Less(t, WordsPerMinute(tone, "slow pace"), base, tone)
		assert.Equal(t, base+10, WordsPerMinute(tone, "FAST"), tone)
		// Chứa cả hai: hai điều chỉnh triệt tiêu nhau
		assert.Equal(t, base, WordsPerMinute(tone, "slow start, fast finish"), tone)
	}
}

func TestTargetWordCount(t *testing.T) {
	assert.Equal(t, 750, TargetWordCount(5, ToneEducational, ""))
	assert.Greater(t, TargetWordCount(10, ToneEducational, ""), TargetWordCount(5, ToneEducational, ""))
	assert.Equal(t, 0, TargetWordCount(0, ToneBedtime, ""))
	// 1.5 × 125 = 187.5 → 188
	assert.Equal(t, 188, TargetWordCount(1.5, ToneBedtime, ""))

	prev := 0
	for m := 1; m <= 300; m++ {
		got := TargetWordCount(float64(m), ToneDramatic, "slow")
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestCountWords(t *testing.T) {
	cases := map[string]int{
		"":                   0,
		"  ":                 0,
		"\n\t":               0,
		"one two three":      3,
		"it's a test-case":   5,
		"snake_case word":    2,
		"# Chapter 1: Intro": 3,
		"Xin chào thế giới":  4,
	}
	for text, want := range cases {
		assert.Equal(t, want, CountWords(text), "text=%q", text)
	}
}

func TestExtractOutline(t *testing.T) {
	content := "# Chapter 1: Intro\nbody\n# Chapter 2: Rise\nbody"
	assert.Equal(t, []string{"Chapter 1: Intro", "Chapter 2: Rise"}, ExtractOutline(content))

	got := ExtractOutline("no headings here\n## Sub heading\n#hashtag")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Equal(t, []string{"Spaced"}, ExtractOutline("   #   Spaced   \r\nbody"))
}

func TestNewEstimate(t *testing.T) {
	est := NewEstimate(750, 800)
	assert.Equal(t, 50, est.Delta)
	assert.Equal(t, 107, est.CompletionPercent)
	assert.True(t, est.WithinRange)

	est = NewEstimate(750, 600)
	assert.Equal(t, -150, est.Delta)
	assert.Equal(t, 80, est.CompletionPercent)
	assert.False(t, est.WithinRange)

	est = NewEstimate(0, 0)
	assert.Equal(t, 0, est.CompletionPercent)
	assert.True(t, est.WithinRange)
}

func TestCountWords_GeneratedScriptShape(t *testing.T) {
	body := strings.Repeat("word ", 100)
	content := "# Chapter 1: A\n" + body + "\n# Chapter 2: B\n" + body
	// 2 × (100 từ) + 2 × ("Chapter", số, tiêu đề)
	assert.Equal(t, 206, CountWords(content))
	assert.Len(t, ExtractOutline(content), 2)
}
