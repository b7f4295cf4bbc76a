// Package pacing ước lượng số từ cho kịch bản đọc: tone/style → tốc độ đọc (từ/phút)
// → số từ mục tiêu, và đo số từ thực tế, dàn ý chương của nội dung.
//
// Tất cả hàm trong package là hàm thuần, không lỗi, an toàn khi gọi đồng thời.
package pacing

import (
	"math"
	"regexp"
	"strings"
)

// Các tone được hỗ trợ
const (
	ToneEducational    = "educational"
	ToneBedtime        = "bedtime"
	ToneDocumentary    = "documentary"
	ToneConversational = "conversational"
	ToneDramatic       = "dramatic"
	ToneCustom         = "custom"
)

const (
	// DefaultWordsPerMinute dùng cho tone không xác định
	DefaultWordsPerMinute = 160
	// MinWordsPerMinute và MaxWordsPerMinute là biên sau khi áp dụng style
	MinWordsPerMinute = 100
	MaxWordsPerMinute = 220

	styleAdjustment = 10
	// withinRangeRatio là sai lệch cho phép so với số từ mục tiêu (±10%)
	withinRangeRatio = 0.10
)

var tones = []string{ToneEducational, ToneBedtime, ToneDocumentary, ToneConversational, ToneDramatic, ToneCustom}

var baseWordsPerMinute = map[string]int{
	ToneBedtime:        125,
	ToneDocumentary:    150,
	ToneEducational:    150,
	ToneConversational: 170,
	ToneDramatic:       140,
	ToneCustom:         160,
}

// wordPattern: một từ là chuỗi liên tiếp dài nhất gồm chữ cái, chữ số hoặc '_'.
// Dấu nháy và gạch nối tách từ ("it's" = 2 từ).
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tones trả về danh sách tone được hỗ trợ
func Tones() []string {
	out := make([]string, len(tones))
	copy(out, tones)
	return out
}

// IsKnownTone kiểm tra tone có trong danh sách hỗ trợ
func IsKnownTone(tone string) bool {
	_, ok := baseWordsPerMinute[tone]
	return ok
}

// WordsPerMinute trả về tốc độ đọc cho tone và style.
// Style chứa "slow" giảm 10, chứa "fast" tăng 10 (không phân biệt hoa thường, hai điều kiện độc lập);
// kết quả nằm trong [MinWordsPerMinute, MaxWordsPerMinute].
func WordsPerMinute(tone, style string) int {
	wpm, ok := baseWordsPerMinute[tone]
	if !ok {
		wpm = DefaultWordsPerMinute
	}

	s := strings.ToLower(style)
	if strings.Contains(s, "slow") {
		wpm -= styleAdjustment
	}
	if strings.Contains(s, "fast") {
		wpm += styleAdjustment
	}

	if wpm < MinWordsPerMinute {
		return MinWordsPerMinute
	}
	if wpm > MaxWordsPerMinute {
		return MaxWordsPerMinute
	}
	return wpm
}

// TargetWordCount = round(lengthMinutes × WordsPerMinute(tone, style)).
// Không kiểm tra lengthMinutes; biên [1, 300] do DTO đảm bảo.
func TargetWordCount(lengthMinutes float64, tone, style string) int {
	return int(math.Round(lengthMinutes * float64(WordsPerMinute(tone, style))))
}

// CountWords đếm số từ trong text
func CountWords(text string) int {
	return len(wordPattern.FindAllStringIndex(text, -1))
}

// ExtractOutline lấy tiêu đề chương: các dòng (sau khi trim) bắt đầu bằng "# ".
// Chỉ heading cấp 1 được tính là chương. Không bao giờ trả về nil.
func ExtractOutline(content string) []string {
	outline := []string{}
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "# ") {
			continue
		}
		outline = append(outline, strings.TrimSpace(trimmed[2:]))
	}
	return outline
}

// Estimate so sánh số từ thực tế với số từ mục tiêu
type Estimate struct {
	TargetWordCount   int  `json:"targetWordCount"`
	ActualWordCount   int  `json:"actualWordCount"`
	Delta             int  `json:"delta"`             // actual - target
	CompletionPercent int  `json:"completionPercent"` // round(actual/target × 100), 0 khi target = 0
	WithinRange       bool `json:"withinRange"`       // |delta| ≤ 10% target
}

// NewEstimate tính Estimate từ số từ mục tiêu và thực tế
func NewEstimate(target, actual int) Estimate {
	est := Estimate{
		TargetWordCount: target,
		ActualWordCount: actual,
		Delta:           actual - target,
	}
	if target > 0 {
		est.CompletionPercent = int(math.Round(float64(actual) / float64(target) * 100))
	}
	est.WithinRange = math.Abs(float64(est.Delta)) <= float64(target)*withinRangeRatio
	return est
}
