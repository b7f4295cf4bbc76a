package ai

import (
	"fmt"
	"strings"
)

// BuildSystemPrompt trả về system prompt cho bộ sinh kịch bản
func BuildSystemPrompt() string {
	return strings.Join([]string{
		"You are ClipVox's ScriptPlanner. Produce accurate, well-structured long-form scripts with clear chapter headings.",
		"- Respect targetWordCount within ±10%.",
		"- Tone, style, and topic must be followed strictly.",
		"- Write in fluent, natural English for spoken delivery.",
	}, "\n")
}

// BuildUserPrompt dựng user prompt từ brief. Style rỗng ghi là "default".
func BuildUserPrompt(req GenerateRequest) string {
	style := req.Style
	if strings.TrimSpace(style) == "" {
		style = "default"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Topic: %s\n", req.Topic)
	fmt.Fprintf(&sb, "Tone: %s\n", req.Tone)
	fmt.Fprintf(&sb, "Style: %s\n", style)
	fmt.Fprintf(&sb, "Chapters: %d\n", req.Chapters)
	fmt.Fprintf(&sb, "TargetWordCount: %d\n\n", req.TargetWordCount)
	sb.WriteString("Output requirements:\n")
	sb.WriteString("- Start with a one-paragraph intro (50–120 words).\n")
	fmt.Fprintf(&sb, "- Then %d chapters, each with a Markdown H1 heading \"Chapter N: <Title>\" and 2–5 paragraphs of content.\n", req.Chapters)
	sb.WriteString("- End with a brief closing paragraph suited to the tone.\n")
	sb.WriteString("- Avoid filler, avoid lists unless essential, write for spoken delivery.")
	return sb.String()
}
