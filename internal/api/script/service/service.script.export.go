package scriptsvc

import (
	"bytes"
	"context"
	"strings"

	"github.com/Soybean501/clipvox-ai/internal/common"

	"github.com/yuin/goldmark"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các định dạng export
const (
	ExportMarkdown = "md"
	ExportHTML     = "html"
)

// ExportResult là nội dung kịch bản đã chuyển định dạng
type ExportResult struct {
	Body        []byte
	ContentType string
}

// Export trả về nội dung kịch bản dạng Markdown gốc hoặc HTML (goldmark).
// format rỗng được coi là md.
func (s *ScriptService) Export(ctx context.Context, ownerID, id primitive.ObjectID, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportMarkdown
	}
	if format != ExportMarkdown && format != ExportHTML {
		return nil, common.NewError(
			common.ErrCodeValidationInput,
			"Định dạng export không được hỗ trợ",
			common.StatusBadRequest,
			map[string]string{"format": format},
		)
	}

	script, err := s.scripts.FindOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if format == ExportMarkdown {
		return &ExportResult{Body: []byte(script.Content), ContentType: "text/markdown; charset=utf-8"}, nil
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(script.Content), &buf); err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, common.MsgInternalError, common.StatusInternalServerError, err)
	}
	return &ExportResult{Body: buf.Bytes(), ContentType: "text/html; charset=utf-8"}, nil
}
