// Package scripthdl chứa HTTP handler cho kịch bản, export và giọng đọc.
package scripthdl

import (
	basehdl "github.com/Soybean501/clipvox-ai/internal/api/base/handler"
	scriptdto "github.com/Soybean501/clipvox-ai/internal/api/script/dto"
	scriptsvc "github.com/Soybean501/clipvox-ai/internal/api/script/service"
	"github.com/Soybean501/clipvox-ai/internal/common"
	"github.com/Soybean501/clipvox-ai/internal/utility"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScriptHandler xử lý các request về kịch bản và giọng đọc
type ScriptHandler struct {
	*basehdl.BaseHandler
	service *scriptsvc.ScriptService
}

// NewScriptHandler tạo instance mới của ScriptHandler
func NewScriptHandler(service *scriptsvc.ScriptService) *ScriptHandler {
	return &ScriptHandler{
		BaseHandler: basehdl.NewBaseHandler(),
		service:     service,
	}
}

// ownerAndID đọc user hiện tại và :id; lỗi đã được ghi ra response khi ok = false
func (h *ScriptHandler) ownerAndID(c fiber.Ctx) (ownerID, id primitive.ObjectID, ok bool) {
	ownerID, err := h.CurrentUserID(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return ownerID, id, false
	}
	id, err = h.ParamObjectID(c, "id")
	if err != nil {
		h.HandleResponse(c, nil, err)
		return ownerID, id, false
	}
	return ownerID, id, true
}

// HandleList liệt kê kịch bản của một dự án (?projectId= bắt buộc)
func (h *ScriptHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		raw := c.Query("projectId")
		if raw == "" {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				common.MsgValidationError,
				common.StatusBadRequest,
				map[string]string{"projectId": "required"},
			))
			return nil
		}
		projectID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			h.HandleResponse(c, nil, common.ErrNotFound)
			return nil
		}
		scripts, err := h.service.ListByProject(c.Context(), ownerID, projectID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, scriptdto.NewScriptOutputs(scripts), nil)
		return nil
	})
}

// HandleCreate tạo kịch bản và sinh nội dung
func (h *ScriptHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input scriptdto.ScriptCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		script, err := h.service.Create(c.Context(), ownerID, &input)
		h.HandleResponseWithStatus(c, common.StatusCreated, scriptdto.NewScriptOutput(script), err)
		return nil
	})
}

// HandleGet lấy chi tiết kịch bản
func (h *ScriptHandler) HandleGet(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, id, ok := h.ownerAndID(c)
		if !ok {
			return nil
		}
		script, err := h.service.Get(c.Context(), ownerID, id)
		h.HandleResponse(c, scriptdto.NewScriptOutput(script), err)
		return nil
	})
}

// HandleUpdate cập nhật một phần kịch bản
func (h *ScriptHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, id, ok := h.ownerAndID(c)
		if !ok {
			return nil
		}
		var input scriptdto.ScriptUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		script, err := h.service.Update(c.Context(), ownerID, id, &input)
		h.HandleResponse(c, scriptdto.NewScriptOutput(script), err)
		return nil
	})
}

// HandleDelete xóa kịch bản
func (h *ScriptHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, id, ok := h.ownerAndID(c)
		if !ok {
			return nil
		}
		err := h.service.Delete(c.Context(), ownerID, id)
		h.HandleResponse(c, fiber.Map{"success": err == nil}, err)
		return nil
	})
}

// HandleRegenerate sinh lại nội dung
func (h *ScriptHandler) HandleRegenerate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, id, ok := h.ownerAndID(c)
		if !ok {
			return nil
		}
		script, err := h.service.Regenerate(c.Context(), ownerID, id)
		h.HandleResponse(c, scriptdto.NewScriptOutput(script), err)
		return nil
	})
}

// HandleEstimate ước lượng lại số từ
func (h *ScriptHandler) HandleEstimate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, id, ok := h.ownerAndID(c)
		if !ok {
			return nil
		}
		estimate, err := h.service.Estimate(c.Context(), ownerID, id)
		h.HandleResponse(c, estimate, err)
		return nil
	})
}

// HandleExport trả về nội dung dạng md hoặc html (?format=)
func (h *ScriptHandler) HandleExport(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, id, ok := h.ownerAndID(c)
		if !ok {
			return nil
		}
		export, err := h.service.Export(c.Context(), ownerID, id, c.Query("format"))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		utility.WriteBinary(c.RequestCtx(), export.ContentType, export.Body)
		return nil
	})
}
