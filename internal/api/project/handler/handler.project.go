package projecthdl

import (
	basehdl "github.com/Soybean501/clipvox-ai/internal/api/base/handler"
	projectdto "github.com/Soybean501/clipvox-ai/internal/api/project/dto"
	projectsvc "github.com/Soybean501/clipvox-ai/internal/api/project/service"
	"github.com/Soybean501/clipvox-ai/internal/common"
	"github.com/Soybean501/clipvox-ai/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// ProjectHandler xử lý các request về dự án
type ProjectHandler struct {
	*basehdl.BaseHandler
	service *projectsvc.ProjectService
}

// NewProjectHandler tạo instance mới của ProjectHandler
func NewProjectHandler(service *projectsvc.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		BaseHandler: basehdl.NewBaseHandler(),
		service:     service,
	}
}

// HandleList liệt kê dự án của user (?page=&limit=)
func (h *ProjectHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		page, limit := utility.ParsePagination(c.Query("page"), c.Query("limit"), 20, 100)
		result, err := h.service.List(c.Context(), ownerID, page, limit)
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleCreate tạo dự án mới
func (h *ProjectHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input projectdto.ProjectCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		project, err := h.service.Create(c.Context(), ownerID, &input)
		h.HandleResponseWithStatus(c, common.StatusCreated, project, err)
		return nil
	})
}

// HandleGet lấy chi tiết dự án
func (h *ProjectHandler) HandleGet(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := h.ParamObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		project, err := h.service.Get(c.Context(), ownerID, id)
		h.HandleResponse(c, project, err)
		return nil
	})
}

// HandleUpdate cập nhật một phần dự án
func (h *ProjectHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := h.ParamObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input projectdto.ProjectUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		project, err := h.service.Update(c.Context(), ownerID, id, &input)
		h.HandleResponse(c, project, err)
		return nil
	})
}

// HandleDelete xóa dự án và các kịch bản của nó
func (h *ProjectHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		id, err := h.ParamObjectID(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err = h.service.Delete(c.Context(), ownerID, id)
		h.HandleResponse(c, fiber.Map{"success": err == nil}, err)
		return nil
	})
}
