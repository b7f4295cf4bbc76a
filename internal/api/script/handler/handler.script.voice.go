package scripthdl

import (
	scriptdto "github.com/Soybean501/clipvox-ai/internal/api/script/dto"
	"github.com/Soybean501/clipvox-ai/internal/common"
	"github.com/Soybean501/clipvox-ai/internal/utility"

	"github.com/gofiber/fiber/v3"
)

// HandleListVoices trả về danh mục giọng đọc
func (h *ScriptHandler) HandleListVoices(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		h.HandleResponse(c, h.service.ListVoices(), nil)
		return nil
	})
}

// HandleGetVoice trả về giọng đọc hiện tại của kịch bản
func (h *ScriptHandler) HandleGetVoice(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, id, ok := h.ownerAndID(c)
		if !ok {
			return nil
		}
		script, err := h.service.GetVoice(c.Context(), ownerID, id)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, fiber.Map{"voice": scriptdto.NewVoiceOutput(script)}, nil)
		return nil
	})
}

// HandleSynthesizeVoice tạo giọng đọc: 201 khi tạo mới, 200 khi thay giọng cũ
func (h *ScriptHandler) HandleSynthesizeVoice(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, id, ok := h.ownerAndID(c)
		if !ok {
			return nil
		}
		var input scriptdto.SynthesizeVoiceInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		script, created, err := h.service.SynthesizeVoice(c.Context(), ownerID, id, input.VoiceID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		status := common.StatusOK
		if created {
			status = common.StatusCreated
		}
		h.HandleResponseWithStatus(c, status, fiber.Map{"voice": scriptdto.NewVoiceOutput(script)}, nil)
		return nil
	})
}

// HandleVoiceAudio trả về file âm thanh, không cache
func (h *ScriptHandler) HandleVoiceAudio(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, id, ok := h.ownerAndID(c)
		if !ok {
			return nil
		}
		audio, err := h.service.VoiceAudio(c.Context(), ownerID, id)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		utility.WriteBinary(c.RequestCtx(), audio.ContentType, audio.Data)
		return nil
	})
}
