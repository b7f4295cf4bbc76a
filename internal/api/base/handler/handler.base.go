// Package basehdl cung cấp BaseHandler dùng chung cho các domain handler:
// parse + validate request, chuẩn hóa response và lấy thông tin user từ context.
package basehdl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Soybean501/clipvox-ai/internal/common"
	"github.com/Soybean501/clipvox-ai/internal/global"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BaseHandler chứa các helper mà mọi handler đều cần
type BaseHandler struct{}

// NewBaseHandler tạo mới một BaseHandler
func NewBaseHandler() *BaseHandler {
	return &BaseHandler{}
}

// validateInput validate struct bằng global.Validate, trả về danh sách field lỗi trong Details
func (h *BaseHandler) validateInput(input interface{}) error {
	if global.Validate == nil {
		global.InitValidator()
	}
	if err := global.Validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, fields)
		}
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err.Error())
	}
	return nil
}

// ParseRequestBody parse JSON body vào input rồi validate theo struct tag.
// Sử dụng json.Decoder với UseNumber() để xử lý chính xác các số.
func (h *BaseHandler) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON. Chi tiết: %v", err),
			common.StatusBadRequest,
			nil,
		)
	}
	return h.validateInput(input)
}

// CurrentUserID lấy user id mà AuthMiddleware đã gắn vào Locals
func (h *BaseHandler) CurrentUserID(c fiber.Ctx) (primitive.ObjectID, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return primitive.NilObjectID, common.NewError(common.ErrCodeAuth, common.MsgUnauthorized, common.StatusUnauthorized, nil)
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return objID, nil
}

// ParamObjectID đọc path param dạng ObjectID.
// ID sai định dạng được coi như không tồn tại để không lộ thông tin tài nguyên.
func (h *BaseHandler) ParamObjectID(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	objID, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, common.ErrNotFound
	}
	return objID, nil
}
