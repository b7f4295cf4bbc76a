package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/Soybean501/clipvox-ai/internal/common"
	"github.com/Soybean501/clipvox-ai/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// SafeHandler bọc handler với recover để bắt panic và luôn trả về response cho client.
func (h *BaseHandler) SafeHandler(c fiber.Ctx, handler func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithFields(logrus.Fields{
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("Panic trong handler")

			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
			err = nil
		}
	}()
	return handler()
}

// HandleResponse xử lý và chuẩn hóa response trả về cho client (200 khi thành công)
func (h *BaseHandler) HandleResponse(c fiber.Ctx, data interface{}, err error) {
	h.HandleResponseWithStatus(c, common.StatusOK, data, err)
}

// HandleResponseWithStatus giống HandleResponse nhưng cho phép chọn status thành công (ví dụ 201)
func (h *BaseHandler) HandleResponseWithStatus(c fiber.Ctx, status int, data interface{}, err error) {
	if err != nil {
		HandleErrorResponse(c, err)
		return
	}

	message := common.MsgSuccess
	if status == common.StatusCreated {
		message = common.MsgCreated
	}
	_ = JSONResponse(c, status, fiber.Map{
		"code":    status,
		"message": message,
		"data":    data,
		"status":  "success",
	})
}

// HandleErrorResponse trả về error response chuẩn; dùng chung cho handler và middleware
func HandleErrorResponse(c fiber.Ctx, err error) {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		if customErr.StatusCode >= common.StatusInternalServerError {
			logger.WithRequest(c).WithError(err).Error("Request thất bại")
		}
		body := fiber.Map{
			"code":    customErr.Code.Code,
			"message": customErr.Message,
			"status":  "error",
		}
		// Lỗi gốc (error) chỉ ghi log, không trả về client
		if customErr.Details != nil {
			if _, isErr := customErr.Details.(error); !isErr {
				body["details"] = customErr.Details
			}
		}
		_ = JSONResponse(c, customErr.StatusCode, body)
		return
	}

	logger.WithRequest(c).WithError(err).Error("Lỗi không xác định")
	_ = JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"code":    common.ErrCodeInternalServer.Code,
		"message": common.MsgInternalError,
		"status":  "error",
	})
}
