package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"

	"github.com/Aethezz/bsc-web-interface/internal/common"
)

// APIResponse là envelope chuẩn cho mọi response của API
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
// Helper function này đảm bảo tất cả JSON responses đều có charset=utf-8 để hỗ trợ UTF-8 encoding đúng cách
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	// Set Content-Type với charset=utf-8 trước khi gọi JSON
	c.Set("Content-Type", "application/json; charset=utf-8")
	// Trả về JSON response
	return c.Status(statusCode).JSON(data)
}

// SafeHandler bọc các handler với recover để bắt panic và xử lý lỗi an toàn.
// Hàm này đảm bảo rằng server luôn trả về response cho client, kể cả khi có panic xảy ra.
//
// Parameters:
// - c: Fiber context
// - handler: Function xử lý chính của handler
func (h *BaseHandler[T, UpdateInput]) SafeHandler(c fiber.Ctx, handler func() error) error {
	defer func() {
		if r := recover(); r != nil {
			// Log stack trace để debug
			debug.PrintStack()

			// Trả về lỗi cho client
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return handler()
}

// HandleResponse xử lý và chuẩn hóa response trả về cho client.
// Phương thức này đảm bảo format response thống nhất trong toàn bộ ứng dụng.
//
// Parameters:
// - c: Fiber context
// - data: Dữ liệu trả về cho client (có thể là nil nếu chỉ trả về lỗi)
// - err: Lỗi nếu có (nil nếu không có lỗi)
func (h *BaseHandler[T, UpdateInput]) HandleResponse(c fiber.Ctx, data interface{}, err error) {
	if err != nil {
		statusCode, message := ErrorToResponse(err)
		_ = JSONResponse(c, statusCode, APIResponse{
			Success: false,
			Message: message,
		})
		return
	}

	_ = JSONResponse(c, common.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

// HandleResponseWithStatus giống HandleResponse nhưng cho phép chỉ định status code
// thành công (ví dụ 201 khi tạo mới) kèm message.
func (h *BaseHandler[T, UpdateInput]) HandleResponseWithStatus(c fiber.Ctx, statusCode int, message string, data interface{}) {
	_ = JSONResponse(c, statusCode, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorToResponse ánh xạ một error sang (statusCode, message) cho client.
// *common.Error giữ nguyên status code, các sentinel error được ánh xạ
// theo ngữ nghĩa, còn lại trả về 500.
func ErrorToResponse(err error) (int, string) {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		return customErr.StatusCode, customErr.Message
	}

	switch {
	case errors.Is(err, common.ErrNotFound):
		return common.StatusNotFound, err.Error()
	case errors.Is(err, common.ErrDuplicate):
		return common.StatusConflict, err.Error()
	case errors.Is(err, common.ErrInvalidInput),
		errors.Is(err, common.ErrInvalidFormat),
		errors.Is(err, common.ErrRequiredField):
		return common.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrMLServiceUnavailable):
		return common.StatusServiceUnavailable, err.Error()
	default:
		return common.StatusInternalServerError, err.Error()
	}
}
