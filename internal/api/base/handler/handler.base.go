// Package basehdl cung cấp BaseHandler generic cho các handler REST.
// Package này gom các tiện ích parse/validate request và chuẩn hóa response.
package basehdl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/gofiber/fiber/v3"

	basesvc "github.com/Aethezz/bsc-web-interface/internal/api/base/service"
	"github.com/Aethezz/bsc-web-interface/internal/common"
	"github.com/Aethezz/bsc-web-interface/internal/global"
)

// BaseHandler là struct cơ sở cho tất cả các handler với generic type
// Type Parameters:
//   - T: Kiểu dữ liệu của model
//   - UpdateInput: Kiểu dữ liệu DTO cho update
type BaseHandler[T any, UpdateInput any] struct {
	BaseService basesvc.BaseServiceMongo[T] // Service xử lý business logic
}

// NewBaseHandler tạo mới một instance của BaseHandler
func NewBaseHandler[T any, UpdateInput any](service basesvc.BaseServiceMongo[T]) *BaseHandler[T, UpdateInput] {
	return &BaseHandler[T, UpdateInput]{
		BaseService: service,
	}
}

// ParseRequestBody parse request body thành struct.
// Dùng json.Decoder với UseNumber để giữ nguyên độ chính xác số (tránh float64 mặc định).
func (h *BaseHandler[T, UpdateInput]) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	body := c.Body()
	if len(body) == 0 {
		return common.NewError(
			common.ErrCodeValidationInput,
			"Request body không được để trống",
			common.StatusBadRequest,
			nil,
		)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON. Chi tiết: %v", err),
			common.StatusBadRequest,
			err,
		)
	}

	return nil
}

// ValidateInput kiểm tra dữ liệu đầu vào theo struct tag validate
func (h *BaseHandler[T, UpdateInput]) ValidateInput(input interface{}) error {
	if global.Validate == nil {
		return nil
	}

	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Dữ liệu không hợp lệ: %v", err),
			common.StatusBadRequest,
			err,
		)
	}

	// Kiểm tra bổ sung theo struct tag maxLength (validator chuẩn không có tag này)
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		maxLenTag := field.Tag.Get("maxLength")
		if maxLenTag == "" {
			continue
		}
		maxLen, err := strconv.Atoi(maxLenTag)
		if err != nil {
			continue
		}
		if v.Field(i).Kind() == reflect.String && len(v.Field(i).String()) > maxLen {
			return common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Trường %s vượt quá độ dài tối đa %d ký tự", field.Name, maxLen),
				common.StatusBadRequest,
				nil,
			)
		}
	}

	return nil
}

// ParsePagination đọc tham số page và limit từ query string.
// Trả về page=0, limit=0 khi client không truyền (caller tự quyết định có phân trang hay không).
func (h *BaseHandler[T, UpdateInput]) ParsePagination(c fiber.Ctx) (page int64, limit int64, err error) {
	pageStr := c.Query("page", "")
	limitStr := c.Query("limit", "")
	if pageStr == "" && limitStr == "" {
		return 0, 0, nil
	}

	page, err = strconv.ParseInt(pageStr, 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit, nil
}
