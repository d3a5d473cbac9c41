package basehdl

// Các chức năng CRUD cơ bản dùng chung cho mọi resource.
// Domain handler embed BaseHandler và dùng lại các method này cho các route chuẩn.

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Aethezz/bsc-web-interface/internal/common"
	"github.com/Aethezz/bsc-web-interface/internal/utility"
)

// Find lấy danh sách document. Khi client truyền ?page và ?limit thì trả về
// kết quả phân trang, ngược lại trả về toàn bộ danh sách.
func (h *BaseHandler[T, UpdateInput]) Find(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		page, limit, _ := h.ParsePagination(c)

		if page > 0 {
			result, err := h.BaseService.FindWithPagination(c.Context(), bson.D{}, page, limit, nil)
			if err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			h.HandleResponse(c, result, nil)
			return nil
		}

		results, err := h.BaseService.Find(c.Context(), bson.D{}, nil)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, results, nil)
		return nil
	})
}

// UpdateById cập nhật một document theo ID từ URL param.
func (h *BaseHandler[T, UpdateInput]) UpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectIDParam(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input UpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		updated, err := h.BaseService.UpdateById(c.Context(), id, input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, updated, nil)
		return nil
	})
}

// DeleteById xóa một document theo ID từ URL param.
func (h *BaseHandler[T, UpdateInput]) DeleteById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.ParseObjectIDParam(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if err := h.BaseService.DeleteById(c.Context(), id); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponseWithStatus(c, common.StatusOK, "Đã xóa thành công", nil)
		return nil
	})
}

// ParseObjectIDParam đọc và validate một ObjectID từ URL param.
// ID không đúng định dạng hex 24 ký tự trả về lỗi 400.
func (h *BaseHandler[T, UpdateInput]) ParseObjectIDParam(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	idStr := c.Params(name)
	if !primitive.IsValidObjectID(idStr) {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("ID không hợp lệ: %s", idStr),
			common.StatusBadRequest,
			nil,
		)
	}
	return utility.String2ObjectID(idStr), nil
}
