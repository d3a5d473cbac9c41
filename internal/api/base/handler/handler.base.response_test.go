package basehdl

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aethezz/bsc-web-interface/internal/common"
)

// TestErrorToResponse kiểm tra ánh xạ error sang status code và message
func TestErrorToResponse(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"Custom error giữ nguyên status", common.NewError(common.ErrCodeUpstream, "ML lỗi", 502, nil), 502},
		{"NotFound ánh xạ 404", common.ErrNotFound, common.StatusNotFound},
		{"Duplicate ánh xạ 409", common.ErrDuplicate, common.StatusConflict},
		{"InvalidInput ánh xạ 400", common.ErrInvalidInput, common.StatusBadRequest},
		{"InvalidInput bọc trong lỗi khác vẫn ánh xạ 400", fmt.Errorf("link hỏng: %w", common.ErrInvalidInput), common.StatusBadRequest},
		{"ML unavailable ánh xạ 503", common.ErrMLServiceUnavailable, common.StatusServiceUnavailable},
		{"Lỗi không xác định ánh xạ 500", errors.New("boom"), common.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, message := ErrorToResponse(tc.err)
			assert.Equal(t, tc.wantStatus, status, "Status code phải được ánh xạ đúng")
			assert.NotEmpty(t, message, "Message không được rỗng")
		})
	}
}
