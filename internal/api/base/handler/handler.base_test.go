package basehdl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aethezz/bsc-web-interface/internal/common"
	"github.com/Aethezz/bsc-web-interface/internal/global"
)

// TestValidateInputMaxLength kiểm tra giới hạn độ dài qua struct tag maxLength
func TestValidateInputMaxLength(t *testing.T) {
	global.InitValidator()

	type form struct {
		Title string `validate:"omitempty" maxLength:"10"`
	}
	h := &BaseHandler[struct{}, struct{}]{}

	t.Run("Chuỗi trong giới hạn được chấp nhận", func(t *testing.T) {
		assert.NoError(t, h.ValidateInput(&form{Title: "ngắn gọn"}))
		assert.NoError(t, h.ValidateInput(&form{}))
	})

	t.Run("Chuỗi vượt giới hạn trả về 400", func(t *testing.T) {
		err := h.ValidateInput(&form{Title: "chuỗi này dài hơn mười ký tự rất nhiều"})
		require.Error(t, err, "❌ Chuỗi vượt maxLength phải bị chặn")

		var customErr *common.Error
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, common.StatusBadRequest, customErr.StatusCode)
	})
}
