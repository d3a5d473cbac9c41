package basehdl

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aethezz/bsc-web-interface/internal/common"
)

// TestParseObjectIDParam kiểm tra validate ObjectID từ URL param.
// ID sai định dạng phải trả về 400, không rơi xuống 404 của tầng database.
func TestParseObjectIDParam(t *testing.T) {
	h := &BaseHandler[struct{}, struct{}]{}

	app := fiber.New()
	app.Delete("/videos/:id", func(c fiber.Ctx) error {
		id, err := h.ParseObjectIDParam(c, "id")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, id.Hex(), nil)
		return nil
	})

	t.Run("ID không phải hex 24 ký tự trả về 400", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/videos/not-a-valid-id", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, common.StatusBadRequest, resp.StatusCode, "❌ ID sai định dạng phải trả về 400")
	})

	t.Run("ID hex 24 ký tự được chấp nhận", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/videos/65b2f7c8a1d2e3f4a5b6c7d8", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, common.StatusOK, resp.StatusCode, "✅ ID hợp lệ phải được parse thành công")
	})
}
