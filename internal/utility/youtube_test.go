package utility

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aethezz/bsc-web-interface/internal/common"
)

// TestExtractVideoID kiểm tra trích xuất video ID từ các dạng link YouTube
func TestExtractVideoID(t *testing.T) {
	t.Run("Các dạng link hợp lệ", func(t *testing.T) {
		cases := []struct {
			name string
			link string
			want string
		}{
			{"watch?v=", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
			{"watch?v= kèm tham số", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s", "dQw4w9WgXcQ"},
			{"youtu.be", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
			{"youtu.be kèm query", "https://youtu.be/dQw4w9WgXcQ?si=abc", "dQw4w9WgXcQ"},
			{"shorts", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
			{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
			{"mobile", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
			{"không có scheme", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				id, err := ExtractVideoID(tc.link)
				assert.NoError(t, err, "✅ Link hợp lệ không được trả về lỗi")
				assert.Equal(t, tc.want, id, "Video ID phải được trích xuất đúng")
			})
		}
	})

	t.Run("Các link không hợp lệ", func(t *testing.T) {
		cases := []struct {
			name string
			link string
		}{
			{"rỗng", ""},
			{"chỉ có khoảng trắng", "   "},
			{"không phải youtube", "https://vimeo.com/123456"},
			{"thiếu video id", "https://www.youtube.com/watch"},
			{"video id sai độ dài", "https://youtu.be/abc"},
			{"văn bản bất kỳ", "not a link at all"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := ExtractVideoID(tc.link)
				assert.Error(t, err, "❌ Link không hợp lệ phải trả về lỗi")
				assert.True(t, errors.Is(err, common.ErrInvalidInput), "Lỗi phải là ErrInvalidInput")
			})
		}
	})
}
