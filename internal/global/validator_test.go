package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestValidateYouTubeLink kiểm tra custom validator youtube_link
func TestValidateYouTubeLink(t *testing.T) {
	InitValidator()

	type form struct {
		Link string `validate:"required,youtube_link"`
	}

	t.Run("Các dạng link hợp lệ được chấp nhận", func(t *testing.T) {
		validLinks := []string{
			"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			"https://youtu.be/dQw4w9WgXcQ",
			"https://www.youtube.com/shorts/dQw4w9WgXcQ",
			"https://www.youtube.com/embed/dQw4w9WgXcQ",
		}
		for _, link := range validLinks {
			assert.NoError(t, Validate.Struct(form{Link: link}), "✅ Link hợp lệ phải qua validate: %s", link)
		}
	})

	t.Run("Link không chứa video ID bị từ chối", func(t *testing.T) {
		invalidLinks := []string{
			"https://example.com/watch?v=dQw4w9WgXcQ",
			"https://www.youtube.com/watch?v=tooshort",
			"not-a-youtube-link",
			"",
		}
		for _, link := range invalidLinks {
			assert.Error(t, Validate.Struct(form{Link: link}), "❌ Link không hợp lệ phải bị chặn: %s", link)
		}
	})
}

// TestValidateNoXSS kiểm tra custom validator no_xss
func TestValidateNoXSS(t *testing.T) {
	InitValidator()

	type form struct {
		Title string `validate:"omitempty,no_xss"`
	}

	t.Run("Chuỗi thường được chấp nhận", func(t *testing.T) {
		assert.NoError(t, Validate.Struct(form{Title: "Video hướng dẫn nấu ăn"}))
		assert.NoError(t, Validate.Struct(form{Title: ""}))
	})

	t.Run("Chuỗi chứa pattern nguy hiểm bị từ chối", func(t *testing.T) {
		dangerous := []string{
			"<script>alert(1)</script>",
			"tiêu đề javascript:alert(1)",
			"<IMG onerror=alert(1)>",
			"<iframe src=x>",
		}
		for _, title := range dangerous {
			assert.Error(t, Validate.Struct(form{Title: title}), "❌ Chuỗi chứa XSS phải bị chặn: %s", title)
		}
	})
}
