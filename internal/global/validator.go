package global

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Aethezz/bsc-web-interface/internal/utility"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	// Khởi tạo validator
	Validate = validator.New()

	// Đăng ký các custom validator
	_ = Validate.RegisterValidation("youtube_link", validateYouTubeLink)
	_ = Validate.RegisterValidation("no_xss", validateNoXSS)
}

// validateYouTubeLink kiểm tra link có chứa video ID hợp lệ không
// Hỗ trợ các dạng watch?v=, youtu.be/, shorts/, embed/
func validateYouTubeLink(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return false
	}
	_, err := utility.ExtractVideoID(value)
	return err == nil
}

// validateNoXSS kiểm tra XSS trong các chuỗi nhập từ người dùng
func validateNoXSS(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	dangerousPatterns := []string{
		"<script",
		"javascript:",
		"onerror=",
		"onload=",
		"onclick=",
		"eval(",
		"document.cookie",
		"document.write",
		"<iframe",
		"<object",
		"<embed",
	}

	value = strings.ToLower(value)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(value, pattern) {
			return false
		}
	}
	return true
}
