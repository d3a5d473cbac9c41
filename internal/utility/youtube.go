package utility

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/Aethezz/bsc-web-interface/internal/common"
)

// videoIDPattern là định dạng của một YouTube video ID (11 ký tự)
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID trích xuất video ID từ một link YouTube.
// Hỗ trợ tất cả các dạng link phổ biến:
//   - https://www.youtube.com/watch?v=<id>
//   - https://youtu.be/<id>
//   - https://www.youtube.com/shorts/<id>
//   - https://www.youtube.com/embed/<id>
//
// Link không parse được video ID sẽ trả về lỗi ErrInvalidInput.
func ExtractVideoID(link string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", fmt.Errorf("youtube link is empty: %w", common.ErrInvalidInput)
	}

	// Thêm scheme nếu thiếu để url.Parse hoạt động đúng
	rawLink := link
	if !strings.Contains(link, "://") {
		rawLink = "https://" + link
	}

	u, err := url.Parse(rawLink)
	if err != nil {
		return "", fmt.Errorf("cannot parse youtube link %q: %w", link, common.ErrInvalidInput)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		// Dạng watch?v=<id>
		if id := u.Query().Get("v"); id != "" {
			return validateVideoID(id, link)
		}
		// Dạng shorts/<id> hoặc embed/<id>
		for _, prefix := range []string{"/shorts/", "/embed/"} {
			if strings.HasPrefix(u.Path, prefix) {
				id := strings.TrimPrefix(u.Path, prefix)
				if idx := strings.Index(id, "/"); idx >= 0 {
					id = id[:idx]
				}
				return validateVideoID(id, link)
			}
		}
	case "youtu.be":
		// Dạng youtu.be/<id>
		id := strings.Trim(u.Path, "/")
		if idx := strings.Index(id, "/"); idx >= 0 {
			id = id[:idx]
		}
		return validateVideoID(id, link)
	}

	return "", fmt.Errorf("no video id found in youtube link %q: %w", link, common.ErrInvalidInput)
}

// validateVideoID kiểm tra ID đúng định dạng 11 ký tự của YouTube
func validateVideoID(id string, link string) (string, error) {
	if !videoIDPattern.MatchString(id) {
		return "", fmt.Errorf("invalid video id %q in link %q: %w", id, link, common.ErrInvalidInput)
	}
	return id, nil
}
