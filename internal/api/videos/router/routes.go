// Package router đăng ký các route thuộc domain Videos.
package router

import (
	"github.com/gofiber/fiber/v3"

	apirouter "github.com/Aethezz/bsc-web-interface/internal/api/router"
	videohdl "github.com/Aethezz/bsc-web-interface/internal/api/videos/handler"
)

// NewRegister tạo hàm đăng ký route videos với handler đã khởi tạo.
func NewRegister(videoHandler *videohdl.VideoHandler) apirouter.RegisterFunc {
	return func(api fiber.Router, r *apirouter.Router) error {
		apirouter.RegisterRouteWithMiddleware(api, "/videos", "GET", "/", nil, videoHandler.GetVideos)
		apirouter.RegisterRouteWithMiddleware(api, "/videos", "POST", "/", nil, videoHandler.SaveVideo)
		apirouter.RegisterRouteWithMiddleware(api, "/videos", "PUT", "/:id", nil, videoHandler.UpdateVideo)
		apirouter.RegisterRouteWithMiddleware(api, "/videos", "DELETE", "/:id", nil, videoHandler.DeleteVideo)

		apirouter.RegisterRouteWithMiddleware(api, "/videos", "POST", "/analyze", nil, videoHandler.Analyze)
		apirouter.RegisterRouteWithMiddleware(api, "/videos", "POST", "/realtime-emotions", nil, videoHandler.RealtimeEmotions)
		apirouter.RegisterRouteWithMiddleware(api, "/videos", "POST", "/batch-analyze", nil, videoHandler.BatchAnalyze)

		apirouter.RegisterRouteWithMiddleware(api, "/videos", "POST", "/cleanup-duplicates", nil, videoHandler.CleanupDuplicates)
		apirouter.RegisterRouteWithMiddleware(api, "/videos", "POST", "/clear-database", nil, videoHandler.ClearDatabase)

		return nil
	}
}
