package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"

	basehdl "github.com/Aethezz/bsc-web-interface/internal/api/base/handler"
	apirouter "github.com/Aethezz/bsc-web-interface/internal/api/router"
	videohdl "github.com/Aethezz/bsc-web-interface/internal/api/videos/handler"
	videorouter "github.com/Aethezz/bsc-web-interface/internal/api/videos/router"
	videosvc "github.com/Aethezz/bsc-web-interface/internal/api/videos/service"
	"github.com/Aethezz/bsc-web-interface/internal/global"
	"github.com/Aethezz/bsc-web-interface/internal/logger"
	"github.com/Aethezz/bsc-web-interface/internal/mlclient"
)

// InitFiberApp khởi tạo ứng dụng Fiber với các middleware cần thiết.
// Trả về thêm VideoService để main wire vào cleanup worker.
func InitFiberApp() (*fiber.App, *videosvc.VideoService) {
	log := logger.GetAppLogger()

	// Khởi tạo app với cấu hình nâng cao
	app := fiber.New(fiber.Config{
		// =========================================
		// 1. CẤU HÌNH CƠ BẢN
		// =========================================
		AppName:       "Emotion Analysis API", // Tên ứng dụng hiển thị
		ServerHeader:  "Emotion Analysis API", // Header server trong response
		StrictRouting: false,                  // /foo và /foo/ là một
		CaseSensitive: true,                   // /Foo và /foo là khác nhau
		UnescapePath:  true,                   // Tự động decode URL-encoded paths

		// =========================================
		// 2. CẤU HÌNH PERFORMANCE
		// =========================================
		BodyLimit:       10 * 1024 * 1024, // Max size của request body (10MB)
		Concurrency:     256 * 1024,       // Số lượng goroutines tối đa
		ReadBufferSize:  4096,             // Buffer size cho request reading
		WriteBufferSize: 4096,             // Buffer size cho response writing

		// =========================================
		// 3. CẤU HÌNH TIMEOUT
		// =========================================
		// Không set WriteTimeout ngắn vì analyze/batch-analyze phải chờ
		// ML service scrape comment, có thể mất nhiều phút
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  120 * time.Second,

		// =========================================
		// 4. CẤU HÌNH ERROR HANDLING
		// =========================================
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"

			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}

			// Log error
			logger.GetErrorLogger().WithFields(map[string]interface{}{
				"code":      code,
				"message":   message,
				"path":      c.Path(),
				"method":    c.Method(),
				"requestId": c.Get("X-Request-ID"),
			}).Error("Request error")

			// Return JSON error với format thống nhất
			return c.Status(code).JSON(basehdl.APIResponse{
				Success: false,
				Message: message,
			})
		},
	})

	// =========================================
	// MIDDLEWARE STACK
	// =========================================

	// 1. Request ID Middleware - Tạo ID duy nhất cho mỗi request để trace
	app.Use(requestid.New(requestid.Config{
		Header: "X-Request-ID",
		Generator: func() string {
			return fmt.Sprintf("%d", time.Now().UnixNano())
		},
	}))

	// 2. CORS Middleware - PHẢI ĐẶT Ở ĐẦU để xử lý preflight requests trước các middleware khác
	corsOrigins := global.MongoDB_ServerConfig.CORS_Origins
	if corsOrigins == "" {
		// Không cấu hình thì chỉ cho phép frontend
		corsOrigins = global.MongoDB_ServerConfig.FrontendURL
	}
	var allowOrigins []string
	if corsOrigins == "*" {
		// Development mode: cho phép tất cả
		allowOrigins = []string{"*"}
	} else {
		// Production mode: chỉ cho phép các origins cụ thể
		allowOrigins = strings.Split(corsOrigins, ",")
		for i, origin := range allowOrigins {
			allowOrigins[i] = strings.TrimSpace(origin)
		}
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Request-ID",
			"X-Requested-With",
		},
		AllowCredentials: global.MongoDB_ServerConfig.CORS_AllowCredentials,
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		MaxAge:           24 * 60 * 60, // Thời gian cache preflight requests (24 giờ)
	}))

	// 3. Security Headers Middleware
	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	})

	// 4. Rate Limiting Middleware - Giới hạn số request
	if global.MongoDB_ServerConfig.RateLimit_Enabled && global.MongoDB_ServerConfig.RateLimit_Max > 0 {
		rateLimitMax := global.MongoDB_ServerConfig.RateLimit_Max
		rateLimitWindow := time.Duration(global.MongoDB_ServerConfig.RateLimit_Window) * time.Second
		app.Use(limiter.New(limiter.Config{
			Max:        rateLimitMax,
			Expiration: rateLimitWindow,
			KeyGenerator: func(c fiber.Ctx) string {
				return c.IP() // Giới hạn theo IP
			},
			LimitReached: func(c fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(basehdl.APIResponse{
					Success: false,
					Message: "Quá nhiều yêu cầu, vui lòng thử lại sau",
				})
			},
			Next: func(c fiber.Ctx) bool {
				// Bỏ qua rate limit cho health check và OPTIONS requests (preflight)
				return c.Path() == "/health" || c.Method() == "OPTIONS"
			},
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", rateLimitMax, global.MongoDB_ServerConfig.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	// 5. Recover Middleware
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.GetErrorLogger().WithFields(map[string]interface{}{
				"panic":  e,
				"path":   c.Path(),
				"method": c.Method(),
			}).Error("Panic recovered")

			c.Status(fiber.StatusInternalServerError).JSON(basehdl.APIResponse{
				Success: false,
				Message: fmt.Sprintf("Internal Server Error: %v", e),
			})
		},
		Next: func(c fiber.Ctx) bool {
			return c.Path() == "/health"
		},
	}))

	// =========================================
	// DOMAIN DEPENDENCIES VÀ ROUTES
	// =========================================

	mlClient := mlclient.NewClient(global.MongoDB_ServerConfig.MLService_URL)

	videoHandler, err := videohdl.NewVideoHandler(mlClient, global.MongoDB_ServerConfig.BatchWorkers)
	if err != nil {
		log.Fatalf("Failed to create video handler: %v", err)
	}

	if err := apirouter.SetupRoutes(app, videorouter.NewRegister(videoHandler)); err != nil {
		log.Fatalf("Failed to setup routes: %v", err)
	}

	// Health check nằm ngoài /api, không qua middleware nào
	systemHandler := basehdl.NewSystemHandler()
	app.Get("/health", systemHandler.HandleHealth)

	return app, videoHandler.VideoService
}
