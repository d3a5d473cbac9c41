package main

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/Aethezz/bsc-web-interface/internal/global"
	"github.com/Aethezz/bsc-web-interface/internal/logger"
	"github.com/Aethezz/bsc-web-interface/internal/utility"
	"github.com/Aethezz/bsc-web-interface/internal/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Logger tự động đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server
func main_thread(app *fiber.App) {
	cfg := global.MongoDB_ServerConfig
	address := cfg.Address

	log := logger.GetAppLogger()
	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting Fiber server...")

	listenConfig := fiber.ListenConfig{}
	if err := app.Listen(address, listenConfig); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục (config, validator, database)
	InitGlobal()

	// Khởi tạo registry collections
	InitRegistry()

	// Khởi tạo Fiber app với routes và middleware
	app, videoService := InitFiberApp()

	log := logger.GetAppLogger()
	cfg := global.MongoDB_ServerConfig

	// Khởi tạo và chạy cleanup worker theo lịch cron (tắt khi không cấu hình)
	cleanupWorker := worker.NewCleanupWorker(videoService, cfg.CleanupSchedule)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go utility.GoProtect(func() {
		if err := cleanupWorker.Start(ctx); err != nil {
			log.WithError(err).Error("🧹 [CLEANUP] Cleanup worker không khởi động được")
		}
	})

	// Chạy Fiber server trên main thread
	main_thread(app)
}
