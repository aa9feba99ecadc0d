package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"onset_studio/internal/global"
	"onset_studio/internal/logger"
	"onset_studio/internal/realtime"
	"onset_studio/internal/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	// Khởi tạo logger với cấu hình mặc định
	// Logger sẽ tự động đọc environment variables để cấu hình
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Log thông tin khởi tạo bằng logger mới
	log := logger.GetAppLogger()
	log.Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server
func main_thread() {
	// Khởi tạo app với cấu hình
	app := InitFiberApp()

	// Khởi động server với cấu hình listen
	cfg := global.ServerConfig
	address := ":" + cfg.Address

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

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	// Khởi tạo dữ liệu mặc định
	InitDefaultData()

	// Nối event thay đổi dữ liệu CRUD vào realtime hub
	realtime.RegisterDataChangeBridge()

	log := logger.GetAppLogger()
	cfg := global.ServerConfig

	// Context chung cho các thành phần nền (realtime gateway, worker)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Khởi tạo và chạy Realtime Gateway (websocket listener riêng)
	realtimeServer := realtime.NewServer(cfg.RealtimeAddress)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.WithFields(map[string]interface{}{
					"panic": r,
				}).Error("🔌 [REALTIME] Gateway goroutine panic")
			}
		}()

		log.Info("🔌 [REALTIME] Starting Realtime Gateway...")
		if err := realtimeServer.Start(ctx); err != nil {
			log.WithError(err).Error("🔌 [REALTIME] Gateway đã dừng vì lỗi")
		}
	}()

	// Khởi tạo và chạy Presence Sweeper (background worker quét heartbeat stale)
	sweeper, err := worker.NewPresenceSweeperWorker(
		time.Duration(cfg.PresenceSweepSeconds)*time.Second,
		int64(cfg.PresenceTimeoutSeconds),
	)
	if err != nil {
		log.WithError(err).Error("Failed to create presence sweeper, continuing without presence worker")
	} else {
		// Chạy worker trong goroutine riêng với recover
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(map[string]interface{}{
						"panic": r,
					}).Error("🔄 [PRESENCE_SWEEP] Worker goroutine panic")
				}
			}()

			sweeper.Start(ctx)
			log.Warn("🔄 [PRESENCE_SWEEP] Worker đã dừng (có thể do context cancelled)")
		}()

		log.Info("🔄 [PRESENCE_SWEEP] Presence Sweeper started successfully")
	}

	// Chạy Fiber server trên main thread
	main_thread()
}
