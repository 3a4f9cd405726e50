package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"la_patisserie/internal/global"
	"la_patisserie/internal/logger"
	"la_patisserie/internal/worker"
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

// startWorkers khởi chạy các background worker của engine thưởng tháng.
// Mỗi worker chạy trong goroutine riêng với recover để panic không làm chết server.
func startWorkers(ctx context.Context) {
	log := logger.GetAppLogger()
	interval := time.Duration(global.ServerConfig.RewardResetInterval) * time.Minute

	resetWorker, err := worker.NewMonthlyResetWorker(interval)
	if err != nil {
		log.WithError(err).Error("Failed to create monthly reset worker, continuing without it")
	} else {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(map[string]interface{}{
						"panic": r,
					}).Error("🔄 [REWARD_RESET] Worker goroutine panic")
				}
			}()
			resetWorker.Start(ctx)
		}()
	}

	retentionWorker, err := worker.NewClaimRetentionWorker(interval)
	if err != nil {
		log.WithError(err).Error("Failed to create claim retention worker, continuing without it")
	} else {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(map[string]interface{}{
						"panic": r,
					}).Error("🧹 [CLAIM_RETENTION] Worker goroutine panic")
				}
			}()
			retentionWorker.Start(ctx)
		}()
	}
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

	// Khởi chạy các background worker (reset tháng, retention lịch sử claim)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWorkers(ctx)

	// Chạy Fiber server trên main thread
	main_thread()
}
