package main

import (
	"os"

	"onset_studio/internal/global"
	"onset_studio/internal/logger"
)

// InitDefaultData chuẩn bị các tài nguyên local cần có trước khi server nhận request.
func InitDefaultData() {
	log := logger.GetAppLogger()
	log.Info("🔄 [INIT] Starting InitDefaultData...")

	// Đảm bảo thư mục lưu media upload tồn tại (chữ ký call sheet, ảnh hiện trường)
	uploadDir := global.ServerConfig.MediaUploadDir
	if uploadDir == "" {
		uploadDir = "./uploads"
		global.ServerConfig.MediaUploadDir = uploadDir
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create media upload directory %s: %v", uploadDir, err)
	}
	log.Infof("✅ [INIT] Media upload directory ready: %s", uploadDir)

	log.Info("✅ [INIT] InitDefaultData completed successfully")
}
