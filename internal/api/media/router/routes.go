// Package router đăng ký các route thuộc domain media: upload + tra cứu metadata.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	mediahdl "onset_studio/internal/api/media/handler"
	"onset_studio/internal/api/middleware"
	apirouter "onset_studio/internal/api/router"
)

// Register đăng ký tất cả route media lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := mediahdl.NewMediaFileHandler()
	if err != nil {
		return fmt.Errorf("tạo MediaFileHandler: %w", err)
	}

	// CRUD chỉ đọc cho collection media_files (ghi đi qua route upload)
	r.RegisterCRUDRoutes(v1, "/media/files", handler, apirouter.ReadOnlyConfig)

	authMiddleware := middleware.ViewerAuthMiddleware()
	middlewares := []fiber.Handler{authMiddleware}

	// POST /media/:projectId/upload — multipart, field "file"
	apirouter.RegisterRouteWithMiddleware(v1, "/media", "POST", "/:projectId/upload", middlewares, handler.HandleUpload)

	// GET /media/:projectId/files
	apirouter.RegisterRouteWithMiddleware(v1, "/media", "GET", "/:projectId/files", middlewares, handler.HandleListByProject)

	return nil
}
