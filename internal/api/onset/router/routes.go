// Package router đăng ký các route thuộc domain onset: view mobile, control,
// ghi log/ghi chú từ hiện trường, media alert.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"onset_studio/internal/api/middleware"
	onsethdl "onset_studio/internal/api/onset/handler"
	apirouter "onset_studio/internal/api/router"
)

// Register đăng ký tất cả route onset lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := onsethdl.NewOnsetHandler()
	if err != nil {
		return fmt.Errorf("tạo OnsetHandler: %w", err)
	}

	authMiddleware := middleware.ViewerAuthMiddleware()
	middlewares := []fiber.Handler{authMiddleware}

	// GET /onset/:projectId/view — toàn bộ trạng thái màn hình on-set
	apirouter.RegisterRouteWithMiddleware(v1, "/onset", "GET", "/:projectId/view", middlewares, handler.HandleGetView)

	// PUT /onset/:projectId/control — kill switch + phân phối tool (Owner)
	apirouter.RegisterRouteWithMiddleware(v1, "/onset", "PUT", "/:projectId/control", middlewares, handler.HandleUpdateControl)

	// POST /onset/:projectId/dit-log/entries
	apirouter.RegisterRouteWithMiddleware(v1, "/onset", "POST", "/:projectId/dit-log/entries", middlewares, handler.HandleAppendDitLogEntry)

	// POST /onset/:projectId/camera-report/entries
	apirouter.RegisterRouteWithMiddleware(v1, "/onset", "POST", "/:projectId/camera-report/entries", middlewares, handler.HandleAppendCameraReportEntry)

	// Ghi chú on-set
	apirouter.RegisterRouteWithMiddleware(v1, "/onset", "POST", "/:projectId/notes", middlewares, handler.HandleAddNote)
	apirouter.RegisterRouteWithMiddleware(v1, "/onset", "PUT", "/:projectId/notes/:noteId", middlewares, handler.HandleUpdateNote)
	apirouter.RegisterRouteWithMiddleware(v1, "/onset", "DELETE", "/:projectId/notes/:noteId", middlewares, handler.HandleDeleteNote)

	// POST /onset/:projectId/shots/:shotId/complete — một lần ghi cho cả hai draft
	apirouter.RegisterRouteWithMiddleware(v1, "/onset", "POST", "/:projectId/shots/:shotId/complete", middlewares, handler.HandleCompleteShot)

	// POST /onset/:projectId/media-alert — realtime + lưu lịch sử
	apirouter.RegisterRouteWithMiddleware(v1, "/onset", "POST", "/:projectId/media-alert", middlewares, handler.HandleBroadcastMediaAlert)

	return nil
}
