// Package router đăng ký các route thuộc domain project: CRUD dự án, phase.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"onset_studio/internal/api/middleware"
	projecthdl "onset_studio/internal/api/project/handler"
	apirouter "onset_studio/internal/api/router"
)

// Register đăng ký tất cả route project lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := projecthdl.NewProjectHandler()
	if err != nil {
		return fmt.Errorf("tạo ProjectHandler: %w", err)
	}

	// CRUD chung cho collection projects
	r.RegisterCRUDRoutes(v1, "/project", handler, apirouter.ReadWriteConfig)

	authMiddleware := middleware.ViewerAuthMiddleware()
	middlewares := []fiber.Handler{authMiddleware}

	// GET /project/mine — dự án do viewer hiện tại làm Owner
	apirouter.RegisterRouteWithMiddleware(v1, "/project", "GET", "/mine", middlewares, handler.HandleListMine)

	// PUT /project/:projectId/phases — tạo hoặc đổi tên phase
	apirouter.RegisterRouteWithMiddleware(v1, "/project", "PUT", "/:projectId/phases", middlewares, handler.HandleUpsertPhase)

	// POST /project/:projectId/archive
	apirouter.RegisterRouteWithMiddleware(v1, "/project", "POST", "/:projectId/archive", middlewares, handler.HandleArchive)

	return nil
}
