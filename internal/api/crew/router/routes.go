// Package router đăng ký các route thuộc domain crew: presence, roster, mời thành viên.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	crewhdl "onset_studio/internal/api/crew/handler"
	"onset_studio/internal/api/middleware"
	apirouter "onset_studio/internal/api/router"
)

// Register đăng ký tất cả route crew lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := crewhdl.NewCrewMembershipHandler()
	if err != nil {
		return fmt.Errorf("tạo CrewMembershipHandler: %w", err)
	}

	// CRUD chung cho collection crew_memberships (đọc + upsert + delete-one)
	r.RegisterCRUDRoutes(v1, "/crew/memberships", handler, apirouter.PresenceConfig)

	authMiddleware := middleware.ViewerAuthMiddleware()
	middlewares := []fiber.Handler{authMiddleware}

	// Presence lifecycle
	apirouter.RegisterRouteWithMiddleware(v1, "/crew", "POST", "/:projectId/join", middlewares, handler.HandleJoin)
	apirouter.RegisterRouteWithMiddleware(v1, "/crew", "POST", "/:projectId/heartbeat", middlewares, handler.HandleHeartbeat)
	apirouter.RegisterRouteWithMiddleware(v1, "/crew", "POST", "/:projectId/leave", middlewares, handler.HandleLeave)

	// GET /crew/:projectId/roster — trạng thái online đã hợp nhất
	apirouter.RegisterRouteWithMiddleware(v1, "/crew", "GET", "/:projectId/roster", middlewares, handler.HandleRoster)

	// POST /crew/:projectId/invite — gửi email mời (Owner)
	apirouter.RegisterRouteWithMiddleware(v1, "/crew", "POST", "/:projectId/invite", middlewares, handler.HandleInvite)

	return nil
}
