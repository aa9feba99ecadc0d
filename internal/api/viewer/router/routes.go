// Package router đăng ký route thuộc domain viewer.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	apirouter "onset_studio/internal/api/router"
	viewerhdl "onset_studio/internal/api/viewer/handler"
)

// Register đăng ký route viewer lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := viewerhdl.NewViewerSessionHandler()
	if err != nil {
		return fmt.Errorf("tạo ViewerSessionHandler: %w", err)
	}

	// POST /viewer/session — không qua auth middleware (chính nó cấp token)
	apirouter.RegisterRouteWithMiddleware(v1, "/viewer", "POST", "/session", nil, handler.HandleCreateSession)

	return nil
}
