// Package viewerhdl - Handler tạo phiên viewer.
package viewerhdl

import (
	"fmt"

	basehdl "onset_studio/internal/api/base/handler"
	viewerdto "onset_studio/internal/api/viewer/dto"
	viewersvc "onset_studio/internal/api/viewer/service"
	"onset_studio/internal/common"
	"onset_studio/internal/global"
	"onset_studio/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// ViewerSessionHandler xử lý POST /viewer/session.
type ViewerSessionHandler struct {
	SessionService *viewersvc.ViewerSessionService
}

// NewViewerSessionHandler tạo ViewerSessionHandler mới.
func NewViewerSessionHandler() (*ViewerSessionHandler, error) {
	svc, err := viewersvc.NewViewerSessionService()
	if err != nil {
		return nil, fmt.Errorf("tạo ViewerSessionService: %w", err)
	}
	return &ViewerSessionHandler{SessionService: svc}, nil
}

// HandleCreateSession xử lý POST /viewer/session — route duy nhất không qua
// ViewerAuthMiddleware (chính nó cấp token).
func (h *ViewerSessionHandler) HandleCreateSession(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input viewerdto.SessionInput
		if err := c.Bind().Body(&input); err != nil {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationFormat.Code, "message": "Dữ liệu gửi lên không đúng định dạng JSON", "status": "error",
			})
			return nil
		}
		if err := global.Validate.Struct(&input); err != nil {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "Email không hợp lệ", "status": "error",
			})
			return nil
		}

		session, err := h.SessionService.CreateSession(c.Context(), &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogAction("viewer_session_create", c, map[string]interface{}{
			"viewer": session.Email,
			"role":   session.Role,
		})
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": common.MsgSuccess, "data": session, "status": "success",
		})
		return nil
	})
}
