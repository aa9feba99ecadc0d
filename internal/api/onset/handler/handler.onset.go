// Package onsethdl - Handler cho trải nghiệm on-set mobile.
//
// Các route ghi draft trả về 202 với body rỗng ngay sau khi nhận request
// hợp lệ: việc ghi là fire-and-forget, client không chờ kết quả database.
package onsethdl

import (
	"errors"
	"fmt"

	basehdl "onset_studio/internal/api/base/handler"
	onsetdto "onset_studio/internal/api/onset/dto"
	onsetsvc "onset_studio/internal/api/onset/service"
	"onset_studio/internal/common"
	"onset_studio/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OnsetHandler xử lý các route /onset/:projectId/*.
type OnsetHandler struct {
	OnsetService *onsetsvc.OnsetService
}

// NewOnsetHandler tạo OnsetHandler mới.
func NewOnsetHandler() (*OnsetHandler, error) {
	svc, err := onsetsvc.NewOnsetService()
	if err != nil {
		return nil, fmt.Errorf("tạo OnsetService: %w", err)
	}
	return &OnsetHandler{OnsetService: svc}, nil
}

// HandleGetView xử lý GET /onset/:projectId/view.
func (h *OnsetHandler) HandleGetView(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		projectID, ok := parseProjectID(c)
		if !ok {
			return nil
		}
		// ?activeTool= là tab viewer đang mở — còn khả dụng thì giữ nguyên
		view, err := h.OnsetService.GetView(c.Context(), projectID, basehdl.GetViewerEmail(c), c.Query("activeTool"))
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				c.Status(common.StatusNotFound).JSON(fiber.Map{
					"code": common.ErrCodeDatabaseQuery.Code, "message": "Không tìm thấy dự án", "status": "error",
				})
				return nil
			}
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": common.MsgSuccess, "data": view, "status": "success",
		})
		return nil
	})
}

// HandleUpdateControl xử lý PUT /onset/:projectId/control (chỉ Owner).
func (h *OnsetHandler) HandleUpdateControl(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		projectID, ok := parseProjectID(c)
		if !ok {
			return nil
		}
		var input onsetdto.ControlUpdateInput
		if !bindBody(c, &input) {
			return nil
		}
		if err := h.OnsetService.UpdateControl(c.Context(), projectID, basehdl.GetViewerEmail(c), &input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogDraftWrite("control_update", projectID.Hex(), "onset-mobile-control", c, nil)
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": common.MsgSuccess, "data": nil, "status": "success",
		})
		return nil
	})
}

// HandleAppendDitLogEntry xử lý POST /onset/:projectId/dit-log/entries.
func (h *OnsetHandler) HandleAppendDitLogEntry(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		projectID, ok := parseProjectID(c)
		if !ok {
			return nil
		}
		var input onsetdto.DitLogEntryInput
		if !bindBody(c, &input) {
			return nil
		}
		if input.Roll == "" {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "roll không được để trống", "status": "error",
			})
			return nil
		}
		h.OnsetService.AppendDitLogEntry(c.Context(), projectID, basehdl.GetViewerEmail(c), &input)
		logger.LogDraftWrite("append", projectID.Hex(), "dit-log", c, map[string]interface{}{"roll": input.Roll})
		return accepted(c)
	})
}

// HandleAppendCameraReportEntry xử lý POST /onset/:projectId/camera-report/entries.
func (h *OnsetHandler) HandleAppendCameraReportEntry(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		projectID, ok := parseProjectID(c)
		if !ok {
			return nil
		}
		var input onsetdto.CameraReportEntryInput
		if !bindBody(c, &input) {
			return nil
		}
		if input.Roll == "" {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "roll không được để trống", "status": "error",
			})
			return nil
		}
		h.OnsetService.AppendCameraReportEntry(c.Context(), projectID, basehdl.GetViewerEmail(c), &input)
		logger.LogDraftWrite("append", projectID.Hex(), "camera-report", c, map[string]interface{}{"roll": input.Roll})
		return accepted(c)
	})
}

// HandleAddNote xử lý POST /onset/:projectId/notes.
func (h *OnsetHandler) HandleAddNote(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		projectID, ok := parseProjectID(c)
		if !ok {
			return nil
		}
		var input onsetdto.NoteInput
		if !bindBody(c, &input) {
			return nil
		}
		if input.Text == "" {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "text không được để trống", "status": "error",
			})
			return nil
		}
		noteID := h.OnsetService.AddNote(c.Context(), projectID, basehdl.GetViewerEmail(c), &input)
		logger.LogDraftWrite("append", projectID.Hex(), "on-set-notes", c, map[string]interface{}{"note_id": noteID})
		c.Status(common.StatusAccepted).JSON(fiber.Map{
			"code": common.StatusAccepted, "message": common.MsgSuccess, "data": fiber.Map{"noteId": noteID}, "status": "success",
		})
		return nil
	})
}

// HandleUpdateNote xử lý PUT /onset/:projectId/notes/:noteId.
func (h *OnsetHandler) HandleUpdateNote(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		projectID, ok := parseProjectID(c)
		if !ok {
			return nil
		}
		noteID := c.Params("noteId")
		if noteID == "" {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "Thiếu noteId", "status": "error",
			})
			return nil
		}
		var input onsetdto.NoteInput
		if !bindBody(c, &input) {
			return nil
		}
		h.OnsetService.UpdateNote(c.Context(), projectID, basehdl.GetViewerEmail(c), noteID, &input)
		logger.LogDraftWrite("mutate", projectID.Hex(), "on-set-notes", c, map[string]interface{}{"note_id": noteID})
		return accepted(c)
	})
}

// HandleDeleteNote xử lý DELETE /onset/:projectId/notes/:noteId.
func (h *OnsetHandler) HandleDeleteNote(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		projectID, ok := parseProjectID(c)
		if !ok {
			return nil
		}
		noteID := c.Params("noteId")
		if noteID == "" {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "Thiếu noteId", "status": "error",
			})
			return nil
		}
		h.OnsetService.DeleteNote(c.Context(), projectID, noteID)
		logger.LogDraftWrite("mutate", projectID.Hex(), "on-set-notes", c, map[string]interface{}{"note_id": noteID, "deleted": true})
		return accepted(c)
	})
}

// HandleCompleteShot xử lý POST /onset/:projectId/shots/:shotId/complete.
func (h *OnsetHandler) HandleCompleteShot(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		projectID, ok := parseProjectID(c)
		if !ok {
			return nil
		}
		shotID := c.Params("shotId")
		if shotID == "" {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "Thiếu shotId", "status": "error",
			})
			return nil
		}
		var input onsetdto.ShotCompleteInput
		if !bindBody(c, &input) {
			return nil
		}
		if input.AddToLog && input.Roll == "" {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "roll không được để trống khi addToLog bật", "status": "error",
			})
			return nil
		}
		h.OnsetService.CompleteShot(c.Context(), projectID, basehdl.GetViewerEmail(c), shotID, &input)
		logger.LogDraftWrite("mutate", projectID.Hex(), "shot-scene-book", c, map[string]interface{}{
			"shot_id":    shotID,
			"add_to_log": input.AddToLog,
		})
		return accepted(c)
	})
}

// HandleBroadcastMediaAlert xử lý POST /onset/:projectId/media-alert.
func (h *OnsetHandler) HandleBroadcastMediaAlert(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		projectID, ok := parseProjectID(c)
		if !ok {
			return nil
		}
		var input onsetdto.MediaAlertInput
		if !bindBody(c, &input) {
			return nil
		}
		if input.Roll == "" {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "roll không được để trống", "status": "error",
			})
			return nil
		}
		alert, err := h.OnsetService.BroadcastMediaAlert(c.Context(), projectID, basehdl.GetViewerEmail(c), &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogAction("media_alert", c, map[string]interface{}{
			"project_id": projectID.Hex(),
			"roll":       input.Roll,
		})
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": common.MsgSuccess, "data": alert, "status": "success",
		})
		return nil
	})
}

// accepted trả về 202 — request đã nhận, việc ghi chạy phía sau.
func accepted(c fiber.Ctx) error {
	c.Status(common.StatusAccepted).JSON(fiber.Map{
		"code": common.StatusAccepted, "message": common.MsgSuccess, "data": nil, "status": "success",
	})
	return nil
}

// bindBody parse JSON body, tự trả lỗi 400 khi sai định dạng.
func bindBody(c fiber.Ctx, out interface{}) bool {
	if err := c.Bind().Body(out); err != nil {
		c.Status(common.StatusBadRequest).JSON(fiber.Map{
			"code": common.ErrCodeValidationFormat.Code, "message": "Dữ liệu gửi lên không đúng định dạng JSON", "status": "error",
		})
		return false
	}
	return true
}

// parseProjectID đọc và validate :projectId, tự trả lỗi 400 khi không hợp lệ.
func parseProjectID(c fiber.Ctx) (primitive.ObjectID, bool) {
	idStr := c.Params("projectId")
	if idStr == "" {
		c.Status(common.StatusBadRequest).JSON(fiber.Map{
			"code": common.ErrCodeValidationInput.Code, "message": "Thiếu projectId", "status": "error",
		})
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		c.Status(common.StatusBadRequest).JSON(fiber.Map{
			"code": common.ErrCodeValidationFormat.Code, "message": "projectId không hợp lệ", "status": "error",
		})
		return primitive.NilObjectID, false
	}
	return id, true
}
