// Package projecthdl - Handler dự án sản xuất.
package projecthdl

import (
	"errors"
	"fmt"
	"strconv"

	basehdl "onset_studio/internal/api/base/handler"
	projectdto "onset_studio/internal/api/project/dto"
	projectmodels "onset_studio/internal/api/project/models"
	projectsvc "onset_studio/internal/api/project/service"
	"onset_studio/internal/common"
	"onset_studio/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectHandler xử lý CRUD dự án + thao tác phase.
// CRUD chung đi qua BaseHandler, các route nghiệp vụ có handler riêng.
type ProjectHandler struct {
	*basehdl.BaseHandler[projectmodels.Project, projectdto.ProjectCreateInput, projectdto.ProjectUpdateInput]
	ProjectService *projectsvc.ProjectService
}

// NewProjectHandler tạo ProjectHandler mới.
func NewProjectHandler() (*ProjectHandler, error) {
	svc, err := projectsvc.NewProjectService()
	if err != nil {
		return nil, fmt.Errorf("tạo ProjectService: %w", err)
	}
	return &ProjectHandler{
		BaseHandler:    basehdl.NewBaseHandler[projectmodels.Project, projectdto.ProjectCreateInput, projectdto.ProjectUpdateInput](svc),
		ProjectService: svc,
	}, nil
}

// HandleListMine xử lý GET /project/mine — dự án do viewer hiện tại làm Owner.
func (h *ProjectHandler) HandleListMine(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		email := basehdl.GetViewerEmail(c)
		if email == "" {
			c.Status(common.StatusUnauthorized).JSON(fiber.Map{
				"code": common.ErrCodeAuthIdentity.Code, "message": "Thiếu danh tính viewer", "status": "error",
			})
			return nil
		}
		limit := 50
		if s := c.Query("limit"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				limit = n
			}
		}
		projects, err := h.ProjectService.FindByOwner(c.Context(), email, limit)
		if err != nil {
			c.Status(common.StatusInternalServerError).JSON(fiber.Map{
				"code": common.ErrCodeDatabase.Code, "message": "Lỗi truy vấn dự án", "status": "error",
			})
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": common.MsgSuccess, "data": projects, "status": "success",
		})
		return nil
	})
}

// HandleUpsertPhase xử lý PUT /project/:projectId/phases — tạo hoặc đổi tên phase.
func (h *ProjectHandler) HandleUpsertPhase(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		projectID, ok := parseProjectID(c)
		if !ok {
			return nil
		}
		var input projectdto.PhaseUpsertInput
		if err := c.Bind().Body(&input); err != nil {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationFormat.Code, "message": "Dữ liệu gửi lên không đúng định dạng JSON", "status": "error",
			})
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		p, err := h.ProjectService.UpsertPhase(c.Context(), projectID, input.PhaseKey, input.Name)
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

		logger.LogAction("phase_upsert", c, map[string]interface{}{
			"project_id": projectID.Hex(),
			"phase_key":  input.PhaseKey,
		})
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": common.MsgSuccess, "data": p, "status": "success",
		})
		return nil
	})
}

// HandleArchive xử lý POST /project/:projectId/archive.
func (h *ProjectHandler) HandleArchive(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		projectID, ok := parseProjectID(c)
		if !ok {
			return nil
		}
		if err := h.ProjectService.Archive(c.Context(), projectID); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				c.Status(common.StatusNotFound).JSON(fiber.Map{
					"code": common.ErrCodeDatabaseQuery.Code, "message": "Không tìm thấy dự án", "status": "error",
				})
				return nil
			}
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogAction("project_archive", c, map[string]interface{}{"project_id": projectID.Hex()})
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": common.MsgSuccess, "data": nil, "status": "success",
		})
		return nil
	})
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
