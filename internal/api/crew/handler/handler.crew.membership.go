// Package crewhdl - Handler thành viên đoàn phim + presence.
package crewhdl

import (
	"errors"
	"fmt"
	"strings"
	"time"

	basehdl "onset_studio/internal/api/base/handler"
	crewdto "onset_studio/internal/api/crew/dto"
	crewmodels "onset_studio/internal/api/crew/models"
	crewsvc "onset_studio/internal/api/crew/service"
	projectsvc "onset_studio/internal/api/project/service"
	"onset_studio/internal/common"
	"onset_studio/internal/global"
	"onset_studio/internal/logger"
	"onset_studio/internal/realtime"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CrewMembershipHandler xử lý CRUD membership + các route presence.
type CrewMembershipHandler struct {
	*basehdl.BaseHandler[crewmodels.CrewMembership, crewdto.CrewMembershipCreateInput, crewdto.CrewMembershipUpdateInput]
	CrewService    *crewsvc.CrewMembershipService
	ProjectService *projectsvc.ProjectService
}

// NewCrewMembershipHandler tạo CrewMembershipHandler mới.
func NewCrewMembershipHandler() (*CrewMembershipHandler, error) {
	crewSvc, err := crewsvc.NewCrewMembershipService()
	if err != nil {
		return nil, fmt.Errorf("tạo CrewMembershipService: %w", err)
	}
	projectSvc, err := projectsvc.NewProjectService()
	if err != nil {
		return nil, fmt.Errorf("tạo ProjectService: %w", err)
	}
	return &CrewMembershipHandler{
		BaseHandler:    basehdl.NewBaseHandler[crewmodels.CrewMembership, crewdto.CrewMembershipCreateInput, crewdto.CrewMembershipUpdateInput](crewSvc),
		CrewService:    crewSvc,
		ProjectService: projectSvc,
	}, nil
}

// HandleJoin xử lý POST /crew/:projectId/join — viewer tham gia hiện trường.
func (h *CrewMembershipHandler) HandleJoin(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		projectID, email, ok := parseProjectAndViewer(c)
		if !ok {
			return nil
		}
		m, err := h.CrewService.Join(c.Context(), projectID, email, "")
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogAction("crew_join", c, map[string]interface{}{"project_id": projectID.Hex()})
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": common.MsgSuccess, "data": m, "status": "success",
		})
		return nil
	})
}

// HandleHeartbeat xử lý POST /crew/:projectId/heartbeat (client gửi mỗi 30 giây).
func (h *CrewMembershipHandler) HandleHeartbeat(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		projectID, email, ok := parseProjectAndViewer(c)
		if !ok {
			return nil
		}
		if err := h.CrewService.Heartbeat(c.Context(), projectID, email); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				c.Status(common.StatusNotFound).JSON(fiber.Map{
					"code": common.ErrCodeDatabaseQuery.Code, "message": "Chưa join dự án", "status": "error",
				})
				return nil
			}
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": common.MsgSuccess, "data": nil, "status": "success",
		})
		return nil
	})
}

// HandleLeave xử lý POST /crew/:projectId/leave (best-effort khi rời màn hình).
func (h *CrewMembershipHandler) HandleLeave(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		projectID, email, ok := parseProjectAndViewer(c)
		if !ok {
			return nil
		}
		if err := h.CrewService.Leave(c.Context(), projectID, email); err != nil && !errors.Is(err, common.ErrNotFound) {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": common.MsgSuccess, "data": nil, "status": "success",
		})
		return nil
	})
}

// HandleRoster xử lý GET /crew/:projectId/roster — danh sách thành viên với
// trạng thái online đã hợp nhất (heartbeat bền + presence realtime).
func (h *CrewMembershipHandler) HandleRoster(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		projectID, _, ok := parseProjectAndViewer(c)
		if !ok {
			return nil
		}
		memberships, err := h.CrewService.Roster(c.Context(), projectID)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		hub := realtime.GetHub()
		channel := realtime.ChannelForProject(projectID.Hex())
		timeoutMs := int64(global.ServerConfig.PresenceTimeoutSeconds) * 1000
		nowMs := time.Now().UnixMilli()

		entries := make([]crewdto.RosterEntry, 0, len(memberships))
		for _, m := range memberships {
			entries = append(entries, crewdto.RosterEntry{
				UserEmail:  m.UserEmail,
				Role:       m.Role,
				Online:     m.IsOnlineNow(nowMs, timeoutMs) || hub.PresenceContains(channel, m.UserEmail),
				LastSeenAt: m.LastSeenAt,
			})
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": common.MsgSuccess, "data": entries, "status": "success",
		})
		return nil
	})
}

// HandleInvite xử lý POST /crew/:projectId/invite — gửi email mời (chỉ Owner).
func (h *CrewMembershipHandler) HandleInvite(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		projectID, email, ok := parseProjectAndViewer(c)
		if !ok {
			return nil
		}
		var input crewdto.CrewInviteInput
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

		p, err := h.ProjectService.GetFresh(c.Context(), projectID)
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
		if !strings.EqualFold(p.OwnerEmail, email) {
			c.Status(common.StatusForbidden).JSON(fiber.Map{
				"code": common.ErrCodeAuthIdentity.Code, "message": "Chỉ Owner được mời thành viên", "status": "error",
			})
			return nil
		}

		inviterName, _ := c.Locals("viewer_name").(string)
		if inviterName == "" {
			inviterName = email
		}
		if err := h.CrewService.SendInvite(c.Context(), p.Name, inviterName, input.Email, input.Name, input.Role); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogAction("crew_invite", c, map[string]interface{}{
			"project_id": projectID.Hex(),
			"invitee":    input.Email,
		})
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": common.MsgSuccess, "data": nil, "status": "success",
		})
		return nil
	})
}

// parseProjectAndViewer đọc :projectId và viewer email, tự trả lỗi khi thiếu.
func parseProjectAndViewer(c fiber.Ctx) (primitive.ObjectID, string, bool) {
	idStr := c.Params("projectId")
	id, err := primitive.ObjectIDFromHex(idStr)
	if idStr == "" || err != nil {
		c.Status(common.StatusBadRequest).JSON(fiber.Map{
			"code": common.ErrCodeValidationFormat.Code, "message": "projectId không hợp lệ", "status": "error",
		})
		return primitive.NilObjectID, "", false
	}
	email := basehdl.GetViewerEmail(c)
	if email == "" {
		c.Status(common.StatusUnauthorized).JSON(fiber.Map{
			"code": common.ErrCodeAuthIdentity.Code, "message": "Thiếu danh tính viewer", "status": "error",
		})
		return primitive.NilObjectID, "", false
	}
	return id, email, true
}
