// Package onsetsvc - Dựng view on-set cho mobile: một lần gọi trả về
// tool khả dụng, nội dung draft của từng tool, tab mặc định và roster.
package onsetsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	basesvc "onset_studio/internal/api/base/service"
	crewdto "onset_studio/internal/api/crew/dto"
	crewmodels "onset_studio/internal/api/crew/models"
	crewsvc "onset_studio/internal/api/crew/service"
	onsetdto "onset_studio/internal/api/onset/dto"
	onsetmodels "onset_studio/internal/api/onset/models"
	projectmodels "onset_studio/internal/api/project/models"
	projectsvc "onset_studio/internal/api/project/service"
	"onset_studio/internal/common"
	"onset_studio/internal/draft"
	"onset_studio/internal/global"
	"onset_studio/internal/realtime"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OnsetService dựng trải nghiệm on-set từ dữ liệu dự án + presence.
type OnsetService struct {
	projectSvc    *projectsvc.ProjectService
	crewSvc       *crewsvc.CrewMembershipService
	mediaAlertSvc *basesvc.BaseServiceMongoImpl[onsetmodels.MediaAlert]
	hub           *realtime.Hub
}

// NewOnsetService tạo OnsetService mới.
func NewOnsetService() (*OnsetService, error) {
	projectSvc, err := projectsvc.NewProjectService()
	if err != nil {
		return nil, fmt.Errorf("tạo ProjectService: %w", err)
	}
	crewSvc, err := crewsvc.NewCrewMembershipService()
	if err != nil {
		return nil, fmt.Errorf("tạo CrewMembershipService: %w", err)
	}
	alertColl, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.MediaAlerts)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.MediaAlerts, common.ErrNotFound)
	}
	return &OnsetService{
		projectSvc:    projectSvc,
		crewSvc:       crewSvc,
		mediaAlertSvc: basesvc.NewBaseServiceMongo[onsetmodels.MediaAlert](alertColl),
		hub:           realtime.GetHub(),
	}, nil
}

// findDraft tìm một draft theo key, duyệt các phase theo thứ tự chuẩn
// (ON_SET trước). Trả về chuỗi raw + phase chứa draft.
func findDraft(p *projectmodels.Project, draftKey string) (string, string, bool) {
	for _, phaseKey := range projectmodels.PhaseKeyOrder {
		phase, ok := p.Phases[phaseKey]
		if !ok {
			continue
		}
		if raw, ok := phase.Drafts[draftKey]; ok {
			return raw, phaseKey, true
		}
	}
	return "", "", false
}

// parseControl parse draft onset-mobile-control thành ControlDocument.
// Parse hỏng → nil (fail-closed, tương đương không có control).
func parseControl(p *projectmodels.Project) *onsetmodels.ControlDocument {
	raw, _, ok := findDraft(p, onsetmodels.ToolMobileControl)
	if !ok {
		return nil
	}
	v := draft.Decode(raw)
	headBytes, err := json.Marshal(v.Head)
	if err != nil {
		return nil
	}
	var doc onsetmodels.ControlDocument
	if err := json.Unmarshal(headBytes, &doc); err != nil {
		return nil
	}
	return &doc
}

// parseCrewList parse draft crew-list thành CrewListDocument.
func parseCrewList(p *projectmodels.Project) *onsetmodels.CrewListDocument {
	raw, _, ok := findDraft(p, onsetmodels.ToolCrewList)
	if !ok {
		return nil
	}
	v := draft.Decode(raw)
	headBytes, err := json.Marshal(v.Head)
	if err != nil {
		return nil
	}
	var doc onsetmodels.CrewListDocument
	if err := json.Unmarshal(headBytes, &doc); err != nil {
		return nil
	}
	return &doc
}

// isOwner kiểm tra viewer có phải Owner của dự án (so email không phân biệt
// hoa thường).
func isOwner(p *projectmodels.Project, viewerEmail string) bool {
	return viewerEmail != "" && strings.EqualFold(p.OwnerEmail, viewerEmail)
}

// resolveRole tính vai trò hiển thị của viewer trong dự án:
// Owner → vai trò crew-list → mặc định "Crew".
func resolveRole(p *projectmodels.Project, crewList *onsetmodels.CrewListDocument, viewerEmail string) string {
	if isOwner(p, viewerEmail) {
		return crewmodels.RoleOwner
	}
	if member := crewList.FindByEmail(viewerEmail); member != nil && member.Role != "" {
		return member.Role
	}
	return crewmodels.DefaultRole
}

// GetView dựng view on-set cho viewer. Luôn đọc dự án mới nhất từ database.
// currentTool là tab viewer đang mở (rỗng nếu lần đầu) — còn khả dụng thì giữ.
func (s *OnsetService) GetView(ctx context.Context, projectID primitive.ObjectID, viewerEmail string, currentTool string) (*onsetdto.OnsetViewResponse, error) {
	p, err := s.projectSvc.GetFresh(ctx, projectID)
	if err != nil {
		return nil, err
	}

	control := parseControl(p)
	crewList := parseCrewList(p)
	owner := isOwner(p, viewerEmail)

	available := ComputeAvailableTools(control, crewList, viewerEmail, owner)
	activeTool := PickActiveTool(available, currentTool)

	drafts := make(map[string]interface{}, len(available))
	for _, toolKey := range available {
		if head, ok := s.loadToolDraft(p, toolKey); ok {
			drafts[toolKey] = head
		}
	}

	roster, err := s.buildRoster(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &onsetdto.OnsetViewResponse{
		ProjectID:      projectID,
		ProjectName:    p.Name,
		ViewerRole:     resolveRole(p, crewList, viewerEmail),
		IsLive:         control.Live(),
		AvailableTools: available,
		ActiveTool:     activeTool,
		Drafts:         drafts,
		Roster:         roster,
	}, nil
}

// loadToolDraft đọc head đã decode của draft một tool. camera-report chưa có
// draft riêng thì đọc draft legacy shot-log (dữ liệu cũ chưa đổi tên).
func (s *OnsetService) loadToolDraft(p *projectmodels.Project, toolKey string) (map[string]interface{}, bool) {
	raw, _, ok := findDraft(p, toolKey)
	if !ok && toolKey == onsetmodels.ToolCameraReport {
		raw, _, ok = findDraft(p, onsetmodels.ToolShotLog)
	}
	if !ok {
		return nil, false
	}
	v := draft.Decode(raw)
	return v.Head, true
}

// buildRoster hợp nhất membership bền với presence realtime:
// online = heartbeat còn hạn HOẶC đang có mặt trên channel realtime.
func (s *OnsetService) buildRoster(ctx context.Context, projectID primitive.ObjectID) ([]crewdto.RosterEntry, error) {
	memberships, err := s.crewSvc.Roster(ctx, projectID)
	if err != nil {
		return nil, err
	}

	channel := realtime.ChannelForProject(projectID.Hex())
	timeoutMs := int64(global.ServerConfig.PresenceTimeoutSeconds) * 1000
	nowMs := time.Now().UnixMilli()

	entries := make([]crewdto.RosterEntry, 0, len(memberships))
	seen := make(map[string]bool, len(memberships))
	for _, m := range memberships {
		online := m.IsOnlineNow(nowMs, timeoutMs) || s.hub.PresenceContains(channel, m.UserEmail)
		entries = append(entries, crewdto.RosterEntry{
			UserEmail:  m.UserEmail,
			Role:       m.Role,
			Online:     online,
			LastSeenAt: m.LastSeenAt,
		})
		seen[strings.ToLower(m.UserEmail)] = true
	}

	// Viewer có mặt realtime nhưng chưa kịp join membership vẫn hiện trong roster
	for _, e := range s.hub.PresenceSnapshot(channel) {
		if seen[strings.ToLower(e.Email)] {
			continue
		}
		entries = append(entries, crewdto.RosterEntry{
			UserEmail:  e.Email,
			Role:       crewmodels.DefaultRole,
			Online:     true,
			LastSeenAt: e.JoinedAt,
		})
	}

	return entries, nil
}
