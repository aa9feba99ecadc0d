// Package viewersvc - Tạo phiên viewer (JWT).
//
// Không có bảng user: danh tính viewer là email tự khai, được ký thành JWT
// để các request sau mang theo. Vai trò chỉ mang tính hiển thị — quyền thực
// tế (Owner bypass, phân phối tool) luôn được tính lại theo dữ liệu dự án
// tại thời điểm request.
package viewersvc

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	crewmodels "onset_studio/internal/api/crew/models"
	onsetmodels "onset_studio/internal/api/onset/models"
	projectmodels "onset_studio/internal/api/project/models"
	projectsvc "onset_studio/internal/api/project/service"
	viewerdto "onset_studio/internal/api/viewer/dto"
	"onset_studio/internal/draft"
	"onset_studio/internal/global"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// sessionTTL là thời hạn phiên viewer.
const sessionTTL = 7 * 24 * time.Hour

// ViewerSessionService tạo và ký phiên viewer.
type ViewerSessionService struct {
	projectSvc *projectsvc.ProjectService
}

// NewViewerSessionService tạo ViewerSessionService mới.
func NewViewerSessionService() (*ViewerSessionService, error) {
	projectSvc, err := projectsvc.NewProjectService()
	if err != nil {
		return nil, err
	}
	return &ViewerSessionService{projectSvc: projectSvc}, nil
}

// CreateSession tạo JWT cho viewer. Nếu input có projectId hợp lệ, vai trò
// được resolve theo dự án; ngược lại dùng vai trò mặc định.
func (s *ViewerSessionService) CreateSession(ctx context.Context, input *viewerdto.SessionInput) (*viewerdto.SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	role := s.resolveRole(ctx, email, input.ProjectID)

	now := time.Now()
	expiresAt := now.Add(sessionTTL)
	claims := jwt.MapClaims{
		"email": email,
		"name":  input.Name,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(global.ServerConfig.JwtSecret))
	if err != nil {
		return nil, err
	}

	return &viewerdto.SessionResponse{
		Token:     signed,
		Email:     email,
		Name:      input.Name,
		Role:      role,
		ExpiresAt: expiresAt.UnixMilli(),
	}, nil
}

// resolveRole tính vai trò của viewer trong dự án (nếu có):
// Owner → vai trò trong crew list → mặc định "Crew".
// Dự án không tồn tại hoặc projectId hỏng → mặc định, không chặn tạo phiên.
func (s *ViewerSessionService) resolveRole(ctx context.Context, email string, projectIDHex string) string {
	if projectIDHex == "" {
		return crewmodels.DefaultRole
	}
	projectID, err := primitive.ObjectIDFromHex(projectIDHex)
	if err != nil {
		return crewmodels.DefaultRole
	}
	p, err := s.projectSvc.GetFresh(ctx, projectID)
	if err != nil {
		return crewmodels.DefaultRole
	}
	if strings.EqualFold(p.OwnerEmail, email) {
		return crewmodels.RoleOwner
	}
	if member := parseCrewList(p).FindByEmail(email); member != nil && member.Role != "" {
		return member.Role
	}
	return crewmodels.DefaultRole
}

// parseCrewList đọc draft crew-list của dự án (duyệt phase theo thứ tự chuẩn).
func parseCrewList(p *projectmodels.Project) *onsetmodels.CrewListDocument {
	for _, phaseKey := range projectmodels.PhaseKeyOrder {
		phase, ok := p.Phases[phaseKey]
		if !ok {
			continue
		}
		raw, ok := phase.Drafts[onsetmodels.ToolCrewList]
		if !ok {
			continue
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
	return nil
}
