// Package projectsvc - Service dự án sản xuất (projects).
package projectsvc

import (
	"context"
	"fmt"
	"time"

	basesvc "onset_studio/internal/api/base/service"
	projectmodels "onset_studio/internal/api/project/models"
	"onset_studio/internal/common"
	"onset_studio/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// ProjectService xử lý CRUD dự án và thao tác phase/draft.
type ProjectService struct {
	*basesvc.BaseServiceMongoImpl[projectmodels.Project]
}

// NewProjectService tạo ProjectService mới.
func NewProjectService() (*ProjectService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Projects)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Projects, common.ErrNotFound)
	}
	return &ProjectService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[projectmodels.Project](coll),
	}, nil
}

// GetFresh đọc dự án mới nhất từ database.
// Mọi read-modify-write trên draft phải bắt đầu bằng GetFresh — không dùng
// bản đã cache để tránh ghi đè dữ liệu của writer khác bằng dữ liệu cũ hơn.
func (s *ProjectService) GetFresh(ctx context.Context, projectID primitive.ObjectID) (*projectmodels.Project, error) {
	p, err := s.FindOneById(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ReplaceData ghi đè toàn bộ phases của dự án (last-writer-wins).
// BaseService tự stamp updatedAt và phát event thay đổi dữ liệu.
func (s *ProjectService) ReplaceData(ctx context.Context, projectID primitive.ObjectID, phases map[string]projectmodels.Phase) error {
	data := &basesvc.UpdateData{
		Set: bson.M{"phases": phases},
	}
	_, err := s.UpdateById(ctx, projectID, data)
	return err
}

// UpsertPhase tạo hoặc đổi tên một phase. Drafts hiện có được giữ nguyên.
func (s *ProjectService) UpsertPhase(ctx context.Context, projectID primitive.ObjectID, phaseKey string, name string) (*projectmodels.Project, error) {
	if !projectmodels.IsValidPhaseKey(phaseKey) {
		return nil, common.NewError(common.ErrCodeValidationFormat, fmt.Sprintf("phase key không hợp lệ: %s", phaseKey), common.StatusBadRequest, nil)
	}
	if name == "" {
		name = projectmodels.PhaseDisplayNames[phaseKey]
	}

	p, err := s.GetFresh(ctx, projectID)
	if err != nil {
		return nil, err
	}

	phases := p.Phases
	if phases == nil {
		phases = map[string]projectmodels.Phase{}
	}
	phase := phases[phaseKey]
	phase.Name = name
	if phase.Drafts == nil {
		phase.Drafts = map[string]string{}
	}
	phases[phaseKey] = phase

	if err := s.ReplaceData(ctx, projectID, phases); err != nil {
		return nil, err
	}
	p.Phases = phases
	return p, nil
}

// FindByOwner trả về danh sách dự án của một owner (mới nhất trước).
func (s *ProjectService) FindByOwner(ctx context.Context, ownerEmail string, limit int) ([]projectmodels.Project, error) {
	if limit <= 0 {
		limit = 50
	}
	filter := bson.M{"ownerEmail": ownerEmail}
	opts := mongoopts.Find().SetLimit(int64(limit)).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, filter, opts)
}

// Archive đánh dấu dự án đã lưu trữ.
func (s *ProjectService) Archive(ctx context.Context, projectID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"status": projectmodels.ProjectStatusArchived, "updatedAt": time.Now().UnixMilli()}}
	_, err := s.UpdateOne(ctx, bson.M{"_id": projectID}, update, nil)
	return err
}
