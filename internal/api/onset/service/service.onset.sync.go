// Package onsetsvc - Các thao tác ghi từ hiện trường.
//
// Mọi thao tác ghi draft đều là fire-and-forget qua sync engine của
// ProjectService: đọc mới nhất, sửa head trong bộ nhớ, ghi đè cả payload.
// Hai ngoại lệ trả lỗi cho client: UpdateControl (Owner cần biết kill switch
// đã bật/tắt thành công) và BroadcastMediaAlert (DIT cần xác nhận đã phát).
package onsetsvc

import (
	"context"
	"fmt"
	"time"

	onsetdto "onset_studio/internal/api/onset/dto"
	onsetmodels "onset_studio/internal/api/onset/models"
	projectmodels "onset_studio/internal/api/project/models"
	projectsvc "onset_studio/internal/api/project/service"
	"onset_studio/internal/common"
	"onset_studio/internal/draft"
	"onset_studio/internal/realtime"

	"github.com/oklog/ulid/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// newEntryID sinh id sắp xếp được theo thời gian cho các dòng log.
func newEntryID() string {
	return ulid.Make().String()
}

// UpdateControl ghi control document mới (kill switch + phân phối tool).
// Chỉ Owner của dự án được phép — crew gọi nhận lỗi 403.
func (s *OnsetService) UpdateControl(ctx context.Context, projectID primitive.ObjectID, viewerEmail string, input *onsetdto.ControlUpdateInput) error {
	p, err := s.projectSvc.GetFresh(ctx, projectID)
	if err != nil {
		return err
	}
	if !isOwner(p, viewerEmail) {
		return common.NewError(common.ErrCodeAuthIdentity, "Chỉ Owner được điều khiển mobile control", common.StatusForbidden, nil)
	}

	head := map[string]interface{}{}
	if input.IsLive != nil {
		head["isLive"] = *input.IsLive
	}
	if input.ToolGroups != nil {
		head["toolGroups"] = input.ToolGroups
	}
	if input.SelectedTools != nil {
		head["selectedTools"] = input.SelectedTools
	}

	phases, err := applyControlWrite(p.Phases, head)
	if err != nil {
		return err
	}
	return s.projectSvc.ReplaceData(ctx, projectID, phases)
}

// applyControlWrite thay head của draft onset-mobile-control trong phase ON_SET.
func applyControlWrite(phases map[string]projectmodels.Phase, head map[string]interface{}) (map[string]projectmodels.Phase, error) {
	if phases == nil {
		phases = map[string]projectmodels.Phase{}
	}
	phase, ok := phases[projectmodels.PhaseOnSet]
	if !ok {
		phase = projectmodels.Phase{Name: projectmodels.PhaseDisplayNames[projectmodels.PhaseOnSet]}
	}
	if phase.Drafts == nil {
		phase.Drafts = map[string]string{}
	}

	v := draft.Decode(phase.Drafts[onsetmodels.ToolMobileControl])
	v.Head = head
	encoded, err := v.Encode(false)
	if err != nil {
		return nil, err
	}
	phase.Drafts[onsetmodels.ToolMobileControl] = encoded
	phases[projectmodels.PhaseOnSet] = phase
	return phases, nil
}

// AppendDitLogEntry thêm một dòng DIT log (mới nhất đứng đầu, giữ lịch sử).
func (s *OnsetService) AppendDitLogEntry(ctx context.Context, projectID primitive.ObjectID, viewerEmail string, input *onsetdto.DitLogEntryInput) {
	entry := map[string]interface{}{
		"id":        newEntryID(),
		"roll":      input.Roll,
		"camera":    input.Camera,
		"mediaType": input.MediaType,
		"sizeGB":    input.SizeGB,
		"backup":    input.Backup,
		"checksum":  input.Checksum,
		"notes":     input.Notes,
		"author":    viewerEmail,
		"createdAt": time.Now().UnixMilli(),
	}
	s.projectSvc.AppendOrMutate(ctx, projectID, projectmodels.PhaseOnSet, projectsvc.DraftMutation{
		DraftKey:    onsetmodels.ToolDitLog,
		WithHistory: true,
		Migrate:     true,
		Mutate: func(v *draft.Versioned) error {
			v.PrependItem(entry)
			return nil
		},
	})
}

// AppendCameraReportEntry thêm một dòng camera report (không giữ lịch sử).
func (s *OnsetService) AppendCameraReportEntry(ctx context.Context, projectID primitive.ObjectID, viewerEmail string, input *onsetdto.CameraReportEntryInput) {
	entry := map[string]interface{}{
		"id":        newEntryID(),
		"roll":      input.Roll,
		"scene":     input.Scene,
		"shot":      input.Shot,
		"take":      input.Take,
		"lens":      input.Lens,
		"filter":    input.Filter,
		"fps":       input.FPS,
		"iso":       input.ISO,
		"shutter":   input.Shutter,
		"wb":        input.WB,
		"notes":     input.Notes,
		"author":    viewerEmail,
		"createdAt": time.Now().UnixMilli(),
	}
	s.projectSvc.AppendOrMutate(ctx, projectID, projectmodels.PhaseOnSet, projectsvc.DraftMutation{
		DraftKey: onsetmodels.ToolCameraReport,
		Migrate:  true,
		Mutate: func(v *draft.Versioned) error {
			v.PrependItem(entry)
			return nil
		},
	})
}

// AddNote thêm một ghi chú on-set, trả về id của ghi chú (giữ lịch sử).
func (s *OnsetService) AddNote(ctx context.Context, projectID primitive.ObjectID, viewerEmail string, input *onsetdto.NoteInput) string {
	noteID := newEntryID()
	note := map[string]interface{}{
		"id":        noteID,
		"text":      input.Text,
		"category":  input.Category,
		"sceneRef":  input.SceneRef,
		"author":    viewerEmail,
		"createdAt": time.Now().UnixMilli(),
	}
	s.projectSvc.AppendOrMutate(ctx, projectID, projectmodels.PhaseOnSet, projectsvc.DraftMutation{
		DraftKey:    onsetmodels.ToolOnSetNotes,
		WithHistory: true,
		Mutate: func(v *draft.Versioned) error {
			v.PrependItem(note)
			return nil
		},
	})
	return noteID
}

// UpdateNote sửa nội dung một ghi chú theo id (giữ nguyên vị trí và author).
func (s *OnsetService) UpdateNote(ctx context.Context, projectID primitive.ObjectID, viewerEmail string, noteID string, input *onsetdto.NoteInput) {
	s.projectSvc.AppendOrMutate(ctx, projectID, projectmodels.PhaseOnSet, projectsvc.DraftMutation{
		DraftKey:    onsetmodels.ToolOnSetNotes,
		WithHistory: true,
		Mutate: func(v *draft.Versioned) error {
			for _, it := range v.Items() {
				note, ok := it.(map[string]interface{})
				if !ok || note["id"] != noteID {
					continue
				}
				note["text"] = input.Text
				note["category"] = input.Category
				note["sceneRef"] = input.SceneRef
				note["updatedBy"] = viewerEmail
				note["updatedAt"] = time.Now().UnixMilli()
				return nil
			}
			return fmt.Errorf("không tìm thấy ghi chú %s", noteID)
		},
	})
}

// DeleteNote xóa một ghi chú theo id.
func (s *OnsetService) DeleteNote(ctx context.Context, projectID primitive.ObjectID, noteID string) {
	s.projectSvc.AppendOrMutate(ctx, projectID, projectmodels.PhaseOnSet, projectsvc.DraftMutation{
		DraftKey:    onsetmodels.ToolOnSetNotes,
		WithHistory: true,
		Mutate: func(v *draft.Versioned) error {
			items := v.Items()
			kept := make([]interface{}, 0, len(items))
			for _, it := range items {
				if note, ok := it.(map[string]interface{}); ok && note["id"] == noteID {
					continue
				}
				kept = append(kept, it)
			}
			v.SetItems(kept)
			return nil
		},
	})
}

// markShotComplete tìm shot theo id trong head["shots"] của shot-scene-book
// và chuyển status sang COMPLETE. Trả về shot đã sửa để mutation sau dùng lại.
func markShotComplete(v *draft.Versioned, shotID string, viewerEmail string) (map[string]interface{}, error) {
	shots, _ := v.Head["shots"].([]interface{})
	for _, it := range shots {
		shot, ok := it.(map[string]interface{})
		if !ok || shot["id"] != shotID {
			continue
		}
		shot["status"] = onsetmodels.ShotStatusComplete
		shot["completedAt"] = time.Now().UnixMilli()
		shot["completedBy"] = viewerEmail
		return shot, nil
	}
	return nil, fmt.Errorf("không tìm thấy shot %s", shotID)
}

// CompleteShot đánh dấu shot đã quay xong trong shot-scene-book; nếu
// AddToLog bật thì thêm luôn một dòng camera report — cả hai thay đổi đi
// xuống database trong MỘT lần ghi duy nhất.
func (s *OnsetService) CompleteShot(ctx context.Context, projectID primitive.ObjectID, viewerEmail string, shotID string, input *onsetdto.ShotCompleteInput) {
	var completedShot map[string]interface{}

	muts := []projectsvc.DraftMutation{
		{
			DraftKey: onsetmodels.ToolShotSceneBook,
			Mutate: func(v *draft.Versioned) error {
				shot, err := markShotComplete(v, shotID, viewerEmail)
				if err != nil {
					return err
				}
				completedShot = shot
				return nil
			},
		},
	}

	if input.AddToLog {
		muts = append(muts, projectsvc.DraftMutation{
			DraftKey: onsetmodels.ToolCameraReport,
			Migrate:  true,
			Mutate: func(v *draft.Versioned) error {
				entry := map[string]interface{}{
					"id":        newEntryID(),
					"roll":      input.Roll,
					"shotId":    shotID,
					"notes":     input.Notes,
					"author":    viewerEmail,
					"createdAt": time.Now().UnixMilli(),
				}
				// Mutation trước chạy xong mới tới đây — completedShot đã có dữ liệu
				if completedShot != nil {
					entry["scene"] = completedShot["scene"]
					entry["shot"] = completedShot["shot"]
				}
				v.PrependItem(entry)
				return nil
			},
		})
	}

	s.projectSvc.MutateDrafts(ctx, projectID, projectmodels.PhaseOnSet, muts)
}

// BroadcastMediaAlert phát media alert realtime tới mọi người trên channel
// media của dự án và lưu một bản ghi lịch sử vào media_alerts.
func (s *OnsetService) BroadcastMediaAlert(ctx context.Context, projectID primitive.ObjectID, viewerEmail string, input *onsetdto.MediaAlertInput) (*onsetmodels.MediaAlert, error) {
	now := time.Now().UnixMilli()
	alert, err := s.mediaAlertSvc.InsertOne(ctx, onsetmodels.MediaAlert{
		ProjectID:   projectID,
		SenderEmail: viewerEmail,
		Roll:        input.Roll,
		Camera:      input.Camera,
		MediaType:   input.MediaType,
		FPS:         input.FPS,
		ISO:         input.ISO,
		Shutter:     input.Shutter,
		WB:          input.WB,
		SoundRoll:   input.SoundRoll,
		Notes:       input.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(realtime.MediaChannelForProject(projectID.Hex()), "media_alert", alert)
	return &alert, nil
}
