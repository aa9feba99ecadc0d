// Package projectsvc - Sync engine ghi draft theo mô hình read-modify-write.
//
// Mọi ghi draft từ hiện trường đi qua đây:
//  1. Đọc lại dự án mới nhất từ database (không dùng bản cache)
//  2. Parse draft cần sửa về dạng chuẩn hóa (head + history)
//  3. Mutate head trong bộ nhớ
//  4. Serialize lại và ghi đè toàn bộ phases (last-writer-wins)
//
// Ghi hỏng không retry, không báo client: hiện trường ưu tiên luồng quay
// phim liên tục hơn là từng entry — lỗi chỉ ghi vào error log.
package projectsvc

import (
	"context"

	projectmodels "onset_studio/internal/api/project/models"
	"onset_studio/internal/draft"
	"onset_studio/internal/logger"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DraftMutation mô tả một thay đổi trên một draft trong cùng phase.
// Nhiều mutation trong một lần gọi được áp rồi ghi xuống bằng MỘT lần ghi
// duy nhất (ví dụ: đánh dấu shot xong + thêm dòng camera report).
type DraftMutation struct {
	DraftKey    string                          // Key của draft trong phase.drafts
	WithHistory bool                            // true → serialize lại dạng [head, ...history]
	Migrate     bool                            // true → đổi field legacy "entries" thành "items" trước khi mutate
	Mutate      func(v *draft.Versioned) error  // Thay đổi head trong bộ nhớ
}

// applyDraftMutations áp danh sách mutation lên phases và trả về phases mới.
// Thuần túy trong bộ nhớ, không chạm database — phase/draft chưa tồn tại
// được tạo tại chỗ với shape rỗng.
func applyDraftMutations(phases map[string]projectmodels.Phase, phaseKey string, muts []DraftMutation) (map[string]projectmodels.Phase, error) {
	if phases == nil {
		phases = map[string]projectmodels.Phase{}
	}

	phase, ok := phases[phaseKey]
	if !ok {
		phase = projectmodels.Phase{Name: projectmodels.PhaseDisplayNames[phaseKey]}
	}
	if phase.Drafts == nil {
		phase.Drafts = map[string]string{}
	}

	for _, m := range muts {
		v := draft.Decode(phase.Drafts[m.DraftKey])
		if m.Migrate {
			v.MigrateEntries()
		}
		if err := m.Mutate(v); err != nil {
			return nil, err
		}
		encoded, err := v.Encode(m.WithHistory)
		if err != nil {
			return nil, err
		}
		phase.Drafts[m.DraftKey] = encoded
	}

	phases[phaseKey] = phase
	return phases, nil
}

// mutateDrafts thực hiện một chu trình read-modify-write đầy đủ.
// Trả lỗi cho caller quyết định cách xử lý.
func (s *ProjectService) mutateDrafts(ctx context.Context, projectID primitive.ObjectID, phaseKey string, muts []DraftMutation) error {
	p, err := s.GetFresh(ctx, projectID)
	if err != nil {
		return err
	}

	phases, err := applyDraftMutations(p.Phases, phaseKey, muts)
	if err != nil {
		return err
	}

	return s.ReplaceData(ctx, projectID, phases)
}

// MutateDrafts ghi một hoặc nhiều draft trong cùng phase bằng một lần ghi.
// Lỗi được nuốt sau khi ghi error log — caller không cần (và không nên)
// chặn response của client theo kết quả ghi.
func (s *ProjectService) MutateDrafts(ctx context.Context, projectID primitive.ObjectID, phaseKey string, muts []DraftMutation) {
	if len(muts) == 0 {
		return
	}
	if err := s.mutateDrafts(ctx, projectID, phaseKey, muts); err != nil {
		keys := make([]string, 0, len(muts))
		for _, m := range muts {
			keys = append(keys, m.DraftKey)
		}
		logger.GetErrorLogger().WithFields(logrus.Fields{
			"project_id": projectID.Hex(),
			"phase_key":  phaseKey,
			"draft_keys": keys,
			"error":      err.Error(),
		}).Error("❌ [DRAFT_SYNC] Ghi draft thất bại, bỏ qua không retry")
	}
}

// AppendOrMutate ghi một draft duy nhất. Shortcut cho trường hợp phổ biến nhất.
func (s *ProjectService) AppendOrMutate(ctx context.Context, projectID primitive.ObjectID, phaseKey string, m DraftMutation) {
	s.MutateDrafts(ctx, projectID, phaseKey, []DraftMutation{m})
}
