// Package models - Các document được parse từ draft JSON của phase ON_SET.
// Không phải collection riêng: control document và crew list sống trong
// project.phases["ON_SET"].drafts dưới dạng chuỗi JSON.
package models

import "strings"

// ControlDocument là nội dung draft "onset-mobile-control" — kill switch
// và ma trận phân phối tool cho mobile.
//
// IsLive dùng con trỏ để phân biệt ba trạng thái:
//   - nil   → field vắng mặt: KHÔNG chặn, việc phân phối tool vẫn chạy
//     (document cũ chưa có field này); chỉ khi cả toolGroups lẫn
//     selectedTools đều vắng mặt thì danh sách mới rỗng
//   - false → kill switch tắt tường minh, ẩn mọi tool với mọi người
//   - true  → đang live
type ControlDocument struct {
	IsLive        *bool               `json:"isLive,omitempty"`
	ToolGroups    map[string][]string `json:"toolGroups,omitempty"`
	SelectedTools []string            `json:"selectedTools,omitempty"`
}

// Live trả về true chỉ khi isLive được set tường minh là true.
// Dùng cho hiển thị trạng thái — việc chặn tool dùng Killed.
func (d *ControlDocument) Live() bool {
	return d != nil && d.IsLive != nil && *d.IsLive
}

// Killed trả về true khi kill switch đang chặn: không có control document,
// hoặc isLive bị set tường minh là false. isLive vắng mặt KHÔNG chặn.
func (d *ControlDocument) Killed() bool {
	return d == nil || (d.IsLive != nil && !*d.IsLive)
}

// CrewMember là một thành viên trong draft "crew-list".
type CrewMember struct {
	ID          string   `json:"id,omitempty"`
	Department  string   `json:"department,omitempty"`
	Role        string   `json:"role,omitempty"`
	Name        string   `json:"name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	OnSetGroups []string `json:"onSetGroups,omitempty"`
	Status      string   `json:"status,omitempty"`
}

// CrewListDocument là nội dung draft "crew-list".
type CrewListDocument struct {
	Crew []CrewMember `json:"crew,omitempty"`
}

// FindByEmail tìm thành viên theo email, không phân biệt hoa thường.
func (d *CrewListDocument) FindByEmail(email string) *CrewMember {
	if d == nil || email == "" {
		return nil
	}
	lower := strings.ToLower(email)
	for i := range d.Crew {
		if strings.ToLower(d.Crew[i].Email) == lower {
			return &d.Crew[i]
		}
	}
	return nil
}
