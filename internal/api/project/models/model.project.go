// Package models - Project thuộc domain project (projects).
// Dự án sản xuất phim: toàn bộ phase và draft document nằm trong document dự án.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái dự án.
const (
	ProjectStatusActive   = "ACTIVE"
	ProjectStatusArchived = "ARCHIVED"
)

// Phase là một giai đoạn sản xuất. Drafts map draft key (trùng tool key,
// ví dụ "dit-log", "call-sheet") sang chuỗi JSON đã serialize — backend
// đối xử draft như blob, chỉ sync engine parse nội dung.
type Phase struct {
	Name   string            `json:"name" bson:"name"`
	Drafts map[string]string `json:"drafts,omitempty" bson:"drafts,omitempty"`
}

// Project lưu dự án sản xuất (projects).
// Đây là aggregate root duy nhất của dữ liệu phim: ghi draft là ghi đè
// toàn bộ phases của document này (last-writer-wins).
type Project struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	_Relationships struct{}           `relationship:"collection:crew_memberships,field:projectId,message:Không thể xóa dự án vì có %d thành viên đoàn phim đang tham gia. Vui lòng gỡ các thành viên trước.|collection:media_files,field:projectId,message:Không thể xóa dự án vì có %d file media đã upload. Vui lòng xóa media trước."`

	Name        string `json:"name" bson:"name" index:"single:1"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	OwnerEmail  string `json:"ownerEmail" bson:"ownerEmail" index:"single:1"`
	Status      string `json:"status" bson:"status" index:"single:1"`

	Phases map[string]Phase `json:"phases,omitempty" bson:"phases,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
