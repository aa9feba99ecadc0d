// Package models - CrewMembership thuộc domain crew (crew_memberships).
// Một document cho mỗi cặp (dự án, viewer) — heartbeat bền cho presence.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vai trò mặc định khi viewer chưa có trong crew list của dự án.
const DefaultRole = "Crew"

// RoleOwner là vai trò của chủ dự án (ownerEmail trùng viewer email).
const RoleOwner = "Owner"

// CrewMembership lưu thành viên đoàn phim của một dự án (crew_memberships).
// IsOnline chỉ là cờ thô — trạng thái online thực tế phải kết hợp với
// LastSeenAt (xem IsOnlineNow) vì client có thể biến mất không kịp gửi leave.
type CrewMembership struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	ProjectID primitive.ObjectID `json:"projectId" bson:"projectId" index:"single:1,compound:crew_membership_project_email"`
	UserEmail string             `json:"userEmail" bson:"userEmail" index:"compound:crew_membership_project_email"`
	Role      string             `json:"role" bson:"role"`

	IsOnline   bool  `json:"isOnline" bson:"isOnline" index:"single:1"`
	LastSeenAt int64 `json:"lastSeenAt" bson:"lastSeenAt"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// IsOnlineNow tính trạng thái online thực tế tại thời điểm now (UnixMilli):
// cờ isOnline phải bật VÀ heartbeat cuối chưa quá timeout.
func (m *CrewMembership) IsOnlineNow(nowMs int64, timeoutMs int64) bool {
	if !m.IsOnline {
		return false
	}
	return nowMs-m.LastSeenAt <= timeoutMs
}
