// Package dto - DTO cho domain crew.
package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CrewMembershipCreateInput dữ liệu tạo membership qua CRUD chung (upsert).
type CrewMembershipCreateInput struct {
	ProjectID primitive.ObjectID `json:"projectId" bson:"projectId" validate:"required"`
	UserEmail string             `json:"userEmail" bson:"userEmail" validate:"required,email"`
	Role      string             `json:"role,omitempty" bson:"role,omitempty"`
}

// CrewMembershipUpdateInput dữ liệu cập nhật membership qua CRUD chung.
type CrewMembershipUpdateInput struct {
	Role string `json:"role,omitempty" bson:"role,omitempty"`
}

// CrewInviteInput dữ liệu gửi email mời tham gia dự án.
type CrewInviteInput struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty" maxLength:"200"`
	Role  string `json:"role,omitempty" maxLength:"100"`
}

// RosterEntry là một dòng trong roster trả về cho observer.
// Online là trạng thái đã hợp nhất: heartbeat bền + presence realtime.
type RosterEntry struct {
	UserEmail  string `json:"userEmail"`
	Role       string `json:"role"`
	Online     bool   `json:"online"`
	LastSeenAt int64  `json:"lastSeenAt"`
}
