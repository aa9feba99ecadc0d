// Package dto - DTO cho domain project.
package dto

// ProjectCreateInput dữ liệu tạo dự án mới.
type ProjectCreateInput struct {
	Name        string `json:"name" bson:"name" validate:"required" maxLength:"200"`
	Description string `json:"description,omitempty" bson:"description,omitempty" maxLength:"2000"`
	OwnerEmail  string `json:"ownerEmail" bson:"ownerEmail" validate:"required,email"`
	Status      string `json:"status,omitempty" bson:"status,omitempty"`
}

// ProjectUpdateInput dữ liệu cập nhật dự án.
// Phases không cập nhật qua CRUD chung — chỉ sync engine được ghi drafts.
type ProjectUpdateInput struct {
	Name        string `json:"name,omitempty" bson:"name,omitempty" maxLength:"200"`
	Description string `json:"description,omitempty" bson:"description,omitempty" maxLength:"2000"`
	Status      string `json:"status,omitempty" bson:"status,omitempty"`
}

// PhaseUpsertInput tạo hoặc đổi tên một phase trong dự án.
type PhaseUpsertInput struct {
	PhaseKey string `json:"phaseKey" validate:"required,phase_key"`
	Name     string `json:"name,omitempty" maxLength:"200"`
}
