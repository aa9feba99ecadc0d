// Package dto - DTO cho domain media.
package dto

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaFileCreateInput tạo metadata qua CRUD chung (hiếm dùng — upload
// thường đi qua route multipart).
type MediaFileCreateInput struct {
	ProjectID    primitive.ObjectID `json:"projectId" bson:"projectId" validate:"required"`
	OriginalName string             `json:"originalName" bson:"originalName" validate:"required" maxLength:"500"`
	StoredName   string             `json:"storedName" bson:"storedName" validate:"required" maxLength:"500"`
	ContentType  string             `json:"contentType,omitempty" bson:"contentType,omitempty" maxLength:"200"`
	SizeBytes    int64              `json:"sizeBytes,omitempty" bson:"sizeBytes,omitempty"`
	Category     string             `json:"category,omitempty" bson:"category,omitempty" maxLength:"100"`
}

// MediaFileUpdateInput cập nhật metadata.
type MediaFileUpdateInput struct {
	Category string `json:"category,omitempty" bson:"category,omitempty" maxLength:"100"`
}
