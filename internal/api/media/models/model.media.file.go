// Package models - MediaFile thuộc domain media (media_files).
// Metadata của file upload từ hiện trường (ảnh continuity, release đã ký...).
// File vật lý nằm trên đĩa trong MEDIA_UPLOAD_DIR, database chỉ giữ metadata.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaFile lưu metadata một file media (media_files).
type MediaFile struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	ProjectID     primitive.ObjectID `json:"projectId" bson:"projectId" index:"single:1"`
	UploaderEmail string             `json:"uploaderEmail" bson:"uploaderEmail"`

	OriginalName string `json:"originalName" bson:"originalName"`
	StoredName   string `json:"storedName" bson:"storedName" index:"single:1"`
	ContentType  string `json:"contentType,omitempty" bson:"contentType,omitempty"`
	SizeBytes    int64  `json:"sizeBytes" bson:"sizeBytes"`
	Category     string `json:"category,omitempty" bson:"category,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
