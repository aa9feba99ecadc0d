// Package models - MediaAlert thuộc domain onset (media_alerts).
// Bản ghi lịch sử các media alert đã broadcast — bản thân alert đi realtime,
// collection này chỉ để tra cứu lại sau ngày quay.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaAlert lưu một media alert đã phát (media_alerts).
type MediaAlert struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	ProjectID   primitive.ObjectID `json:"projectId" bson:"projectId" index:"single:1"`
	SenderEmail string             `json:"senderEmail" bson:"senderEmail"`

	Roll      string `json:"roll" bson:"roll"`
	Camera    string `json:"camera,omitempty" bson:"camera,omitempty"`
	MediaType string `json:"mediaType,omitempty" bson:"mediaType,omitempty"`
	FPS       string `json:"fps,omitempty" bson:"fps,omitempty"`
	ISO       string `json:"iso,omitempty" bson:"iso,omitempty"`
	Shutter   string `json:"shutter,omitempty" bson:"shutter,omitempty"`
	WB        string `json:"wb,omitempty" bson:"wb,omitempty"`
	SoundRoll string `json:"soundRoll,omitempty" bson:"soundRoll,omitempty"`
	Notes     string `json:"notes,omitempty" bson:"notes,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
