// Package dto - DTO cho domain onset (mobile sync).
package dto

import (
	crewdto "onset_studio/internal/api/crew/dto"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OnsetViewResponse là toàn bộ trạng thái màn hình on-set cho một viewer:
// một lần gọi thay cho nhiều round-trip từ hiện trường sóng yếu.
type OnsetViewResponse struct {
	ProjectID      primitive.ObjectID     `json:"projectId"`
	ProjectName    string                 `json:"projectName"`
	ViewerRole     string                 `json:"viewerRole"`
	IsLive         bool                   `json:"isLive"`
	AvailableTools []string               `json:"availableTools"`
	ActiveTool     string                 `json:"activeTool"`
	Drafts         map[string]interface{} `json:"drafts"`
	Roster         []crewdto.RosterEntry  `json:"roster"`
}

// ControlUpdateInput cập nhật control document (kill switch + phân phối tool).
// Chỉ Owner được gọi.
type ControlUpdateInput struct {
	IsLive        *bool               `json:"isLive,omitempty"`
	ToolGroups    map[string][]string `json:"toolGroups,omitempty"`
	SelectedTools []string            `json:"selectedTools,omitempty"`
}

// DitLogEntryInput một dòng DIT log mới từ hiện trường.
type DitLogEntryInput struct {
	Roll      string `json:"roll" validate:"required" maxLength:"100"`
	Camera    string `json:"camera,omitempty" maxLength:"100"`
	MediaType string `json:"mediaType,omitempty" maxLength:"100"`
	SizeGB    string `json:"sizeGB,omitempty" maxLength:"50"`
	Backup    string `json:"backup,omitempty" maxLength:"200"`
	Checksum  string `json:"checksum,omitempty" maxLength:"200"`
	Notes     string `json:"notes,omitempty" maxLength:"2000"`
}

// CameraReportEntryInput một dòng camera report mới.
type CameraReportEntryInput struct {
	Roll    string `json:"roll" validate:"required" maxLength:"100"`
	Scene   string `json:"scene,omitempty" maxLength:"100"`
	Shot    string `json:"shot,omitempty" maxLength:"100"`
	Take    string `json:"take,omitempty" maxLength:"50"`
	Lens    string `json:"lens,omitempty" maxLength:"100"`
	Filter  string `json:"filter,omitempty" maxLength:"100"`
	FPS     string `json:"fps,omitempty" maxLength:"50"`
	ISO     string `json:"iso,omitempty" maxLength:"50"`
	Shutter string `json:"shutter,omitempty" maxLength:"50"`
	WB      string `json:"wb,omitempty" maxLength:"50"`
	Notes   string `json:"notes,omitempty" maxLength:"2000"`
}

// NoteInput một ghi chú on-set (tạo hoặc sửa).
type NoteInput struct {
	Text     string `json:"text" validate:"required" maxLength:"5000"`
	Category string `json:"category,omitempty" maxLength:"100"`
	SceneRef string `json:"sceneRef,omitempty" maxLength:"100"`
}

// ShotCompleteInput đánh dấu shot đã quay xong, kèm tùy chọn ghi một dòng
// camera report trong cùng một lần ghi.
type ShotCompleteInput struct {
	AddToLog bool   `json:"addToLog,omitempty"`
	Roll     string `json:"roll,omitempty" maxLength:"100"`
	Notes    string `json:"notes,omitempty" maxLength:"2000"`
}

// MediaAlertInput thông báo media mới từ DIT tới mọi người trên channel.
type MediaAlertInput struct {
	Roll      string `json:"roll" validate:"required" maxLength:"100"`
	Camera    string `json:"camera,omitempty" maxLength:"100"`
	MediaType string `json:"mediaType,omitempty" maxLength:"100"`
	FPS       string `json:"fps,omitempty" maxLength:"50"`
	ISO       string `json:"iso,omitempty" maxLength:"50"`
	Shutter   string `json:"shutter,omitempty" maxLength:"50"`
	WB        string `json:"wb,omitempty" maxLength:"50"`
	SoundRoll string `json:"soundRoll,omitempty" maxLength:"100"`
	Notes     string `json:"notes,omitempty" maxLength:"2000"`
}
