package realtime

import (
	"context"

	"onset_studio/internal/api/events"
)

// ChannelForProject trả về tên channel dữ liệu của một dự án.
func ChannelForProject(projectIDHex string) string {
	return "project:" + projectIDHex
}

// MediaChannelForProject trả về tên channel media alert của một dự án.
func MediaChannelForProject(projectIDHex string) string {
	return "project:" + projectIDHex + ":media"
}

// RegisterDataChangeBridge nối event thay đổi dữ liệu CRUD vào realtime hub:
// mọi insert/update/upsert/delete được đẩy thành event "row_change" trên
// channel của dự án tương ứng. Client mobile nghe để refresh màn hình on-set.
// Gọi một lần khi khởi động app.
func RegisterDataChangeBridge() {
	hub := GetHub()
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		projectID := events.GetProjectIDFromDocument(e.Document)
		if projectID.IsZero() {
			return
		}
		hub.Broadcast(ChannelForProject(projectID.Hex()), "row_change", map[string]interface{}{
			"collection": e.CollectionName,
			"operation":  e.Operation,
		})
	})
}
