// Package database - Index bổ sung cho hệ thống on-set (compound, sparse) không thể định nghĩa qua model tags.
package database

import (
	"context"
	"strings"

	"onset_studio/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateOnsetIndexes tạo các index cho các collection của hệ thống on-set.
// Gọi một lần khi khởi động server, sau khi các collection đã được đăng ký vào registry.
func CreateOnsetIndexes(ctx context.Context, db *mongo.Database) error {
	// projects: ownerEmail — liệt kê dự án theo chủ sở hữu
	projects := db.Collection(global.MongoDB_ColNames.Projects)
	if _, err := projects.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "ownerEmail", Value: 1}},
		Options: options.Index().SetName("project_owner_email"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// crew_memberships: (projectId, userEmail) unique — mỗi viewer một membership cho mỗi dự án
	crew := db.Collection(global.MongoDB_ColNames.CrewMemberships)
	if _, err := crew.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "projectId", Value: 1},
			{Key: "userEmail", Value: 1},
		},
		Options: options.Index().SetName("crew_project_email").SetUnique(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// crew_memberships: (projectId, isOnline, lastSeenAt) — presence sweep + roster online
	if _, err := crew.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "projectId", Value: 1},
			{Key: "isOnline", Value: 1},
			{Key: "lastSeenAt", Value: 1},
		},
		Options: options.Index().SetName("crew_project_presence"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// media_files: (projectId, createdAt) — liệt kê media theo dự án, mới nhất trước
	media := db.Collection(global.MongoDB_ColNames.MediaFiles)
	if _, err := media.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "projectId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("media_project_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// media_alerts: (projectId, createdAt) — lịch sử alert theo dự án
	alerts := db.Collection(global.MongoDB_ColNames.MediaAlerts)
	if _, err := alerts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "projectId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("media_alert_project_created"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
