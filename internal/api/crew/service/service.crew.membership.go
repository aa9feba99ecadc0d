// Package crewsvc - Service thành viên đoàn phim + presence (crew_memberships).
package crewsvc

import (
	"context"
	"fmt"
	"time"

	basesvc "onset_studio/internal/api/base/service"
	crewmodels "onset_studio/internal/api/crew/models"
	"onset_studio/internal/common"
	"onset_studio/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// CrewMembershipService xử lý CRUD membership và heartbeat presence.
type CrewMembershipService struct {
	*basesvc.BaseServiceMongoImpl[crewmodels.CrewMembership]
}

// NewCrewMembershipService tạo CrewMembershipService mới.
func NewCrewMembershipService() (*CrewMembershipService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CrewMemberships)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.CrewMemberships, common.ErrNotFound)
	}
	return &CrewMembershipService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[crewmodels.CrewMembership](coll),
	}, nil
}

// membershipFilter là filter định danh một membership (một document cho mỗi
// cặp dự án + viewer, có unique compound index).
func membershipFilter(projectID primitive.ObjectID, userEmail string) bson.M {
	return bson.M{"projectId": projectID, "userEmail": userEmail}
}

// Join ghi nhận viewer tham gia dự án: upsert membership với isOnline=true.
// Gọi khi mobile mở màn hình on-set — cùng lúc client subscribe presence realtime.
func (s *CrewMembershipService) Join(ctx context.Context, projectID primitive.ObjectID, userEmail string, role string) (*crewmodels.CrewMembership, error) {
	if role == "" {
		role = crewmodels.DefaultRole
	}
	now := time.Now().UnixMilli()
	data := &basesvc.UpdateData{
		Set: bson.M{
			"role":       role,
			"isOnline":   true,
			"lastSeenAt": now,
		},
		SetOnInsert: bson.M{
			"projectId": projectID,
			"userEmail": userEmail,
			"createdAt": now,
		},
	}
	m, err := s.Upsert(ctx, membershipFilter(projectID, userEmail), data)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Heartbeat cập nhật lastSeenAt. Client gửi mỗi 30 giây khi còn mở màn hình.
func (s *CrewMembershipService) Heartbeat(ctx context.Context, projectID primitive.ObjectID, userEmail string) error {
	update := bson.M{"$set": bson.M{
		"isOnline":   true,
		"lastSeenAt": time.Now().UnixMilli(),
		"updatedAt":  time.Now().UnixMilli(),
	}}
	_, err := s.UpdateOne(ctx, membershipFilter(projectID, userEmail), update, nil)
	return err
}

// Leave đánh dấu viewer rời hiện trường (best-effort — client có thể biến
// mất không kịp gửi, timeout của IsOnlineNow xử lý trường hợp đó).
func (s *CrewMembershipService) Leave(ctx context.Context, projectID primitive.ObjectID, userEmail string) error {
	update := bson.M{"$set": bson.M{
		"isOnline":  false,
		"updatedAt": time.Now().UnixMilli(),
	}}
	_, err := s.UpdateOne(ctx, membershipFilter(projectID, userEmail), update, nil)
	return err
}

// Roster trả về toàn bộ membership của dự án (email tăng dần).
func (s *CrewMembershipService) Roster(ctx context.Context, projectID primitive.ObjectID) ([]crewmodels.CrewMembership, error) {
	filter := bson.M{"projectId": projectID}
	opts := mongoopts.Find().SetSort(bson.D{{Key: "userEmail", Value: 1}})
	return s.Find(ctx, filter, opts)
}

// MarkStaleOffline tắt cờ isOnline của các membership đã quá timeout mà
// không có heartbeat. Worker presence sweeper gọi định kỳ để dữ liệu bền
// không kẹt ở trạng thái online vĩnh viễn.
func (s *CrewMembershipService) MarkStaleOffline(ctx context.Context, timeoutMs int64) (int64, error) {
	cutoff := time.Now().UnixMilli() - timeoutMs
	filter := bson.M{
		"isOnline":   true,
		"lastSeenAt": bson.M{"$lt": cutoff},
	}
	update := bson.M{"$set": bson.M{
		"isOnline":  false,
		"updatedAt": time.Now().UnixMilli(),
	}}
	return s.UpdateMany(ctx, filter, update, nil)
}
