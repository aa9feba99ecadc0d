// Package mediasvc - Service metadata file media (media_files).
package mediasvc

import (
	"context"
	"fmt"

	basesvc "onset_studio/internal/api/base/service"
	mediamodels "onset_studio/internal/api/media/models"
	"onset_studio/internal/common"
	"onset_studio/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// MediaFileService xử lý CRUD metadata file media.
type MediaFileService struct {
	*basesvc.BaseServiceMongoImpl[mediamodels.MediaFile]
}

// NewMediaFileService tạo MediaFileService mới.
func NewMediaFileService() (*MediaFileService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.MediaFiles)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.MediaFiles, common.ErrNotFound)
	}
	return &MediaFileService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[mediamodels.MediaFile](coll),
	}, nil
}

// FindByProject trả về file của một dự án (mới nhất trước).
func (s *MediaFileService) FindByProject(ctx context.Context, projectID primitive.ObjectID, category string, limit int) ([]mediamodels.MediaFile, error) {
	if limit <= 0 {
		limit = 100
	}
	filter := bson.M{"projectId": projectID}
	if category != "" {
		filter["category"] = category
	}
	opts := mongoopts.Find().SetLimit(int64(limit)).SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, filter, opts)
}
