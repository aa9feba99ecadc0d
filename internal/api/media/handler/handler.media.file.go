// Package mediahdl - Handler upload/list file media từ hiện trường.
package mediahdl

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	basehdl "onset_studio/internal/api/base/handler"
	mediadto "onset_studio/internal/api/media/dto"
	mediamodels "onset_studio/internal/api/media/models"
	mediasvc "onset_studio/internal/api/media/service"
	"onset_studio/internal/common"
	"onset_studio/internal/global"
	"onset_studio/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaFileHandler xử lý upload file và CRUD metadata.
type MediaFileHandler struct {
	*basehdl.BaseHandler[mediamodels.MediaFile, mediadto.MediaFileCreateInput, mediadto.MediaFileUpdateInput]
	MediaService *mediasvc.MediaFileService
}

// NewMediaFileHandler tạo MediaFileHandler mới.
func NewMediaFileHandler() (*MediaFileHandler, error) {
	svc, err := mediasvc.NewMediaFileService()
	if err != nil {
		return nil, fmt.Errorf("tạo MediaFileService: %w", err)
	}
	return &MediaFileHandler{
		BaseHandler:  basehdl.NewBaseHandler[mediamodels.MediaFile, mediadto.MediaFileCreateInput, mediadto.MediaFileUpdateInput](svc),
		MediaService: svc,
	}, nil
}

// HandleUpload xử lý POST /media/:projectId/upload (multipart, field "file").
// File được lưu với tên ngẫu nhiên (giữ phần mở rộng gốc) để tránh ghi đè
// và path traversal; tên gốc chỉ nằm trong metadata.
func (h *MediaFileHandler) HandleUpload(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		idStr := c.Params("projectId")
		projectID, err := primitive.ObjectIDFromHex(idStr)
		if idStr == "" || err != nil {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationFormat.Code, "message": "projectId không hợp lệ", "status": "error",
			})
			return nil
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationInput.Code, "message": "Thiếu file upload (field: file)", "status": "error",
			})
			return nil
		}

		storedName := uuid.NewString() + filepath.Ext(fileHeader.Filename)
		destPath := filepath.Join(global.ServerConfig.MediaUploadDir, storedName)
		if err := c.SaveFile(fileHeader, destPath); err != nil {
			c.Status(common.StatusInternalServerError).JSON(fiber.Map{
				"code": common.ErrCodeDatabase.Code, "message": "Lỗi lưu file", "status": "error",
			})
			return nil
		}

		now := time.Now().UnixMilli()
		meta, err := h.MediaService.InsertOne(c.Context(), mediamodels.MediaFile{
			ProjectID:     projectID,
			UploaderEmail: basehdl.GetViewerEmail(c),
			OriginalName:  fileHeader.Filename,
			StoredName:    storedName,
			ContentType:   fileHeader.Header.Get("Content-Type"),
			SizeBytes:     fileHeader.Size,
			Category:      c.FormValue("category"),
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogAction("media_upload", c, map[string]interface{}{
			"project_id":  projectID.Hex(),
			"stored_name": storedName,
			"size_bytes":  fileHeader.Size,
		})
		c.Status(common.StatusCreated).JSON(fiber.Map{
			"code": common.StatusCreated, "message": common.MsgSuccess, "data": meta, "status": "success",
		})
		return nil
	})
}

// HandleListByProject xử lý GET /media/:projectId/files. Query: category, limit.
func (h *MediaFileHandler) HandleListByProject(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		idStr := c.Params("projectId")
		projectID, err := primitive.ObjectIDFromHex(idStr)
		if idStr == "" || err != nil {
			c.Status(common.StatusBadRequest).JSON(fiber.Map{
				"code": common.ErrCodeValidationFormat.Code, "message": "projectId không hợp lệ", "status": "error",
			})
			return nil
		}
		limit := 100
		if s := c.Query("limit"); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n > 0 {
				limit = n
			}
		}
		files, err := h.MediaService.FindByProject(c.Context(), projectID, c.Query("category"), limit)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		c.Status(common.StatusOK).JSON(fiber.Map{
			"code": common.StatusOK, "message": common.MsgSuccess, "data": files, "status": "success",
		})
		return nil
	})
}
