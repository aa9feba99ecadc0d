package global

import (
	"onset_studio/config"
	"onset_studio/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Projects        string // Tên collection cho dự án sản xuất (phases + drafts nằm trong document dự án)
	CrewMemberships string // Tên collection cho thành viên đoàn phim (presence + vai trò)
	MediaFiles      string // Tên collection cho metadata file media upload từ hiện trường
	MediaAlerts     string // Tên collection cho lịch sử media alert đã broadcast
}

// Các biến toàn cục
var Validate *validator.Validate                                         // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                        // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration                                   // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
