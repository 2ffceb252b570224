package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"planbase/config"
	"planbase/internal/registry"
)

// CollectionName chứa tên các collection trong MongoDB
type CollectionName struct {
	Organizations       string // Tên collection cho tổ chức (tenant)
	Classrooms          string // Tên collection cho lớp học (class scope)
	VariableDefinitions string // Tên collection cho variable definitions (schema động)
	VariableValues      string // Tên collection cho variable values (EAV fact table)
	Stores              string // Tên collection cho cửa hàng
	StoreTypes          string // Tên collection cho loại cửa hàng (org-wide)
	Scenarios           string // Tên collection cho kịch bản
	Submissions         string // Tên collection cho bài nộp
}

// Các biến toàn cục
var Validate *validator.Validate               // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client              // Phiên kết nối tới MongoDB
var ServerConfig *config.Configuration         // Cấu hình của server
var ColNames CollectionName = CollectionName{} // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
