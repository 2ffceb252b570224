package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"planbase/config"
	planmodels "planbase/internal/api/planning/models"
	tenancymodels "planbase/internal/api/tenancy/models"
	varmodels "planbase/internal/api/variables/models"
	"planbase/internal/database"
	"planbase/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.ColNames.Organizations = "organizations"
	global.ColNames.Classrooms = "classrooms"

	// Schema biến động (definitions) và fact table (values)
	global.ColNames.VariableDefinitions = "variable_definitions"
	global.ColNames.VariableValues = "variable_values"

	// Các chủ thể planning mang biến động
	global.ColNames.Stores = "stores"
	global.ColNames.StoreTypes = "store_types"
	global.ColNames.Scenarios = "scenarios"
	global.ColNames.Submissions = "submissions"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (global.InitValidator đăng ký custom validators: no_xss, exists, variable_key)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
		logrus.Fatalf("Failed to ensure database and collections: %v", err)
	}
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khởi tạo các index cho các collection
	dbName := global.ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.ColNames.Organizations), tenancymodels.Organization{})
	database.CreateIndexes(context.TODO(), db.Collection(global.ColNames.Classrooms), tenancymodels.Classroom{})
	database.CreateIndexes(context.TODO(), db.Collection(global.ColNames.VariableDefinitions), varmodels.VariableDefinition{})
	database.CreateIndexes(context.TODO(), db.Collection(global.ColNames.VariableValues), varmodels.VariableValue{})
	database.CreateIndexes(context.TODO(), db.Collection(global.ColNames.Stores), planmodels.Store{})
	database.CreateIndexes(context.TODO(), db.Collection(global.ColNames.StoreTypes), planmodels.StoreType{})
	database.CreateIndexes(context.TODO(), db.Collection(global.ColNames.Scenarios), planmodels.Scenario{})
	database.CreateIndexes(context.TODO(), db.Collection(global.ColNames.Submissions), planmodels.Submission{})
}
