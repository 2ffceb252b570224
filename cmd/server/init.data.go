package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	plansvc "planbase/internal/api/planning/service"
	tenancymodels "planbase/internal/api/tenancy/models"
	tenancysvc "planbase/internal/api/tenancy/service"
	varmodels "planbase/internal/api/variables/models"
	varsvc "planbase/internal/api/variables/service"
	"planbase/internal/common"
	"planbase/internal/global"
	"planbase/internal/logger"
)

// InitDefaultData đăng ký hook hydrate nền và seed dữ liệu demo khi InitMode bật.
// Seed là idempotent: chạy lại không tạo bản ghi trùng.
func InitDefaultData() {
	log := logger.GetAppLogger()

	if err := plansvc.RegisterHydrationHooks(); err != nil {
		log.Fatalf("Failed to register hydration hooks: %v", err)
	}
	log.Info("Hydration hooks registered")

	if !global.ServerConfig.InitMode {
		log.Info("InitMode disabled, skipping seed data")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	orgService, err := tenancysvc.NewOrganizationService()
	if err != nil {
		log.Fatalf("Failed to create organization service: %v", err)
	}
	classroomService, err := tenancysvc.NewClassroomService()
	if err != nil {
		log.Fatalf("Failed to create classroom service: %v", err)
	}
	definitionService, err := varsvc.NewDefinitionService()
	if err != nil {
		log.Fatalf("Failed to create definition service: %v", err)
	}

	// 1. Organization demo
	org, err := orgService.FindOne(ctx, bson.M{"code": "demo"}, nil)
	if err == common.ErrNotFound {
		org, err = orgService.InsertOne(ctx, tenancymodels.Organization{
			Name:     global.ServerConfig.SeedOrganizationName,
			Code:     "demo",
			IsActive: true,
		})
	}
	if err != nil {
		log.Warnf("Failed to seed organization: %v", err)
		return
	}
	log.Infof("Seed organization ready (ID: %s)", org.ID.Hex())

	// 2. Classroom demo
	classroom, err := classroomService.FindOne(ctx, bson.M{
		"ownerOrganizationId": org.ID,
		"code":                "demo_class",
	}, nil)
	if err == common.ErrNotFound {
		classroom, err = classroomService.InsertOne(ctx, tenancymodels.Classroom{
			OwnerOrganizationID: org.ID,
			Name:                "Lớp demo",
			Code:                "demo_class",
			IsActive:            true,
		})
	}
	if err != nil {
		log.Warnf("Failed to seed classroom: %v", err)
		return
	}
	log.Infof("Seed classroom ready (ID: %s)", classroom.ID.Hex())

	// 3. Definitions mẫu cho scope scenario và store của lớp demo
	demand := float64(0)
	demandMax := float64(5000)
	rentMin := float64(0)
	seedDefinitions := []varmodels.VariableDefinition{
		{
			OwnerOrganizationID: org.ID,
			ClassroomID:         &classroom.ID,
			ScopeCategory:       varmodels.ScopeCategoryScenario,
			Key:                 "expectedDemand",
			Label:               "Nhu cầu dự kiến",
			Description:         "Số khách dự kiến trong một chu kỳ mô phỏng",
			DataType:            varmodels.DataTypeNumber,
			InputType:           varmodels.InputTypeSlider,
			Min:                 &demand,
			Max:                 &demandMax,
			Required:            true,
			DefaultValue:        float64(1200),
		},
		{
			OwnerOrganizationID: org.ID,
			ClassroomID:         &classroom.ID,
			ScopeCategory:       varmodels.ScopeCategoryStore,
			Key:                 "monthlyRent",
			Label:               "Tiền thuê tháng",
			DataType:            varmodels.DataTypeNumber,
			InputType:           varmodels.InputTypeNumber,
			Min:                 &rentMin,
			Required:            false,
		},
	}

	for i := range seedDefinitions {
		def := seedDefinitions[i]
		scope := def.Scope()
		existing, err := definitionService.DefinitionsForScope(ctx, scope, true)
		if err != nil {
			log.Warnf("Failed to read definitions for scope %s: %v", scope.Category, err)
			continue
		}
		found := false
		for j := range existing {
			if existing[j].Key == def.Key {
				found = true
				break
			}
		}
		if found {
			continue
		}
		if _, err := definitionService.Register(ctx, &def); err != nil {
			log.Warnf("Failed to seed definition %s: %v", def.Key, err)
			continue
		}
		log.Infof("Seed definition %s (%s) registered", def.Key, scope.Category)
	}

	log.Info("InitDefaultData completed")
}
