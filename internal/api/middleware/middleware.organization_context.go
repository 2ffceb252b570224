package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"planbase/internal/common"
	"planbase/internal/global"
	"planbase/internal/logger"
)

// HeaderOrganizationID là header chứa organization đang hoạt động của request.
const HeaderOrganizationID = "X-Organization-ID"

// OrganizationContextMiddleware xác định organization context cho request.
//
// Client gửi header X-Organization-ID chứa ObjectID (hex) của organization.
// Middleware kiểm tra định dạng và sự tồn tại của organization, sau đó lưu vào
// Locals("active_organization_id") để handler sử dụng khi filter dữ liệu.
//
// Request không có header vẫn được đi tiếp: các handler yêu cầu organization
// sẽ tự trả về 401 khi thiếu context (route hệ thống không cần organization).
func OrganizationContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		orgIDHex := c.Get(HeaderOrganizationID)
		if orgIDHex == "" {
			return c.Next()
		}

		orgID, err := primitive.ObjectIDFromHex(orgIDHex)
		if err != nil {
			return HandleErrorResponse(c, common.NewError(
				common.ErrCodeValidationFormat,
				"Header X-Organization-ID không phải ObjectID hợp lệ",
				common.StatusBadRequest,
				nil,
			))
		}

		// Kiểm tra organization có tồn tại không
		if col, exists := global.RegistryCollections.Get(global.ColNames.Organizations); exists {
			ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
			defer cancel()

			count, err := col.CountDocuments(ctx, bson.M{"_id": orgID})
			if err != nil {
				logger.GetAppLogger().WithError(err).Error("Failed to verify organization")
				return HandleErrorResponse(c, common.ConvertMongoError(err))
			}
			if count == 0 {
				return HandleErrorResponse(c, common.NewError(
					common.ErrCodeValidationInput,
					"Organization không tồn tại",
					common.StatusForbidden,
					nil,
				))
			}
		}

		c.Locals("active_organization_id", orgID.Hex())
		return c.Next()
	}
}
