// Package planhdl - handler HTTP cho domain planning.
//
// File này chứa phần dùng chung của các endpoint hydrate: GET /:id/variables,
// PUT /:id/variables và GET /find-hydrated. Bốn loại chủ thể chỉ khác nhau ở
// model và overlay nên phần thân dùng generic, mirror cách BaseHandler làm.
package planhdl

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "planbase/internal/api/base/handler"
	basesvc "planbase/internal/api/base/service"
	plansvc "planbase/internal/api/planning/service"
	"planbase/internal/api/variables/overlay"
	"planbase/internal/common"
	"planbase/internal/utility"
)

// ownerPtr ràng buộc: con trỏ tới model chủ thể phải implement overlay.Owner.
type ownerPtr[T any] interface {
	*T
	overlay.Owner
}

// getActiveOrganizationID lấy active organization ID từ context.
func getActiveOrganizationID(c fiber.Ctx) *primitive.ObjectID {
	orgIDStr, ok := c.Locals("active_organization_id").(string)
	if !ok || orgIDStr == "" {
		return nil
	}
	orgID, err := primitive.ObjectIDFromHex(orgIDStr)
	if err != nil {
		return nil
	}
	return &orgID
}

// validateOwnerOrganization kiểm tra chủ thể thuộc organization đang hoạt động.
func validateOwnerOrganization(c fiber.Ctx, ownerOrgID primitive.ObjectID) error {
	orgID := getActiveOrganizationID(c)
	if orgID == nil {
		return common.NewError(
			common.ErrCodeValidationInput,
			"Không có organization context. Gửi header X-Organization-ID",
			common.StatusUnauthorized,
			nil,
		)
	}
	if *orgID != ownerOrgID {
		return common.NewError(
			common.ErrCodeValidationInput,
			"Không có quyền truy cập dữ liệu của tổ chức này",
			common.StatusForbidden,
			nil,
		)
	}
	return nil
}

// handleGetVariables xử lý GET /:id/variables: hydrate một instance và trả
// về view (cả hai shape). Gọi lặp lại trên cùng request không chạm storage
// thêm vì cache sống theo instance.
func handleGetVariables[T any, PT ownerPtr[T]](c fiber.Ctx, svc basesvc.BaseServiceMongo[T], ov *overlay.Overlay) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id := utility.String2ObjectID(c.Params("id"))
		if id.IsZero() {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		doc, err := svc.FindOneById(c.Context(), id)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		owner := PT(&doc)
		if err := validateOwnerOrganization(c, owner.OrganizationID()); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		view, err := ov.Hydrate(c.Context(), owner)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, view, nil)
		return nil
	})
}

// handlePutVariables xử lý PUT /:id/variables: validate → áp default → thay
// toàn bộ values của chủ thể (key vắng mặt bị xóa) → trả view sau khi ghi.
// Body là object map key → giá trị, hoặc bọc trong {"variables": {...}}.
func handlePutVariables[T any, PT ownerPtr[T]](c fiber.Ctx, svc basesvc.BaseServiceMongo[T], stack *plansvc.VariableStack, ov *overlay.Overlay) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		id := utility.String2ObjectID(c.Params("id"))
		if id.IsZero() {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		var payload map[string]interface{}
		decoder := json.NewDecoder(bytes.NewReader(c.Body()))
		decoder.UseNumber()
		if err := decoder.Decode(&payload); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat, "Dữ liệu gửi lên không đúng định dạng JSON", common.StatusBadRequest, nil))
			return nil
		}
		if wrapped, ok := payload["variables"].(map[string]interface{}); ok && len(payload) == 1 {
			payload = wrapped
		}

		doc, err := svc.FindOneById(c.Context(), id)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		owner := PT(&doc)
		if err := validateOwnerOrganization(c, owner.OrganizationID()); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		view, err := stack.ReplaceOwnerVariables(c.Context(), ov, owner, payload)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, view, nil)
		return nil
	})
}

// handleFindHydrated xử lý GET /find-hydrated: danh sách chủ thể của
// organization đang hoạt động (lọc thêm classroomId nếu có), hydrate hàng
// loạt với đúng 2 truy vấn biến động trước khi trả về. "variables" xuất hiện
// trong JSON của từng phần tử qua MarshalJSON.
func handleFindHydrated[T any, PT ownerPtr[T]](c fiber.Ctx, svc basesvc.BaseServiceMongo[T], ov *overlay.Overlay) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		orgID := getActiveOrganizationID(c)
		if orgID == nil {
			basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Không có organization context. Gửi header X-Organization-ID",
				common.StatusUnauthorized,
				nil,
			))
			return nil
		}

		filter := bson.M{
			"ownerOrganizationId": *orgID,
			"isActive":            true,
		}
		if classroomIDHex := c.Query("classroomId"); classroomIDHex != "" {
			classroomID := utility.String2ObjectID(classroomIDHex)
			if classroomID.IsZero() {
				basehdl.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat, "classroomId không hợp lệ", common.StatusBadRequest, nil))
				return nil
			}
			filter["classroomId"] = classroomID
		}

		items, err := svc.Find(c.Context(), filter, nil)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		owners := make([]overlay.Owner, 0, len(items))
		for i := range items {
			owners = append(owners, PT(&items[i]))
		}
		if err := ov.HydrateMany(c.Context(), owners); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		basehdl.HandleResponse(c, items, nil)
		return nil
	})
}
