package controllers

import (
	"strconv"
	"strings"
	"warehouse-app/locales"
	"warehouse-app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// base carries what every controller needs to answer a request.
type base struct {
	log  *zap.Logger
	i18n *locales.Localizer
}

var statusByCode = map[string]int{
	services.CodeInvalidCredentials: fiber.StatusUnauthorized,
	services.CodeAccountDeactivated: fiber.StatusForbidden,
	services.CodeWarehouseForbidden: fiber.StatusForbidden,
	services.CodeInventoryNotFound:  fiber.StatusNotFound,
	services.CodeProductNotFound:    fiber.StatusNotFound,
	services.CodeWarehouseNotFound:  fiber.StatusNotFound,
	services.CodeSupplierNotFound:   fiber.StatusNotFound,
	services.CodeEmployeeNotFound:   fiber.StatusNotFound,
	services.CodePostNotFound:       fiber.StatusNotFound,
	services.CodeRoleNotFound:       fiber.StatusNotFound,
	services.CodeUserNotFound:       fiber.StatusNotFound,
	services.CodeInviteNotFound:     fiber.StatusNotFound,
	services.CodeShipmentNotFound:   fiber.StatusNotFound,
	services.CodeTransferNotFound:   fiber.StatusNotFound,
	services.CodeLoginExists:        fiber.StatusConflict,
	services.CodeStockExists:        fiber.StatusConflict,
	services.CodeProductExists:      fiber.StatusConflict,
	services.CodeWarehouseExists:    fiber.StatusConflict,
	services.CodeSupplierExists:     fiber.StatusConflict,
	services.CodeEmployeeExists:     fiber.StatusConflict,
	services.CodePostExists:         fiber.StatusConflict,
	services.CodeInviteExists:       fiber.StatusConflict,
	services.CodeInvitePending:      fiber.StatusConflict,
	services.CodeEmployeeHasAccount: fiber.StatusConflict,
	services.CodeInviteConsumed:     fiber.StatusConflict,
	services.CodeProductInUse:       fiber.StatusConflict,
}

func statusFor(appErr *services.AppError) int {
	switch appErr.Kind {
	case services.KindValidation:
		return fiber.StatusBadRequest
	case services.KindIntegrity:
		return fiber.StatusConflict
	case services.KindInternal:
		return fiber.StatusInternalServerError
	}
	if status, ok := statusByCode[appErr.Code]; ok {
		return status
	}
	return fiber.StatusUnprocessableEntity
}

func (b *base) success(ctx *fiber.Ctx, status int, data interface{}) error {
	return ctx.Status(status).JSON(fiber.Map{
		"success": true,
		"code":    "ok",
		"message": b.i18n.Message(ctx.Get(fiber.HeaderAcceptLanguage), "ok", "Success", nil),
		"data":    data,
	})
}

// fail renders any service error as a localized result.
func (b *base) fail(ctx *fiber.Ctx, err error) error {
	appErr := services.AsAppError(err)
	if appErr == nil {
		b.log.Error("unclassified error", zap.String("path", ctx.Path()), zap.Error(err))
		appErr = &services.AppError{Kind: services.KindInternal, Code: services.CodeInternal, Message: "internal error"}
	}

	params := appErr.Params
	if appErr.Kind == services.KindValidation {
		params = map[string]interface{}{"Detail": appErr.Message}
	}
	message := b.i18n.Message(ctx.Get(fiber.HeaderAcceptLanguage), appErr.Code, appErr.Message, params)

	return ctx.Status(statusFor(appErr)).JSON(fiber.Map{
		"success": false,
		"code":    appErr.Code,
		"message": message,
		"data":    nil,
	})
}

func (b *base) badRequest(ctx *fiber.Ctx, detail string) error {
	return b.fail(ctx, &services.AppError{Kind: services.KindValidation, Code: services.CodeValidation, Message: detail})
}

// sessionFrom reads the identity stored by middleware.AuthMiddleware.
func sessionFrom(ctx *fiber.Ctx) services.Session {
	if s, ok := ctx.Locals("session").(services.Session); ok {
		return s
	}
	return services.Session{}
}

// queryIDs parses "warehouse_ids=1,2,3". Blank entries are skipped.
func queryIDs(ctx *fiber.Ctx, key string) ([]uint, error) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return nil, nil
	}
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil || id == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, key+": invalid id "+part)
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func paramID(ctx *fiber.Ctx) (uint, error) {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "id: invalid")
	}
	return uint(id), nil
}
