package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ErrorKind string

const (
	// KindValidation means the input was rejected before any transaction started.
	KindValidation ErrorKind = "validation"
	// KindBusiness means a business rule failed and the transaction was abandoned.
	KindBusiness ErrorKind = "business"
	// KindIntegrity means the store refused a write, usually a lost race on a unique key.
	KindIntegrity ErrorKind = "integrity"
	KindInternal  ErrorKind = "internal"
)

// Error codes double as message IDs for the locales bundle.
const (
	CodeValidation           = "validation_failed"
	CodeInvalidInvite        = "invalid_invite_code"
	CodeLoginExists          = "login_exists"
	CodeInvalidCredentials   = "invalid_credentials"
	CodeAccountDeactivated   = "account_deactivated"
	CodeInventoryNotFound    = "inventory_not_found"
	CodeInsufficientQuantity = "insufficient_quantity"
	CodeResultTooLarge       = "result_too_large"
	CodeStockExists          = "stock_exists"
	CodeStockNotPresent      = "stock_not_present"
	CodeProductExists        = "product_exists"
	CodeProductInUse         = "product_in_use"
	CodeProductNotFound      = "product_not_found"
	CodeWarehouseExists      = "warehouse_exists"
	CodeWarehouseNotFound    = "warehouse_not_found"
	CodeWarehouseForbidden   = "warehouse_forbidden"
	CodeSupplierExists       = "supplier_exists"
	CodeSupplierNotFound     = "supplier_not_found"
	CodeEmployeeExists       = "employee_exists"
	CodeEmployeeNotFound     = "employee_not_found"
	CodePostExists           = "post_exists"
	CodePostNotFound         = "post_not_found"
	CodeRoleNotFound         = "role_not_found"
	CodeUserNotFound         = "user_not_found"
	CodeInviteExists         = "invite_exists"
	CodeInvitePending        = "invite_pending"
	CodeEmployeeHasAccount   = "employee_has_account"
	CodeInviteNotFound       = "invite_not_found"
	CodeInviteConsumed       = "invite_consumed"
	CodeDuplicateProduct     = "duplicate_product"
	CodeSameWarehouse        = "same_warehouse"
	CodeNotEnoughAtSource    = "requesting_more_than_available"
	CodeTooLargeAtDest       = "too_large_at_destination"
	CodeShipmentNotFound     = "shipment_not_found"
	CodeTransferNotFound     = "transfer_not_found"
	CodeIntegrity            = "integrity_violation"
	CodeInternal             = "internal_error"
)

// AppError is the only error type services return.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	// Params fill placeholders in localized messages.
	Params map[string]interface{}
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func validationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Code: CodeValidation, Message: message}
}

func validationErrorCode(code, message string) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: message}
}

func businessError(code, message string, params map[string]interface{}) *AppError {
	return &AppError{Kind: KindBusiness, Code: code, Message: message, Params: params}
}

// AsAppError extracts an *AppError from err, or nil.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// classify maps a raw error from a store call to an *AppError, logging the
// ones callers cannot act on.
func classify(log *zap.Logger, op string, err error) error {
	if err == nil {
		return nil
	}
	if appErr := AsAppError(err); appErr != nil {
		return appErr
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		log.Warn("constraint violation", zap.String("op", op), zap.Error(err))
		return &AppError{Kind: KindIntegrity, Code: CodeIntegrity, Message: "the data changed concurrently, please retry", Err: err}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		log.Info("operation cancelled", zap.String("op", op), zap.Error(err))
	} else {
		log.Error("operation failed", zap.String("op", op), zap.Error(err))
	}
	return &AppError{Kind: KindInternal, Code: CodeInternal, Message: "internal error", Err: err}
}

// runInTx runs fn in one database transaction. Any error returned by fn
// rolls back every write made through tx.
func runInTx(ctx context.Context, db *gorm.DB, log *zap.Logger, op string, fn func(tx *gorm.DB) error) error {
	return classify(log, op, db.WithContext(ctx).Transaction(fn))
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
