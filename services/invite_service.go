package services

import (
	"context"
	"strings"
	"time"
	"warehouse-app/controllers/idgen"
	"warehouse-app/models"
	"warehouse-app/repositories"
	"warehouse-app/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type InviteService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewInviteService(db *gorm.DB, log *zap.Logger) *InviteService {
	return &InviteService{db: db, log: log.Named("invite")}
}

// InviteInput leaves Code blank to have one generated.
type InviteInput struct {
	Code       string `json:"code" validate:"omitempty,min=5,max=64"`
	EmployeeID uint   `json:"employee_id" validate:"required"`
	Role       string `json:"role" validate:"required,notblank"`
}

func (s *InviteService) CreateInviteCode(ctx context.Context, in InviteInput) (*models.InviteCode, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Role = strings.TrimSpace(in.Role)
	if in.Code == "" {
		in.Code = idgen.InviteCode()
	}
	if err := utils.ValidateStruct(in); err != nil {
		return nil, validationError(err.Error())
	}

	var invite *models.InviteCode
	err := runInTx(ctx, s.db, s.log, "create_invite_code", func(tx *gorm.DB) error {
		invites := repositories.NewInviteRepository(tx)
		users := repositories.NewUserRepository(tx)

		if _, err := repositories.NewEmployeeRepository(tx).FindByID(in.EmployeeID); err != nil {
			if isNotFound(err) {
				return businessError(CodeEmployeeNotFound, "employee not found", nil)
			}
			return err
		}
		role, err := users.FindRoleByName(in.Role)
		if err != nil {
			if isNotFound(err) {
				return businessError(CodeRoleNotFound, "role not found", map[string]interface{}{"Role": in.Role})
			}
			return err
		}

		hasAccount, err := users.ExistsForEmployee(in.EmployeeID)
		if err != nil {
			return err
		}
		if hasAccount {
			return businessError(CodeEmployeeHasAccount, "employee already has an account", nil)
		}
		pending, err := invites.ActiveExistsForEmployee(in.EmployeeID)
		if err != nil {
			return err
		}
		if pending {
			return businessError(CodeInvitePending, "employee already has an active invite code", nil)
		}
		taken, err := invites.CodeExists(in.Code)
		if err != nil {
			return err
		}
		if taken {
			return businessError(CodeInviteExists, "invite code already exists", nil)
		}

		invite = &models.InviteCode{Code: in.Code, EmployeeID: in.EmployeeID, RoleID: role.ID, IsActive: true}
		if err := invites.Create(invite); err != nil {
			return err
		}
		invite.Role = role
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("invite code issued", zap.Uint("employee_id", in.EmployeeID), zap.String("role", in.Role))
	return invite, nil
}

func (s *InviteService) ListInviteCodes(ctx context.Context) ([]repositories.InviteRow, error) {
	rows, err := repositories.NewInviteRepository(s.db.WithContext(ctx)).List()
	if err != nil {
		return nil, classify(s.log, "list_invite_codes", err)
	}
	return rows, nil
}

// RevokeInviteCode deactivates an unused invite.
func (s *InviteService) RevokeInviteCode(ctx context.Context, id uint) error {
	return runInTx(ctx, s.db, s.log, "revoke_invite_code", func(tx *gorm.DB) error {
		invites := repositories.NewInviteRepository(tx)
		invite, err := invites.FindByID(id)
		if err != nil {
			if isNotFound(err) {
				return businessError(CodeInviteNotFound, "invite code not found", nil)
			}
			return err
		}
		if !invite.IsActive {
			return businessError(CodeInviteConsumed, "invite already consumed", nil)
		}
		ok, err := invites.Consume(invite.ID, time.Now())
		if err != nil {
			return err
		}
		if !ok {
			return businessError(CodeInviteConsumed, "invite already consumed", nil)
		}
		return nil
	})
}
