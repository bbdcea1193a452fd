package services

import (
	"context"
	"strings"
	"time"
	"warehouse-app/config"
	"warehouse-app/models"
	"warehouse-app/repositories"
	"warehouse-app/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewAuthService(db *gorm.DB, log *zap.Logger) *AuthService {
	return &AuthService{db: db, log: log.Named("auth")}
}

type RegisterInput struct {
	InviteCode string `json:"invite_code" validate:"required,notblank,max=64"`
	Login      string `json:"login" validate:"required,min=4,max=20,credential"`
	Password   string `json:"password" validate:"required,min=4,max=72,credential"`
}

type LoginInput struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterUser redeems an invite and creates the account it grants. The
// invite is consumed and the account inserted in the same transaction.
func (s *AuthService) RegisterUser(ctx context.Context, in RegisterInput) (*Session, error) {
	in.InviteCode = strings.TrimSpace(in.InviteCode)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, validationError(err.Error())
	}

	var session *Session
	err := runInTx(ctx, s.db, s.log, "register_user", func(tx *gorm.DB) error {
		invites := repositories.NewInviteRepository(tx)
		users := repositories.NewUserRepository(tx)

		invite, err := invites.FindActiveByCode(in.InviteCode)
		if err != nil {
			if isNotFound(err) {
				return businessError(CodeInvalidInvite, "invalid invite code", nil)
			}
			return err
		}

		exists, err := users.LoginExists(in.Login)
		if err != nil {
			return err
		}
		if exists {
			return businessError(CodeLoginExists, "login exists", nil)
		}

		hash, err := utils.HashPassword(in.Password)
		if err != nil {
			return err
		}

		now := time.Now()
		consumed, err := invites.Consume(invite.ID, now)
		if err != nil {
			return err
		}
		if !consumed {
			return businessError(CodeInvalidInvite, "invalid invite code", nil)
		}

		user := models.UserAccount{
			Login:        in.Login,
			PasswordHash: hash,
			EmployeeID:   invite.EmployeeID,
			RoleID:       invite.RoleID,
			IsActive:     true,
			LastLoginAt:  &now,
		}
		if err := users.Create(&user); err != nil {
			return err
		}
		user.Role = invite.Role

		session, err = buildSession(tx, &user)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("login", session.Login), zap.Uint("employee_id", session.EmployeeID))
	return session, nil
}

// AuthorizeUser checks credentials. Unknown login and wrong password share
// one message so the response does not reveal which logins exist.
func (s *AuthService) AuthorizeUser(ctx context.Context, in LoginInput) (*Session, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, validationError(err.Error())
	}

	var session *Session
	err := runInTx(ctx, s.db, s.log, "authorize_user", func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)

		user, err := users.FindByLogin(in.Login)
		if err != nil {
			if isNotFound(err) {
				return businessError(CodeInvalidCredentials, "invalid login or password", nil)
			}
			return err
		}
		if !utils.VerifyPassword(in.Password, user.PasswordHash) {
			return businessError(CodeInvalidCredentials, "invalid login or password", nil)
		}
		if !user.IsActive {
			return businessError(CodeAccountDeactivated, "account deactivated", nil)
		}

		if err := users.TouchLastLogin(user.ID, time.Now()); err != nil {
			return err
		}

		session, err = buildSession(tx, user)
		return err
	})
	if err != nil {
		if appErr := AsAppError(err); appErr != nil && appErr.Kind == KindBusiness {
			s.log.Info("login rejected", zap.String("login", in.Login), zap.String("code", appErr.Code))
		}
		return nil, err
	}
	return session, nil
}

// CheckAccount fails when the account behind a live session was removed or deactivated.
func (s *AuthService) CheckAccount(ctx context.Context, userID uint) error {
	user, err := repositories.NewUserRepository(s.db.WithContext(ctx)).FindByID(userID)
	if err != nil {
		if isNotFound(err) {
			return businessError(CodeAccountDeactivated, "account deactivated", nil)
		}
		return classify(s.log, "check_account", err)
	}
	if !user.IsActive {
		return businessError(CodeAccountDeactivated, "account deactivated", nil)
	}
	return nil
}

// buildSession resolves the warehouse set: every warehouse for admins, the
// assigned ones for everybody else.
func buildSession(tx *gorm.DB, user *models.UserAccount) (*Session, error) {
	roleName := ""
	if user.Role != nil {
		roleName = user.Role.Name
	} else {
		var role models.Role
		if err := tx.First(&role, user.RoleID).Error; err != nil {
			return nil, err
		}
		roleName = role.Name
	}

	session := &Session{
		UserID:     user.ID,
		EmployeeID: user.EmployeeID,
		Login:      user.Login,
		Role:       roleName,
		IsAdmin:    roleName == config.AdminRole,
	}

	var ids []uint
	var err error
	if session.IsAdmin {
		ids, err = repositories.NewMasterRepository(tx).AllWarehouseIDs()
	} else {
		ids, err = repositories.NewEmployeeRepository(tx).WarehouseIDs(user.EmployeeID)
	}
	if err != nil {
		return nil, err
	}
	session.WarehouseIDs = utils.NormalizeIDs(ids)
	return session, nil
}
