package services

import (
	"context"
	"strings"
	"warehouse-app/cache"
	"warehouse-app/models"
	"warehouse-app/repositories"
	"warehouse-app/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	db    *gorm.DB
	log   *zap.Logger
	cache *cache.Cache
}

func NewUserService(db *gorm.DB, log *zap.Logger, c *cache.Cache) *UserService {
	return &UserService{db: db, log: log.Named("user"), cache: c}
}

type UpdateUserInput struct {
	Role     string `json:"role" validate:"required,notblank"`
	IsActive *bool  `json:"is_active" validate:"required"`
}

func (s *UserService) ListUsers(ctx context.Context) ([]repositories.UserRow, error) {
	rows, err := repositories.NewUserRepository(s.db.WithContext(ctx)).List()
	if err != nil {
		return nil, classify(s.log, "list_users", err)
	}
	return rows, nil
}

func (s *UserService) GetUserByLogin(ctx context.Context, login string) (*models.UserAccount, error) {
	user, err := repositories.NewUserRepository(s.db.WithContext(ctx)).FindByLogin(login)
	if err != nil {
		if isNotFound(err) {
			return nil, businessError(CodeUserNotFound, "user not found", nil)
		}
		return nil, classify(s.log, "get_user", err)
	}
	return user, nil
}

// UpdateUser changes role and active flag. Deactivation blocks future logins;
// reactivation restores them.
func (s *UserService) UpdateUser(ctx context.Context, login string, in UpdateUserInput) (*models.UserAccount, error) {
	in.Role = strings.TrimSpace(in.Role)
	if err := utils.ValidateStruct(in); err != nil {
		return nil, validationError(err.Error())
	}

	var user *models.UserAccount
	err := runInTx(ctx, s.db, s.log, "update_user", func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)
		found, err := users.FindByLogin(login)
		if err != nil {
			if isNotFound(err) {
				return businessError(CodeUserNotFound, "user not found", nil)
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
		if err := users.UpdateRoleAndStatus(found.ID, role.ID, *in.IsActive); err != nil {
			return err
		}
		found.RoleID = role.ID
		found.Role = role
		found.IsActive = *in.IsActive
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("user updated", zap.String("login", login), zap.String("role", in.Role), zap.Bool("is_active", user.IsActive))
	return user, nil
}

func (s *UserService) ListRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	if s.cache.GetJSON(ctx, cache.ROLES_CACHE_KEY, &roles) {
		return roles, nil
	}
	roles, err := repositories.NewUserRepository(s.db.WithContext(ctx)).ListRoles()
	if err != nil {
		return nil, classify(s.log, "list_roles", err)
	}
	s.cache.SetJSON(ctx, cache.ROLES_CACHE_KEY, roles)
	return roles, nil
}
