package services

import (
	"context"
	"testing"
	"warehouse-app/config"
	"warehouse-app/database"
	"warehouse-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func issueInvite(t *testing.T, f *fixture, code, role string) models.InviteCode {
	t.Helper()
	var r models.Role
	require.NoError(t, f.db.Where("name = ?", role).First(&r).Error)
	invite := models.InviteCode{Code: code, EmployeeID: f.keeper.ID, RoleID: r.ID, IsActive: true}
	require.NoError(t, f.db.Create(&invite).Error)
	return invite
}

func TestRegisterUserRedeemsInviteOnce(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.db, zap.NewNop())
	ctx := context.Background()
	invite := issueInvite(t, f, "CODE123", database.EmployeeRole)

	session, err := svc.RegisterUser(ctx, RegisterInput{InviteCode: " CODE123 ", Login: "ivan_p", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ivan_p", session.Login)
	assert.Equal(t, f.keeper.ID, session.EmployeeID)
	assert.Equal(t, database.EmployeeRole, session.Role)
	assert.False(t, session.IsAdmin)
	assert.Equal(t, []uint{f.central.ID}, session.WarehouseIDs)

	var stored models.InviteCode
	require.NoError(t, f.db.First(&stored, invite.ID).Error)
	assert.False(t, stored.IsActive)
	assert.NotNil(t, stored.UsedAt)

	var account models.UserAccount
	require.NoError(t, f.db.Where("login = ?", "ivan_p").First(&account).Error)
	assert.NotEqual(t, "secret1", account.PasswordHash)
	assert.True(t, account.IsActive)

	_, err = svc.RegisterUser(ctx, RegisterInput{InviteCode: "CODE123", Login: "other", Password: "secret1"})
	requireCode(t, err, CodeInvalidInvite)
	assert.Equal(t, int64(1), f.count(t, &models.UserAccount{}))
}

func TestRegisterUserRejections(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.db, zap.NewNop())
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, RegisterInput{InviteCode: "NOPE1", Login: "ivan_p", Password: "secret1"})
	requireCode(t, err, CodeInvalidInvite)

	for _, in := range []RegisterInput{
		{InviteCode: "", Login: "ivan_p", Password: "secret1"},
		{InviteCode: "CODE123", Login: "iv", Password: "secret1"},
		{InviteCode: "CODE123", Login: "ivan p", Password: "secret1"},
		{InviteCode: "CODE123", Login: "ivan_p", Password: "abc"},
		{InviteCode: "CODE123", Login: "ivan_p", Password: "pa$$word"},
	} {
		_, err := svc.RegisterUser(ctx, in)
		requireCode(t, err, CodeValidation)
	}

	issueInvite(t, f, "CODE123", database.EmployeeRole)
	_, err = svc.RegisterUser(ctx, RegisterInput{InviteCode: "CODE123", Login: "ivan_p", Password: "secret1"})
	require.NoError(t, err)

	var other models.Employee
	require.NoError(t, f.db.First(&other, f.keeper.ID).Error)
	other.ID = 0
	other.PassportNumber = "111111"
	other.Warehouses = nil
	require.NoError(t, f.db.Create(&other).Error)
	var role models.Role
	require.NoError(t, f.db.Where("name = ?", database.EmployeeRole).First(&role).Error)
	require.NoError(t, f.db.Create(&models.InviteCode{Code: "CODE456", EmployeeID: other.ID, RoleID: role.ID, IsActive: true}).Error)

	_, err = svc.RegisterUser(ctx, RegisterInput{InviteCode: "CODE456", Login: "ivan_p", Password: "secret1"})
	requireCode(t, err, CodeLoginExists)

	var invite models.InviteCode
	require.NoError(t, f.db.Where("code = ?", "CODE456").First(&invite).Error)
	assert.True(t, invite.IsActive)
}

func TestAuthorizeUser(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.db, zap.NewNop())
	users := NewUserService(f.db, zap.NewNop(), nil)
	ctx := context.Background()
	issueInvite(t, f, "ADMIN1", config.AdminRole)

	_, err := svc.RegisterUser(ctx, RegisterInput{InviteCode: "ADMIN1", Login: "boss", Password: "secret1"})
	require.NoError(t, err)

	session, err := svc.AuthorizeUser(ctx, LoginInput{Login: "boss", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, session.IsAdmin)
	assert.ElementsMatch(t, []uint{f.central.ID, f.north.ID}, session.WarehouseIDs)
	require.NoError(t, svc.CheckAccount(ctx, session.UserID))

	_, err = svc.AuthorizeUser(ctx, LoginInput{Login: "boss", Password: "wrong"})
	wrongPassword := requireCode(t, err, CodeInvalidCredentials)
	_, err = svc.AuthorizeUser(ctx, LoginInput{Login: "ghost", Password: "secret1"})
	unknownLogin := requireCode(t, err, CodeInvalidCredentials)
	assert.Equal(t, wrongPassword.Message, unknownLogin.Message)

	inactive := false
	_, err = users.UpdateUser(ctx, "boss", UpdateUserInput{Role: config.AdminRole, IsActive: &inactive})
	require.NoError(t, err)
	_, err = svc.AuthorizeUser(ctx, LoginInput{Login: "boss", Password: "secret1"})
	requireCode(t, err, CodeAccountDeactivated)
	requireCode(t, svc.CheckAccount(ctx, session.UserID), CodeAccountDeactivated)
	requireCode(t, svc.CheckAccount(ctx, 9999), CodeAccountDeactivated)

	active := true
	_, err = users.UpdateUser(ctx, "boss", UpdateUserInput{Role: database.EmployeeRole, IsActive: &active})
	require.NoError(t, err)
	session, err = svc.AuthorizeUser(ctx, LoginInput{Login: "boss", Password: "secret1"})
	require.NoError(t, err)
	assert.False(t, session.IsAdmin)
	assert.Equal(t, []uint{f.central.ID}, session.WarehouseIDs)
}
