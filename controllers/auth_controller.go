package controllers

import (
	"warehouse-app/config"
	"warehouse-app/locales"
	"warehouse-app/middleware"
	"warehouse-app/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthController struct {
	base
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService, log *zap.Logger, i18n *locales.Localizer) *AuthController {
	return &AuthController{base: base{log: log, i18n: i18n}, auth: auth}
}

type registerRequest struct {
	services.RegisterInput
	PasswordConfirm *string `json:"password_confirm"`
}

func (c *AuthController) Register(ctx *fiber.Ctx) error {
	var req registerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return c.badRequest(ctx, "invalid request body")
	}
	if req.PasswordConfirm != nil && *req.PasswordConfirm != req.Password {
		return c.badRequest(ctx, "password_confirm: passwords do not match")
	}

	session, err := c.auth.RegisterUser(ctx.UserContext(), req.RegisterInput)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.issueToken(ctx, fiber.StatusCreated, *session)
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var input services.LoginInput
	if err := ctx.BodyParser(&input); err != nil {
		return c.badRequest(ctx, "invalid request body")
	}

	session, err := c.auth.AuthorizeUser(ctx.UserContext(), input)
	if err != nil {
		return c.fail(ctx, err)
	}
	return c.issueToken(ctx, fiber.StatusOK, *session)
}

func (c *AuthController) Me(ctx *fiber.Ctx) error {
	return c.success(ctx, fiber.StatusOK, sessionFrom(ctx))
}

func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(config.GetTokenCookie(""))
	return c.success(ctx, fiber.StatusOK, nil)
}

func (c *AuthController) issueToken(ctx *fiber.Ctx, status int, session services.Session) error {
	token, expiresAt, err := middleware.GenerateToken(session)
	if err != nil {
		c.log.Error("failed to sign token", zap.Error(err))
		return c.fail(ctx, &services.AppError{Kind: services.KindInternal, Code: services.CodeInternal, Message: "internal error", Err: err})
	}
	ctx.Cookie(config.GetTokenCookie(token))
	return c.success(ctx, status, fiber.Map{
		"access_token": token,
		"expires_at":   expiresAt,
		"session":      session,
	})
}
