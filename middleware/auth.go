package middleware

import (
	"context"
	"strings"
	"time"
	"warehouse-app/config"
	"warehouse-app/services"
	"warehouse-app/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccountChecker confirms that the account behind a token may still act.
type AccountChecker interface {
	CheckAccount(ctx context.Context, userID uint) error
}

var accounts AccountChecker

// UseAccountChecker makes AuthMiddleware consult the account on every request.
// A nil checker trusts the token alone.
func UseAccountChecker(checker AccountChecker) {
	accounts = checker
}

type SessionClaims struct {
	services.Session
	jwt.RegisteredClaims
}

func tokenTTL() time.Duration {
	if config.JWTExpiration <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(config.JWTExpiration) * time.Second
}

// GenerateToken signs the session into an HS256 access token.
func GenerateToken(session services.Session) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tokenTTL())
	claims := SessionClaims{
		Session: session,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   session.Login,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func unauthorized(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"code":    "unauthorized",
		"message": message,
		"data":    nil,
	})
}

// AuthMiddleware accepts "Authorization: Bearer <token>" or the access_token
// cookie and stores the session in ctx.Locals("session").
func AuthMiddleware(ctx *fiber.Ctx) error {
	tokenString := ""
	if authHeader := ctx.Get("Authorization"); authHeader != "" {
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			return unauthorized(ctx, "Invalid Authorization header format")
		}
		tokenString = tokenParts[1]
	} else {
		tokenString = ctx.Cookies("access_token")
	}
	if tokenString == "" {
		return unauthorized(ctx, "Missing Authorization header")
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: Invalid signing method")
		}
		return []byte(config.JWTSecret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return unauthorized(ctx, "Unauthorized: Invalid token")
	}
	if claims.UserID == 0 || claims.Login == "" {
		return unauthorized(ctx, "Unauthorized: Invalid session")
	}
	if accounts != nil {
		if err := accounts.CheckAccount(ctx.UserContext(), claims.UserID); err != nil {
			appErr := services.AsAppError(err)
			if appErr == nil || appErr.Kind != services.KindBusiness {
				return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"success": false,
					"code":    services.CodeInternal,
					"message": "internal error",
					"data":    nil,
				})
			}
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"code":    appErr.Code,
				"message": "Unauthorized: " + appErr.Message,
				"data":    nil,
			})
		}
	}

	session := claims.Session
	session.WarehouseIDs = utils.NormalizeIDs(session.WarehouseIDs)
	ctx.Locals("session", session)
	ctx.Locals("sessionID", claims.ID)
	return ctx.Next()
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin(ctx *fiber.Ctx) error {
	session, ok := ctx.Locals("session").(services.Session)
	if !ok || !session.IsAdmin {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"code":    "forbidden",
			"message": "Forbidden: You do not have permission",
			"data":    nil,
		})
	}
	return ctx.Next()
}
