package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

// RateLimit limits requests per client IP. rate uses the limiter format, e.g. "10-M".
func RateLimit(rate string, log *zap.Logger) (fiber.Handler, error) {
	parsed, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, err
	}
	instance := limiter.New(memory.NewStore(), parsed)

	return func(ctx *fiber.Ctx) error {
		result, err := instance.Get(ctx.UserContext(), ctx.IP())
		if err != nil {
			log.Warn("rate limiter unavailable", zap.Error(err))
			return ctx.Next()
		}

		ctx.Set("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		ctx.Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		ctx.Set("X-RateLimit-Reset", strconv.FormatInt(result.Reset, 10))

		if result.Reached {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"code":    "too_many_requests",
				"message": "Too many requests, try again later",
				"data":    nil,
			})
		}
		return ctx.Next()
	}, nil
}
