// Package webapi provides HTTP handlers and API endpoints for the campus
// payment service. It is organized into sub-packages for different domains:
// - student: Student profile, QR and history endpoints
// - vendor: Vendor profile, QR and history endpoints
// - payments: In-person purchase endpoint
// - recharge: Wallet top-up order and completion endpoints
package webapi

import (
	"errors"
	"strings"

	"github.com/campuspay/backend/pkg/app"
	"github.com/campuspay/backend/webapi/common"
	paymentsweb "github.com/campuspay/backend/webapi/payments"
	rechargeweb "github.com/campuspay/backend/webapi/recharge"
	studentweb "github.com/campuspay/backend/webapi/student"
	vendorweb "github.com/campuspay/backend/webapi/vendor"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	fiberApp.Use(cors.New(cors.Config{
		AllowOrigins: a.Config.Cors.Origins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Configure rate limiting middleware
	// Uses X-Forwarded-For header when behind a proxy
	// Falls back to X-Real-IP or direct IP if needed
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				// Take the first IP in the chain
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(
				c,
				"Too Many Requests",
				errors.New("rate limit exceeded"),
				fiber.StatusTooManyRequests,
			)
		},
	}))
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())
	fiberApp.Use(common.MetricsMiddleware())

	// Health check endpoint
	fiberApp.Get(
		"/",
		func(c *fiber.Ctx) error {
			return c.SendString("CampusPay API is running! 🚀")
		},
	)

	fiberApp.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	studentweb.Routes(fiberApp, a.ReportingService)
	vendorweb.Routes(fiberApp, a.ReportingService)
	paymentsweb.Routes(fiberApp, a.TransferService)
	rechargeweb.Routes(fiberApp, a.RechargeService, a.Config.Razorpay)
	return fiberApp
}
