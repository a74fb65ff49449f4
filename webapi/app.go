// Package webapi exposes the ledger operations over HTTP with Fiber.
// Handlers parse and validate input, call one application service, and
// map domain errors to RFC 9457 problem responses.
package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/yieldvault/yieldvault/pkg/config"
	"github.com/yieldvault/yieldvault/pkg/service/accrual"
	"github.com/yieldvault/yieldvault/pkg/service/auth"
	"github.com/yieldvault/yieldvault/pkg/service/dashboard"
	"github.com/yieldvault/yieldvault/pkg/service/deposit"
	"github.com/yieldvault/yieldvault/pkg/service/investment"
	"github.com/yieldvault/yieldvault/pkg/service/plan"
	"github.com/yieldvault/yieldvault/pkg/service/referral"
	"github.com/yieldvault/yieldvault/pkg/service/wallet"
)

// Services bundles the application services the routes dispatch to.
type Services struct {
	Auth        *auth.Service
	Plans       *plan.Service
	Wallets     *wallet.Service
	Investments *investment.Service
	Deposits    *deposit.Service
	Referrals   *referral.Service
	Dashboard   *dashboard.Service
	Accrual     *accrual.Service
}

// NewApp builds the Fiber application with all routes registered.
func NewApp(cfg *config.App, svcs *Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "yieldvault",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Request Failed", err.Error())
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	AuthRoutes(app, svcs)
	PlanRoutes(app, cfg, svcs)
	WalletRoutes(app, cfg, svcs)
	InvestmentRoutes(app, cfg, svcs)
	DepositRoutes(app, cfg, svcs)
	DashboardRoutes(app, cfg, svcs)

	return app
}
