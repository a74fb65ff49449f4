package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/yieldvault/yieldvault/pkg/config"
	"github.com/yieldvault/yieldvault/pkg/middleware"
	"github.com/yieldvault/yieldvault/pkg/service/dashboard"
)

// DashboardDTO is the account overview response.
type DashboardDTO struct {
	Wallet               *WalletDTO        `json:"wallet"`
	ActiveInvestments    []*InvestmentDTO  `json:"active_investments"`
	CompletedInvestments []*InvestmentDTO  `json:"completed_investments"`
	TotalInvested        MoneyDTO          `json:"total_invested"`
	TodayEarnings        MoneyDTO          `json:"today_earnings"`
	WeeklyEarnings       MoneyDTO          `json:"weekly_earnings"`
	ReferralCount        int64             `json:"referral_count"`
	ReferralCode         string            `json:"referral_code"`
	UpcomingMaturities   []*InvestmentDTO  `json:"upcoming_maturities"`
	RecentTransactions   []*TransactionDTO `json:"recent_transactions"`
	GrowthPercent        float64           `json:"growth_percent"`
}

func toDashboardDTO(s *dashboard.Summary) *DashboardDTO {
	return &DashboardDTO{
		Wallet:               toWalletDTO(s.Wallet),
		ActiveInvestments:    toInvestmentDTOs(s.ActiveInvestments),
		CompletedInvestments: toInvestmentDTOs(s.CompletedInvestments),
		TotalInvested:        toMoneyDTO(s.TotalInvested),
		TodayEarnings:        toMoneyDTO(s.TodayEarnings),
		WeeklyEarnings:       toMoneyDTO(s.WeeklyEarnings),
		ReferralCount:        s.ReferralCount,
		ReferralCode:         s.ReferralCode,
		UpcomingMaturities:   toInvestmentDTOs(s.UpcomingMaturities),
		RecentTransactions:   toTransactionDTOs(s.RecentTransactions),
		GrowthPercent:        s.GrowthPercent,
	}
}

// DashboardRoutes registers the account overview endpoint.
func DashboardRoutes(app *fiber.App, cfg *config.App, svcs *Services) {
	app.Get("/dashboard", middleware.Protected(cfg.Jwt.Secret), GetDashboard(svcs))
}

// GetDashboard returns the caller's account overview.
func GetDashboard(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		sum, err := svcs.Dashboard.Summary(c.Context(), userID, time.Now())
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Dashboard", Data: toDashboardDTO(sum)})
	}
}
