package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/yieldvault/yieldvault/pkg/config"
	"github.com/yieldvault/yieldvault/pkg/currency"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/middleware"
)

// CreateInvestmentRequest is the investment creation body.
type CreateInvestmentRequest struct {
	PlanID string  `json:"plan_id" validate:"required,uuid4"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// InvestmentRoutes registers the investment lifecycle endpoints.
//
// Routes:
//   - POST /investments            : Fund a plan from the wallet.
//   - GET  /investments            : List the caller's investments.
//   - GET  /investments/:id        : Investment detail.
//   - POST /investments/:id/cancel : Cancel a pending or active investment.
func InvestmentRoutes(app *fiber.App, cfg *config.App, svcs *Services) {
	r := app.Group("/investments", middleware.Protected(cfg.Jwt.Secret))
	r.Post("/", CreateInvestment(svcs))
	r.Get("/", ListInvestments(svcs))
	r.Get("/:id", GetInvestment(svcs))
	r.Post("/:id/cancel", CancelInvestment(svcs))
}

// CreateInvestment debits the wallet and activates the investment.
func CreateInvestment(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		input, err := BindAndValidate[CreateInvestmentRequest](c)
		if err != nil {
			return nil
		}
		planID, err := uuid.Parse(input.PlanID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid Request", "invalid plan id")
		}
		amount, err := money.New(input.Amount, currency.DefaultCurrency)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		inv, err := svcs.Investments.Create(c.Context(), userID, planID, amount)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status: fiber.StatusCreated, Message: "Investment created", Data: toInvestmentDTO(inv),
		})
	}
}

// ListInvestments returns the caller's investments.
func ListInvestments(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		invs, err := svcs.Investments.ListByUser(c.Context(), userID)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Investments", Data: toInvestmentDTOs(invs)})
	}
}

// GetInvestment returns one investment the caller owns.
func GetInvestment(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid Request", "invalid investment id")
		}
		inv, err := svcs.Investments.Get(c.Context(), id, userID, isAdmin(c))
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Investment", Data: toInvestmentDTO(inv)})
	}
}

// CancelInvestment cancels a pending or active investment. The principal
// is not refunded.
func CancelInvestment(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid Request", "invalid investment id")
		}
		if err := svcs.Investments.Cancel(c.Context(), id, userID, isAdmin(c)); err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Investment cancelled"})
	}
}
