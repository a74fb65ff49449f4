package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/yieldvault/yieldvault/pkg/config"
	"github.com/yieldvault/yieldvault/pkg/currency"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/domain/plan"
	"github.com/yieldvault/yieldvault/pkg/middleware"
)

// CreatePlanRequest is the admin plan creation body.
type CreatePlanRequest struct {
	Name         string  `json:"name" validate:"required,oneof=basic standard premium"`
	DailyReturn  float64 `json:"daily_return_percent" validate:"required,gte=0"`
	MinDeposit   float64 `json:"min_deposit" validate:"required,gt=0"`
	DurationDays int     `json:"duration_days" validate:"required,min=1"`
	Description  string  `json:"description" validate:"omitempty,max=500"`
}

// PlanRoutes registers the plan catalog endpoints.
//
// Routes:
//   - GET    /plans              : List active plans (public).
//   - GET    /plans/select       : Pick the best plan for ?amount= (public).
//   - POST   /admin/plans        : Create a plan (admin).
//   - POST   /admin/plans/:id/deactivate : Retire a plan (admin).
//   - DELETE /admin/plans/:id    : Delete an unreferenced plan (admin).
func PlanRoutes(app *fiber.App, cfg *config.App, svcs *Services) {
	app.Get("/plans", ListPlans(svcs))
	app.Get("/plans/select", SelectPlan(svcs))

	admin := app.Group("/admin/plans", middleware.Protected(cfg.Jwt.Secret), middleware.AdminOnly())
	admin.Post("/", CreatePlan(svcs))
	admin.Post("/:id/deactivate", DeactivatePlan(svcs))
	admin.Delete("/:id", DeletePlan(svcs))
}

// ListPlans returns the active catalog ordered by minimum deposit.
func ListPlans(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		plans, err := svcs.Plans.ActivePlans(c.Context())
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Plans", Data: toPlanDTOs(plans)})
	}
}

// SelectPlan picks the plan with the highest minimum deposit the given
// amount still qualifies for.
func SelectPlan(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		amountF := c.QueryFloat("amount")
		amount, err := money.New(amountF, currency.DefaultCurrency)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		p, err := svcs.Plans.SelectForAmount(c.Context(), amount)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Selected plan", Data: toPlanDTO(p)})
	}
}

// CreatePlan adds a plan tier to the catalog.
func CreatePlan(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[CreatePlanRequest](c)
		if err != nil {
			return nil
		}
		minDeposit, err := money.New(input.MinDeposit, currency.DefaultCurrency)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		p, err := svcs.Plans.Create(c.Context(),
			plan.Name(input.Name),
			money.PercentFromFloat(input.DailyReturn),
			minDeposit,
			input.DurationDays,
			input.Description,
		)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status: fiber.StatusCreated, Message: "Plan created", Data: toPlanDTO(p),
		})
	}
}

// DeactivatePlan retires a plan from the catalog without touching the
// investments that reference it.
func DeactivatePlan(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid Request", "invalid plan id")
		}
		if err := svcs.Plans.Deactivate(c.Context(), id); err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Plan deactivated"})
	}
}

// DeletePlan removes a plan no investment references.
func DeletePlan(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid Request", "invalid plan id")
		}
		if err := svcs.Plans.Delete(c.Context(), id); err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Plan deleted"})
	}
}
