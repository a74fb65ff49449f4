package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/yieldvault/yieldvault/pkg/config"
	"github.com/yieldvault/yieldvault/pkg/currency"
	"github.com/yieldvault/yieldvault/pkg/domain/ledger"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/middleware"
)

// CreateDepositRequest is the deposit claim body. Amount is the fiat
// value to credit on confirmation; amount_crypto is what was sent on the
// network.
type CreateDepositRequest struct {
	AddressID    string  `json:"address_id" validate:"required,uuid4"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	AmountCrypto float64 `json:"amount_crypto" validate:"required,gt=0"`
	TxHash       string  `json:"tx_hash" validate:"required,min=8,max=128"`
}

// AddAddressRequest registers a platform receiving address.
type AddAddressRequest struct {
	Network string `json:"network" validate:"required,uppercase,min=3,max=5"`
	Address string `json:"address" validate:"required,min=16,max=128"`
}

// DepositRoutes registers the deposit flow endpoints.
//
// Routes:
//   - GET  /deposits/addresses          : Active receiving addresses.
//   - POST /deposits                    : File a deposit claim.
//   - GET  /deposits                    : The caller's deposit history.
//   - GET  /admin/deposits              : Review queue by ?status= (admin).
//   - POST /admin/deposits/:id/confirm  : Confirm and credit (admin).
//   - POST /admin/deposits/:id/reject   : Reject (admin).
//   - POST /admin/addresses             : Add a receiving address (admin).
func DepositRoutes(app *fiber.App, cfg *config.App, svcs *Services) {
	protected := middleware.Protected(cfg.Jwt.Secret)

	r := app.Group("/deposits", protected)
	r.Get("/addresses", ListDepositAddresses(svcs))
	r.Post("/", CreateDeposit(svcs))
	r.Get("/", ListDeposits(svcs))

	admin := app.Group("/admin", protected, middleware.AdminOnly())
	admin.Get("/deposits", DepositQueue(svcs))
	admin.Post("/deposits/:id/confirm", ConfirmDeposit(svcs))
	admin.Post("/deposits/:id/reject", RejectDeposit(svcs))
	admin.Post("/addresses", AddDepositAddress(svcs))
}

// ListDepositAddresses returns the addresses open for deposits.
func ListDepositAddresses(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		addrs, err := svcs.Deposits.ActiveAddresses(c.Context())
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Deposit addresses", Data: toAddressDTOs(addrs)})
	}
}

// CreateDeposit files a pending claim against a receiving address.
func CreateDeposit(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		input, err := BindAndValidate[CreateDepositRequest](c)
		if err != nil {
			return nil
		}
		addressID, err := uuid.Parse(input.AddressID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid Request", "invalid address id")
		}
		addr, err := svcs.Deposits.ActiveAddresses(c.Context())
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		var network currency.Code
		for _, a := range addr {
			if a.ID == addressID {
				network = a.Network
			}
		}
		amount, err := money.New(input.Amount, currency.DefaultCurrency)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		amountCrypto, err := money.New(input.AmountCrypto, network)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		d, err := svcs.Deposits.Create(c.Context(), userID, addressID, amount, amountCrypto, input.TxHash)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status: fiber.StatusCreated, Message: "Deposit filed", Data: toDepositDTO(d),
		})
	}
}

// ListDeposits returns the caller's deposit history.
func ListDeposits(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		limit := c.QueryInt("limit", 20)
		offset := c.QueryInt("offset", 0)
		deps, err := svcs.Deposits.ListByUser(c.Context(), userID, limit, offset)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Deposits", Data: toDepositDTOs(deps)})
	}
}

// DepositQueue returns the admin review queue, pending by default.
func DepositQueue(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := ledger.DepositStatus(c.Query("status", string(ledger.DepositPending)))
		limit := c.QueryInt("limit", 50)
		offset := c.QueryInt("offset", 0)
		deps, err := svcs.Deposits.ListByStatus(c.Context(), status, limit, offset)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Deposit queue", Data: toDepositDTOs(deps)})
	}
}

// ConfirmDeposit credits the depositor's wallet exactly once.
func ConfirmDeposit(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminID, err := currentUser(c)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid Request", "invalid deposit id")
		}
		if err := svcs.Deposits.Confirm(c.Context(), id, adminID); err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Deposit confirmed"})
	}
}

// RejectDeposit settles a claim as rejected, no credit.
func RejectDeposit(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid Request", "invalid deposit id")
		}
		if err := svcs.Deposits.Reject(c.Context(), id); err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Deposit rejected"})
	}
}

// AddDepositAddress registers a receiving address on a supported network.
func AddDepositAddress(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[AddAddressRequest](c)
		if err != nil {
			return nil
		}
		a, err := svcs.Deposits.AddAddress(c.Context(), currency.Code(input.Network), input.Address)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status: fiber.StatusCreated, Message: "Address added", Data: toAddressDTO(a),
		})
	}
}
