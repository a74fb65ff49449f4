package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/yieldvault/yieldvault/pkg/config"
	"github.com/yieldvault/yieldvault/pkg/currency"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/middleware"
)

// WithdrawRequest is the withdrawal request body.
type WithdrawRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// WalletRoutes registers the wallet and withdrawal endpoints.
//
// Routes:
//   - GET  /wallet                         : Wallet balance and referral code.
//   - GET  /wallet/transactions            : Transaction history, newest first.
//   - POST /wallet/withdrawals             : File a withdrawal request.
//   - POST /admin/transactions/:id/approve : Settle a pending transaction (admin).
//   - POST /admin/transactions/:id/reject  : Reject a pending transaction (admin).
func WalletRoutes(app *fiber.App, cfg *config.App, svcs *Services) {
	protected := middleware.Protected(cfg.Jwt.Secret)

	app.Get("/wallet", protected, GetWallet(svcs))
	app.Get("/wallet/transactions", protected, ListTransactions(svcs))
	app.Post("/wallet/withdrawals", protected, RequestWithdrawal(svcs))

	admin := app.Group("/admin/transactions", protected, middleware.AdminOnly())
	admin.Post("/:id/approve", ApproveTransaction(svcs))
	admin.Post("/:id/reject", RejectTransaction(svcs))
}

// GetWallet returns the caller's wallet, creating it on first access.
func GetWallet(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		w, err := svcs.Wallets.GetOrCreate(c.Context(), userID)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Wallet", Data: toWalletDTO(w)})
	}
}

// ListTransactions returns the caller's transaction history.
func ListTransactions(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		limit := c.QueryInt("limit", 20)
		offset := c.QueryInt("offset", 0)
		txs, err := svcs.Wallets.Transactions(c.Context(), userID, limit, offset)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Transactions", Data: toTransactionDTOs(txs)})
	}
}

// RequestWithdrawal files a pending withdrawal; the debit happens on
// admin approval.
func RequestWithdrawal(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUser(c)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		input, err := BindAndValidate[WithdrawRequest](c)
		if err != nil {
			return nil
		}
		amount, err := money.New(input.Amount, currency.DefaultCurrency)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		tx, err := svcs.Wallets.RequestWithdrawal(c.Context(), userID, amount)
		if err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(Response{
			Status: fiber.StatusCreated, Message: "Withdrawal requested", Data: toTransactionDTO(tx),
		})
	}
}

// ApproveTransaction settles a pending transaction; withdrawals are
// debited here.
func ApproveTransaction(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid Request", "invalid transaction id")
		}
		if err := svcs.Wallets.ApproveTransaction(c.Context(), id); err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Transaction approved"})
	}
}

// RejectTransaction settles a pending transaction as rejected.
func RejectTransaction(svcs *Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid Request", "invalid transaction id")
		}
		if err := svcs.Wallets.RejectTransaction(c.Context(), id); err != nil {
			return DomainErrorResponse(c, err)
		}
		return c.JSON(Response{Status: fiber.StatusOK, Message: "Transaction rejected"})
	}
}
