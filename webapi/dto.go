package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/investment"
	"github.com/yieldvault/yieldvault/pkg/domain/ledger"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/domain/plan"
	"github.com/yieldvault/yieldvault/pkg/domain/wallet"
	"github.com/yieldvault/yieldvault/pkg/service/auth"
)

// MoneyDTO is the API representation of a monetary amount.
type MoneyDTO struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

func toMoneyDTO(m money.Money) MoneyDTO {
	return MoneyDTO{Amount: m.Float(), Currency: m.Currency().String()}
}

// PlanDTO is the API representation of a plan.
type PlanDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	DisplayName  string    `json:"display_name"`
	DailyReturn  float64   `json:"daily_return_percent"`
	MinDeposit   MoneyDTO  `json:"min_deposit"`
	DurationDays int       `json:"duration_days"`
	IsActive     bool      `json:"is_active"`
	Description  string    `json:"description,omitempty"`
}

func toPlanDTO(p *plan.Plan) *PlanDTO {
	return &PlanDTO{
		ID:           p.ID,
		Name:         string(p.Name),
		DisplayName:  p.Name.Display(),
		DailyReturn:  p.DailyReturn.Float(),
		MinDeposit:   toMoneyDTO(p.MinDeposit),
		DurationDays: p.DurationDays,
		IsActive:     p.IsActive,
		Description:  p.Description,
	}
}

func toPlanDTOs(plans []*plan.Plan) []*PlanDTO {
	out := make([]*PlanDTO, len(plans))
	for i, p := range plans {
		out[i] = toPlanDTO(p)
	}
	return out
}

// WalletDTO is the API representation of a wallet.
type WalletDTO struct {
	Balance            MoneyDTO `json:"balance"`
	TotalEarnings      MoneyDTO `json:"total_earnings"`
	TotalReferralBonus MoneyDTO `json:"total_referral_bonus"`
	ReferralCode       string   `json:"referral_code"`
}

func toWalletDTO(w *wallet.Wallet) *WalletDTO {
	return &WalletDTO{
		Balance:            toMoneyDTO(w.Balance),
		TotalEarnings:      toMoneyDTO(w.TotalEarnings),
		TotalReferralBonus: toMoneyDTO(w.TotalReferralBonus),
		ReferralCode:       w.ReferralCode,
	}
}

// InvestmentDTO is the API representation of an investment.
type InvestmentDTO struct {
	ID          uuid.UUID  `json:"id"`
	PlanID      uuid.UUID  `json:"plan_id"`
	Principal   MoneyDTO   `json:"principal"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	Status      string     `json:"status"`
	TotalReturn *MoneyDTO  `json:"total_return,omitempty"`
}

func toInvestmentDTO(inv *investment.Investment) *InvestmentDTO {
	dto := &InvestmentDTO{
		ID:        inv.ID,
		PlanID:    inv.PlanID,
		Principal: toMoneyDTO(inv.Principal),
		StartDate: inv.StartDate,
		EndDate:   inv.EndDate,
		Status:    string(inv.Status),
	}
	if !inv.TotalReturn.IsZero() {
		tr := toMoneyDTO(inv.TotalReturn)
		dto.TotalReturn = &tr
	}
	return dto
}

func toInvestmentDTOs(invs []*investment.Investment) []*InvestmentDTO {
	out := make([]*InvestmentDTO, len(invs))
	for i, inv := range invs {
		out[i] = toInvestmentDTO(inv)
	}
	return out
}

// TransactionDTO is the API representation of a ledger transaction.
type TransactionDTO struct {
	ID           uuid.UUID  `json:"id"`
	Type         string     `json:"type"`
	Amount       MoneyDTO   `json:"amount"`
	Status       string     `json:"status"`
	InvestmentID *uuid.UUID `json:"investment_id,omitempty"`
	ReferenceID  uuid.UUID  `json:"reference_id"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toTransactionDTO(tx *ledger.Transaction) *TransactionDTO {
	return &TransactionDTO{
		ID:           tx.ID,
		Type:         string(tx.Type),
		Amount:       toMoneyDTO(tx.Amount),
		Status:       string(tx.Status),
		InvestmentID: tx.InvestmentID,
		ReferenceID:  tx.ReferenceID,
		CreatedAt:    tx.CreatedAt,
	}
}

func toTransactionDTOs(txs []*ledger.Transaction) []*TransactionDTO {
	out := make([]*TransactionDTO, len(txs))
	for i, tx := range txs {
		out[i] = toTransactionDTO(tx)
	}
	return out
}

// DepositDTO is the API representation of a deposit claim.
type DepositDTO struct {
	ID           uuid.UUID  `json:"id"`
	AddressID    uuid.UUID  `json:"address_id"`
	Amount       MoneyDTO   `json:"amount"`
	AmountCrypto MoneyDTO   `json:"amount_crypto"`
	TxHash       string     `json:"tx_hash"`
	Status       string     `json:"status"`
	ReferenceID  uuid.UUID  `json:"reference_id"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func toDepositDTO(d *ledger.Deposit) *DepositDTO {
	return &DepositDTO{
		ID:           d.ID,
		AddressID:    d.AddressID,
		Amount:       toMoneyDTO(d.Amount),
		AmountCrypto: toMoneyDTO(d.AmountCrypto),
		TxHash:       d.TxHash,
		Status:       string(d.Status),
		ReferenceID:  d.ReferenceID,
		ConfirmedAt:  d.ConfirmedAt,
		CreatedAt:    d.CreatedAt,
	}
}

func toDepositDTOs(deps []*ledger.Deposit) []*DepositDTO {
	out := make([]*DepositDTO, len(deps))
	for i, d := range deps {
		out[i] = toDepositDTO(d)
	}
	return out
}

// AddressDTO is the API representation of a platform receiving address.
type AddressDTO struct {
	ID      uuid.UUID `json:"id"`
	Network string    `json:"network"`
	Address string    `json:"address"`
}

func toAddressDTO(a *ledger.DepositAddress) *AddressDTO {
	return &AddressDTO{ID: a.ID, Network: a.Network.String(), Address: a.Address}
}

func toAddressDTOs(addrs []*ledger.DepositAddress) []*AddressDTO {
	out := make([]*AddressDTO, len(addrs))
	for i, a := range addrs {
		out[i] = toAddressDTO(a)
	}
	return out
}

// currentUser extracts the authenticated user id from the request token.
func currentUser(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return auth.CurrentUserID(token)
}

// isAdmin reports whether the request token carries the admin claim.
func isAdmin(c *fiber.Ctx) bool {
	token, ok := c.Locals("user").(*jwt.Token)
	return ok && auth.IsAdmin(token)
}
