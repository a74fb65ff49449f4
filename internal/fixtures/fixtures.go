// Package fixtures provides in-memory repository implementations for
// service tests. The fake UnitOfWork hands out repositories backed by
// shared maps; Do runs the function directly, so tests exercise service
// logic without a database. Entities are copied on the way in and out,
// so a mutation only persists through Update, matching the real store.
package fixtures

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yieldvault/yieldvault/pkg/domain"
	"github.com/yieldvault/yieldvault/pkg/domain/investment"
	"github.com/yieldvault/yieldvault/pkg/domain/ledger"
	"github.com/yieldvault/yieldvault/pkg/domain/plan"
	"github.com/yieldvault/yieldvault/pkg/domain/referral"
	"github.com/yieldvault/yieldvault/pkg/domain/user"
	"github.com/yieldvault/yieldvault/pkg/domain/wallet"
	"github.com/yieldvault/yieldvault/pkg/repository"
)

// UoW is an in-memory UnitOfWork for tests.
type UoW struct {
	mu          sync.Mutex
	plans       map[uuid.UUID]plan.Plan
	wallets     map[uuid.UUID]wallet.Wallet
	investments map[uuid.UUID]investment.Investment
	txs         map[uuid.UUID]ledger.Transaction
	deposits    map[uuid.UUID]ledger.Deposit
	earnings    map[uuid.UUID]ledger.DailyEarning
	referrals   map[uuid.UUID]referral.Referral
	addresses   map[uuid.UUID]ledger.DepositAddress
	users       map[uuid.UUID]user.User
}

// NewUoW creates an empty in-memory unit of work.
func NewUoW() *UoW {
	return &UoW{
		plans:       make(map[uuid.UUID]plan.Plan),
		wallets:     make(map[uuid.UUID]wallet.Wallet),
		investments: make(map[uuid.UUID]investment.Investment),
		txs:         make(map[uuid.UUID]ledger.Transaction),
		deposits:    make(map[uuid.UUID]ledger.Deposit),
		earnings:    make(map[uuid.UUID]ledger.DailyEarning),
		referrals:   make(map[uuid.UUID]referral.Referral),
		addresses:   make(map[uuid.UUID]ledger.DepositAddress),
		users:       make(map[uuid.UUID]user.User),
	}
}

var _ repository.UnitOfWork = (*UoW)(nil)

// Do runs fn against the same store. Tests do not get rollback.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return fn(u)
}

func (u *UoW) Plans() repository.PlanRepository             { return &planRepo{u} }
func (u *UoW) Wallets() repository.WalletRepository         { return &walletRepo{u} }
func (u *UoW) Investments() repository.InvestmentRepository { return &investmentRepo{u} }
func (u *UoW) Transactions() repository.TransactionRepository {
	return &transactionRepo{u}
}
func (u *UoW) Deposits() repository.DepositRepository   { return &depositRepo{u} }
func (u *UoW) Earnings() repository.EarningRepository   { return &earningRepo{u} }
func (u *UoW) Referrals() repository.ReferralRepository { return &referralRepo{u} }
func (u *UoW) Addresses() repository.AddressRepository  { return &addressRepo{u} }
func (u *UoW) Users() repository.UserRepository         { return &userRepo{u} }

// SeedPlan stores a plan directly.
func (u *UoW) SeedPlan(p *plan.Plan) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.plans[p.ID] = *p
}

// SeedWallet stores a wallet directly.
func (u *UoW) SeedWallet(w *wallet.Wallet) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.wallets[w.ID] = *w
}

// SeedInvestment stores an investment directly.
func (u *UoW) SeedInvestment(inv *investment.Investment) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.investments[inv.ID] = *inv
}

// SeedReferral stores a referral directly.
func (u *UoW) SeedReferral(r *referral.Referral) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.referrals[r.ID] = *r
}

// SeedDeposit stores a deposit directly.
func (u *UoW) SeedDeposit(d *ledger.Deposit) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deposits[d.ID] = *d
}

// SeedAddress stores a deposit address directly.
func (u *UoW) SeedAddress(a *ledger.DepositAddress) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.addresses[a.ID] = *a
}

// SeedEarning stores a daily earning directly.
func (u *UoW) SeedEarning(e *ledger.DailyEarning) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.earnings[e.ID] = *e
}

// SeedUser stores a user directly.
func (u *UoW) SeedUser(usr *user.User) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.users[usr.ID] = *usr
}

// Transactions helpers for assertions.

// TransactionsOf returns all stored transactions for a user, every type.
func (u *UoW) TransactionsOf(userID uuid.UUID) []*ledger.Transaction {
	u.mu.Lock()
	defer u.mu.Unlock()
	var out []*ledger.Transaction
	for _, tx := range u.txs {
		if tx.UserID == userID {
			t := tx
			out = append(out, &t)
		}
	}
	return out
}

// EarningCount returns the number of stored daily earnings.
func (u *UoW) EarningCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.earnings)
}

type planRepo struct{ u *UoW }

func (r *planRepo) Get(ctx context.Context, id uuid.UUID) (*plan.Plan, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	p, ok := r.u.plans[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *planRepo) GetByName(ctx context.Context, name plan.Name) (*plan.Plan, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	for _, p := range r.u.plans {
		if p.Name == name {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *planRepo) ListActive(ctx context.Context) ([]*plan.Plan, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	var out []*plan.Plan
	for _, p := range r.u.plans {
		if p.IsActive {
			cp := p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].MinDeposit.Amount() < out[j].MinDeposit.Amount()
	})
	return out, nil
}

func (r *planRepo) Create(ctx context.Context, p *plan.Plan) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	r.u.plans[p.ID] = *p
	return nil
}

func (r *planRepo) Update(ctx context.Context, p *plan.Plan) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if _, ok := r.u.plans[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.u.plans[p.ID] = *p
	return nil
}

func (r *planRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if _, ok := r.u.plans[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.u.plans, id)
	return nil
}

type walletRepo struct{ u *UoW }

func (r *walletRepo) GetByUser(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	for _, w := range r.u.wallets {
		if w.UserID == userID {
			cp := w
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *walletRepo) GetByUserForUpdate(ctx context.Context, userID uuid.UUID) (*wallet.Wallet, error) {
	return r.GetByUser(ctx, userID)
}

func (r *walletRepo) GetByReferralCode(ctx context.Context, code string) (*wallet.Wallet, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	for _, w := range r.u.wallets {
		if w.ReferralCode == code {
			cp := w
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *walletRepo) Create(ctx context.Context, w *wallet.Wallet) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	for _, existing := range r.u.wallets {
		if existing.UserID == w.UserID {
			return domain.ErrAlreadyExists
		}
	}
	r.u.wallets[w.ID] = *w
	return nil
}

func (r *walletRepo) Update(ctx context.Context, w *wallet.Wallet) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if _, ok := r.u.wallets[w.ID]; !ok {
		return domain.ErrNotFound
	}
	r.u.wallets[w.ID] = *w
	return nil
}

type investmentRepo struct{ u *UoW }

func (r *investmentRepo) Get(ctx context.Context, id uuid.UUID) (*investment.Investment, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	inv, ok := r.u.investments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &inv, nil
}

func (r *investmentRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*investment.Investment, error) {
	return r.Get(ctx, id)
}

func (r *investmentRepo) Create(ctx context.Context, inv *investment.Investment) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	r.u.investments[inv.ID] = *inv
	return nil
}

func (r *investmentRepo) Update(ctx context.Context, inv *investment.Investment) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if _, ok := r.u.investments[inv.ID]; !ok {
		return domain.ErrNotFound
	}
	r.u.investments[inv.ID] = *inv
	return nil
}

func (r *investmentRepo) list(filter func(investment.Investment) bool) []*investment.Investment {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	var out []*investment.Investment
	for _, inv := range r.u.investments {
		if filter(inv) {
			cp := inv
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *investmentRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*investment.Investment, error) {
	return r.list(func(inv investment.Investment) bool { return inv.UserID == userID }), nil
}

func (r *investmentRepo) ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status investment.Status) ([]*investment.Investment, error) {
	return r.list(func(inv investment.Investment) bool {
		return inv.UserID == userID && inv.Status == status
	}), nil
}

func (r *investmentRepo) ListActiveEndingAfter(ctx context.Context, t time.Time) ([]*investment.Investment, error) {
	return r.list(func(inv investment.Investment) bool {
		return inv.Status == investment.StatusActive && !inv.EndDate.Before(t)
	}), nil
}

func (r *investmentRepo) ListActiveMatured(ctx context.Context, t time.Time) ([]*investment.Investment, error) {
	return r.list(func(inv investment.Investment) bool {
		return inv.Status == investment.StatusActive && t.After(inv.EndDate)
	}), nil
}

func (r *investmentRepo) ListMaturingBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*investment.Investment, error) {
	out := r.list(func(inv investment.Investment) bool {
		return inv.UserID == userID && inv.Status == investment.StatusActive &&
			!inv.EndDate.Before(from) && !inv.EndDate.After(to)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].EndDate.Before(out[j].EndDate) })
	return out, nil
}

func (r *investmentRepo) SumPrincipalByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	var sum int64
	for _, inv := range r.u.investments {
		if inv.UserID == userID {
			sum += inv.Principal.Amount()
		}
	}
	return sum, nil
}

func (r *investmentRepo) CountByPlan(ctx context.Context, planID uuid.UUID) (int64, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	var n int64
	for _, inv := range r.u.investments {
		if inv.PlanID == planID {
			n++
		}
	}
	return n, nil
}

type transactionRepo struct{ u *UoW }

func (r *transactionRepo) Get(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	tx, ok := r.u.txs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tx, nil
}

func (r *transactionRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	return r.Get(ctx, id)
}

func (r *transactionRepo) Create(ctx context.Context, tx *ledger.Transaction) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	r.u.txs[tx.ID] = *tx
	return nil
}

func (r *transactionRepo) Update(ctx context.Context, tx *ledger.Transaction) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if _, ok := r.u.txs[tx.ID]; !ok {
		return domain.ErrNotFound
	}
	r.u.txs[tx.ID] = *tx
	return nil
}

func (r *transactionRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*ledger.Transaction, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	var out []*ledger.Transaction
	for _, tx := range r.u.txs {
		if tx.UserID == userID {
			cp := tx
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *transactionRepo) ListByUserAndStatus(ctx context.Context, userID uuid.UUID, status ledger.TxStatus) ([]*ledger.Transaction, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	var out []*ledger.Transaction
	for _, tx := range r.u.txs {
		if tx.UserID == userID && tx.Status == status {
			cp := tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *transactionRepo) SumCompletedByTypes(ctx context.Context, userID uuid.UUID, types ...ledger.TxType) (int64, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	var sum int64
	for _, tx := range r.u.txs {
		if tx.UserID != userID || tx.Status != ledger.TxCompleted {
			continue
		}
		for _, t := range types {
			if tx.Type == t {
				sum += tx.Amount.Amount()
				break
			}
		}
	}
	return sum, nil
}

type depositRepo struct{ u *UoW }

func (r *depositRepo) Get(ctx context.Context, id uuid.UUID) (*ledger.Deposit, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	d, ok := r.u.deposits[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (r *depositRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Deposit, error) {
	return r.Get(ctx, id)
}

func (r *depositRepo) Create(ctx context.Context, d *ledger.Deposit) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	r.u.deposits[d.ID] = *d
	return nil
}

func (r *depositRepo) Update(ctx context.Context, d *ledger.Deposit) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if _, ok := r.u.deposits[d.ID]; !ok {
		return domain.ErrNotFound
	}
	r.u.deposits[d.ID] = *d
	return nil
}

func (r *depositRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*ledger.Deposit, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	var out []*ledger.Deposit
	for _, d := range r.u.deposits {
		if d.UserID == userID {
			cp := d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func (r *depositRepo) ListByStatus(ctx context.Context, status ledger.DepositStatus, limit, offset int) ([]*ledger.Deposit, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	var out []*ledger.Deposit
	for _, d := range r.u.deposits {
		if d.Status == status {
			cp := d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return paginate(out, limit, offset), nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

type earningRepo struct{ u *UoW }

func (r *earningRepo) Create(ctx context.Context, e *ledger.DailyEarning) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	for _, existing := range r.u.earnings {
		if existing.InvestmentID == e.InvestmentID && existing.Date.Equal(e.Date) {
			return domain.ErrAlreadyExists
		}
	}
	r.u.earnings[e.ID] = *e
	return nil
}

func (r *earningRepo) ExistsForInvestment(ctx context.Context, investmentID uuid.UUID, date time.Time) (bool, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	date = ledger.Midnight(date)
	for _, e := range r.u.earnings {
		if e.InvestmentID == investmentID && e.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *earningRepo) SumByUserOnDate(ctx context.Context, userID uuid.UUID, date time.Time) (int64, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	date = ledger.Midnight(date)
	var sum int64
	for _, e := range r.u.earnings {
		if e.UserID == userID && e.Date.Equal(date) {
			sum += e.Amount.Amount()
		}
	}
	return sum, nil
}

func (r *earningRepo) SumByUserSince(ctx context.Context, userID uuid.UUID, from time.Time) (int64, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	from = ledger.Midnight(from)
	var sum int64
	for _, e := range r.u.earnings {
		if e.UserID == userID && !e.Date.Before(from) {
			sum += e.Amount.Amount()
		}
	}
	return sum, nil
}

type referralRepo struct{ u *UoW }

func (r *referralRepo) Create(ctx context.Context, ref *referral.Referral) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	r.u.referrals[ref.ID] = *ref
	return nil
}

func (r *referralRepo) Update(ctx context.Context, ref *referral.Referral) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if _, ok := r.u.referrals[ref.ID]; !ok {
		return domain.ErrNotFound
	}
	r.u.referrals[ref.ID] = *ref
	return nil
}

func (r *referralRepo) GetByReferredUser(ctx context.Context, referredUserID uuid.UUID) (*referral.Referral, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	for _, ref := range r.u.referrals {
		if ref.ReferredUserID == referredUserID {
			cp := ref
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *referralRepo) ListUnpaidCreatedBefore(ctx context.Context, cutoff time.Time) ([]*referral.Referral, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	var out []*referral.Referral
	for _, ref := range r.u.referrals {
		if !ref.BonusPaid && !ref.CreatedAt.After(cutoff) {
			cp := ref
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *referralRepo) CountByReferrer(ctx context.Context, referrerID uuid.UUID) (int64, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	var n int64
	for _, ref := range r.u.referrals {
		if ref.ReferrerID == referrerID {
			n++
		}
	}
	return n, nil
}

type addressRepo struct{ u *UoW }

func (r *addressRepo) Get(ctx context.Context, id uuid.UUID) (*ledger.DepositAddress, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	a, ok := r.u.addresses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *addressRepo) Create(ctx context.Context, a *ledger.DepositAddress) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	r.u.addresses[a.ID] = *a
	return nil
}

func (r *addressRepo) Update(ctx context.Context, a *ledger.DepositAddress) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if _, ok := r.u.addresses[a.ID]; !ok {
		return domain.ErrNotFound
	}
	r.u.addresses[a.ID] = *a
	return nil
}

func (r *addressRepo) ListActive(ctx context.Context) ([]*ledger.DepositAddress, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	var out []*ledger.DepositAddress
	for _, a := range r.u.addresses {
		if a.IsActive {
			cp := a
			out = append(out, &cp)
		}
	}
	return out, nil
}

type userRepo struct{ u *UoW }

func (r *userRepo) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	usr, ok := r.u.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &usr, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	for _, usr := range r.u.users {
		if usr.Username == username {
			cp := usr
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	for _, usr := range r.u.users {
		if usr.Email == email {
			cp := usr
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepo) Create(ctx context.Context, usr *user.User) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	r.u.users[usr.ID] = *usr
	return nil
}

func (r *userRepo) Update(ctx context.Context, usr *user.User) error {
	r.u.mu.Lock()
	defer r.u.mu.Unlock()
	if _, ok := r.u.users[usr.ID]; !ok {
		return domain.ErrNotFound
	}
	r.u.users[usr.ID] = *usr
	return nil
}
