package repository

import "context"

// UnitOfWork is the transaction boundary every compound ledger mutation
// runs inside. All repositories obtained from the UnitOfWork passed to Do
// share one database transaction, so a wallet mutation and its paired
// transaction record commit or roll back together; a balance change can
// never persist without its audit row, or the other way around.
type UnitOfWork interface {
	// Do executes fn inside a transaction. If fn returns an error the
	// transaction rolls back and the error is returned unchanged.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Plans() PlanRepository
	Wallets() WalletRepository
	Investments() InvestmentRepository
	Transactions() TransactionRepository
	Deposits() DepositRepository
	Earnings() EarningRepository
	Referrals() ReferralRepository
	Addresses() AddressRepository
	Users() UserRepository
}
