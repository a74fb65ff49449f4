package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yieldvault/yieldvault/infra/initializer"
	infrarepo "github.com/yieldvault/yieldvault/infra/repository"
	"github.com/yieldvault/yieldvault/pkg/config"
	"github.com/yieldvault/yieldvault/pkg/scheduler"
	"github.com/yieldvault/yieldvault/pkg/service/accrual"
	"github.com/yieldvault/yieldvault/pkg/service/auth"
	"github.com/yieldvault/yieldvault/pkg/service/dashboard"
	"github.com/yieldvault/yieldvault/pkg/service/deposit"
	"github.com/yieldvault/yieldvault/pkg/service/investment"
	"github.com/yieldvault/yieldvault/pkg/service/plan"
	"github.com/yieldvault/yieldvault/pkg/service/referral"
	"github.com/yieldvault/yieldvault/pkg/service/wallet"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/webapi"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := initializer.SetupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := initializer.SetupDatabase(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("setup database: %w", err)
	}

	uow := infrarepo.NewUoW(db)
	walletSvc := wallet.New(uow, logger)
	investmentSvc := investment.New(uow, logger)
	svcs := &webapi.Services{
		Auth:        auth.New(uow, cfg.Jwt, logger),
		Plans:       plan.New(uow, logger),
		Wallets:     walletSvc,
		Investments: investmentSvc,
		Deposits:    deposit.New(uow, logger),
		Referrals:   referral.New(uow, money.PercentFromFloat(cfg.Referral.BonusPercent), cfg.Referral.MaturityDays, logger),
		Dashboard:   dashboard.New(uow, walletSvc, logger),
		Accrual:     accrual.New(uow, investmentSvc, logger),
	}

	if cfg.Scheduler.Enabled {
		sched, err := scheduler.New(svcs.Accrual, svcs.Referrals, cfg.Scheduler.AccrualAt, cfg.Scheduler.ReferralInterval, logger)
		if err != nil {
			return fmt.Errorf("build scheduler: %w", err)
		}
		sched.Start(ctx)
		defer sched.Stop()
	}

	app := webapi.NewApp(cfg, svcs)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()
	logger.Info("server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		return app.Shutdown()
	}
}
