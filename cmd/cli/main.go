// Command cli runs one-off administrative operations against the same
// services the server uses: seeding the plan catalog, creating an admin
// user, and firing the batch jobs by hand.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/yieldvault/yieldvault/infra"
	infrarepo "github.com/yieldvault/yieldvault/infra/repository"
	"github.com/yieldvault/yieldvault/infra/initializer"
	"github.com/yieldvault/yieldvault/pkg/config"
	"github.com/yieldvault/yieldvault/pkg/domain/money"
	"github.com/yieldvault/yieldvault/pkg/domain/user"
	"github.com/yieldvault/yieldvault/pkg/repository"
	"github.com/yieldvault/yieldvault/pkg/service/accrual"
	"github.com/yieldvault/yieldvault/pkg/service/investment"
	"github.com/yieldvault/yieldvault/pkg/service/plan"
	"github.com/yieldvault/yieldvault/pkg/service/referral"
)

func usage() {
	fmt.Println("Usage: cli <command>")
	fmt.Println("Commands:")
	fmt.Println("  seed-plans                   seed the default plan catalog")
	fmt.Println("  create-admin <username> <email>  create an admin user (prompts for password)")
	fmt.Println("  run-accrual [YYYY-MM-DD]     run the daily accrual batch")
	fmt.Println("  run-referrals                process matured referrals")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fail("load config: %v", err)
	}
	logger := initializer.SetupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB.Url, cfg.Env)
	if err != nil {
		fail("connect database: %v", err)
	}
	uow := infrarepo.NewUoW(db)
	ctx := context.Background()

	switch os.Args[1] {
	case "seed-plans":
		if err := plan.New(uow, logger).SeedDefaults(ctx); err != nil {
			fail("seed plans: %v", err)
		}
		color.Green("Default plans seeded.")

	case "create-admin":
		if len(os.Args) < 4 {
			usage()
			os.Exit(2)
		}
		createAdmin(ctx, uow, os.Args[2], os.Args[3])

	case "run-accrual":
		date := time.Now().UTC()
		if len(os.Args) > 2 {
			date, err = time.Parse("2006-01-02", os.Args[2])
			if err != nil {
				fail("invalid date %q: %v", os.Args[2], err)
			}
		}
		invSvc := investment.New(uow, logger)
		report, err := accrual.New(uow, invSvc, logger).RunDailyAccrual(ctx, date)
		if err != nil {
			fail("run accrual: %v", err)
		}
		color.Green("Accrual for %s: %d completed, %d processed, %d skipped, %d failed",
			report.Date.Format("2006-01-02"), report.Completed, report.Processed, report.Skipped, report.Failed)

	case "run-referrals":
		svc := referral.New(uow, money.PercentFromFloat(cfg.Referral.BonusPercent), cfg.Referral.MaturityDays, logger)
		report, err := svc.ProcessMaturedReferrals(ctx, time.Now().UTC())
		if err != nil {
			fail("process referrals: %v", err)
		}
		color.Green("Referrals: %d paid, %d zero-bonus, %d failed", report.Paid, report.Zero, report.Failed)

	default:
		usage()
		os.Exit(2)
	}
}

func createAdmin(ctx context.Context, uow repository.UnitOfWork, username, email string) {
	fmt.Print("Password: ")
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fail("read password: %v", err)
	}
	if len(strings.TrimSpace(string(pw))) < 8 {
		fail("password must be at least 8 characters")
	}
	u, err := user.New(username, email, string(pw))
	if err != nil {
		fail("create admin: %v", err)
	}
	u.IsAdmin = true
	if err := uow.Users().Create(ctx, u); err != nil {
		fail("create admin: %v", err)
	}
	color.Green("Admin %s created (id %s).", username, u.ID)
}

func fail(format string, args ...any) {
	color.Red(format, args...)
	os.Exit(1)
}
