package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/novatok/qrhub-contract-tests/config"
	"github.com/novatok/qrhub-contract-tests/framework"
	"github.com/novatok/qrhub-contract-tests/framework/harness"
	"github.com/novatok/qrhub-contract-tests/logging"
	"github.com/novatok/qrhub-contract-tests/qrtests"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var params commandParams
	if !params.Read(args) {
		return 2
	}
	if params.noColor {
		color.NoColor = true
	}

	cfg, err := config.Load(params.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		return 2
	}
	cfg.ApplyFlags(params.overrides)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		return 2
	}

	logger, err := logging.NewLogger(logging.WithLogLevel(cfg.LogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %s\n", err)
		return 2
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("configuration loaded",
		zap.String("url", cfg.APIBaseURL()),
		zap.Duration("request_timeout", cfg.RequestTimeout),
		zap.Int("plan_limit", cfg.PlanLimit),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Testing QR Hub API at %s\n", cfg.APIBaseURL())

	h, err := harness.NewTestHarness(ctx, harness.Options{
		BaseURL:            cfg.APIBaseURL(),
		RequestTimeout:     cfg.RequestTimeout,
		StatusQueryTimeout: cfg.StartupTimeout,
		UserAgent:          cfg.UserAgent,
		DebugLogger:        logger,
		StartupOutput:      os.Stdout,
	})
	if err != nil {
		logger.Error("cannot start test harness", zap.Error(err))
		return 2
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters, h.Capabilities(), harness.AllCapabilities)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		Out:                  os.Stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	suiteConfig := qrtests.SuiteConfig{
		LoginEmail:     cfg.LoginEmail,
		LoginPassword:  cfg.LoginPassword,
		SignupPassword: cfg.SignupPassword,
		EmailDomain:    cfg.EmailDomain,
		PlanLimit:      cfg.PlanLimit,
		FakerSeed:      cfg.FakerSeed,
		NFTID:          cfg.NFTID,
		ListingID:      cfg.ListingID,
	}

	results := qrtests.RunTestSuite(ctx, h, suiteConfig, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)

	if ctx.Err() != nil {
		logger.Warn("test run was interrupted")
	}
	if !results.OK() {
		failed := results.FailedNames()
		fmt.Println()
		fmt.Printf("Failed tests: %s\n", strings.Join(failed, ", "))
		fmt.Printf("To rerun them: %s\n", params.rerunCommand(args[0], failed))
		return 1
	}
	return 0
}
