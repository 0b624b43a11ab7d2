package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/momentumhq/momentum/internal/cli"
	"github.com/momentumhq/momentum/internal/config"
	"github.com/momentumhq/momentum/internal/db"
	"github.com/momentumhq/momentum/internal/repository"
	"github.com/momentumhq/momentum/internal/service"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("MOMENTUM_CONFIG"))
	if err != nil {
		return err
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database opened", zap.String("path", cfg.DBPath))

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	estimateRepo := repository.NewSQLiteEstimateRepo(database)
	entryRepo := repository.NewSQLiteEntryRepo(database)
	overrideRepo := repository.NewSQLiteOverrideRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewZapUseCaseObserver(logger)

	// Wire services
	projectSvc := service.NewProjectService(projectRepo, estimateRepo, entryRepo, overrideRepo, uow, observer)
	estimateSvc := service.NewEstimateService(estimateRepo, uow, observer)
	ledgerSvc := service.NewLedgerService(projectRepo, estimateRepo, entryRepo, uow, cfg.HistoryPageSize, observer)
	phaseSvc := service.NewPhaseOverrideService(uow, observer)
	progressSvc := service.NewProgressService(projectRepo, estimateRepo, entryRepo, overrideRepo)

	app := &cli.App{
		Projects:  projectSvc,
		Estimates: estimateSvc,
		Ledger:    ledgerSvc,
		Phases:    phaseSvc,
		Progress:  progressSvc,

		ListProjects:   projectSvc,
		ProgressViews:  progressSvc,
		SaveEntries:    ledgerSvc,
		PhaseReassign:  phaseSvc,
		ImportEstimate: estimateSvc,

		EnteredBy: cfg.EnteredBy,
		ExportDir: cfg.ExportDir,
	}

	// Prompts only when both ends are a terminal.
	app.IsInteractive = func() bool {
		in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return in && out
	}

	return cli.NewRootCmd(app).Execute()
}
