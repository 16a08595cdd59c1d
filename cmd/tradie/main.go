package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/tradieone/internal/api"
	"github.com/alexanderramin/tradieone/internal/cache"
	"github.com/alexanderramin/tradieone/internal/cli"
	"github.com/alexanderramin/tradieone/internal/config"
	"github.com/alexanderramin/tradieone/internal/db"
	"github.com/alexanderramin/tradieone/internal/repository"
	"github.com/alexanderramin/tradieone/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		cli.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs default to a file beside the DB.
	dataDir := filepath.Dir(cfg.DBPath)
	logger, err := cfg.Logger(filepath.Join(dataDir, "tradie.log"))
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	prefRepo := repository.NewSQLitePreferenceRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	apiOpts := []api.Option{api.WithTimeout(cfg.Timeout)}
	if cfg.LogCalls {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
		apiOpts = append(apiOpts, api.WithObserver(api.NewLogObserver(logger)))
	}

	// Wire services. The record client takes its bearer token from the
	// auth service, which reads the stored session.
	authSvc := service.NewAuthService(api.NewAuthClient(cfg.AuthURL, apiOpts...), sessionRepo, prefRepo, uow, observers...)
	client := api.NewClient(cfg.APIURL, authSvc, apiOpts...)
	records := service.NewRecordService(client, cache.New(), cfg.PageSize, cfg.LookupPageSize, observers...)

	app := &cli.App{
		Records: records,
		Auth:    authSvc,
		Profile: service.NewProfileService(client),
		Stats:   service.NewStatsService(records),

		PageSize:       cfg.PageSize,
		ExportPageSize: cfg.LookupPageSize,
		SearchDebounce: cfg.SearchDebounce,
		HistoryPath:    filepath.Join(dataDir, "history"),

		Logger: logger,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}
	logger.Debug("starting", zap.String("api", cfg.APIURL), zap.String("db", cfg.DBPath))

	return cli.NewRootCmd(app).Execute()
}
