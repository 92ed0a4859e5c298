package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/andrescamacho/sc-commander/internal/adapters/metrics"
	"github.com/andrescamacho/sc-commander/internal/adapters/persistence"
	"github.com/andrescamacho/sc-commander/internal/application/common"
	"github.com/andrescamacho/sc-commander/internal/application/game"
	gameCommands "github.com/andrescamacho/sc-commander/internal/application/game/commands"
	"github.com/andrescamacho/sc-commander/internal/application/setup"
	"github.com/andrescamacho/sc-commander/internal/domain/scoreboard"
	"github.com/andrescamacho/sc-commander/internal/infrastructure/config"
	"github.com/andrescamacho/sc-commander/internal/infrastructure/database"
	"github.com/andrescamacho/sc-commander/internal/infrastructure/logging"
)

// app holds everything a command needs to talk to the game through the mediator
type app struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.Config
	logger   *logging.SlogLogger
	mediator common.Mediator
	store    *game.MemorySessionStore
	db       *gorm.DB
	repo     scoreboard.Repository

	simMetrics *metrics.SimulationMetricsCollector
	server     *metrics.Server
}

// newApp loads configuration and wires logging, the scoreboard, metrics and handlers
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cmd, cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	a := &app{
		ctx:      common.WithLogger(ctx, logger),
		cancel:   cancel,
		cfg:      cfg,
		logger:   logger,
		mediator: common.NewMediator(),
		store:    game.NewMemorySessionStore(),
	}

	if err := a.openScoreboard(); err != nil {
		a.close()
		return nil, err
	}
	if err := a.startMetrics(); err != nil {
		a.close()
		return nil, err
	}

	a.mediator.Use(common.LoggingMiddleware())
	registry := setup.NewHandlerRegistry(a.store, a.repo, nil)
	if err := registry.RegisterGameHandlers(a.mediator); err != nil {
		a.close()
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	return a, nil
}

func newLogger(cmd *cobra.Command, cfg config.LoggingConfig) (*logging.SlogLogger, error) {
	level := cfg.Level
	if verbose {
		level = "debug"
	}

	var out io.Writer
	switch cfg.Output {
	case "file":
		cfg.Level = level
		return logging.New(cfg)
	case "stdout":
		out = cmd.OutOrStdout()
	default:
		out = cmd.ErrOrStderr()
	}
	return logging.NewWithWriter(out, cfg.Format, level)
}

func (a *app) openScoreboard() error {
	if a.cfg.Database.Type == "none" {
		a.logger.Log(common.LevelDebug, "scoreboard disabled", nil)
		return nil
	}

	db, err := database.NewConnection(&a.cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	a.db = db
	a.repo = persistence.NewGormScoreboardRepository(db)
	return nil
}

func (a *app) startMetrics() error {
	if !a.cfg.Metrics.Enabled {
		return nil
	}

	metrics.InitRegistry()
	if err := metrics.RegisterRuntimeCollectors(); err != nil {
		return fmt.Errorf("failed to register runtime collectors: %w", err)
	}

	requests := metrics.NewRequestMetricsCollector()
	if err := requests.Register(); err != nil {
		return fmt.Errorf("failed to register request metrics: %w", err)
	}
	a.mediator.Use(metrics.PrometheusMiddleware(requests))

	a.simMetrics = metrics.NewSimulationMetricsCollector()
	if err := a.simMetrics.Register(); err != nil {
		return fmt.Errorf("failed to register simulation metrics: %w", err)
	}
	metrics.SetGlobalSimulationCollector(a.simMetrics)
	a.simMetrics.Start(a.ctx, a.store, a.cfg.Metrics.PollInterval)

	server, err := metrics.NewServer(a.cfg.Metrics)
	if err != nil {
		return err
	}
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}
	a.server = server

	a.logger.Log(common.LevelInfo, "metrics server listening", map[string]interface{}{
		"addr": server.Addr(),
		"path": a.cfg.Metrics.Path,
	})
	return nil
}

// close releases resources in reverse order of acquisition
func (a *app) close() {
	if a.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.Log(common.LevelWarn, "metrics server shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		cancel()
	}
	if a.simMetrics != nil {
		a.simMetrics.Stop()
		metrics.SetGlobalSimulationCollector(nil)
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Log(common.LevelWarn, "failed to close database", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	a.cancel()
	a.logger.Close()
}

// startGame resolves the variant and seed from flags, preferences and config, in that order
func (a *app) startGame() (*gameCommands.StartGameResponse, error) {
	variant := variantName
	if variant == "" {
		variant = preferredVariant()
	}

	cmd := &gameCommands.StartGameCommand{
		Variant: variant,
		Seed:    seed,
	}
	if variant == "" || strings.EqualFold(variant, a.cfg.Game.Variant) {
		rules := a.cfg.Game.Rules
		cmd.Rules = &rules
		cmd.Variant = a.cfg.Game.Variant
	}
	if cmd.Seed == 0 {
		cmd.Seed = a.cfg.Game.Seed
	}

	resp, err := a.mediator.Send(a.ctx, cmd)
	if err != nil {
		return nil, err
	}
	return resp.(*gameCommands.StartGameResponse), nil
}

func (a *app) send(request common.Request) (common.Response, error) {
	return a.mediator.Send(a.ctx, request)
}

// preferredVariant returns the saved default variant, or "" when none is set
func preferredVariant() string {
	prefs := loadPreferences()
	return prefs.DefaultVariant
}

func loadPreferences() *config.UserConfig {
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return &config.UserConfig{}
	}
	prefs, err := handler.Load()
	if err != nil {
		return &config.UserConfig{}
	}
	return prefs
}
