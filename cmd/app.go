package main

import (
	"context"
	"fmt"

	"fridjy/internal/config"
	"fridjy/internal/database"
	"fridjy/internal/gateway"
	"fridjy/internal/inventory"
	"fridjy/internal/llm"
	"fridjy/internal/logger"
	"fridjy/internal/monitoring"
	"fridjy/internal/nutrition"
)

// app holds the components built once at process start.
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	monitor   *monitoring.Monitor
	store     database.Store
	inventory *inventory.Manager
	nutrition *nutrition.Tracker
	gateway   *gateway.Gateway
	closers   []func() error
}

// newApp loads configuration and wires the store, managers and, when
// withModel is set, the model gateway.
func newApp(ctx context.Context, configPath string, withModel bool) (*app, error) {
	cfg, err := config.Read(configPath)
	if err != nil {
		return nil, err
	}
	if withModel {
		err = cfg.Validate()
	} else {
		err = cfg.ValidateStorage()
	}
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, log: log, monitor: monitoring.NewMonitor()}

	if err := a.openStore(); err != nil {
		a.Close()
		return nil, err
	}

	a.inventory = inventory.NewManager(ctx, a.store, log, inventory.WithMonitor(a.monitor))
	a.nutrition = nutrition.NewTracker(ctx, a.store, log, nutrition.WithMonitor(a.monitor))

	if withModel {
		model, err := llm.New(ctx, cfg.LLM)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.gateway = gateway.New(model, log, gateway.WithMonitor(a.monitor))
		log.Info("model ready", "provider", cfg.LLM.Provider, "model", cfg.LLM.ModelName())
	}
	return a, nil
}

func (a *app) openStore() error {
	if a.cfg.Storage.Driver == config.DriverMemory {
		a.store = database.NewMemoryStore()
		return nil
	}
	db, err := database.Open(a.cfg.Storage.Driver, a.cfg.Storage.DSN)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	sqlStore := database.NewSQLStore(db)
	a.store = sqlStore
	a.closers = append(a.closers, sqlStore.Close)
	a.log.Info("storage ready", "driver", a.cfg.Storage.Driver)
	return nil
}

// Close releases the store and flushes the logger.
func (a *app) Close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			a.log.Warn("close failed", "error", err)
		}
	}
	a.log.Sync()
}
