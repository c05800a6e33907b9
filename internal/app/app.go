package app

import (
	"context"
	"fmt"
	"log"

	"family-meal-planner/internal/audit"
	"family-meal-planner/internal/catalog"
	"family-meal-planner/internal/config"
	"family-meal-planner/internal/cutoff"
	"family-meal-planner/internal/database"
	"family-meal-planner/internal/llm"
	"family-meal-planner/internal/metrics"
	"family-meal-planner/internal/planner"
	"family-meal-planner/internal/schedule"
	"family-meal-planner/internal/schoolmenu"
	"family-meal-planner/internal/shopping"
	"family-meal-planner/internal/telegram"
)

// App holds the application's dependencies.
type App struct {
	Config    *config.Config
	DB        *database.DB
	Catalog   *catalog.Repository
	Templates *schedule.Store
	Plans     *planner.Service
	Shopping  *shopping.Service
	Audit     *audit.Recorder
	Metrics   *metrics.Store

	closers []llm.Closer
}

// New opens the database and wires every service. Optional integrations
// (school menu, translation, Telegram) are enabled by their configuration.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a := &App{
		Config:  cfg,
		DB:      db,
		Catalog: catalog.NewRepository(db.SQL),
		Audit:   audit.NewRecorder(db.SQL),
		Metrics: metrics.NewStore(db.SQL),
	}

	a.Templates, err = schedule.NewStore(db.SQL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load schedule templates: %w", err)
	}

	var translator shopping.Translator
	if cfg.TranslationLanguage != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, "")
		if err != nil {
			db.Close()
			return nil, err
		}
		a.closers = append(a.closers, gemini)
		translator = shopping.NewLLMTranslator(gemini, cfg.TranslationLanguage, a.Metrics)
	}

	planRepo := planner.NewPlanRepository(db.SQL)
	a.Shopping = shopping.NewService(planRepo, a.Catalog, shopping.NewRepository(db.SQL), translator)

	var notifier planner.Notifier = planner.NopNotifier{}
	if cfg.TelegramBotToken != "" {
		bot, err := telegram.NewBotAPI(cfg.TelegramBotToken)
		if err != nil {
			log.Printf("Warning: Telegram notifications disabled: %v", err)
		} else {
			notifier = telegram.NewNotifier(bot, a.Catalog, planRepo, a.Shopping)
		}
	}

	var menu schoolmenu.Source
	if cfg.SchoolMenuURL != "" {
		menu = schoolmenu.NewScraper(cfg.SchoolMenuURL)
	}

	a.Plans = planner.NewService(planRepo, planner.Dependencies{
		Catalog:              a.Catalog,
		Templates:            a.Templates,
		SchoolMenu:           menu,
		Shopping:             a.Shopping,
		Recorder:             a.Audit,
		Notifier:             notifier,
		Metrics:              a.Metrics,
		Guard:                cutoff.NewGuard(cfg.Location),
		ComponentProbability: cfg.ComponentMealProbability,
	})
	return a, nil
}

// Close releases the LLM clients and the database.
func (a *App) Close() error {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			log.Printf("Warning: failed to close client: %v", err)
		}
	}
	return a.DB.Close()
}
