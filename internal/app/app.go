// Package app wires configuration, the asset catalog, the language model
// provider and the analysis services into one application instance.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"glossa/internal/config"
	"glossa/internal/models"
	"glossa/internal/provider"
	"glossa/internal/provider/local"
	"glossa/internal/services"
	"glossa/internal/store"
	"glossa/internal/store/memory"
	"glossa/internal/store/sqlite"
)

type App struct {
	Config   *config.Config
	Catalog  store.AssetCatalog
	Provider provider.Provider

	Analyzer *services.Analyzer
	Gate     *services.AssetGate

	// JobClient is lazily created; worker-less commands never touch Redis.
	jobClient *asynq.Client
}

func NewApp(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	app := &App{Config: cfg}

	ctx := context.Background()
	if err := app.initCatalog(ctx); err != nil {
		return nil, err
	}
	if err := app.initProvider(ctx); err != nil {
		app.Close()
		return nil, err
	}
	app.initServices()

	log.Debug("application initialization complete")
	return app, nil
}

func (a *App) initCatalog(ctx context.Context) error {
	var catalog store.AssetCatalog
	if path := a.Config.Assets.CatalogPath; path != "" {
		c, err := sqlite.Open(ctx, path)
		if err != nil {
			return fmt.Errorf("init asset catalog: %w", err)
		}
		catalog = c
	} else {
		catalog = memory.New()
	}

	for _, lang := range a.Config.Assets.Preinstall {
		for _, scheme := range []models.TagScheme{models.SchemeLexicalClass, models.SchemeNameType, models.SchemeSentimentScore} {
			if err := catalog.Install(ctx, models.LanguageCode(lang), scheme, scheme.DefaultGranularity()); err != nil {
				catalog.Close()
				return fmt.Errorf("preinstall %s/%s: %w", lang, scheme, err)
			}
		}
	}
	a.Catalog = catalog
	return nil
}

func (a *App) initProvider(ctx context.Context) error {
	cfg := a.Config
	switch cfg.Provider.Type {
	case "openai":
		p, err := provider.NewOpenAIProvider(cfg.Provider.OpenaiApiKey, cfg.Provider.Model)
		if err != nil {
			return fmt.Errorf("init OpenAI provider: %w", err)
		}
		a.Provider = p
	case "gemini":
		p, err := provider.NewGeminiProvider(ctx, cfg.Provider.GoogleApiKey, cfg.Provider.Model)
		if err != nil {
			return fmt.Errorf("init Gemini provider: %w", err)
		}
		a.Provider = p
	default:
		p, err := local.New(local.Config{
			Catalog:    a.Catalog,
			FetchDelay: time.Duration(cfg.Assets.FetchDelayMs) * time.Millisecond,
		})
		if err != nil {
			return fmt.Errorf("init local provider: %w", err)
		}
		a.Provider = p
	}
	log.Infof("using %s language model provider", a.Provider.Name())
	return nil
}

func (a *App) initServices() {
	hints := make(map[models.LanguageCode]float64, len(a.Config.Language.Hints))
	for lang, boost := range a.Config.Language.Hints {
		hints[models.LanguageCode(lang)] = boost
	}
	constraints := make([]models.LanguageCode, 0, len(a.Config.Language.Constraints))
	for _, lang := range a.Config.Language.Constraints {
		constraints = append(constraints, models.LanguageCode(lang))
	}
	identCfg := services.IdentifierConfig{
		Hints:         hints,
		Constraints:   constraints,
		MaxHypotheses: a.Config.Language.MaxHypotheses,
	}

	a.Analyzer = services.NewAnalyzer(a.Provider, identCfg)
	a.Gate = services.NewAssetGate(a.Provider)
}

// JobClient returns the shared Asynq client, creating it on first use.
func (a *App) JobClient() *asynq.Client {
	if a.jobClient == nil {
		a.jobClient = asynq.NewClient(a.RedisOpt())
	}
	return a.jobClient
}

func (a *App) RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     a.Config.Redis.Address,
		Password: a.Config.Redis.Password,
		DB:       a.Config.Redis.DB,
	}
}

func (a *App) Close() {
	if a.jobClient != nil {
		if err := a.jobClient.Close(); err != nil {
			log.Warnf("closing job client: %v", err)
		}
	}
	if closer, ok := a.Provider.(interface{ Close() error }); ok && closer != nil {
		if err := closer.Close(); err != nil {
			log.Warnf("closing provider: %v", err)
		}
	}
	if a.Catalog != nil {
		if err := a.Catalog.Close(); err != nil {
			log.Warnf("closing asset catalog: %v", err)
		}
	}
}
