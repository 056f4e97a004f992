// Package app wires configuration, the recipe API client, the favorites
// backend and the session controller together.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/recipehub/config"
	"github.com/pageza/recipehub/internal/controller"
	"github.com/pageza/recipehub/internal/mealdb"
	"github.com/pageza/recipehub/internal/models"
	"github.com/pageza/recipehub/internal/service"
	"github.com/pageza/recipehub/internal/storage"
)

// App holds the long-lived components of one process.
type App struct {
	Config     *config.Config
	Logger     *zap.Logger
	Recipes    *service.RecipeService
	Favorites  *service.FavoritesService
	Controller *controller.Controller

	kv storage.KV
}

// New builds every component from cfg and loads the persisted favorites.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	policy, err := service.ParsePolicy(cfg.PartialFailurePolicy)
	if err != nil {
		return nil, err
	}

	table := models.DefaultCategoryTable()
	if cfg.CategoriesFile != "" {
		if table, err = models.LoadCategoryTable(cfg.CategoriesFile); err != nil {
			return nil, err
		}
	}

	client := mealdb.NewClient(cfg.MealDBBaseURL,
		mealdb.WithTimeout(cfg.HTTPTimeout),
		mealdb.WithRateLimit(cfg.RequestsPerSecond, cfg.MaxConcurrentRequests),
		mealdb.WithLogger(logger.Named("mealdb")),
	)

	recipes := service.NewRecipeService(client,
		service.WithCategoryTable(table),
		service.WithPolicy(policy),
		service.WithMaxConcurrency(cfg.MaxConcurrentRequests),
		service.WithRecipeLogger(logger.Named("recipes")),
	)

	kv, err := storage.Open(ctx, cfg, logger.Named("storage"))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s favorites backend: %w", cfg.FavoritesBackend, err)
	}

	favorites := service.NewFavoritesService(kv, cfg.FavoritesKey, logger.Named("favorites"))
	ctrl := controller.New(recipes, favorites, logger.Named("controller"))
	ctrl.LoadFavorites(ctx)

	logger.Debug("application initialized",
		zap.String("backend", cfg.FavoritesBackend),
		zap.String("policy", policy.String()),
		zap.Int("max_concurrent_requests", cfg.MaxConcurrentRequests),
	)

	return &App{
		Config:     cfg,
		Logger:     logger,
		Recipes:    recipes,
		Favorites:  favorites,
		Controller: ctrl,
		kv:         kv,
	}, nil
}

// Close releases the favorites backend.
func (a *App) Close() error {
	if a.kv == nil {
		return nil
	}
	return a.kv.Close()
}
