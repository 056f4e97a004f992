package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/recipehub/internal/classifier"
	"github.com/pageza/recipehub/internal/mealdb"
	"github.com/pageza/recipehub/internal/models"
)

// PartialFailurePolicy decides what a category search does when some of its
// ingredient lookups fail.
type PartialFailurePolicy int

const (
	// FailFast fails the whole search on the first failed lookup and cancels
	// the rest.
	FailFast PartialFailurePolicy = iota
	// BestEffort treats a failed lookup as contributing no recipes. The search
	// fails only when every lookup failed.
	BestEffort
)

// ParsePolicy maps the configuration value onto a policy.
func ParsePolicy(s string) (PartialFailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail-fast":
		return FailFast, nil
	case "best-effort":
		return BestEffort, nil
	}
	return FailFast, fmt.Errorf("unknown partial failure policy %q", s)
}

func (p PartialFailurePolicy) String() string {
	if p == BestEffort {
		return "best-effort"
	}
	return "fail-fast"
}

// RecipeService handles recipe search operations
type RecipeService struct {
	source        RecipeSource
	table         models.CategoryTable
	policy        PartialFailurePolicy
	maxConcurrent int
	logger        *zap.Logger
}

// RecipeServiceOption configures a RecipeService.
type RecipeServiceOption func(*RecipeService)

// WithCategoryTable replaces the built-in category ingredient lists.
func WithCategoryTable(t models.CategoryTable) RecipeServiceOption {
	return func(s *RecipeService) {
		if t != nil {
			s.table = t
		}
	}
}

// WithPolicy sets the partial-failure policy for category searches.
func WithPolicy(p PartialFailurePolicy) RecipeServiceOption {
	return func(s *RecipeService) {
		s.policy = p
	}
}

// WithMaxConcurrency bounds the number of ingredient lookups in flight.
func WithMaxConcurrency(n int) RecipeServiceOption {
	return func(s *RecipeService) {
		if n > 0 {
			s.maxConcurrent = n
		}
	}
}

// WithRecipeLogger sets the service logger.
func WithRecipeLogger(l *zap.Logger) RecipeServiceOption {
	return func(s *RecipeService) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(source RecipeSource, opts ...RecipeServiceOption) *RecipeService {
	s := &RecipeService{
		source:        source,
		table:         models.DefaultCategoryTable(),
		policy:        FailFast,
		maxConcurrent: 8,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Categories returns the selectable categories in display order.
func (s *RecipeService) Categories() []models.Category {
	return append([]models.Category(nil), models.Categories...)
}

// Ingredients returns the representative ingredients for a category.
func (s *RecipeService) Ingredients(category models.Category) []string {
	return s.table.Ingredients(category)
}

// SearchByCategory looks up every ingredient of the category concurrently,
// merges the results in ingredient-list order, drops repeated ids (first
// occurrence wins) and keeps the recipes whose names match the category.
func (s *RecipeService) SearchByCategory(ctx context.Context, category models.Category) ([]models.RecipeSummary, error) {
	ingredients := s.table.Ingredients(category)
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("no ingredients configured for category %q", category)
	}

	start := time.Now()

	// Each lookup writes only its own slot; merging waits for all of them.
	results := make([][]models.RecipeSummary, len(ingredients))
	failures := make([]error, len(ingredients))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for i, ing := range ingredients {
		i, ing := i, ing
		g.Go(func() error {
			recipes, err := s.source.FilterByIngredient(gctx, ing)
			if err != nil {
				err = fmt.Errorf("ingredient %s: %w", ing, err)
				if s.policy == FailFast {
					return err
				}
				failures[i] = err
				return nil
			}
			results[i] = recipes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("category search failed",
			zap.String("category", category.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if failed := countErrors(failures); failed > 0 {
		if failed == len(ingredients) {
			return nil, fmt.Errorf("all %d ingredient lookups failed: %w", failed, errors.Join(failures...))
		}
		s.logger.Warn("category search partially failed",
			zap.String("category", category.String()),
			zap.Int("failed", failed),
			zap.Int("total", len(ingredients)),
			zap.Error(errors.Join(failures...)),
		)
	}

	merged := mergeUnique(results)
	filtered := classifier.Filter(category, merged)

	s.logger.Debug("category search",
		zap.String("category", category.String()),
		zap.Strings("ingredients", ingredients),
		zap.Int("merged", len(merged)),
		zap.Int("results", len(filtered)),
		zap.Duration("duration", time.Since(start)),
	)
	return filtered, nil
}

// SearchByIngredient runs a single ingredient lookup with no dietary filter.
func (s *RecipeService) SearchByIngredient(ctx context.Context, query string) ([]models.RecipeSummary, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}

	recipes, err := s.source.FilterByIngredient(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", q, err)
	}
	if recipes == nil {
		recipes = []models.RecipeSummary{}
	}
	return recipes, nil
}

// GetRecipeDetails fetches the full record for one recipe.
func (s *RecipeService) GetRecipeDetails(ctx context.Context, id string) (*models.RecipeDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingID
	}

	detail, err := s.source.LookupByID(ctx, id)
	if errors.Is(err, mealdb.ErrNotFound) || (err == nil && detail == nil) {
		return nil, fmt.Errorf("%w: %s", ErrRecipeNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", id, err)
	}
	return detail, nil
}

func mergeUnique(lists [][]models.RecipeSummary) []models.RecipeSummary {
	seen := make(map[string]struct{})
	merged := make([]models.RecipeSummary, 0)
	for _, list := range lists {
		for _, r := range list {
			if _, dup := seen[r.ID]; dup {
				continue
			}
			seen[r.ID] = struct{}{}
			merged = append(merged, r)
		}
	}
	return merged
}

func countErrors(errs []error) int {
	n := 0
	for _, err := range errs {
		if err != nil {
			n++
		}
	}
	return n
}
