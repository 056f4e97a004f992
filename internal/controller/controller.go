// Package controller owns the user-facing state of a browsing session and the
// named transitions that change it.
//
// Search actions (category selection and ingredient queries) share one
// in-flight slot and detail lookups another. Starting an action in a slot
// cancels whatever the slot was running; a late result from a superseded
// action is dropped without touching state.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipehub/internal/models"
	"github.com/pageza/recipehub/internal/service"
)

// User-facing messages.
const (
	MsgEmptyQuery        = "Please choose or type an ingredient."
	MsgSearchFailed      = "Failed to fetch recipes."
	MsgCategoryFailed    = "Failed to fetch category recipes."
	MsgDetailsFailed     = "Failed to fetch recipe details."
	MsgRecipeNotFound    = "Recipe not found."
	MsgSaveFailed        = "Failed to save favorites."
	MsgNothingSelected   = "No recipe selected."
	msgIngredientMissing = "We're cooking up recipes for \"%s\" soon! Try another ingredient meanwhile"
	msgCategoryEmpty     = "No %s recipes found."
)

// State is a snapshot of the session.
type State struct {
	Category         models.Category
	Query            string
	Results          []models.RecipeSummary
	Loading          bool
	Error            string
	ErrKind          service.ErrorKind
	Selected         *models.RecipeDetail
	Favorites        []models.Favorite
	ShowingFavorites bool
}

// IsFavorite reports whether id is in the snapshot's favorites.
func (s State) IsFavorite(id string) bool {
	for _, f := range s.Favorites {
		if f.ID == id {
			return true
		}
	}
	return false
}

func (s State) clone() State {
	out := s
	out.Results = append([]models.RecipeSummary{}, s.Results...)
	out.Favorites = append([]models.Favorite{}, s.Favorites...)
	out.Selected = s.Selected.Clone()
	return out
}

type slot struct {
	gen    uint64
	cancel context.CancelFunc
}

func (sl *slot) begin(parent context.Context) (context.Context, uint64) {
	if sl.cancel != nil {
		sl.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	sl.gen++
	sl.cancel = cancel
	return ctx, sl.gen
}

// finish releases the slot if gen is still the current action. It reports
// whether the caller's result should be applied.
func (sl *slot) finish(gen uint64) bool {
	if gen != sl.gen {
		return false
	}
	if sl.cancel != nil {
		sl.cancel()
		sl.cancel = nil
	}
	return true
}

func (sl *slot) stop() {
	if sl.cancel != nil {
		sl.cancel()
		sl.cancel = nil
	}
	sl.gen++
}

func (sl *slot) busy() bool {
	return sl.cancel != nil
}

// Controller serialises state changes for one session. It is safe for
// concurrent use.
type Controller struct {
	recipes   service.IRecipeService
	favorites service.IFavoritesService
	logger    *zap.Logger

	mu     sync.Mutex
	state  State
	search slot
	detail slot
}

// New creates a controller starting on the All category with no results.
func New(recipes service.IRecipeService, favorites service.IFavoritesService, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		recipes:   recipes,
		favorites: favorites,
		logger:    logger,
		state: State{
			Category:  models.CategoryAll,
			Results:   []models.RecipeSummary{},
			Favorites: []models.Favorite{},
		},
	}
}

// Snapshot returns a deep copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

func (c *Controller) actionLogger(action string) *zap.Logger {
	return c.logger.With(
		zap.String("action", action),
		zap.String("request_id", uuid.NewString()),
	)
}

// must be called with c.mu held
func (c *Controller) fail(kind service.ErrorKind, msg string) {
	c.state.Error = msg
	c.state.ErrKind = kind
}

// must be called with c.mu held
func (c *Controller) clearError() {
	c.state.Error = ""
	c.state.ErrKind = service.KindNone
}

// must be called with c.mu held
func (c *Controller) refreshLoading() {
	c.state.Loading = c.search.busy() || c.detail.busy()
}

// LoadFavorites reads the persisted favorites into state.
func (c *Controller) LoadFavorites(ctx context.Context) State {
	favs := c.favorites.Load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Favorites = favs
	return c.state.clone()
}

// SelectCategory replaces the results with the category's aggregated recipes.
func (c *Controller) SelectCategory(ctx context.Context, category models.Category) State {
	log := c.actionLogger("select_category").With(zap.String("category", category.String()))

	c.mu.Lock()
	ctx, gen := c.search.begin(ctx)
	c.state.Category = category
	c.state.ShowingFavorites = false
	c.clearError()
	c.refreshLoading()
	c.mu.Unlock()

	log.Debug("fetching category recipes")
	results, err := c.recipes.SearchByCategory(ctx, category)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.search.finish(gen) {
		log.Debug("discarding superseded category result")
		return c.state.clone()
	}
	c.refreshLoading()

	switch {
	case err != nil:
		c.applySearchError(log, err, MsgCategoryFailed)
	case len(results) == 0:
		c.state.Results = []models.RecipeSummary{}
		c.fail(service.KindEmpty, fmt.Sprintf(msgCategoryEmpty, category.String()))
	default:
		c.state.Results = results
	}
	return c.state.clone()
}

// SetQuery records the free-text ingredient without searching.
func (c *Controller) SetQuery(q string) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Query = q
	return c.state.clone()
}

// PickIngredient sets the query to name and submits it.
func (c *Controller) PickIngredient(ctx context.Context, name string) State {
	c.SetQuery(name)
	return c.SubmitQuery(ctx)
}

// SubmitQuery runs a single-ingredient search for the current query.
func (c *Controller) SubmitQuery(ctx context.Context) State {
	log := c.actionLogger("submit_query")

	c.mu.Lock()
	q := strings.TrimSpace(c.state.Query)
	if q == "" {
		c.fail(service.KindValidation, MsgEmptyQuery)
		st := c.state.clone()
		c.mu.Unlock()
		log.Debug("rejected empty query")
		return st
	}
	ctx, gen := c.search.begin(ctx)
	c.state.ShowingFavorites = false
	c.clearError()
	c.refreshLoading()
	c.mu.Unlock()

	log = log.With(zap.String("query", q))
	log.Debug("searching by ingredient")
	results, err := c.recipes.SearchByIngredient(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.search.finish(gen) {
		log.Debug("discarding superseded search result")
		return c.state.clone()
	}
	c.refreshLoading()

	switch {
	case err != nil:
		c.applySearchError(log, err, MsgSearchFailed)
	case len(results) == 0:
		c.state.Results = []models.RecipeSummary{}
		c.fail(service.KindEmpty, fmt.Sprintf(msgIngredientMissing, q))
	default:
		c.state.Results = results
	}
	return c.state.clone()
}

// must be called with c.mu held
func (c *Controller) applySearchError(log *zap.Logger, err error, transportMsg string) {
	switch service.Kind(err) {
	case service.KindCanceled:
		log.Debug("search canceled", zap.Error(err))
	case service.KindValidation:
		c.fail(service.KindValidation, MsgEmptyQuery)
	default:
		log.Warn("search failed", zap.Error(err))
		c.fail(service.KindNetwork, transportMsg)
	}
}

// ShowDetails fetches a recipe and makes it the selected record. On failure
// the previous selection is kept.
func (c *Controller) ShowDetails(ctx context.Context, id string) State {
	log := c.actionLogger("show_details").With(zap.String("id", id))

	c.mu.Lock()
	ctx, gen := c.detail.begin(ctx)
	c.clearError()
	c.refreshLoading()
	c.mu.Unlock()

	detail, err := c.recipes.GetRecipeDetails(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.detail.finish(gen) {
		log.Debug("discarding superseded detail result")
		return c.state.clone()
	}
	c.refreshLoading()

	if err != nil {
		switch service.Kind(err) {
		case service.KindCanceled:
			log.Debug("detail lookup canceled", zap.Error(err))
		case service.KindEmpty, service.KindValidation:
			c.fail(service.KindEmpty, MsgRecipeNotFound)
		default:
			log.Warn("detail lookup failed", zap.Error(err))
			c.fail(service.KindNetwork, MsgDetailsFailed)
		}
		return c.state.clone()
	}

	c.state.Selected = detail
	return c.state.clone()
}

// CloseDetails clears the selection and abandons any pending lookup.
func (c *Controller) CloseDetails() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detail.stop()
	c.state.Selected = nil
	c.refreshLoading()
	return c.state.clone()
}

// ToggleFavorite adds or removes a recipe from favorites.
func (c *Controller) ToggleFavorite(ctx context.Context, recipe models.RecipeSummary) State {
	return c.toggle(ctx, models.FavoriteFrom(recipe))
}

// ToggleSelectedFavorite toggles the currently selected recipe.
func (c *Controller) ToggleSelectedFavorite(ctx context.Context) State {
	c.mu.Lock()
	if c.state.Selected == nil {
		c.fail(service.KindValidation, MsgNothingSelected)
		st := c.state.clone()
		c.mu.Unlock()
		return st
	}
	fav := models.FavoriteFrom(c.state.Selected.Summary())
	c.mu.Unlock()

	return c.toggle(ctx, fav)
}

func (c *Controller) toggle(ctx context.Context, fav models.Favorite) State {
	log := c.actionLogger("toggle_favorite").With(zap.String("id", fav.ID))

	_, err := c.favorites.Toggle(ctx, fav)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Favorites = c.favorites.List()
	if c.state.ShowingFavorites {
		c.state.Results = summaries(c.state.Favorites)
	}
	switch {
	case err == nil:
		c.clearError()
	case errors.Is(err, service.ErrPersist):
		log.Warn("favorite change not saved", zap.Error(err))
		c.fail(service.KindStorage, MsgSaveFailed)
	default:
		log.Warn("favorite toggle rejected", zap.Error(err))
		c.fail(service.KindValidation, MsgNothingSelected)
	}
	return c.state.clone()
}

// ShowFavorites makes the saved recipes the current result list. A pending
// search is abandoned.
func (c *Controller) ShowFavorites() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.search.stop()
	c.refreshLoading()
	c.state.ShowingFavorites = true
	c.state.Favorites = c.favorites.List()
	c.state.Results = summaries(c.state.Favorites)
	c.clearError()
	return c.state.clone()
}

func summaries(favs []models.Favorite) []models.RecipeSummary {
	out := make([]models.RecipeSummary, 0, len(favs))
	for _, f := range favs {
		out = append(out, f.Summary())
	}
	return out
}
