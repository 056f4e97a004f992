package service

import (
	"context"

	"github.com/pageza/recipehub/internal/models"
)

// RecipeSource is the external recipe API.
type RecipeSource interface {
	FilterByIngredient(ctx context.Context, ingredient string) ([]models.RecipeSummary, error)
	LookupByID(ctx context.Context, id string) (*models.RecipeDetail, error)
}

// IRecipeService defines the interface for recipe search operations
type IRecipeService interface {
	Categories() []models.Category
	Ingredients(category models.Category) []string
	SearchByCategory(ctx context.Context, category models.Category) ([]models.RecipeSummary, error)
	SearchByIngredient(ctx context.Context, query string) ([]models.RecipeSummary, error)
	GetRecipeDetails(ctx context.Context, id string) (*models.RecipeDetail, error)
}

// IFavoritesService defines the interface for bookmarking recipes
type IFavoritesService interface {
	Load(ctx context.Context) []models.Favorite
	Toggle(ctx context.Context, fav models.Favorite) ([]models.Favorite, error)
	Persist(ctx context.Context, favs []models.Favorite) error
	List() []models.Favorite
	Contains(id string) bool
}
