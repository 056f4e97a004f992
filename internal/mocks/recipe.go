package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipehub/internal/models"
)

// MockRecipeSource is a mock implementation of the RecipeSource interface
type MockRecipeSource struct {
	mock.Mock
}

func (m *MockRecipeSource) FilterByIngredient(ctx context.Context, ingredient string) ([]models.RecipeSummary, error) {
	args := m.Called(ctx, ingredient)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RecipeSummary), args.Error(1)
}

func (m *MockRecipeSource) LookupByID(ctx context.Context, id string) (*models.RecipeDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RecipeDetail), args.Error(1)
}
