package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"All":            CategoryAll,
		"veg":            CategoryVegetarian,
		"Vegetarian":     CategoryVegetarian,
		"Non-Veg":        CategoryNonVegetarian,
		"non vegetarian": CategoryNonVegetarian,
		"NON_VEG":        CategoryNonVegetarian,
		" vegan ":        CategoryVegan,
	}
	for in, want := range cases {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCategory("pescatarian")
	assert.Error(t, err)
}

func TestDefaultCategoryTable(t *testing.T) {
	table := DefaultCategoryTable()

	assert.Equal(t, []string{"Paneer", "Spinach", "Cauliflower", "Rice"}, table[CategoryVegetarian])
	assert.Equal(t, []string{"Chicken", "Beef", "Egg", "Tuna", "Salmon"}, table[CategoryNonVegetarian])
	assert.Equal(t, []string{"Tofu", "Broccoli", "Carrot", "Quinoa"}, table[CategoryVegan])
	assert.Len(t, table[CategoryAll], 13)

	// Ingredients hands out a copy.
	got := table.Ingredients(CategoryVegan)
	got[0] = "Tempeh"
	assert.Equal(t, "Tofu", table[CategoryVegan][0])
}

func TestLoadCategoryTable(t *testing.T) {
	dir := t.TempDir()

	t.Run("overrides named categories only", func(t *testing.T) {
		path := filepath.Join(dir, "categories.yaml")
		require.NoError(t, os.WriteFile(path, []byte("categories:\n  Veg: [Paneer, \" Spinach \"]\n"), 0644))

		table, err := LoadCategoryTable(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Paneer", "Spinach"}, table[CategoryVegetarian])
		assert.Equal(t, DefaultCategoryTable()[CategoryVegan], table[CategoryVegan])
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("categories:\n  Keto: [Avocado]\n"), 0644))

		_, err := LoadCategoryTable(path)
		assert.ErrorContains(t, err, "unknown dietary category")
	})

	t.Run("rejects empty list", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("categories:\n  Vegan: []\n"), 0644))

		_, err := LoadCategoryTable(path)
		assert.ErrorContains(t, err, "has no ingredients")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCategoryTable(filepath.Join(dir, "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestRecipeDetailHelpers(t *testing.T) {
	d := &RecipeDetail{
		RecipeSummary: RecipeSummary{ID: "52874", Name: "Beef and Mustard Pie"},
		Ingredients:   []IngredientLine{{Name: "Beef", Measure: "1kg"}},
	}

	assert.Equal(t, "https://www.themealdb.com/meal/52874", d.PageURL())
	assert.Equal(t, RecipeSummary{ID: "52874", Name: "Beef and Mustard Pie"}, d.Summary())

	c := d.Clone()
	c.Ingredients[0].Name = "Lamb"
	assert.Equal(t, "Beef", d.Ingredients[0].Name)

	fav := FavoriteFrom(d.Summary())
	assert.Equal(t, d.Summary(), fav.Summary())
}
