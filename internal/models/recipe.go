package models

import "fmt"

// MealPageURL is the public page for a recipe on TheMealDB.
const MealPageURL = "https://www.themealdb.com/meal/%s"

// MaxIngredientLines is the number of numbered ingredient/measure slots a
// lookup response carries.
const MaxIngredientLines = 20

// RecipeSummary is the minimal recipe record returned by the
// filter-by-ingredient endpoint. Identity is ID.
type RecipeSummary struct {
	ID           string `json:"idMeal"`
	Name         string `json:"strMeal"`
	ThumbnailURL string `json:"strMealThumb"`
}

// IngredientLine is one ingredient of a recipe detail. Measure is empty when
// the upstream record has none.
type IngredientLine struct {
	Name    string `json:"ingredient"`
	Measure string `json:"measure,omitempty"`
}

// RecipeDetail represents a recipe as returned by the lookup endpoint
type RecipeDetail struct {
	RecipeSummary
	Instructions string           `json:"instructions"`
	Ingredients  []IngredientLine `json:"ingredients"`
	Category     string           `json:"category,omitempty"`
	Area         string           `json:"area,omitempty"`
	Tags         []string         `json:"tags,omitempty"`
	YouTubeURL   string           `json:"youtube_url,omitempty"`
	SourceURL    string           `json:"source_url,omitempty"`
}

// Summary projects the detail back onto its summary fields.
func (d *RecipeDetail) Summary() RecipeSummary {
	return d.RecipeSummary
}

// PageURL returns the TheMealDB page for the recipe.
func (d *RecipeDetail) PageURL() string {
	return fmt.Sprintf(MealPageURL, d.ID)
}

// Clone returns a deep copy of the detail.
func (d *RecipeDetail) Clone() *RecipeDetail {
	if d == nil {
		return nil
	}
	c := *d
	c.Ingredients = append([]IngredientLine(nil), d.Ingredients...)
	c.Tags = append([]string(nil), d.Tags...)
	return &c
}
