package mealdb

import (
	"fmt"
	"strings"

	"github.com/pageza/recipehub/internal/models"
)

// mealsResponse is the envelope both endpoints use. Meals is null when
// nothing matched.
type mealsResponse struct {
	Meals []meal `json:"meals"`
}

// meal keeps the raw upstream record. Values are strings or null, and the
// ingredient/measure pairs live in numbered fields strIngredient1..20.
type meal map[string]any

func (m meal) str(key string) string {
	if v, ok := m[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func (m meal) summary() models.RecipeSummary {
	return models.RecipeSummary{
		ID:           m.str("idMeal"),
		Name:         m.str("strMeal"),
		ThumbnailURL: m.str("strMealThumb"),
	}
}

func (m meal) detail() *models.RecipeDetail {
	d := &models.RecipeDetail{
		RecipeSummary: m.summary(),
		Instructions:  m.str("strInstructions"),
		Ingredients:   m.ingredients(),
		Category:      m.str("strCategory"),
		Area:          m.str("strArea"),
		YouTubeURL:    m.str("strYoutube"),
		SourceURL:     m.str("strSource"),
	}
	for _, tag := range strings.Split(m.str("strTags"), ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			d.Tags = append(d.Tags, tag)
		}
	}
	return d
}

func (m meal) ingredients() []models.IngredientLine {
	lines := make([]models.IngredientLine, 0, models.MaxIngredientLines)
	for i := 1; i <= models.MaxIngredientLines; i++ {
		name := m.str(fmt.Sprintf("strIngredient%d", i))
		if name == "" {
			continue
		}
		lines = append(lines, models.IngredientLine{
			Name:    name,
			Measure: m.str(fmt.Sprintf("strMeasure%d", i)),
		})
	}
	return lines
}
