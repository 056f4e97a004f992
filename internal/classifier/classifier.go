// Package classifier decides dietary membership of a dish from its name.
//
// Classification is a substring heuristic over the lowercased dish name; the
// ingredient list of the recipe is never consulted. A name without a
// disqualifying keyword is presumed compliant.
package classifier

import (
	"strings"

	"github.com/pageza/recipehub/internal/models"
)

// NonVegKeywords mark a dish as containing meat, poultry, seafood or egg.
var NonVegKeywords = []string{
	"chicken",
	"beef",
	"pork",
	"fish",
	"salmon",
	"tuna",
	"shrimp",
	"prawn",
	"egg",
	"bacon",
	"ham",
	"crab",
	"lamb",
}

// DairyKeywords additionally disqualify a dish from being vegan.
var DairyKeywords = []string{
	"milk",
	"cheese",
	"butter",
	"yogurt",
	"cream",
	"paneer",
	"ghee",
}

func containsAny(name string, keywords []string) bool {
	name = strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// IsNonVeg reports whether the dish name contains a non-vegetarian keyword.
func IsNonVeg(name string) bool {
	return containsAny(name, NonVegKeywords)
}

// IsVeg is the negation of IsNonVeg.
func IsVeg(name string) bool {
	return !IsNonVeg(name)
}

// IsVeganEligible reports whether the dish name contains neither a
// non-vegetarian nor a dairy keyword.
func IsVeganEligible(name string) bool {
	return !containsAny(name, NonVegKeywords) && !containsAny(name, DairyKeywords)
}

// Matches is the filter predicate for a category. CategoryAll accepts
// everything.
func Matches(c models.Category, name string) bool {
	switch c {
	case models.CategoryVegetarian:
		return IsVeg(name)
	case models.CategoryNonVegetarian:
		return IsNonVeg(name)
	case models.CategoryVegan:
		return IsVeganEligible(name)
	default:
		return true
	}
}

// Filter keeps the recipes whose names match c, preserving order.
func Filter(c models.Category, recipes []models.RecipeSummary) []models.RecipeSummary {
	out := make([]models.RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		if Matches(c, r.Name) {
			out = append(out, r)
		}
	}
	return out
}
