package models

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// Category is a dietary tag that selects a representative ingredient list and
// a classification predicate.
type Category string

const (
	CategoryAll           Category = "All"
	CategoryVegetarian    Category = "Vegetarian"
	CategoryNonVegetarian Category = "Non-Vegetarian"
	CategoryVegan         Category = "Vegan"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryAll,
	CategoryVegetarian,
	CategoryNonVegetarian,
	CategoryVegan,
}

var categoryAliases = map[string]Category{
	"all":            CategoryAll,
	"veg":            CategoryVegetarian,
	"vegetarian":     CategoryVegetarian,
	"non-veg":        CategoryNonVegetarian,
	"nonveg":         CategoryNonVegetarian,
	"non-vegetarian": CategoryNonVegetarian,
	"vegan":          CategoryVegan,
}

// ParseCategory resolves a category name case-insensitively. Both the long
// names and the short labels (Veg, Non-Veg) are accepted.
func ParseCategory(name string) (Category, error) {
	key := cases.Fold().String(strings.TrimSpace(name))
	key = strings.NewReplacer(" ", "-", "_", "-").Replace(key)
	if c, ok := categoryAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown dietary category %q", name)
}

// ShortLabel returns the compact label used on category buttons.
func (c Category) ShortLabel() string {
	switch c {
	case CategoryVegetarian:
		return "Veg"
	case CategoryNonVegetarian:
		return "Non-Veg"
	default:
		return string(c)
	}
}

func (c Category) String() string {
	return string(c)
}

// CategoryTable maps each category to its representative ingredient names.
type CategoryTable map[Category][]string

// DefaultCategoryTable returns the built-in ingredient lists.
func DefaultCategoryTable() CategoryTable {
	veg := []string{"Paneer", "Spinach", "Cauliflower", "Rice"}
	nonVeg := []string{"Chicken", "Beef", "Egg", "Tuna", "Salmon"}
	vegan := []string{"Tofu", "Broccoli", "Carrot", "Quinoa"}

	all := make([]string, 0, len(veg)+len(nonVeg)+len(vegan))
	all = append(all, veg...)
	all = append(all, nonVeg...)
	all = append(all, vegan...)

	return CategoryTable{
		CategoryAll:           all,
		CategoryVegetarian:    veg,
		CategoryNonVegetarian: nonVeg,
		CategoryVegan:         vegan,
	}
}

// Ingredients returns a copy of the ingredient list for c.
func (t CategoryTable) Ingredients(c Category) []string {
	return append([]string(nil), t[c]...)
}

type categoryFile struct {
	Categories map[string][]string `yaml:"categories"`
}

// LoadCategoryTable reads ingredient list overrides from a YAML file of the form
//
//	categories:
//	  Veg: [Paneer, Spinach]
//
// Categories not named in the file keep their defaults.
func LoadCategoryTable(path string) (CategoryTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read category file: %w", err)
	}

	var file categoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse category file: %w", err)
	}

	table := DefaultCategoryTable()
	for name, ingredients := range file.Categories {
		c, err := ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("category file %s: %w", path, err)
		}
		cleaned := make([]string, 0, len(ingredients))
		for _, ing := range ingredients {
			if ing = strings.TrimSpace(ing); ing != "" {
				cleaned = append(cleaned, ing)
			}
		}
		if len(cleaned) == 0 {
			return nil, fmt.Errorf("category file %s: category %s has no ingredients", path, c)
		}
		table[c] = cleaned
	}
	return table, nil
}
