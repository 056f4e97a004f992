package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type meal map[string]string

// fakeMealDB serves filter.php and lookup.php from fixed fixtures.
func fakeMealDB(t *testing.T) *httptest.Server {
	t.Helper()

	paneer := meal{"idMeal": "A", "strMeal": "Paneer Tikka", "strMealThumb": "https://img.example/a.jpg"}
	spinach := meal{"idMeal": "B", "strMeal": "Spinach Soup", "strMealThumb": "https://img.example/b.jpg"}
	teriyaki := meal{"idMeal": "52772", "strMeal": "Teriyaki Chicken Casserole", "strMealThumb": "https://img.example/52772.jpg"}

	filters := map[string][]meal{
		"paneer":  {paneer},
		"spinach": {spinach, paneer},
		"chicken": {teriyaki},
	}
	details := map[string]meal{
		"A": {
			"idMeal":          "A",
			"strMeal":         "Paneer Tikka",
			"strMealThumb":    "https://img.example/a.jpg",
			"strInstructions": "Marinate and grill.",
			"strIngredient1":  "paneer",
			"strMeasure1":     "250g",
		},
		"52772": {
			"idMeal":          "52772",
			"strMeal":         "Teriyaki Chicken Casserole",
			"strMealThumb":    "https://img.example/52772.jpg",
			"strCategory":     "Chicken",
			"strArea":         "Japanese",
			"strInstructions": "Preheat oven to 350 F.",
			"strIngredient1":  "soy sauce",
			"strMeasure1":     "3/4 cup",
			"strIngredient2":  "chicken breasts",
			"strMeasure2":     "2",
		},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("i")
		var meals []meal
		switch r.URL.Path {
		case "/filter.php":
			if q == "broken" {
				http.Error(w, "upstream down", http.StatusBadGateway)
				return
			}
			meals = filters[strings.ToLower(q)]
		case "/lookup.php":
			if d, ok := details[q]; ok {
				meals = []meal{d}
			}
		default:
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"meals": meals})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupEnv(t *testing.T) {
	t.Helper()
	srv := fakeMealDB(t)
	t.Setenv("CI", "")
	t.Setenv("RECIPEHUB_ENV", "development")
	t.Setenv("MEALDB_BASE_URL", srv.URL)
	t.Setenv("REQUESTS_PER_SECOND", "0")
	t.Setenv("FAVORITES_BACKEND", "file")
	t.Setenv("FAVORITES_DIR", t.TempDir())
	t.Setenv("CATEGORIES_FILE", "")
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := execute(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestSearchCommand(t *testing.T) {
	setupEnv(t)

	out, _, err := run(t, "", "search", "chicken")
	require.NoError(t, err)
	assert.Contains(t, out, "Teriyaki Chicken Casserole")
	assert.Contains(t, out, "52772")
}

func TestSearchCommandNoMatches(t *testing.T) {
	setupEnv(t)

	out, errOut, err := run(t, "", "search", "Durian")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, `We're cooking up recipes for "Durian" soon!`)
}

func TestSearchCommandEmptyQuery(t *testing.T) {
	setupEnv(t)

	_, errOut, err := run(t, "", "search")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "Please choose or type an ingredient.")
}

func TestSearchCommandUpstreamFailure(t *testing.T) {
	setupEnv(t)

	_, errOut, err := run(t, "", "search", "broken")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "Failed to fetch recipes.")
}

func TestCategoryCommand(t *testing.T) {
	setupEnv(t)

	out, _, err := run(t, "", "category", "veg")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "Paneer Tikka"))
	assert.Contains(t, out, "Spinach Soup")
	assert.Less(t, strings.Index(out, "Paneer Tikka"), strings.Index(out, "Spinach Soup"))
}

func TestCategoryCommandUnknownCategory(t *testing.T) {
	setupEnv(t)

	_, _, err := run(t, "", "category", "pescatarian")
	assert.Error(t, err)
}

func TestCategoriesCommand(t *testing.T) {
	setupEnv(t)

	out, _, err := run(t, "", "categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Non-Vegetarian")
	assert.Contains(t, out, "Paneer, Spinach, Cauliflower, Rice")
}

func TestShowCommand(t *testing.T) {
	setupEnv(t)

	out, _, err := run(t, "", "show", "52772")
	require.NoError(t, err)
	assert.Contains(t, out, "Teriyaki Chicken Casserole")
	assert.Contains(t, out, "soy sauce")
	assert.Contains(t, out, "Preheat oven")
	assert.Contains(t, out, "https://www.themealdb.com/meal/52772")

	_, errOut, err := run(t, "", "show", "0")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "Recipe not found.")
}

func TestFavoritesPersistAcrossInvocations(t *testing.T) {
	setupEnv(t)

	out, _, err := run(t, "", "favorites", "toggle", "52772")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 52772.")

	out, _, err = run(t, "", "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Teriyaki Chicken Casserole")

	out, _, err = run(t, "", "favorites", "toggle", "52772")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 52772.")

	out, _, err = run(t, "", "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No favorites yet.")
}

func TestEphemeralFavorites(t *testing.T) {
	setupEnv(t)

	_, _, err := run(t, "", "--ephemeral", "favorites", "toggle", "52772")
	require.NoError(t, err)

	out, _, err := run(t, "", "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No favorites yet.")
}

func TestShell(t *testing.T) {
	setupEnv(t)

	script := strings.Join([]string{
		"cat vegetarian",
		"show 1",
		"fav",
		"saved",
		"search",
		"bogus",
		"state",
		"quit",
	}, "\n")

	out, _, err := run(t, script, "--ephemeral", "shell")
	require.NoError(t, err)

	assert.Contains(t, out, "Spinach Soup")
	assert.Contains(t, out, "Marinate and grill.")
	assert.Contains(t, out, "1 favorite(s)")
	assert.Contains(t, out, "Please choose or type an ingredient.")
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Contains(t, out, "Category:")
	assert.Contains(t, out, "Vegetarian")
}

func TestShellSavedListIsNumbered(t *testing.T) {
	setupEnv(t)

	script := strings.Join([]string{
		"search chicken",
		"fav 1",
		"cat vegetarian",
		"saved",
		"show 1",
		"state",
		"quit",
	}, "\n")

	out, _, err := run(t, script, "--ephemeral", "shell")
	require.NoError(t, err)

	assert.Contains(t, out, "Preheat oven")
	assert.Contains(t, out, "Teriyaki Chicken Casserole (52772)")
	assert.NotContains(t, out, "Marinate and grill.")
}

func TestShellFavByIDKeepsOpenRecipe(t *testing.T) {
	setupEnv(t)

	script := strings.Join([]string{
		"cat vegetarian",
		"show 1",
		"fav 52772",
		"state",
		"quit",
	}, "\n")

	out, _, err := run(t, script, "--ephemeral", "shell")
	require.NoError(t, err)

	assert.Contains(t, out, "1 favorite(s)")
	assert.Contains(t, out, "Paneer Tikka (A)")
	assert.NotContains(t, out, "Preheat oven")
}

func TestFavoritesToggleUnknownID(t *testing.T) {
	setupEnv(t)

	_, errOut, err := run(t, "", "favorites", "toggle", "0")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, errOut, "Recipe not found.")
}

func TestBackendFlagOverridesInvalidEnvironment(t *testing.T) {
	setupEnv(t)
	t.Setenv("FAVORITES_BACKEND", "etcd")

	_, _, err := run(t, "", "favorites", "list")
	assert.ErrorContains(t, err, "FAVORITES_BACKEND")

	out, _, err := run(t, "", "--backend", "memory", "favorites", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No favorites yet.")
}
