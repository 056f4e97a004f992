package models

// Favorite is the persisted projection of a bookmarked recipe. The JSON field
// names match the records the browser client kept under the same storage key.
type Favorite struct {
	ID           string `json:"idMeal"`
	Name         string `json:"strMeal"`
	ThumbnailURL string `json:"strMealThumb"`
}

// FavoriteFrom reduces a recipe summary to a favorite record.
func FavoriteFrom(r RecipeSummary) Favorite {
	return Favorite{
		ID:           r.ID,
		Name:         r.Name,
		ThumbnailURL: r.ThumbnailURL,
	}
}

// Summary converts the favorite back into a recipe summary so saved recipes
// can be shown in a result list.
func (f Favorite) Summary() RecipeSummary {
	return RecipeSummary{
		ID:           f.ID,
		Name:         f.Name,
		ThumbnailURL: f.ThumbnailURL,
	}
}
