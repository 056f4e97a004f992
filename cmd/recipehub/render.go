package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pageza/recipehub/internal/controller"
	"github.com/pageza/recipehub/internal/models"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func savedMark(saved bool) string {
	if saved {
		return "*"
	}
	return ""
}

func printCategories(w io.Writer, categories []models.Category, ingredients func(models.Category) []string) {
	tw := newTable(w)
	fmt.Fprintln(tw, "CATEGORY\tLABEL\tINGREDIENTS")
	for _, c := range categories {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c, c.ShortLabel(), strings.Join(ingredients(c), ", "))
	}
	tw.Flush()
}

func printResults(w io.Writer, st controller.State) {
	if len(st.Results) == 0 {
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "#\tID\tNAME\tSAVED")
	for i, r := range st.Results {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, r.ID, r.Name, savedMark(st.IsFavorite(r.ID)))
	}
	tw.Flush()
}

func printFavorites(w io.Writer, favs []models.Favorite) {
	if len(favs) == 0 {
		fmt.Fprintln(w, "No favorites yet.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "#\tID\tNAME\tTHUMBNAIL")
	for i, f := range favs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, f.ID, f.Name, f.ThumbnailURL)
	}
	tw.Flush()
}

func printDetail(w io.Writer, d *models.RecipeDetail, saved bool) {
	title := d.Name
	if saved {
		title += " (saved)"
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))

	tw := newTable(w)
	fmt.Fprintf(tw, "ID:\t%s\n", d.ID)
	if d.Category != "" {
		fmt.Fprintf(tw, "Category:\t%s\n", d.Category)
	}
	if d.Area != "" {
		fmt.Fprintf(tw, "Area:\t%s\n", d.Area)
	}
	if len(d.Tags) > 0 {
		fmt.Fprintf(tw, "Tags:\t%s\n", strings.Join(d.Tags, ", "))
	}
	fmt.Fprintf(tw, "Page:\t%s\n", d.PageURL())
	if d.YouTubeURL != "" {
		fmt.Fprintf(tw, "Video:\t%s\n", d.YouTubeURL)
	}
	if d.SourceURL != "" {
		fmt.Fprintf(tw, "Source:\t%s\n", d.SourceURL)
	}
	tw.Flush()

	if len(d.Ingredients) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Ingredients")
		tw = newTable(w)
		for _, ing := range d.Ingredients {
			fmt.Fprintf(tw, "  %s\t%s\n", ing.Measure, ing.Name)
		}
		tw.Flush()
	}

	if d.Instructions != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Instructions")
		fmt.Fprintln(w, strings.TrimSpace(d.Instructions))
	}
}

func printState(w io.Writer, st controller.State) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Category:\t%s\n", st.Category)
	fmt.Fprintf(tw, "Query:\t%s\n", st.Query)
	fmt.Fprintf(tw, "Results:\t%d\n", len(st.Results))
	fmt.Fprintf(tw, "Loading:\t%t\n", st.Loading)
	if st.Error != "" {
		fmt.Fprintf(tw, "Error:\t%s\n", st.Error)
	}
	if st.Selected != nil {
		fmt.Fprintf(tw, "Selected:\t%s (%s)\n", st.Selected.Name, st.Selected.ID)
	}
	fmt.Fprintf(tw, "Favorites:\t%d\n", len(st.Favorites))
	fmt.Fprintf(tw, "Showing favorites:\t%t\n", st.ShowingFavorites)
	tw.Flush()
}
