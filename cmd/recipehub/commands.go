package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pageza/recipehub/internal/controller"
	"github.com/pageza/recipehub/internal/models"
	"github.com/pageza/recipehub/internal/service"
)

// report prints the state's user-facing message, if any. Empty results are
// informational; every other failure makes the command exit non-zero.
func report(w io.Writer, st controller.State) error {
	if st.Error == "" {
		return nil
	}
	fmt.Fprintln(w, st.Error)
	if st.ErrKind == service.KindEmpty || st.ErrKind == service.KindNone {
		return nil
	}
	return errReported
}

func (c *cli) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List dietary categories and the ingredients searched for each",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recipes := c.app.Recipes
			printCategories(cmd.OutOrStdout(), recipes.Categories(), recipes.Ingredients)
			return nil
		},
	}
}

func (c *cli) categoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "category [name]",
		Short: "List recipes for a dietary category",
		Long: `Searches every representative ingredient of the category, merges the
results and keeps the recipes whose names fit the category.

Names are case-insensitive; veg, non-veg and nonveg are accepted.`,
		Example: `  recipehub category vegan
  recipehub category "Non-Vegetarian"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := models.ParseCategory(args[0])
			if err != nil {
				return err
			}
			st := c.app.Controller.SelectCategory(cmd.Context(), category)
			printResults(cmd.OutOrStdout(), st)
			return report(cmd.ErrOrStderr(), st)
		},
	}
}

func (c *cli) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [ingredient]",
		Short: "List recipes that use an ingredient",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := c.app.Controller.PickIngredient(cmd.Context(), strings.Join(args, " "))
			printResults(cmd.OutOrStdout(), st)
			return report(cmd.ErrOrStderr(), st)
		},
	}
}

func (c *cli) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show the full recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := c.app.Controller.ShowDetails(cmd.Context(), args[0])
			if st.Error != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), st.Error)
				return errReported
			}
			if st.Selected == nil {
				return cmd.Context().Err()
			}
			printDetail(cmd.OutOrStdout(), st.Selected, st.IsFavorite(st.Selected.ID))
			return nil
		},
	}
}

func (c *cli) favoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite recipes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List favorite recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st := c.app.Controller.ShowFavorites()
			printFavorites(cmd.OutOrStdout(), st.Favorites)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle [id]",
		Short: "Add a recipe to favorites, or remove it if already saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.toggleByID(cmd, args[0])
			if err != nil {
				return err
			}
			if st.Error == "" {
				if st.IsFavorite(args[0]) {
					fmt.Fprintf(cmd.OutOrStdout(), "Saved %s.\n", args[0])
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", args[0])
				}
			}
			return report(cmd.ErrOrStderr(), st)
		},
	})

	return cmd
}

// toggleByID flips a favorite given only its id. Saved records are removed
// directly; anything else is looked up first so the stored record carries a
// name and thumbnail. The lookup leaves the open recipe alone.
func (c *cli) toggleByID(cmd *cobra.Command, id string) (controller.State, error) {
	ctrl := c.app.Controller
	st := ctrl.Snapshot()
	for _, f := range st.Favorites {
		if f.ID == id {
			return ctrl.ToggleFavorite(cmd.Context(), f.Summary()), nil
		}
	}
	for _, r := range st.Results {
		if r.ID == id {
			return ctrl.ToggleFavorite(cmd.Context(), r), nil
		}
	}

	detail, err := c.app.Recipes.GetRecipeDetails(cmd.Context(), id)
	if err != nil {
		c.logger.Debug("favorite lookup failed", zap.String("id", id), zap.Error(err))
		switch service.Kind(err) {
		case service.KindEmpty, service.KindValidation:
			fmt.Fprintln(cmd.ErrOrStderr(), controller.MsgRecipeNotFound)
		case service.KindCanceled:
			return st, err
		default:
			fmt.Fprintln(cmd.ErrOrStderr(), controller.MsgDetailsFailed)
		}
		return st, errReported
	}
	return ctrl.ToggleFavorite(cmd.Context(), detail.Summary()), nil
}
