package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageza/recipehub/internal/controller"
	"github.com/pageza/recipehub/internal/models"
)

const shellHelp = `Commands:
  cat [name]       list categories, or load a category's recipes
  search [text]    search by ingredient (repeats the last query when empty)
  pick [name]      quick-pick one of the category's ingredients
  show <id|#>      show a recipe by id or result number
  close            close the open recipe
  fav [id|#]       toggle a favorite (the open recipe when empty)
  saved            list favorites
  state            print the session state
  help             show this help
  quit             leave the shell`

func (c *cli) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := &shell{
				cli: c,
				cmd: cmd,
				out: cmd.OutOrStdout(),
			}
			return s.run(cmd.InOrStdin())
		},
	}
}

type shell struct {
	cli *cli
	cmd *cobra.Command
	out io.Writer
}

func (s *shell) run(in io.Reader) error {
	fmt.Fprintln(s.out, `recipehub shell. Type "help" for commands.`)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		if err := s.cmd.Context().Err(); err != nil {
			return nil
		}

		name, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		arg = strings.TrimSpace(arg)
		if name == "" {
			continue
		}
		if name == "quit" || name == "exit" {
			return nil
		}
		s.dispatch(name, arg)
	}
}

func (s *shell) dispatch(name, arg string) {
	ctx := s.cmd.Context()
	ctrl := s.cli.app.Controller
	recipes := s.cli.app.Recipes

	switch name {
	case "cat":
		if arg == "" {
			printCategories(s.out, recipes.Categories(), recipes.Ingredients)
			return
		}
		category, err := models.ParseCategory(arg)
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		s.showList(ctrl.SelectCategory(ctx, category))

	case "search":
		if arg != "" {
			ctrl.SetQuery(arg)
		}
		s.showList(ctrl.SubmitQuery(ctx))

	case "pick":
		if arg == "" {
			st := ctrl.Snapshot()
			fmt.Fprintf(s.out, "%s: %s\n", st.Category, strings.Join(recipes.Ingredients(st.Category), ", "))
			return
		}
		s.showList(ctrl.PickIngredient(ctx, arg))

	case "show":
		if arg == "" {
			fmt.Fprintln(s.out, "usage: show <id|#>")
			return
		}
		st := ctrl.ShowDetails(ctx, s.resolveID(arg))
		s.message(st)
		if st.Error == "" && st.Selected != nil {
			printDetail(s.out, st.Selected, st.IsFavorite(st.Selected.ID))
		}

	case "close":
		ctrl.CloseDetails()

	case "fav":
		var st controller.State
		if arg == "" {
			st = ctrl.ToggleSelectedFavorite(ctx)
		} else {
			var err error
			if st, err = s.cli.toggleByID(s.cmd, s.resolveID(arg)); err != nil {
				return
			}
		}
		s.message(st)
		if st.Error == "" {
			fmt.Fprintf(s.out, "%d favorite(s)\n", len(st.Favorites))
		}

	case "saved":
		printFavorites(s.out, ctrl.ShowFavorites().Favorites)

	case "state":
		printState(s.out, ctrl.Snapshot())

	case "help", "?":
		fmt.Fprintln(s.out, shellHelp)

	default:
		fmt.Fprintf(s.out, "unknown command %q, type \"help\"\n", name)
	}
}

// resolveID maps a 1-based result number onto its recipe id. Anything that
// is not a valid result number is taken as an id.
func (s *shell) resolveID(arg string) string {
	n, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil {
		return arg
	}
	st := s.cli.app.Controller.Snapshot()
	if n < 1 || n > len(st.Results) {
		return arg
	}
	for _, r := range st.Results {
		if r.ID == arg {
			return arg
		}
	}
	return st.Results[n-1].ID
}

func (s *shell) showList(st controller.State) {
	s.message(st)
	printResults(s.out, st)
}

func (s *shell) message(st controller.State) {
	if st.Error != "" {
		fmt.Fprintln(s.out, st.Error)
	}
}
