package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pageza/recipehub/config"
	"github.com/pageza/recipehub/internal/app"
	"github.com/pageza/recipehub/internal/logger"
)

// errReported signals a failure whose message has already been printed.
var errReported = errors.New("reported")

type cli struct {
	// Global flags
	debug     bool
	backend   string
	ephemeral bool

	logger *zap.Logger
	app    *app.App
}

func newRootCmd(c *cli) *cobra.Command {

	root := &cobra.Command{
		Use:   "recipehub",
		Short: "Browse TheMealDB recipes by dietary category and keep favorites",
		Long: `recipehub searches TheMealDB by ingredient or by dietary category
(All, Vegetarian, Non-Vegetarian, Vegan), shows full recipe details and keeps a
persistent list of favorite recipes.

Run "recipehub shell" for an interactive session.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.PersistentFlags().BoolVar(&c.debug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&c.backend, "backend", "", "Favorites backend (file, memory, redis, sqlite, postgres, s3)")
	root.PersistentFlags().BoolVar(&c.ephemeral, "ephemeral", false, "Keep favorites in memory only")

	root.AddCommand(
		c.categoriesCmd(),
		c.categoryCmd(),
		c.searchCmd(),
		c.showCmd(),
		c.favoritesCmd(),
		c.shellCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.backend != "" {
		cfg.FavoritesBackend = c.backend
	}
	if c.ephemeral {
		cfg.FavoritesBackend = config.BackendMemory
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	c.logger, err = logger.New(c.debug || cfg.Debug)
	if err != nil {
		return err
	}

	c.app, err = app.New(cmd.Context(), cfg, c.logger)
	if err != nil {
		return err
	}
	return nil
}

// close runs after every invocation, including failed ones.
func (c *cli) close() {
	if c.app != nil {
		if err := c.app.Close(); err != nil {
			c.logger.Warn("failed to close favorites backend", zap.Error(err))
		}
	}
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}

func execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	c := &cli{}
	defer c.close()

	root := newRootCmd(c)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.ExecuteContext(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}
