package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quotekit/backend/cmd/quotectl/output"
	"github.com/quotekit/backend/internal/config"
	"github.com/quotekit/backend/internal/logging"
	"github.com/quotekit/backend/internal/repository"
	"github.com/quotekit/backend/internal/service"
)

// app is shared by every subcommand of one invocation.
type app struct {
	// Global flags
	stateDir   string
	dbURL      string
	jsonOutput bool

	out      *output.Printer
	catalog  service.CatalogService
	quotes   service.QuoteService
	transfer service.TransferService
	closeFn  func()
}

// NewRootCmd builds the quotectl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "quotectl",
		Short: "Price jobs from labor hours and a material catalog",
		Long: `quotectl prices quotes for a small trade business.

A quote is labor hours charged at a target hourly rate plus materials from a
persistent catalog, each marked up by a global or per-item percentage.
Settings, the catalog and saved quotes are kept in a settings file
(or PostgreSQL with --db).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closeFn != nil {
				a.closeFn()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.stateDir, "state-dir", "", "Directory holding settings.json (default $STATE_DIR or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&a.dbURL, "db", "", "PostgreSQL connection URL; stores settings in the database instead of a file")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(
		newSettingsCmd(a),
		newItemCmd(a),
		newWageCmd(a),
		newCalcCmd(a),
		newSavedCmd(a),
		newExportCmd(a),
		newImportCmd(a),
	)
	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		output.New(rootCmd.ErrOrStderr()).Error("%s", describeError(err))
		os.Exit(1)
	}
}

func (a *app) open(cmd *cobra.Command) error {
	logging.SetupCLI(cmd.ErrOrStderr())
	a.out = output.New(cmd.OutOrStdout())

	cfg := config.Load()
	backend := repository.Backend{Kind: cfg.StoreBackend, StateDir: cfg.StateDir, DatabaseURL: cfg.DatabaseURL}
	if a.stateDir != "" {
		backend.Kind = config.BackendFile
		backend.StateDir = a.stateDir
	}
	if a.dbURL != "" {
		backend.Kind = config.BackendPostgres
		backend.DatabaseURL = a.dbURL
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	repo, closeFn, err := repository.Open(ctx, backend)
	if err != nil {
		return err
	}
	ws, err := service.OpenWorkspace(ctx, repo)
	if err != nil {
		closeFn()
		return err
	}

	a.closeFn = closeFn
	a.catalog = service.NewCatalogService(ws)
	a.quotes = service.NewQuoteService(ws)
	a.transfer = service.NewTransferService(ws)
	return nil
}

// describeError turns service sentinels into messages for people.
func describeError(err error) string {
	switch {
	case errors.Is(err, service.ErrNameRequired):
		return "a quote needs a name before it can be saved (use --name)"
	case errors.Is(err, service.ErrWageIndex):
		return "no wage at that position (see `quotectl settings show`)"
	case errors.Is(err, service.ErrInvalidData):
		return fmt.Sprintf("file is not valid quote data: %v", err)
	default:
		return err.Error()
	}
}
