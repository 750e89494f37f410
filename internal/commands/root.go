// Package commands implements ledgerctl, the operator CLI for repairing and
// inspecting organization balances outside the HTTP API.
package commands

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	portssvc "github.com/SscSPs/finance_reconciler/internal/core/ports/services"
	"github.com/SscSPs/finance_reconciler/internal/platform/bootstrap"
	"github.com/SscSPs/finance_reconciler/internal/platform/config"
	"github.com/spf13/cobra"
)

// ServiceFactory builds the services a command runs against. The returned
// func releases them.
type ServiceFactory func(ctx context.Context) (*portssvc.ServiceContainer, func(), error)

// DefaultServices loads configuration from the environment and wires the
// same stack as the HTTP server, without running migrations.
func DefaultServices(ctx context.Context) (*portssvc.ServiceContainer, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	app, err := bootstrap.New(ctx, cfg, logger, bootstrap.Options{})
	if err != nil {
		return nil, nil, err
	}
	return app.Services, app.Close, nil
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(services ServiceFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Inspect exchange rates and repair cached balances",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	var orgID string
	rootCmd.PersistentFlags().StringVar(&orgID, "org", "", "organization ID (required)")
	_ = rootCmd.MarkPersistentFlagRequired("org")

	rootCmd.AddCommand(newRecalculateCommand(services, &orgID))
	rootCmd.AddCommand(newResolveCommand(services, &orgID))

	return rootCmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
