package commands

import (
	"fmt"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/dto"
	"github.com/spf13/cobra"
)

func newResolveCommand(services ServiceFactory, orgID *string) *cobra.Command {
	var from, to, asOf, amount string

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the conversion factor between two currencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := dto.ResolveRateParams{FromCurrencyID: from, ToCurrencyID: to, Amount: amount}
			if asOf != "" {
				day, err := time.Parse(time.DateOnly, asOf)
				if err != nil {
					return fmt.Errorf("invalid --as-of %q, want YYYY-MM-DD", asOf)
				}
				params.AsOf = &day
			}

			svc, release, err := services(cmd.Context())
			if err != nil {
				return fmt.Errorf("initializing services: %w", err)
			}
			defer release()

			res, err := svc.ExchangeRate.ResolveRate(cmd.Context(), *orgID, params)
			if err != nil {
				return fmt.Errorf("resolving %s->%s: %w", from, to, err)
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "source currency ID (required)")
	cmd.Flags().StringVar(&to, "to", "", "target currency ID (required)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "date as YYYY-MM-DD, defaults to today")
	cmd.Flags().StringVar(&amount, "amount", "", "optional amount to convert")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
