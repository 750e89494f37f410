package commands

import (
	"fmt"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/SscSPs/finance_reconciler/internal/dto"
	"github.com/spf13/cobra"
)

func newRecalculateCommand(services ServiceFactory, orgID *string) *cobra.Command {
	var accountID, projectID, donorID string

	cmd := &cobra.Command{
		Use:   "recalculate",
		Short: "Recompute cached balances from live rows",
		Long: "Recompute one account, project or donor, or every container of the organization " +
			"when none is given. Each container is recomputed in its own transaction.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := targetRef(accountID, projectID, donorID)
			if err != nil {
				return err
			}

			svc, release, err := services(cmd.Context())
			if err != nil {
				return fmt.Errorf("initializing services: %w", err)
			}
			defer release()

			if ref == nil {
				recalcs, err := svc.Container.RecalculateOrganization(cmd.Context(), *orgID)
				if werr := writeJSON(cmd.OutOrStdout(), dto.ToListRecalculationResponse(recalcs)); werr != nil {
					return werr
				}
				if err != nil {
					return fmt.Errorf("recalculating organization (completed %d): %w", len(recalcs), err)
				}
				return nil
			}

			recalc, err := svc.Container.RecalculateContainer(cmd.Context(), *orgID, *ref)
			if err != nil {
				return fmt.Errorf("recalculating %s: %w", ref, err)
			}
			return writeJSON(cmd.OutOrStdout(), dto.ToRecalculationResponse(*recalc))
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "finance account ID")
	cmd.Flags().StringVar(&projectID, "project", "", "project ID")
	cmd.Flags().StringVar(&donorID, "donor", "", "donor ID")
	cmd.MarkFlagsMutuallyExclusive("account", "project", "donor")

	return cmd
}

// targetRef returns nil when no container was selected.
func targetRef(accountID, projectID, donorID string) (*domain.ContainerRef, error) {
	var refs []domain.ContainerRef
	for _, r := range []domain.ContainerRef{
		{Kind: domain.ContainerAccount, ID: accountID},
		{Kind: domain.ContainerProject, ID: projectID},
		{Kind: domain.ContainerDonor, ID: donorID},
	} {
		if r.ID != "" {
			refs = append(refs, r)
		}
	}
	switch len(refs) {
	case 0:
		return nil, nil
	case 1:
		return &refs[0], nil
	}
	return nil, fmt.Errorf("only one of --account, --project or --donor may be given")
}
