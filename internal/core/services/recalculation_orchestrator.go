package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	portssvc "github.com/SscSPs/finance_reconciler/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
)

// recalculationOrchestrator maps row mutations to the containers they make stale.
type recalculationOrchestrator struct {
	BaseService
	aggregator portssvc.BalanceAggregatorSvc
}

// NewRecalculationOrchestrator creates a new orchestrator driving aggregator.
func NewRecalculationOrchestrator(aggregator portssvc.BalanceAggregatorSvc) portssvc.RecalculationOrchestratorSvc {
	return &recalculationOrchestrator{aggregator: aggregator}
}

var _ portssvc.RecalculationOrchestratorSvc = (*recalculationOrchestrator)(nil)

func (o *recalculationOrchestrator) OnCreated(ctx context.Context, tx pgx.Tx, row domain.TransactionRow) ([]domain.Recalculation, error) {
	o.LogDebug(ctx, "Row created, recalculating containers", rowAttrs(row)...)
	return o.RecalculateContainers(ctx, tx, row.Containers())
}

func (o *recalculationOrchestrator) OnDeleted(ctx context.Context, tx pgx.Tx, row domain.TransactionRow) ([]domain.Recalculation, error) {
	o.LogDebug(ctx, "Row deleted, recalculating containers", rowAttrs(row)...)
	return o.RecalculateContainers(ctx, tx, row.Containers())
}

// OnUpdated recomputes the union of the current and previous containers, but
// only when a balance-affecting field differs between the two snapshots.
func (o *recalculationOrchestrator) OnUpdated(ctx context.Context, tx pgx.Tx, current, previous domain.TransactionRow) ([]domain.Recalculation, error) {
	if previous == nil {
		return o.OnCreated(ctx, tx, current)
	}
	if current.BalanceFields().Equal(previous.BalanceFields()) {
		o.LogDebug(ctx, "No balance-affecting change, skipping recalculation", rowAttrs(current)...)
		return nil, nil
	}

	refs := append(current.Containers(), previous.Containers()...)
	o.LogDebug(ctx, "Row updated, recalculating containers", rowAttrs(current)...)
	return o.RecalculateContainers(ctx, tx, refs)
}

// RecalculateContainers recomputes each distinct ref once. Refs are visited in
// (kind, id) order so concurrent mutations lock container rows in the same order.
func (o *recalculationOrchestrator) RecalculateContainers(ctx context.Context, tx pgx.Tx, refs []domain.ContainerRef) ([]domain.Recalculation, error) {
	ordered := uniqueRefs(refs)
	results := make([]domain.Recalculation, 0, len(ordered))
	for _, ref := range ordered {
		rec, err := o.aggregator.Recalculate(ctx, tx, ref)
		if err != nil {
			o.LogError(ctx, err, "Recalculation failed", slog.String("container", ref.String()))
			return nil, fmt.Errorf("failed to recalculate %s: %w", ref, err)
		}
		results = append(results, *rec)
	}
	return results, nil
}

func uniqueRefs(refs []domain.ContainerRef) []domain.ContainerRef {
	seen := make(map[domain.ContainerRef]struct{}, len(refs))
	out := make([]domain.ContainerRef, 0, len(refs))
	for _, ref := range refs {
		if ref.ID == "" {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func rowAttrs(row domain.TransactionRow) []any {
	return []any{
		slog.String("row_kind", string(row.Kind())),
		slog.String("row_id", row.RowID()),
		slog.String("organization_id", row.OrgID()),
	}
}
