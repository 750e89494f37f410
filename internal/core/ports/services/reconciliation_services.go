package services

import (
	"context"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// RateResolverSvc converts between two currencies of an organization.
type RateResolverSvc interface {
	// Resolve returns the factor converting 1 unit of from into to as of asOf (nil: today).
	// ok is false when no rate path exists; err is reserved for store failures.
	// Rows are read through tx when one is given.
	Resolve(ctx context.Context, tx pgx.Tx, organizationID, fromCurrencyID, toCurrencyID string, asOf *time.Time) (factor decimal.Decimal, ok bool, err error)
}

// BalanceAggregatorSvc recomputes and persists one container's cached totals.
// A missing or soft-deleted container yields a Recalculation with Skipped set, not an error.
type BalanceAggregatorSvc interface {
	RecalculateAccount(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Recalculation, error)
	RecalculateProject(ctx context.Context, tx pgx.Tx, projectID string) (*domain.Recalculation, error)
	RecalculateDonor(ctx context.Context, tx pgx.Tx, donorID string) (*domain.Recalculation, error)

	// Recalculate dispatches on ref.Kind.
	Recalculate(ctx context.Context, tx pgx.Tx, ref domain.ContainerRef) (*domain.Recalculation, error)
}

// RecalculationOrchestratorSvc decides which containers a row mutation made stale
// and recomputes them inside the caller's transaction.
type RecalculationOrchestratorSvc interface {
	OnCreated(ctx context.Context, tx pgx.Tx, row domain.TransactionRow) ([]domain.Recalculation, error)
	OnUpdated(ctx context.Context, tx pgx.Tx, current, previous domain.TransactionRow) ([]domain.Recalculation, error)
	OnDeleted(ctx context.Context, tx pgx.Tx, row domain.TransactionRow) ([]domain.Recalculation, error)
	RecalculateContainers(ctx context.Context, tx pgx.Tx, refs []domain.ContainerRef) ([]domain.Recalculation, error)
}

// RecalculationListener is told about recalculations once their transaction has committed.
type RecalculationListener interface {
	AfterCommit(ctx context.Context, trigger string, recalcs []domain.Recalculation)
}

// EventPublisher ships committed recalculation events to downstream consumers.
type EventPublisher interface {
	PublishBalanceRecalculated(ctx context.Context, events ...domain.BalanceRecalculatedEvent) error
	Close() error
}
