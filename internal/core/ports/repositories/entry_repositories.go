package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ContributionReader reads the live rows that define a container's totals.
type ContributionReader interface {
	// ListContributions returns live income, approved expenses and owned assets pointing at ref.
	ListContributions(ctx context.Context, tx pgx.Tx, ref domain.ContainerRef) (domain.Contributions, error)
}

// EntryTransactionSupport defines row mutations performed inside the caller's transaction.
// Lock* return the pre-update snapshot and ErrNotFound for missing or soft-deleted rows.
type EntryTransactionSupport interface {
	LockIncomeInTx(ctx context.Context, tx pgx.Tx, organizationID, entryID string) (*domain.IncomeEntry, error)
	InsertIncomeInTx(ctx context.Context, tx pgx.Tx, entry domain.IncomeEntry) error
	UpdateIncomeInTx(ctx context.Context, tx pgx.Tx, entry domain.IncomeEntry) error
	SoftDeleteIncomeInTx(ctx context.Context, tx pgx.Tx, entryID, userID string, now time.Time) error

	LockExpenseInTx(ctx context.Context, tx pgx.Tx, organizationID, entryID string) (*domain.ExpenseEntry, error)
	InsertExpenseInTx(ctx context.Context, tx pgx.Tx, entry domain.ExpenseEntry) error
	UpdateExpenseInTx(ctx context.Context, tx pgx.Tx, entry domain.ExpenseEntry) error
	SoftDeleteExpenseInTx(ctx context.Context, tx pgx.Tx, entryID, userID string, now time.Time) error

	LockAssetInTx(ctx context.Context, tx pgx.Tx, organizationID, assetID string) (*domain.Asset, error)
	InsertAssetInTx(ctx context.Context, tx pgx.Tx, asset domain.Asset) error
	UpdateAssetInTx(ctx context.Context, tx pgx.Tx, asset domain.Asset) error
	SoftDeleteAssetInTx(ctx context.Context, tx pgx.Tx, assetID, userID string, now time.Time) error
}

// EntryRepositoryFacade combines all transaction-row repository interfaces
type EntryRepositoryFacade interface {
	ContributionReader
	EntryTransactionSupport
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}
