package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ContainerReader defines read operations for accounts, projects and donors
type ContainerReader interface {
	// FindAccountByID retrieves a live finance account of the organization.
	FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.FinanceAccount, error)

	// FindProjectByID retrieves a live finance project of the organization.
	FindProjectByID(ctx context.Context, organizationID, projectID string) (*domain.FinanceProject, error)

	// FindDonorByID retrieves a live donor of the organization.
	FindDonorByID(ctx context.Context, organizationID, donorID string) (*domain.Donor, error)

	// ListContainerRefs lists every live container of the organization.
	ListContainerRefs(ctx context.Context, organizationID string) ([]domain.ContainerRef, error)
}

// ContainerWriter defines write operations for containers
type ContainerWriter interface {
	SaveAccount(ctx context.Context, account domain.FinanceAccount) error
	SaveProject(ctx context.Context, project domain.FinanceProject) error
	SaveDonor(ctx context.Context, donor domain.Donor) error

	// UpdateAccountOpeningBalanceInTx changes the opening balance of an account within tx.
	UpdateAccountOpeningBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, opening decimal.Decimal, userID string, now time.Time) error
}

// ContainerTransactionSupport defines the locked read-modify-write cycle used by recalculation.
// Lock* return ErrNotFound when the row is missing or soft-deleted.
type ContainerTransactionSupport interface {
	LockAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) (*domain.FinanceAccount, error)
	LockProjectInTx(ctx context.Context, tx pgx.Tx, projectID string) (*domain.FinanceProject, error)
	LockDonorInTx(ctx context.Context, tx pgx.Tx, donorID string) (*domain.Donor, error)

	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, now time.Time) error
	UpdateProjectTotalsInTx(ctx context.Context, tx pgx.Tx, projectID string, totalIncome, totalExpense decimal.Decimal, now time.Time) error
	UpdateDonorTotalInTx(ctx context.Context, tx pgx.Tx, donorID string, totalDonated decimal.Decimal, now time.Time) error
}

// ContainerRepositoryFacade combines all container-related repository interfaces
type ContainerRepositoryFacade interface {
	ContainerReader
	ContainerWriter
	ContainerTransactionSupport
}

// ContainerRepositoryWithTx extends ContainerRepositoryFacade with transaction capabilities
type ContainerRepositoryWithTx interface {
	ContainerRepositoryFacade
	TransactionManager
}
