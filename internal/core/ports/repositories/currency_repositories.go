package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByID retrieves a live currency of the organization.
	FindCurrencyByID(ctx context.Context, organizationID, currencyID string) (*domain.Currency, error)

	// FindBaseCurrency retrieves the organization's base currency, or ErrNotFound if none is set.
	FindBaseCurrency(ctx context.Context, organizationID string) (*domain.Currency, error)

	// FindBaseCurrencyInTx is FindBaseCurrency read through tx.
	FindBaseCurrencyInTx(ctx context.Context, tx pgx.Tx, organizationID string) (*domain.Currency, error)

	// ListCurrencies retrieves all live currencies of the organization.
	ListCurrencies(ctx context.Context, organizationID string) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// SetBaseCurrencyInTx clears is_base on every sibling and sets it on currencyID.
	SetBaseCurrencyInTx(ctx context.Context, tx pgx.Tx, organizationID, currencyID, userID string, now time.Time) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}

// CurrencyRepositoryWithTx extends CurrencyRepositoryFacade with transaction capabilities
type CurrencyRepositoryWithTx interface {
	CurrencyRepositoryFacade
	TransactionManager
}
