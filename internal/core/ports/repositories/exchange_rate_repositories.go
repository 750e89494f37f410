package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindLatestRateInTx returns the active row for the pair with the greatest
	// effective_date <= asOf, or ErrNotFound. A nil tx reads outside any transaction.
	FindLatestRateInTx(ctx context.Context, tx pgx.Tx, organizationID, fromCurrencyID, toCurrencyID string, asOf time.Time) (*domain.ExchangeRate, error)

	// FindExchangeRateByID retrieves a live exchange rate by ID.
	FindExchangeRateByID(ctx context.Context, organizationID, rateID string) (*domain.ExchangeRate, error)

	// FindExchangeRateByPairAndDate retrieves the live row for a pair on an exact effective date.
	FindExchangeRateByPairAndDate(ctx context.Context, organizationID, fromCurrencyID, toCurrencyID string, effectiveDate time.Time) (*domain.ExchangeRate, error)

	// ListExchangeRates lists live rates ordered by effective_date descending.
	ListExchangeRates(ctx context.Context, organizationID string, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new exchange rate.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// UpdateExchangeRate updates an existing exchange rate.
	UpdateExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// DeleteExchangeRate soft-deletes an exchange rate.
	DeleteExchangeRate(ctx context.Context, organizationID, rateID, userID string, now time.Time) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

// RateLookup is the read-only view the rate resolver needs. Lookups made
// during a recalculation run on that recalculation's tx; tx is nil otherwise.
type RateLookup interface {
	FindLatestRate(ctx context.Context, tx pgx.Tx, organizationID, fromCurrencyID, toCurrencyID string, asOf time.Time) (*domain.ExchangeRate, error)
	FindBaseCurrency(ctx context.Context, tx pgx.Tx, organizationID string) (*domain.Currency, error)
}
