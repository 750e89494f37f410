package services

import (
	"context"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_reconciler/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// rateLookup joins the exchange-rate and currency readers into the view the resolver reads.
type rateLookup struct {
	rates      portsrepo.ExchangeRateReader
	currencies portsrepo.CurrencyReader
}

// NewRateLookup combines two repositories into a RateLookup.
func NewRateLookup(rates portsrepo.ExchangeRateReader, currencies portsrepo.CurrencyReader) portsrepo.RateLookup {
	return &rateLookup{rates: rates, currencies: currencies}
}

func (l *rateLookup) FindLatestRate(ctx context.Context, tx pgx.Tx, organizationID, fromCurrencyID, toCurrencyID string, asOf time.Time) (*domain.ExchangeRate, error) {
	return l.rates.FindLatestRateInTx(ctx, tx, organizationID, fromCurrencyID, toCurrencyID, asOf)
}

func (l *rateLookup) FindBaseCurrency(ctx context.Context, tx pgx.Tx, organizationID string) (*domain.Currency, error) {
	return l.currencies.FindBaseCurrencyInTx(ctx, tx, organizationID)
}
