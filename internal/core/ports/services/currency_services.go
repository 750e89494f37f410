package services

import (
	"context"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/SscSPs/finance_reconciler/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrency retrieves a specific currency of the organization.
	GetCurrency(ctx context.Context, organizationID, currencyID string) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies of the organization.
	ListCurrencies(ctx context.Context, organizationID string) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, organizationID string, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// SetBaseCurrency makes currencyID the organization's only base currency.
	SetBaseCurrency(ctx context.Context, organizationID, currencyID, userID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	GetExchangeRate(ctx context.Context, organizationID, rateID string) (*domain.ExchangeRate, error)
	ListExchangeRates(ctx context.Context, organizationID string, params dto.ListExchangeRatesParams) (*dto.ListExchangeRatesResponse, error)

	// ResolveRate exposes the rate resolver, optionally converting an amount.
	ResolveRate(ctx context.Context, organizationID string, params dto.ResolveRateParams) (*dto.ResolveRateResponse, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	CreateExchangeRate(ctx context.Context, organizationID string, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
	UpdateExchangeRate(ctx context.Context, organizationID, rateID string, req dto.UpdateExchangeRateRequest, userID string) (*domain.ExchangeRate, error)
	DeleteExchangeRate(ctx context.Context, organizationID, rateID, userID string) error
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
