package dto

import (
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for creating a new exchange rate.
type CreateExchangeRateRequest struct {
	FromCurrencyID string          `json:"fromCurrencyID" binding:"required"`
	ToCurrencyID   string          `json:"toCurrencyID" binding:"required,nefield=FromCurrencyID"`
	Rate           decimal.Decimal `json:"rate" binding:"required,gt=0"`
	EffectiveDate  time.Time       `json:"effectiveDate" binding:"required"`
	IsActive       *bool           `json:"isActive"` // defaults to true
}

// UpdateExchangeRateRequest defines the fields that may change on an existing rate.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateExchangeRateRequest struct {
	FromCurrencyID *string          `json:"fromCurrencyID"`
	ToCurrencyID   *string          `json:"toCurrencyID"`
	Rate           *decimal.Decimal `json:"rate"`
	EffectiveDate  *time.Time       `json:"effectiveDate"`
	IsActive       *bool            `json:"isActive"`
}

// ListExchangeRatesParams are the query filters for listing rates.
type ListExchangeRatesParams struct {
	FromCurrencyID string `form:"fromCurrencyID"`
	ToCurrencyID   string `form:"toCurrencyID"`
	ActiveOnly     bool   `form:"activeOnly"`
	Limit          int    `form:"limit" binding:"omitempty,min=1,max=500"` // defaults to 100
	NextToken      string `form:"nextToken"`
}

// ListExchangeRatesResponse is one page of rates. NextToken is set when more rows follow.
type ListExchangeRatesResponse struct {
	Rates     []ExchangeRateResponse `json:"rates"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ResolveRateParams are the query parameters for resolving a conversion factor.
type ResolveRateParams struct {
	FromCurrencyID string     `form:"from" binding:"required"`
	ToCurrencyID   string     `form:"to" binding:"required"`
	AsOf           *time.Time `form:"asOf" time_format:"2006-01-02" time_utc:"1"`
	Amount         string     `form:"amount"`
}

// ResolveRateResponse reports the resolved factor, or Found=false when no rate path exists.
type ResolveRateResponse struct {
	FromCurrencyID  string           `json:"fromCurrencyID"`
	ToCurrencyID    string           `json:"toCurrencyID"`
	AsOf            time.Time        `json:"asOf"`
	Found           bool             `json:"found"`
	Rate            *decimal.Decimal `json:"rate,omitempty"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	ConvertedAmount *decimal.Decimal `json:"convertedAmount,omitempty"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	OrganizationID string          `json:"organizationID"`
	FromCurrencyID string          `json:"fromCurrencyID"`
	ToCurrencyID   string          `json:"toCurrencyID"`
	Rate           decimal.Decimal `json:"rate"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy  string          `json:"lastUpdatedBy"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: rate.ExchangeRateID,
		OrganizationID: rate.OrganizationID,
		FromCurrencyID: rate.FromCurrencyID,
		ToCurrencyID:   rate.ToCurrencyID,
		Rate:           rate.Rate,
		EffectiveDate:  rate.EffectiveDate,
		IsActive:       rate.IsActive,
		CreatedAt:      rate.CreatedAt,
		CreatedBy:      rate.CreatedBy,
		LastUpdatedAt:  rate.LastUpdatedAt,
		LastUpdatedBy:  rate.LastUpdatedBy,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to a slice of ExchangeRateResponse DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}
