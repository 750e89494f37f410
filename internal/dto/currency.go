package dto

import (
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	Code          string `json:"code" binding:"required,len=3,alpha"`
	Symbol        string `json:"symbol" binding:"required"`
	Name          string `json:"name" binding:"required"`
	DecimalPlaces *int   `json:"decimalPlaces" binding:"omitempty,min=0,max=6"`
	IsBase        bool   `json:"isBase"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyID     string    `json:"currencyID"`
	OrganizationID string    `json:"organizationID"`
	Code           string    `json:"code"`
	Symbol         string    `json:"symbol"`
	Name           string    `json:"name"`
	DecimalPlaces  int       `json:"decimalPlaces"`
	IsBase         bool      `json:"isBase"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy  string    `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID:     curr.CurrencyID,
		OrganizationID: curr.OrganizationID,
		Code:           curr.Code,
		Symbol:         curr.Symbol,
		Name:           curr.Name,
		DecimalPlaces:  curr.DecimalPlaces,
		IsBase:         curr.IsBase,
		IsActive:       curr.IsActive,
		CreatedAt:      curr.CreatedAt,
		CreatedBy:      curr.CreatedBy,
		LastUpdatedAt:  curr.LastUpdatedAt,
		LastUpdatedBy:  curr.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return res
}
