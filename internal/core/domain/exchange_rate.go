package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MinExchangeRate is the smallest rate the write path accepts.
var MinExchangeRate = decimal.New(1, -RateScale)

// ExchangeRate means 1 unit of FromCurrencyID = Rate units of ToCurrencyID,
// valid from EffectiveDate until superseded by a later row for the same pair.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	OrganizationID string          `json:"organizationID"`
	FromCurrencyID string          `json:"fromCurrencyID"`
	ToCurrencyID   string          `json:"toCurrencyID"`
	Rate           decimal.Decimal `json:"rate"`
	EffectiveDate  time.Time       `json:"effectiveDate"`
	IsActive       bool            `json:"isActive"`
	AuditFields
	SoftDelete
}

// AppliesOn reports whether the row is usable for a conversion on day.
func (r ExchangeRate) AppliesOn(day time.Time) bool {
	return r.IsActive && !r.IsDeleted() && !DateOnly(r.EffectiveDate).After(DateOnly(day))
}

// ExchangeRateFilter narrows ListExchangeRates.
type ExchangeRateFilter struct {
	FromCurrencyID      *string
	ToCurrencyID        *string
	ActiveOnly          bool
	EffectiveOnOrBefore *time.Time

	// After resumes a listing past the given row. Limit <= 0 means no limit.
	After *ExchangeRateCursor
	Limit int
}

// ExchangeRateCursor is a position in the (effective_date DESC, exchange_rate_id) ordering.
type ExchangeRateCursor struct {
	EffectiveDate  time.Time
	ExchangeRateID string
}

// Follows reports whether r sorts strictly after the cursor.
func (c ExchangeRateCursor) Follows(r ExchangeRate) bool {
	day, at := DateOnly(r.EffectiveDate), DateOnly(c.EffectiveDate)
	if !day.Equal(at) {
		return day.Before(at)
	}
	return r.ExchangeRateID > c.ExchangeRateID
}
