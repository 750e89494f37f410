package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies from a specific date onward.
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	OrganizationID string          `db:"organization_id"`
	FromCurrencyID string          `db:"from_currency_id"` // FK -> currencies.currency_id
	ToCurrencyID   string          `db:"to_currency_id"`   // FK -> currencies.currency_id
	Rate           decimal.Decimal `db:"rate"`             // NUMERIC(18,6)
	EffectiveDate  time.Time       `db:"effective_date"`
	IsActive       bool            `db:"is_active"`
	AuditFields
	SoftDelete
}
