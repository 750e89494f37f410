package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeEntry represents a row of income_entries.
type IncomeEntry struct {
	EntryID        string          `db:"entry_id"`
	OrganizationID string          `db:"organization_id"`
	AccountID      *string         `db:"account_id"`
	ProjectID      *string         `db:"project_id"`
	DonorID        *string         `db:"donor_id"`
	CurrencyID     *string         `db:"currency_id"`
	Amount         decimal.Decimal `db:"amount"`
	Date           time.Time       `db:"entry_date"`
	Description    string          `db:"description"`
	ReferenceNo    string          `db:"reference_no"`
	AuditFields
	SoftDelete
}

// ExpenseEntry represents a row of expense_entries.
type ExpenseEntry struct {
	EntryID        string          `db:"entry_id"`
	OrganizationID string          `db:"organization_id"`
	AccountID      *string         `db:"account_id"`
	ProjectID      *string         `db:"project_id"`
	CurrencyID     *string         `db:"currency_id"`
	Amount         decimal.Decimal `db:"amount"`
	Date           time.Time       `db:"entry_date"`
	Status         string          `db:"status"`
	Description    string          `db:"description"`
	ReferenceNo    string          `db:"reference_no"`
	AuditFields
	SoftDelete
}

// Asset represents a row of assets.
type Asset struct {
	AssetID          string          `db:"asset_id"`
	OrganizationID   string          `db:"organization_id"`
	Name             string          `db:"name"`
	AssetTag         string          `db:"asset_tag"`
	FinanceAccountID *string         `db:"finance_account_id"`
	CurrencyID       *string         `db:"currency_id"`
	PurchasePrice    decimal.Decimal `db:"purchase_price"`
	PurchaseDate     *time.Time      `db:"purchase_date"`
	TotalCopies      int             `db:"total_copies"`
	Status           string          `db:"status"`
	AuditFields
	SoftDelete
}
