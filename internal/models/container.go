package models

import (
	"github.com/shopspring/decimal"
)

// FinanceAccount represents a row of finance_accounts.
type FinanceAccount struct {
	AccountID      string          `db:"account_id"`
	OrganizationID string          `db:"organization_id"`
	Name           string          `db:"name"`
	Code           string          `db:"code"`
	CurrencyID     *string         `db:"currency_id"` // Nullable
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
	SoftDelete
}

// FinanceProject represents a row of finance_projects.
type FinanceProject struct {
	ProjectID      string          `db:"project_id"`
	OrganizationID string          `db:"organization_id"`
	Name           string          `db:"name"`
	Code           string          `db:"code"`
	CurrencyID     *string         `db:"currency_id"` // Nullable
	Budget         decimal.Decimal `db:"budget"`
	TotalIncome    decimal.Decimal `db:"total_income"`
	TotalExpense   decimal.Decimal `db:"total_expense"`
	IsActive       bool            `db:"is_active"`
	AuditFields
	SoftDelete
}

// Donor represents a row of donors.
type Donor struct {
	DonorID        string          `db:"donor_id"`
	OrganizationID string          `db:"organization_id"`
	Name           string          `db:"name"`
	CurrencyID     *string         `db:"currency_id"` // Nullable
	TotalDonated   decimal.Decimal `db:"total_donated"`
	IsActive       bool            `db:"is_active"`
	AuditFields
	SoftDelete
}
