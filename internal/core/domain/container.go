package domain

import (
	"github.com/shopspring/decimal"
)

// ContainerKind identifies which ledger-like entity a ContainerRef points to.
type ContainerKind string

const (
	ContainerAccount ContainerKind = "account"
	ContainerProject ContainerKind = "project"
	ContainerDonor   ContainerKind = "donor"
)

// Valid reports whether k is a known container kind.
func (k ContainerKind) Valid() bool {
	switch k {
	case ContainerAccount, ContainerProject, ContainerDonor:
		return true
	}
	return false
}

// ContainerRef addresses a single container row.
type ContainerRef struct {
	Kind ContainerKind `json:"kind"`
	ID   string        `json:"id"`
}

func (r ContainerRef) String() string {
	return string(r.Kind) + ":" + r.ID
}

// FinanceAccount is a cash/bank account whose CurrentBalance is a cache of
// OpeningBalance + income - approved expenses + owned asset value.
type FinanceAccount struct {
	AccountID      string          `json:"accountID"`
	OrganizationID string          `json:"organizationID"`
	Name           string          `json:"name"`
	Code           string          `json:"code"`
	CurrencyID     *string         `json:"currencyID"` // nil: no fixed currency
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
	SoftDelete
}

// FinanceProject tracks income and approved expense totals for a project.
type FinanceProject struct {
	ProjectID      string          `json:"projectID"`
	OrganizationID string          `json:"organizationID"`
	Name           string          `json:"name"`
	Code           string          `json:"code"`
	CurrencyID     *string         `json:"currencyID"`
	Budget         decimal.Decimal `json:"budget"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`
	IsActive       bool            `json:"isActive"`
	AuditFields
	SoftDelete
}

// Balance is derived on read and never stored.
func (p FinanceProject) Balance() decimal.Decimal {
	return p.TotalIncome.Sub(p.TotalExpense)
}

// Donor tracks the total of income entries attributed to it.
type Donor struct {
	DonorID        string          `json:"donorID"`
	OrganizationID string          `json:"organizationID"`
	Name           string          `json:"name"`
	CurrencyID     *string         `json:"currencyID"`
	TotalDonated   decimal.Decimal `json:"totalDonated"`
	IsActive       bool            `json:"isActive"`
	AuditFields
	SoftDelete
}
