package dto

import (
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new finance account.
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	Code           string          `json:"code" binding:"omitempty,max=50"`
	CurrencyID     *string         `json:"currencyID"` // Optional: nil keeps the account currency-agnostic
	OpeningBalance decimal.Decimal `json:"openingBalance" binding:"gte=0"`
}

// UpdateOpeningBalanceRequest changes an account's opening balance.
type UpdateOpeningBalanceRequest struct {
	OpeningBalance decimal.Decimal `json:"openingBalance" binding:"gte=0"`
}

// AccountResponse defines the data returned for a finance account.
type AccountResponse struct {
	AccountID      string          `json:"accountID"`
	OrganizationID string          `json:"organizationID"`
	Name           string          `json:"name"`
	Code           string          `json:"code"`
	CurrencyID     *string         `json:"currencyID"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.FinanceAccount to AccountResponse DTO
func ToAccountResponse(a *domain.FinanceAccount) AccountResponse {
	return AccountResponse{
		AccountID:      a.AccountID,
		OrganizationID: a.OrganizationID,
		Name:           a.Name,
		Code:           a.Code,
		CurrencyID:     a.CurrencyID,
		OpeningBalance: a.OpeningBalance,
		CurrentBalance: a.CurrentBalance,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		LastUpdatedAt:  a.LastUpdatedAt,
	}
}

// CreateProjectRequest defines the data needed to create a new finance project.
type CreateProjectRequest struct {
	Name       string          `json:"name" binding:"required"`
	Code       string          `json:"code" binding:"omitempty,max=50"`
	CurrencyID *string         `json:"currencyID"`
	Budget     decimal.Decimal `json:"budget" binding:"gte=0"`
}

// ProjectResponse defines the data returned for a project; Balance is derived.
type ProjectResponse struct {
	ProjectID      string          `json:"projectID"`
	OrganizationID string          `json:"organizationID"`
	Name           string          `json:"name"`
	Code           string          `json:"code"`
	CurrencyID     *string         `json:"currencyID"`
	Budget         decimal.Decimal `json:"budget"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalExpense   decimal.Decimal `json:"totalExpense"`
	Balance        decimal.Decimal `json:"balance"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToProjectResponse converts a domain.FinanceProject to ProjectResponse DTO
func ToProjectResponse(p *domain.FinanceProject) ProjectResponse {
	return ProjectResponse{
		ProjectID:      p.ProjectID,
		OrganizationID: p.OrganizationID,
		Name:           p.Name,
		Code:           p.Code,
		CurrencyID:     p.CurrencyID,
		Budget:         p.Budget,
		TotalIncome:    p.TotalIncome,
		TotalExpense:   p.TotalExpense,
		Balance:        p.Balance(),
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		LastUpdatedAt:  p.LastUpdatedAt,
	}
}

// CreateDonorRequest defines the data needed to create a new donor.
type CreateDonorRequest struct {
	Name       string  `json:"name" binding:"required"`
	CurrencyID *string `json:"currencyID"`
}

// DonorResponse defines the data returned for a donor.
type DonorResponse struct {
	DonorID        string          `json:"donorID"`
	OrganizationID string          `json:"organizationID"`
	Name           string          `json:"name"`
	CurrencyID     *string         `json:"currencyID"`
	TotalDonated   decimal.Decimal `json:"totalDonated"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToDonorResponse converts a domain.Donor to DonorResponse DTO
func ToDonorResponse(d *domain.Donor) DonorResponse {
	return DonorResponse{
		DonorID:        d.DonorID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		CurrencyID:     d.CurrencyID,
		TotalDonated:   d.TotalDonated,
		IsActive:       d.IsActive,
		CreatedAt:      d.CreatedAt,
		LastUpdatedAt:  d.LastUpdatedAt,
	}
}

// RecalculationResponse reports one recomputed container.
type RecalculationResponse struct {
	ContainerKind   domain.ContainerKind `json:"containerKind"`
	ContainerID     string               `json:"containerID"`
	CurrencyID      *string              `json:"currencyID"`
	Balance         decimal.Decimal      `json:"balance"`
	TotalIncome     decimal.Decimal      `json:"totalIncome"`
	TotalExpense    decimal.Decimal      `json:"totalExpense"`
	Degraded        bool                 `json:"degraded"`
	UnconvertedRows []string             `json:"unconvertedRows,omitempty"`
	Skipped         bool                 `json:"skipped,omitempty"`
}

// ToRecalculationResponse converts a domain.Recalculation to RecalculationResponse DTO
func ToRecalculationResponse(r domain.Recalculation) RecalculationResponse {
	return RecalculationResponse{
		ContainerKind:   r.Container.Kind,
		ContainerID:     r.Container.ID,
		CurrencyID:      r.CurrencyID,
		Balance:         r.Balance,
		TotalIncome:     r.TotalIncome,
		TotalExpense:    r.TotalExpense,
		Degraded:        r.Degraded,
		UnconvertedRows: r.UnconvertedRows,
		Skipped:         r.Skipped,
	}
}

// ToListRecalculationResponse converts a slice of recalculations.
func ToListRecalculationResponse(rs []domain.Recalculation) []RecalculationResponse {
	res := make([]RecalculationResponse, len(rs))
	for i, r := range rs {
		res[i] = ToRecalculationResponse(r)
	}
	return res
}
