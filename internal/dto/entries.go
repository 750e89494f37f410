package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateIncomeRequest defines the data needed to record income.
type CreateIncomeRequest struct {
	AccountID   *string         `json:"accountID"`
	ProjectID   *string         `json:"projectID"`
	DonorID     *string         `json:"donorID"`
	CurrencyID  *string         `json:"currencyID"`
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Date        time.Time       `json:"date" binding:"required"`
	Description string          `json:"description"`
	ReferenceNo string          `json:"referenceNo"`
}

// UpdateIncomeRequest replaces every mutable field of an income entry.
type UpdateIncomeRequest CreateIncomeRequest

// CreateExpenseRequest defines the data needed to record an expense.
type CreateExpenseRequest struct {
	AccountID   *string         `json:"accountID"`
	ProjectID   *string         `json:"projectID"`
	CurrencyID  *string         `json:"currencyID"`
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Date        time.Time       `json:"date" binding:"required"`
	Status      string          `json:"status" binding:"omitempty,oneof=pending approved rejected"` // defaults to approved
	Description string          `json:"description"`
	ReferenceNo string          `json:"referenceNo"`
}

// UpdateExpenseRequest replaces every mutable field of an expense entry.
type UpdateExpenseRequest CreateExpenseRequest

// CreateAssetRequest defines the data needed to register an asset.
type CreateAssetRequest struct {
	Name             string          `json:"name" binding:"required"`
	AssetTag         string          `json:"assetTag"`
	FinanceAccountID *string         `json:"financeAccountID"`
	CurrencyID       *string         `json:"currencyID"`
	PurchasePrice    decimal.Decimal `json:"purchasePrice" binding:"gte=0"`
	PurchaseDate     *time.Time      `json:"purchaseDate"`
	TotalCopies      int             `json:"totalCopies" binding:"gte=0"`
	Status           string          `json:"status" binding:"omitempty,oneof=available assigned maintenance retired disposed lost"` // defaults to available
}

// UpdateAssetRequest replaces every mutable field of an asset.
type UpdateAssetRequest CreateAssetRequest

// EntryMutationResponse returns the mutated row along with every container recomputed for it.
type EntryMutationResponse struct {
	Entry          any                     `json:"entry,omitempty"`
	Recalculations []RecalculationResponse `json:"recalculations"`
}
