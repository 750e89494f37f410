package services

import (
	"context"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/SscSPs/finance_reconciler/internal/dto"
)

// IncomeSvc mutates income entries and recalculates what they touch.
type IncomeSvc interface {
	CreateIncome(ctx context.Context, organizationID string, req dto.CreateIncomeRequest, userID string) (*domain.IncomeEntry, []domain.Recalculation, error)
	UpdateIncome(ctx context.Context, organizationID, entryID string, req dto.UpdateIncomeRequest, userID string) (*domain.IncomeEntry, []domain.Recalculation, error)
	DeleteIncome(ctx context.Context, organizationID, entryID, userID string) ([]domain.Recalculation, error)
}

// ExpenseSvc mutates expense entries and recalculates what they touch.
type ExpenseSvc interface {
	CreateExpense(ctx context.Context, organizationID string, req dto.CreateExpenseRequest, userID string) (*domain.ExpenseEntry, []domain.Recalculation, error)
	UpdateExpense(ctx context.Context, organizationID, entryID string, req dto.UpdateExpenseRequest, userID string) (*domain.ExpenseEntry, []domain.Recalculation, error)
	DeleteExpense(ctx context.Context, organizationID, entryID, userID string) ([]domain.Recalculation, error)
}

// AssetSvc mutates assets and recalculates the finance accounts they count toward.
type AssetSvc interface {
	CreateAsset(ctx context.Context, organizationID string, req dto.CreateAssetRequest, userID string) (*domain.Asset, []domain.Recalculation, error)
	UpdateAsset(ctx context.Context, organizationID, assetID string, req dto.UpdateAssetRequest, userID string) (*domain.Asset, []domain.Recalculation, error)
	DeleteAsset(ctx context.Context, organizationID, assetID, userID string) ([]domain.Recalculation, error)
}

// EntrySvcFacade combines all transaction-row service interfaces
type EntrySvcFacade interface {
	IncomeSvc
	ExpenseSvc
	AssetSvc
}
