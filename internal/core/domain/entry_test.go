package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func stringPtr(s string) *string { return &s }

func TestAssetStatus_IsOwned(t *testing.T) {
	tests := []struct {
		status domain.AssetStatus
		want   bool
	}{
		{domain.AssetAvailable, true},
		{domain.AssetAssigned, true},
		{domain.AssetMaintenance, true},
		{domain.AssetRetired, false},
		{domain.AssetDisposed, false},
		{domain.AssetLost, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.IsOwned())
		})
	}
}

func TestAsset_BookValue(t *testing.T) {
	asset := domain.Asset{PurchasePrice: decimal.RequireFromString("250.50"), TotalCopies: 3}
	assert.True(t, decimal.RequireFromString("751.50").Equal(asset.BookValue()))

	asset.TotalCopies = 0
	assert.True(t, decimal.RequireFromString("250.50").Equal(asset.BookValue()), "zero copies counts as one")
}

func TestAsset_PostingDateFallsBackToCreatedAt(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	asset := domain.Asset{AssetID: "a1", PurchasePrice: decimal.NewFromInt(10), AuditFields: domain.AuditFields{CreatedAt: created}}
	assert.Equal(t, created, asset.Posting().Date)

	purchased := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	asset.PurchaseDate = &purchased
	assert.Equal(t, purchased, asset.Posting().Date)
}

func TestIncomeEntry_Containers(t *testing.T) {
	entry := domain.IncomeEntry{AccountID: stringPtr("acc"), DonorID: stringPtr("don")}
	assert.Equal(t, []domain.ContainerRef{
		{Kind: domain.ContainerAccount, ID: "acc"},
		{Kind: domain.ContainerDonor, ID: "don"},
	}, entry.Containers())

	assert.Empty(t, domain.IncomeEntry{}.Containers())
}

func TestExpenseEntry_Counts(t *testing.T) {
	expense := domain.ExpenseEntry{Status: domain.ExpensePending}
	assert.False(t, expense.Counts())

	expense.Status = domain.ExpenseApproved
	assert.True(t, expense.Counts())

	now := time.Now()
	expense.DeletedAt = &now
	assert.False(t, expense.Counts())
}

func TestBalanceFields_Equal(t *testing.T) {
	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	base := domain.ExpenseEntry{
		AccountID:  stringPtr("acc"),
		CurrencyID: stringPtr("usd"),
		Amount:     decimal.RequireFromString("10.00"),
		Date:       day,
		Status:     domain.ExpenseApproved,
	}

	tests := []struct {
		name   string
		mutate func(e *domain.ExpenseEntry)
		want   bool
	}{
		{"description only", func(e *domain.ExpenseEntry) { e.Description = "renamed" }, true},
		{"same amount different scale", func(e *domain.ExpenseEntry) { e.Amount = decimal.RequireFromString("10") }, true},
		{"same day different time", func(e *domain.ExpenseEntry) { e.Date = day.Add(5 * time.Hour) }, true},
		{"amount", func(e *domain.ExpenseEntry) { e.Amount = decimal.NewFromInt(11) }, false},
		{"currency", func(e *domain.ExpenseEntry) { e.CurrencyID = stringPtr("afn") }, false},
		{"currency cleared", func(e *domain.ExpenseEntry) { e.CurrencyID = nil }, false},
		{"account", func(e *domain.ExpenseEntry) { e.AccountID = stringPtr("other") }, false},
		{"project", func(e *domain.ExpenseEntry) { e.ProjectID = stringPtr("p1") }, false},
		{"status", func(e *domain.ExpenseEntry) { e.Status = domain.ExpensePending }, false},
		{"date", func(e *domain.ExpenseEntry) { e.Date = day.AddDate(0, 0, 1) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := base
			tt.mutate(&changed)
			assert.Equal(t, tt.want, base.BalanceFields().Equal(changed.BalanceFields()))
		})
	}
}

func TestFinanceProject_Balance(t *testing.T) {
	p := domain.FinanceProject{TotalIncome: decimal.NewFromInt(500), TotalExpense: decimal.NewFromInt(750)}
	assert.True(t, decimal.NewFromInt(-250).Equal(p.Balance()))
}

func TestExchangeRate_AppliesOn(t *testing.T) {
	rate := domain.ExchangeRate{
		Rate:          decimal.NewFromInt(70),
		EffectiveDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	}
	assert.True(t, rate.AppliesOn(time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC)))
	assert.False(t, rate.AppliesOn(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))

	rate.IsActive = false
	assert.False(t, rate.AppliesOn(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
}
