package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/apperrors"
	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/SscSPs/finance_reconciler/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const org = "org-1"

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(s string) *string { return &s }

func TestStore_RollbackRestoresSnapshot(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.SaveAccount(ctx, domain.FinanceAccount{AccountID: "acc", OrganizationID: org, CurrentBalance: decimal.NewFromInt(10)}))

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, s.UpdateAccountBalanceInTx(ctx, tx, "acc", decimal.NewFromInt(99), time.Now()))
	require.NoError(t, s.Rollback(ctx, tx))

	acc, err := s.FindAccountByID(ctx, org, "acc")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(acc.CurrentBalance))
}

func TestStore_RollbackAfterCommitIsNoop(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.SaveAccount(ctx, domain.FinanceAccount{AccountID: "acc", OrganizationID: org}))

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, s.UpdateAccountBalanceInTx(ctx, tx, "acc", decimal.NewFromInt(5), time.Now()))
	require.NoError(t, s.Commit(ctx, tx))
	require.NoError(t, s.Rollback(ctx, tx))

	acc, err := s.FindAccountByID(ctx, org, "acc")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(5).Equal(acc.CurrentBalance))

	// the store is usable again
	tx2, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Commit(ctx, tx2))
}

func TestStore_RollbackKeepsWritesMadeOutsideTheTransaction(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.SaveAccount(ctx, domain.FinanceAccount{AccountID: "acc", OrganizationID: org, CurrentBalance: decimal.NewFromInt(10)}))

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, s.UpdateAccountBalanceInTx(ctx, tx, "acc", decimal.NewFromInt(99), time.Now()))

	saved := make(chan error, 1)
	go func() {
		if err := s.SaveExchangeRate(ctx, domain.ExchangeRate{ExchangeRateID: "r1", OrganizationID: org, FromCurrencyID: "usd", ToCurrencyID: "afn", IsActive: true}); err != nil {
			saved <- err
			return
		}
		saved <- s.SaveAccount(ctx, domain.FinanceAccount{AccountID: "acc2", OrganizationID: org})
	}()

	select {
	case err := <-saved:
		t.Fatalf("write outside the transaction finished before rollback: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
	require.NoError(t, s.Rollback(ctx, tx))
	require.NoError(t, <-saved)

	_, err = s.FindExchangeRateByID(ctx, org, "r1")
	assert.NoError(t, err)
	_, err = s.FindAccountByID(ctx, org, "acc2")
	assert.NoError(t, err)

	acc, err := s.FindAccountByID(ctx, org, "acc")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(acc.CurrentBalance), "the transaction's own write is still undone")
}

func TestStore_SoftDeleteAccount(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.SaveAccount(ctx, domain.FinanceAccount{AccountID: "acc", OrganizationID: org}))

	assert.ErrorIs(t, s.SoftDeleteAccount(ctx, "other-org", "acc", "u", time.Now()), apperrors.ErrNotFound)
	require.NoError(t, s.SoftDeleteAccount(ctx, org, "acc", "u", time.Now()))

	_, err := s.FindAccountByID(ctx, org, "acc")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, s.SoftDeleteAccount(ctx, org, "acc", "u", time.Now()), apperrors.ErrNotFound)
}

func TestStore_FailOnIsOneShot(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	boom := errors.New("boom")
	s.FailOn("SaveDonor", boom)

	assert.ErrorIs(t, s.SaveDonor(ctx, domain.Donor{DonorID: "d"}), boom)
	assert.NoError(t, s.SaveDonor(ctx, domain.Donor{DonorID: "d"}))
}

func TestStore_FindLatestRateInTx(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	for _, r := range []domain.ExchangeRate{
		{ExchangeRateID: "r1", Rate: decimal.NewFromInt(70), EffectiveDate: day("2024-01-01"), IsActive: true},
		{ExchangeRateID: "r2", Rate: decimal.NewFromInt(75), EffectiveDate: day("2024-06-01"), IsActive: true},
		{ExchangeRateID: "r3", Rate: decimal.NewFromInt(99), EffectiveDate: day("2024-09-01"), IsActive: false},
	} {
		r.OrganizationID, r.FromCurrencyID, r.ToCurrencyID = org, "usd", "afn"
		require.NoError(t, s.SaveExchangeRate(ctx, r))
	}

	rate, err := s.FindLatestRateInTx(ctx, nil, org, "usd", "afn", day("2024-03-01"))
	require.NoError(t, err)
	assert.Equal(t, "r1", rate.ExchangeRateID)

	rate, err = s.FindLatestRateInTx(ctx, nil, org, "usd", "afn", day("2024-12-01"))
	require.NoError(t, err)
	assert.Equal(t, "r2", rate.ExchangeRateID, "inactive rows never apply")

	_, err = s.FindLatestRateInTx(ctx, nil, org, "usd", "afn", day("2023-12-31"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = s.FindLatestRateInTx(ctx, nil, "other-org", "usd", "afn", day("2024-12-01"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_ListExchangeRatesNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.SaveExchangeRate(ctx, domain.ExchangeRate{ExchangeRateID: "a", OrganizationID: org, FromCurrencyID: "usd", ToCurrencyID: "afn", EffectiveDate: day("2024-01-01"), IsActive: true}))
	require.NoError(t, s.SaveExchangeRate(ctx, domain.ExchangeRate{ExchangeRateID: "b", OrganizationID: org, FromCurrencyID: "eur", ToCurrencyID: "afn", EffectiveDate: day("2024-05-01"), IsActive: false}))
	require.NoError(t, s.DeleteExchangeRate(ctx, org, "a", "u", time.Now()))
	require.NoError(t, s.SaveExchangeRate(ctx, domain.ExchangeRate{ExchangeRateID: "c", OrganizationID: org, FromCurrencyID: "usd", ToCurrencyID: "afn", EffectiveDate: day("2024-03-01"), IsActive: true}))

	rates, err := s.ListExchangeRates(ctx, org, domain.ExchangeRateFilter{})
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, "b", rates[0].ExchangeRateID)
	assert.Equal(t, "c", rates[1].ExchangeRateID)

	rates, err = s.ListExchangeRates(ctx, org, domain.ExchangeRateFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, rates, 1)
	assert.Equal(t, "c", rates[0].ExchangeRateID)
}

func TestStore_SetBaseCurrencyClearsSiblings(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.SaveCurrency(ctx, domain.Currency{CurrencyID: "afn", OrganizationID: org, Code: "AFN", IsBase: true}))
	require.NoError(t, s.SaveCurrency(ctx, domain.Currency{CurrencyID: "usd", OrganizationID: org, Code: "USD"}))
	require.NoError(t, s.SaveCurrency(ctx, domain.Currency{CurrencyID: "x", OrganizationID: "other", Code: "AFN", IsBase: true}))

	require.NoError(t, s.SetBaseCurrencyInTx(ctx, nil, org, "usd", "u", time.Now()))

	base, err := s.FindBaseCurrency(ctx, org)
	require.NoError(t, err)
	assert.Equal(t, "usd", base.CurrencyID)

	currencies, err := s.ListCurrencies(ctx, org)
	require.NoError(t, err)
	bases := 0
	for _, c := range currencies {
		if c.IsBase {
			bases++
		}
	}
	assert.Equal(t, 1, bases)

	other, err := s.FindBaseCurrency(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, "x", other.CurrencyID)
}

func TestStore_ListContributionsFilters(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	now := time.Now()

	require.NoError(t, s.InsertIncomeInTx(ctx, nil, domain.IncomeEntry{EntryID: "i1", AccountID: strPtr("acc"), DonorID: strPtr("don")}))
	require.NoError(t, s.InsertIncomeInTx(ctx, nil, domain.IncomeEntry{EntryID: "i2", AccountID: strPtr("acc"), SoftDelete: domain.SoftDelete{DeletedAt: &now}}))
	require.NoError(t, s.InsertExpenseInTx(ctx, nil, domain.ExpenseEntry{EntryID: "e1", AccountID: strPtr("acc"), Status: domain.ExpenseApproved}))
	require.NoError(t, s.InsertExpenseInTx(ctx, nil, domain.ExpenseEntry{EntryID: "e2", AccountID: strPtr("acc"), Status: domain.ExpensePending}))
	require.NoError(t, s.InsertAssetInTx(ctx, nil, domain.Asset{AssetID: "a1", FinanceAccountID: strPtr("acc"), Status: domain.AssetAssigned}))
	require.NoError(t, s.InsertAssetInTx(ctx, nil, domain.Asset{AssetID: "a2", FinanceAccountID: strPtr("acc"), Status: domain.AssetDisposed}))

	rows, err := s.ListContributions(ctx, nil, domain.ContainerRef{Kind: domain.ContainerAccount, ID: "acc"})
	require.NoError(t, err)
	require.Len(t, rows.Income, 1)
	assert.Equal(t, "i1", rows.Income[0].EntryID)
	require.Len(t, rows.Expenses, 1)
	assert.Equal(t, "e1", rows.Expenses[0].EntryID)
	require.Len(t, rows.Assets, 1)
	assert.Equal(t, "a1", rows.Assets[0].AssetID)

	rows, err = s.ListContributions(ctx, nil, domain.ContainerRef{Kind: domain.ContainerDonor, ID: "don"})
	require.NoError(t, err)
	assert.Len(t, rows.Income, 1)
	assert.Empty(t, rows.Expenses)
	assert.Empty(t, rows.Assets)
}
