package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/finance_reconciler/internal/apperrors"
	"github.com/SscSPs/finance_reconciler/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyService_CreateCurrency(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	chf, err := f.svc.Currency.CreateCurrency(ctx, testOrg, dto.CreateCurrencyRequest{Code: "chf", Symbol: "Fr", Name: "Swiss Franc"}, testUser)
	require.NoError(t, err)
	assert.Equal(t, "CHF", chf.Code)
	assert.Equal(t, 2, chf.DecimalPlaces)
	assert.False(t, chf.IsBase)
	assert.True(t, chf.IsActive)

	_, err = f.svc.Currency.CreateCurrency(ctx, testOrg, dto.CreateCurrencyRequest{Code: "USD", Symbol: "$", Name: "Dollar"}, testUser)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	zero := 0
	jpy, err := f.svc.Currency.CreateCurrency(ctx, testOrg, dto.CreateCurrencyRequest{Code: "JPY", Symbol: "¥", Name: "Yen", DecimalPlaces: &zero}, testUser)
	require.NoError(t, err)
	assert.Equal(t, 0, jpy.DecimalPlaces)
}

func TestCurrencyService_ListCurrenciesSortedByCode(t *testing.T) {
	f := newLedgerFixture(t)

	currencies, err := f.svc.Currency.ListCurrencies(context.Background(), testOrg)
	require.NoError(t, err)
	codes := make([]string, len(currencies))
	for i, c := range currencies {
		codes[i] = c.Code
	}
	assert.Equal(t, []string{"AFN", "EUR", "GBP", "USD"}, codes)

	empty, err := f.svc.Currency.ListCurrencies(context.Background(), "empty-org")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCurrencyService_SetBaseCurrencyKeepsSingleBase(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	usd, err := f.svc.Currency.SetBaseCurrency(ctx, testOrg, "usd", testUser)
	require.NoError(t, err)
	assert.True(t, usd.IsBase)

	base, err := f.store.FindBaseCurrency(ctx, testOrg)
	require.NoError(t, err)
	assert.Equal(t, "usd", base.CurrencyID)

	afn, err := f.svc.Currency.GetCurrency(ctx, testOrg, "afn")
	require.NoError(t, err)
	assert.False(t, afn.IsBase)

	_, err = f.svc.Currency.SetBaseCurrency(ctx, testOrg, "missing", testUser)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCurrencyService_CreateBaseCurrency(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	chf, err := f.svc.Currency.CreateCurrency(ctx, testOrg, dto.CreateCurrencyRequest{Code: "CHF", Symbol: "Fr", Name: "Swiss Franc", IsBase: true}, testUser)
	require.NoError(t, err)
	assert.True(t, chf.IsBase)

	base, err := f.store.FindBaseCurrency(ctx, testOrg)
	require.NoError(t, err)
	assert.Equal(t, chf.CurrencyID, base.CurrencyID)
}
