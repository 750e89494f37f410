package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/apperrors"
	"github.com/SscSPs/finance_reconciler/internal/core/services"
	"github.com/SscSPs/finance_reconciler/internal/dto"
	"github.com/SscSPs/finance_reconciler/internal/platform/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRateService_CreateValidates(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	rate, err := f.svc.ExchangeRate.CreateExchangeRate(ctx, testOrg, dto.CreateExchangeRateRequest{
		FromCurrencyID: "eur",
		ToCurrencyID:   "usd",
		Rate:           dec("1.08123456789"),
		EffectiveDate:  time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC),
	}, testUser)
	require.NoError(t, err)
	assert.True(t, rate.IsActive)
	assert.Equal(t, "1.081235", rate.Rate.String())
	assert.Equal(t, day("2024-03-01"), rate.EffectiveDate)

	tests := []struct {
		name string
		req  dto.CreateExchangeRateRequest
		want error
	}{
		{"same pair and day", dto.CreateExchangeRateRequest{FromCurrencyID: "eur", ToCurrencyID: "usd", Rate: dec("1.1"), EffectiveDate: day("2024-03-01")}, apperrors.ErrDuplicate},
		{"same currency", dto.CreateExchangeRateRequest{FromCurrencyID: "eur", ToCurrencyID: "eur", Rate: dec("1"), EffectiveDate: day("2024-03-01")}, apperrors.ErrValidation},
		{"zero rate", dto.CreateExchangeRateRequest{FromCurrencyID: "gbp", ToCurrencyID: "usd", Rate: dec("0"), EffectiveDate: day("2024-03-01")}, apperrors.ErrValidation},
		{"unknown currency", dto.CreateExchangeRateRequest{FromCurrencyID: "xyz", ToCurrencyID: "usd", Rate: dec("2"), EffectiveDate: day("2024-03-01")}, apperrors.ErrValidation},
		{"missing date", dto.CreateExchangeRateRequest{FromCurrencyID: "gbp", ToCurrencyID: "usd", Rate: dec("1.2")}, apperrors.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.ExchangeRate.CreateExchangeRate(ctx, testOrg, tt.req, testUser)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExchangeRateService_ResolveRate(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	f.addRate(t, "eur", "afn", "80", "2024-01-01")
	f.addRate(t, "gbp", "afn", "90", "2024-01-01")

	tests := []struct {
		name      string
		from, to  string
		amount    string
		found     bool
		converted string
	}{
		{"direct", "usd", "afn", "2.5", true, "175.00"},
		{"reverse", "afn", "usd", "140", true, "2.00"},
		{"through base", "eur", "gbp", "9", true, "8.00"},
		{"identity", "gbp", "gbp", "12.345", true, "12.35"},
		{"through base with reverse leg", "eur", "usd", "1", true, "1.14"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := f.svc.ExchangeRate.ResolveRate(ctx, testOrg, dto.ResolveRateParams{
				FromCurrencyID: tt.from,
				ToCurrencyID:   tt.to,
				AsOf:           dayPtr("2024-06-01"),
				Amount:         tt.amount,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.found, res.Found)
			require.NotNil(t, res.ConvertedAmount)
			assert.Equal(t, tt.converted, res.ConvertedAmount.StringFixed(2))
		})
	}
}

func TestExchangeRateService_ResolveRateWithoutPath(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()

	res, err := f.svc.ExchangeRate.ResolveRate(ctx, testOrg, dto.ResolveRateParams{FromCurrencyID: "eur", ToCurrencyID: "gbp", Amount: "10"})
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Nil(t, res.Rate)
	assert.Nil(t, res.ConvertedAmount)

	res, err = f.svc.ExchangeRate.ResolveRate(ctx, testOrg, dto.ResolveRateParams{FromCurrencyID: "usd", ToCurrencyID: "afn", AsOf: dayPtr("2023-12-31")})
	require.NoError(t, err)
	assert.False(t, res.Found, "no rate is effective before 2024-01-01")

	_, err = f.svc.ExchangeRate.ResolveRate(ctx, testOrg, dto.ResolveRateParams{FromCurrencyID: "usd", ToCurrencyID: "afn", Amount: "ten"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.ExchangeRate.ResolveRate(ctx, testOrg, dto.ResolveRateParams{FromCurrencyID: "usd", ToCurrencyID: "xyz"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestExchangeRateService_WritesInvalidateCachedRates(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	svc := services.NewServiceContainer(&config.Config{RateCacheTTL: time.Hour}, f.store.Provider(), nil)

	resolve := func() string {
		res, err := svc.ExchangeRate.ResolveRate(ctx, testOrg, dto.ResolveRateParams{FromCurrencyID: "eur", ToCurrencyID: "afn", AsOf: dayPtr("2024-06-01"), Amount: "1"})
		require.NoError(t, err)
		if !res.Found {
			return "none"
		}
		return res.ConvertedAmount.StringFixed(2)
	}
	assert.Equal(t, "none", resolve())

	rate, err := svc.ExchangeRate.CreateExchangeRate(ctx, testOrg, dto.CreateExchangeRateRequest{FromCurrencyID: "eur", ToCurrencyID: "afn", Rate: dec("80"), EffectiveDate: day("2024-01-01")}, testUser)
	require.NoError(t, err)
	assert.Equal(t, "80.00", resolve(), "a cached miss is dropped when a rate is created")

	newRate := dec("82")
	_, err = svc.ExchangeRate.UpdateExchangeRate(ctx, testOrg, rate.ExchangeRateID, dto.UpdateExchangeRateRequest{Rate: &newRate}, testUser)
	require.NoError(t, err)
	assert.Equal(t, "82.00", resolve())

	require.NoError(t, svc.ExchangeRate.DeleteExchangeRate(ctx, testOrg, rate.ExchangeRateID, testUser))
	assert.Equal(t, "none", resolve())

	_, err = svc.ExchangeRate.GetExchangeRate(ctx, testOrg, rate.ExchangeRateID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestExchangeRateService_List(t *testing.T) {
	f := newLedgerFixture(t)
	ctx := context.Background()
	f.addRate(t, "usd", "afn", "71", "2024-02-01")
	f.addRate(t, "eur", "afn", "80", "2024-01-01")

	page, err := f.svc.ExchangeRate.ListExchangeRates(ctx, testOrg, dto.ListExchangeRatesParams{FromCurrencyID: "usd"})
	require.NoError(t, err)
	require.Len(t, page.Rates, 2)
	assert.Equal(t, "71", page.Rates[0].Rate.String(), "newest effective date first")
	assert.Nil(t, page.NextToken)

	none, err := f.svc.ExchangeRate.ListExchangeRates(ctx, testOrg, dto.ListExchangeRatesParams{FromCurrencyID: "gbp"})
	require.NoError(t, err)
	assert.NotNil(t, none.Rates)
	assert.Empty(t, none.Rates)
}

func TestExchangeRateService_ListPages(t *testing.T) {
	ctx := context.Background()
	f := newLedgerFixture(t)
	f.addRate(t, "usd", "afn", "71", "2024-02-01")
	f.addRate(t, "eur", "afn", "80", "2024-02-01")
	f.addRate(t, "gbp", "afn", "90", "2023-06-01")

	var seen []string
	params := dto.ListExchangeRatesParams{Limit: 2}
	for pages := 0; ; pages++ {
		require.Less(t, pages, 3)
		page, err := f.svc.ExchangeRate.ListExchangeRates(ctx, testOrg, params)
		require.NoError(t, err)
		for _, r := range page.Rates {
			seen = append(seen, r.ExchangeRateID)
		}
		if page.NextToken == nil {
			break
		}
		params.NextToken = *page.NextToken
	}

	assert.Equal(t, []string{
		"eur-afn-2024-02-01",
		"usd-afn-2024-02-01",
		"usd-afn-2024-01-01",
		"gbp-afn-2023-06-01",
	}, seen)

	_, err := f.svc.ExchangeRate.ListExchangeRates(ctx, testOrg, dto.ListExchangeRatesParams{NextToken: "!!"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
