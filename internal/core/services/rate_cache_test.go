package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/apperrors"
	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/SscSPs/finance_reconciler/internal/core/services"
	"github.com/SscSPs/finance_reconciler/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCachedRateSource_ServesRepeatLookupsFromCache(t *testing.T) {
	ctx := context.Background()
	next := new(MockRateLookup)
	rate := &domain.ExchangeRate{ExchangeRateID: "r1", FromCurrencyID: "usd", ToCurrencyID: "afn", Rate: dec("70")}
	next.On("FindLatestRate", mock.Anything, mock.Anything, testOrg, "usd", "afn", mock.Anything).Return(rate, nil).Once()

	cache := services.NewCachedRateSource(next, time.Minute)
	for i := 0; i < 3; i++ {
		got, err := cache.FindLatestRate(ctx, nil, testOrg, "usd", "afn", day("2024-02-01").Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, "70", got.Rate.String())
	}
	next.AssertExpectations(t)
}

func TestCachedRateSource_CachesMisses(t *testing.T) {
	ctx := context.Background()
	next := new(MockRateLookup)
	next.On("FindLatestRate", mock.Anything, mock.Anything, testOrg, "eur", "gbp", mock.Anything).
		Return(nil, apperrors.NewNotFoundError("exchange rate not found")).Once()
	next.On("FindBaseCurrency", mock.Anything, mock.Anything, testOrg).
		Return(nil, apperrors.NewNotFoundError("base currency not found")).Once()

	cache := services.NewCachedRateSource(next, time.Minute)
	for i := 0; i < 2; i++ {
		_, err := cache.FindLatestRate(ctx, nil, testOrg, "eur", "gbp", day("2024-02-01"))
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		_, err = cache.FindBaseCurrency(ctx, nil, testOrg)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	}
	next.AssertExpectations(t)
}

func TestCachedRateSource_DoesNotCacheFailures(t *testing.T) {
	ctx := context.Background()
	next := new(MockRateLookup)
	boom := errors.New("connection refused")
	next.On("FindBaseCurrency", mock.Anything, mock.Anything, testOrg).Return(nil, boom).Twice()

	cache := services.NewCachedRateSource(next, time.Minute)
	for i := 0; i < 2; i++ {
		_, err := cache.FindBaseCurrency(ctx, nil, testOrg)
		assert.ErrorIs(t, err, boom)
	}
	next.AssertExpectations(t)
}

func TestCachedRateSource_InvalidateOrganization(t *testing.T) {
	ctx := context.Background()
	next := new(MockRateLookup)
	next.On("FindBaseCurrency", mock.Anything, mock.Anything, testOrg).Return(&domain.Currency{CurrencyID: "afn"}, nil).Twice()
	next.On("FindBaseCurrency", mock.Anything, mock.Anything, "org-2").Return(&domain.Currency{CurrencyID: "usd"}, nil).Once()

	cache := services.NewCachedRateSource(next, time.Minute)
	_, err := cache.FindBaseCurrency(ctx, nil, testOrg)
	require.NoError(t, err)
	_, err = cache.FindBaseCurrency(ctx, nil, "org-2")
	require.NoError(t, err)

	cache.InvalidateOrganization(testOrg)

	base, err := cache.FindBaseCurrency(ctx, nil, testOrg)
	require.NoError(t, err)
	assert.Equal(t, "afn", base.CurrencyID)
	base, err = cache.FindBaseCurrency(ctx, nil, "org-2")
	require.NoError(t, err)
	assert.Equal(t, "usd", base.CurrencyID)
	next.AssertExpectations(t)
}

func TestCachedRateSource_ForwardsTx(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tx, err := store.Begin(ctx)
	require.NoError(t, err)
	defer store.Rollback(ctx, tx)

	next := new(MockRateLookup)
	next.On("FindLatestRate", mock.Anything, tx, testOrg, "usd", "afn", mock.Anything).Return(&domain.ExchangeRate{Rate: dec("70")}, nil).Once()
	next.On("FindBaseCurrency", mock.Anything, tx, testOrg).Return(&domain.Currency{CurrencyID: "afn"}, nil).Once()

	cache := services.NewCachedRateSource(next, time.Minute)
	_, err = cache.FindLatestRate(ctx, tx, testOrg, "usd", "afn", day("2024-02-01"))
	require.NoError(t, err)
	_, err = cache.FindBaseCurrency(ctx, tx, testOrg)
	require.NoError(t, err)

	// same key outside the tx is served from the cache
	_, err = cache.FindLatestRate(ctx, nil, testOrg, "usd", "afn", day("2024-02-01"))
	require.NoError(t, err)
	next.AssertExpectations(t)
}
