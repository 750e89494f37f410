package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/dto"
	"github.com/SscSPs/finance_reconciler/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InMemoryWithoutDatabaseURL(t *testing.T) {
	cfg := &config.Config{
		TxIsolation:     config.IsolationRepeatableRead,
		RateCacheTTL:    time.Minute,
		LowBalanceFloor: decimal.NewFromInt(100),
		LowBalanceRatio: decimal.RequireFromString("0.1"),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app, err := New(context.Background(), cfg, logger, Options{RunMigrations: true})
	require.NoError(t, err)
	defer app.Close()

	ctx := context.Background()
	currency, err := app.Services.Currency.CreateCurrency(ctx, "org", dto.CreateCurrencyRequest{Code: "usd", Symbol: "$", Name: "US Dollar", IsBase: true}, "user")
	require.NoError(t, err)

	account, err := app.Services.Container.CreateAccount(ctx, "org", dto.CreateAccountRequest{
		Name:           "Cash",
		CurrencyID:     &currency.CurrencyID,
		OpeningBalance: decimal.NewFromInt(50),
	}, "user")
	require.NoError(t, err)

	_, recalcs, err := app.Services.Entry.CreateIncome(ctx, "org", dto.CreateIncomeRequest{
		AccountID:  &account.AccountID,
		CurrencyID: &currency.CurrencyID,
		Amount:     decimal.NewFromInt(25),
		Date:       time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}, "user")
	require.NoError(t, err)
	require.Len(t, recalcs, 1)
	assert.True(t, decimal.NewFromInt(75).Equal(recalcs[0].Balance))
}

func TestApp_CloseRunsInReverseOrder(t *testing.T) {
	var order []int
	app := &App{closers: []func(){
		func() { order = append(order, 1) },
		func() { order = append(order, 2) },
	}}
	app.Close()
	assert.Equal(t, []int{2, 1}, order)
}
