package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	portssvc "github.com/SscSPs/finance_reconciler/internal/core/ports/services"
	"github.com/SscSPs/finance_reconciler/internal/core/services"
	"github.com/SscSPs/finance_reconciler/internal/platform/config"
	"github.com/SscSPs/finance_reconciler/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const (
	testOrg  = "org-1"
	testUser = "user-1"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.BalanceRecalculatedEvent
}

func (p *recordingPublisher) PublishBalanceRecalculated(ctx context.Context, events ...domain.BalanceRecalculatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Events() []domain.BalanceRecalculatedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]domain.BalanceRecalculatedEvent(nil), p.events...)
}

// ledgerFixture wires every service over a fresh memory store with an
// organization whose base currency is AFN and which has USD and EUR as well.
type ledgerFixture struct {
	store     *memory.Store
	svc       *portssvc.ServiceContainer
	publisher *recordingPublisher
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	publisher := &recordingPublisher{}
	cfg := &config.Config{
		LowBalanceFloor: decimal.NewFromInt(100),
		LowBalanceRatio: dec("0.1"),
	}

	f := &ledgerFixture{
		store:     store,
		svc:       services.NewServiceContainer(cfg, store.Provider(), publisher),
		publisher: publisher,
	}

	for _, c := range []domain.Currency{
		{CurrencyID: "afn", Code: "AFN", IsBase: true},
		{CurrencyID: "usd", Code: "USD"},
		{CurrencyID: "eur", Code: "EUR"},
		{CurrencyID: "gbp", Code: "GBP"},
	} {
		c.OrganizationID, c.DecimalPlaces, c.IsActive = testOrg, 2, true
		require.NoError(t, store.SaveCurrency(ctx, c))
	}
	f.addRate(t, "usd", "afn", "70", "2024-01-01")
	return f
}

func (f *ledgerFixture) addRate(t *testing.T, from, to, rate, effective string) {
	t.Helper()
	require.NoError(t, f.store.SaveExchangeRate(context.Background(), domain.ExchangeRate{
		ExchangeRateID: from + "-" + to + "-" + effective,
		OrganizationID: testOrg,
		FromCurrencyID: from,
		ToCurrencyID:   to,
		Rate:           dec(rate),
		EffectiveDate:  day(effective),
		IsActive:       true,
	}))
}

func (f *ledgerFixture) addAccount(t *testing.T, id string, currencyID *string, opening string) {
	t.Helper()
	require.NoError(t, f.store.SaveAccount(context.Background(), domain.FinanceAccount{
		AccountID:      id,
		OrganizationID: testOrg,
		Name:           id,
		CurrencyID:     currencyID,
		OpeningBalance: dec(opening),
		CurrentBalance: dec(opening),
		IsActive:       true,
	}))
}

func (f *ledgerFixture) account(t *testing.T, id string) *domain.FinanceAccount {
	t.Helper()
	acc, err := f.store.FindAccountByID(context.Background(), testOrg, id)
	require.NoError(t, err)
	return acc
}
