package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_reconciler/internal/core/ports/services"
	"github.com/SscSPs/finance_reconciler/internal/core/services"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
)

// txRecordingLookup remembers the tx of every lookup it forwards.
type txRecordingLookup struct {
	portsrepo.RateLookup
	seen []pgx.Tx
}

func (l *txRecordingLookup) FindLatestRate(ctx context.Context, tx pgx.Tx, organizationID, fromCurrencyID, toCurrencyID string, asOf time.Time) (*domain.ExchangeRate, error) {
	l.seen = append(l.seen, tx)
	return l.RateLookup.FindLatestRate(ctx, tx, organizationID, fromCurrencyID, toCurrencyID, asOf)
}

func (l *txRecordingLookup) FindBaseCurrency(ctx context.Context, tx pgx.Tx, organizationID string) (*domain.Currency, error) {
	l.seen = append(l.seen, tx)
	return l.RateLookup.FindBaseCurrency(ctx, tx, organizationID)
}

type BalanceAggregatorTestSuite struct {
	suite.Suite
	f   *ledgerFixture
	agg portssvc.BalanceAggregatorSvc
	ctx context.Context
}

func (s *BalanceAggregatorTestSuite) SetupTest() {
	s.f = newLedgerFixture(s.T())
	s.ctx = context.Background()
	resolver := services.NewRateResolver(services.NewRateLookup(s.f.store, s.f.store))
	s.agg = services.NewBalanceAggregator(s.f.store, s.f.store, resolver)
}

func (s *BalanceAggregatorTestSuite) income(id string, e domain.IncomeEntry) {
	e.EntryID, e.OrganizationID = id, testOrg
	s.Require().NoError(s.f.store.InsertIncomeInTx(s.ctx, nil, e))
}

func (s *BalanceAggregatorTestSuite) expense(id string, e domain.ExpenseEntry) {
	e.EntryID, e.OrganizationID = id, testOrg
	s.Require().NoError(s.f.store.InsertExpenseInTx(s.ctx, nil, e))
}

func (s *BalanceAggregatorTestSuite) asset(id string, a domain.Asset) {
	a.AssetID, a.OrganizationID = id, testOrg
	s.Require().NoError(s.f.store.InsertAssetInTx(s.ctx, nil, a))
}

func (s *BalanceAggregatorTestSuite) TestAccount_ConvertsAtRowDate() {
	s.f.addAccount(s.T(), "acc", strPtr("afn"), "1000")
	s.income("i1", domain.IncomeEntry{AccountID: strPtr("acc"), CurrencyID: strPtr("usd"), Amount: dec("100"), Date: day("2024-02-01")})

	rec, err := s.agg.RecalculateAccount(s.ctx, nil, "acc")
	s.Require().NoError(err)
	s.True(dec("8000").Equal(rec.Balance), rec.Balance.String())
	s.True(dec("8000").Equal(s.f.account(s.T(), "acc").CurrentBalance))
	s.False(rec.Degraded)
}

func (s *BalanceAggregatorTestSuite) TestAccount_RatesReadOnRecalculationTx() {
	s.f.addAccount(s.T(), "acc", strPtr("afn"), "0")
	s.income("i1", domain.IncomeEntry{AccountID: strPtr("acc"), CurrencyID: strPtr("usd"), Amount: dec("1"), Date: day("2024-02-01")})
	s.income("i2", domain.IncomeEntry{AccountID: strPtr("acc"), CurrencyID: strPtr("eur"), Amount: dec("1"), Date: day("2024-02-01")})

	lookup := &txRecordingLookup{RateLookup: services.NewRateLookup(s.f.store, s.f.store)}
	agg := services.NewBalanceAggregator(s.f.store, s.f.store, services.NewRateResolver(lookup))

	tx, err := s.f.store.Begin(s.ctx)
	s.Require().NoError(err)
	_, err = agg.RecalculateAccount(s.ctx, tx, "acc")
	s.Require().NoError(err)
	s.Require().NoError(s.f.store.Commit(s.ctx, tx))

	s.NotEmpty(lookup.seen)
	for _, seen := range lookup.seen {
		s.Same(tx, seen)
	}
}

func (s *BalanceAggregatorTestSuite) TestAccount_HistoricRateFollowsRowDate() {
	s.f.addRate(s.T(), "usd", "afn", "75", "2024-06-01")
	s.f.addAccount(s.T(), "acc", strPtr("afn"), "0")
	s.income("before", domain.IncomeEntry{AccountID: strPtr("acc"), CurrencyID: strPtr("usd"), Amount: dec("1"), Date: day("2024-03-01")})
	s.income("after", domain.IncomeEntry{AccountID: strPtr("acc"), CurrencyID: strPtr("usd"), Amount: dec("1"), Date: day("2024-07-01")})

	rec, err := s.agg.RecalculateAccount(s.ctx, nil, "acc")
	s.Require().NoError(err)
	s.True(dec("145").Equal(rec.Balance), rec.Balance.String())
}

func (s *BalanceAggregatorTestSuite) TestAccount_FullFormula() {
	s.f.addAccount(s.T(), "acc", strPtr("afn"), "1000")
	s.income("i1", domain.IncomeEntry{AccountID: strPtr("acc"), CurrencyID: strPtr("afn"), Amount: dec("500"), Date: day("2024-02-01")})
	s.expense("e1", domain.ExpenseEntry{AccountID: strPtr("acc"), CurrencyID: strPtr("afn"), Amount: dec("200"), Date: day("2024-02-02"), Status: domain.ExpenseApproved})
	s.expense("e2", domain.ExpenseEntry{AccountID: strPtr("acc"), CurrencyID: strPtr("afn"), Amount: dec("9999"), Date: day("2024-02-02"), Status: domain.ExpensePending})
	s.asset("a1", domain.Asset{FinanceAccountID: strPtr("acc"), CurrencyID: strPtr("usd"), PurchasePrice: dec("10"), TotalCopies: 2, PurchaseDate: dayPtr("2024-02-03"), Status: domain.AssetAssigned})
	s.asset("a2", domain.Asset{FinanceAccountID: strPtr("acc"), CurrencyID: strPtr("afn"), PurchasePrice: dec("5000"), Status: domain.AssetDisposed})

	rec, err := s.agg.RecalculateAccount(s.ctx, nil, "acc")
	s.Require().NoError(err)
	// 1000 + 500 - 200 + 10*2*70
	s.True(dec("2700").Equal(rec.Balance), rec.Balance.String())
	s.True(dec("500").Equal(rec.TotalIncome))
	s.True(dec("200").Equal(rec.TotalExpense))
}

func (s *BalanceAggregatorTestSuite) TestAccount_NoCurrencyIsPlainSum() {
	s.f.addAccount(s.T(), "acc", nil, "10")
	s.income("i1", domain.IncomeEntry{AccountID: strPtr("acc"), CurrencyID: strPtr("usd"), Amount: dec("100"), Date: day("2024-02-01")})
	s.income("i2", domain.IncomeEntry{AccountID: strPtr("acc"), CurrencyID: strPtr("afn"), Amount: dec("5"), Date: day("2024-02-01")})
	s.asset("a1", domain.Asset{FinanceAccountID: strPtr("acc"), CurrencyID: strPtr("usd"), PurchasePrice: dec("3"), Status: domain.AssetAvailable})

	rec, err := s.agg.RecalculateAccount(s.ctx, nil, "acc")
	s.Require().NoError(err)
	s.True(dec("118").Equal(rec.Balance), rec.Balance.String())
	s.Nil(rec.CurrencyID)
}

func (s *BalanceAggregatorTestSuite) TestAccount_GracefulDegradation() {
	s.f.addAccount(s.T(), "acc", strPtr("afn"), "0")
	s.income("known", domain.IncomeEntry{AccountID: strPtr("acc"), CurrencyID: strPtr("usd"), Amount: dec("1"), Date: day("2024-02-01")})
	s.income("orphan", domain.IncomeEntry{AccountID: strPtr("acc"), CurrencyID: strPtr("gbp"), Amount: dec("3"), Date: day("2024-02-01")})

	rec, err := s.agg.RecalculateAccount(s.ctx, nil, "acc")
	s.Require().NoError(err)
	s.True(dec("73").Equal(rec.Balance), rec.Balance.String())
	s.True(rec.Degraded)
	s.Equal([]string{"orphan"}, rec.UnconvertedRows)
}

func (s *BalanceAggregatorTestSuite) TestAccount_NegativeBalanceAllowed() {
	s.f.addAccount(s.T(), "acc", strPtr("afn"), "10")
	s.expense("e1", domain.ExpenseEntry{AccountID: strPtr("acc"), CurrencyID: strPtr("afn"), Amount: dec("25"), Date: day("2024-02-02"), Status: domain.ExpenseApproved})

	rec, err := s.agg.RecalculateAccount(s.ctx, nil, "acc")
	s.Require().NoError(err)
	s.True(dec("-15").Equal(rec.Balance))
}

func (s *BalanceAggregatorTestSuite) TestAccount_RoundsOnceAtTheEnd() {
	s.f.addRate(s.T(), "eur", "afn", "0.333333", "2024-01-01")
	s.f.addAccount(s.T(), "acc", strPtr("afn"), "0")
	for _, id := range []string{"a", "b", "c"} {
		s.income(id, domain.IncomeEntry{AccountID: strPtr("acc"), CurrencyID: strPtr("eur"), Amount: dec("0.01"), Date: day("2024-02-01")})
	}

	rec, err := s.agg.RecalculateAccount(s.ctx, nil, "acc")
	s.Require().NoError(err)
	// 3 × 0.00333333 = 0.00999999 → 0.01; per-row rounding would give 0.00
	s.True(dec("0.01").Equal(rec.Balance), rec.Balance.String())
}

func (s *BalanceAggregatorTestSuite) TestIdempotent() {
	s.f.addAccount(s.T(), "acc", strPtr("afn"), "1000")
	s.income("i1", domain.IncomeEntry{AccountID: strPtr("acc"), CurrencyID: strPtr("usd"), Amount: dec("12.34"), Date: day("2024-02-01")})

	first, err := s.agg.RecalculateAccount(s.ctx, nil, "acc")
	s.Require().NoError(err)
	second, err := s.agg.RecalculateAccount(s.ctx, nil, "acc")
	s.Require().NoError(err)
	s.True(first.Balance.Equal(second.Balance))
	s.True(second.Balance.Equal(s.f.account(s.T(), "acc").CurrentBalance))
}

func (s *BalanceAggregatorTestSuite) TestProjectTotals() {
	s.Require().NoError(s.f.store.SaveProject(s.ctx, domain.FinanceProject{ProjectID: "p1", OrganizationID: testOrg, CurrencyID: strPtr("afn")}))
	s.income("i1", domain.IncomeEntry{ProjectID: strPtr("p1"), CurrencyID: strPtr("usd"), Amount: dec("2"), Date: day("2024-02-01")})
	s.expense("e1", domain.ExpenseEntry{ProjectID: strPtr("p1"), CurrencyID: strPtr("afn"), Amount: dec("40"), Date: day("2024-02-01"), Status: domain.ExpenseApproved})
	s.expense("e2", domain.ExpenseEntry{ProjectID: strPtr("p1"), CurrencyID: strPtr("afn"), Amount: dec("40"), Date: day("2024-02-01"), Status: domain.ExpenseRejected})

	rec, err := s.agg.Recalculate(s.ctx, nil, domain.ContainerRef{Kind: domain.ContainerProject, ID: "p1"})
	s.Require().NoError(err)
	s.True(dec("140").Equal(rec.TotalIncome))
	s.True(dec("40").Equal(rec.TotalExpense))
	s.True(dec("100").Equal(rec.Balance))

	p, err := s.f.store.FindProjectByID(s.ctx, testOrg, "p1")
	s.Require().NoError(err)
	s.True(dec("100").Equal(p.Balance()))
}

func (s *BalanceAggregatorTestSuite) TestDonorTotal() {
	s.Require().NoError(s.f.store.SaveDonor(s.ctx, domain.Donor{DonorID: "d1", OrganizationID: testOrg, CurrencyID: strPtr("usd")}))
	s.income("i1", domain.IncomeEntry{DonorID: strPtr("d1"), CurrencyID: strPtr("afn"), Amount: dec("700"), Date: day("2024-02-01")})
	s.income("i2", domain.IncomeEntry{DonorID: strPtr("d1"), CurrencyID: strPtr("usd"), Amount: dec("5"), Date: day("2024-02-01")})

	rec, err := s.agg.RecalculateDonor(s.ctx, nil, "d1")
	s.Require().NoError(err)
	s.True(dec("15").Equal(rec.Balance), rec.Balance.String())

	d, err := s.f.store.FindDonorByID(s.ctx, testOrg, "d1")
	s.Require().NoError(err)
	s.True(dec("15").Equal(d.TotalDonated))
}

func (s *BalanceAggregatorTestSuite) TestMissingOrDeletedContainerIsSkipped() {
	rec, err := s.agg.RecalculateAccount(s.ctx, nil, "nope")
	s.Require().NoError(err)
	s.True(rec.Skipped)

	s.f.addAccount(s.T(), "gone", nil, "0")
	s.Require().NoError(s.f.store.SoftDeleteAccount(s.ctx, testOrg, "gone", "user-1", time.Now()))
	rec, err = s.agg.RecalculateAccount(s.ctx, nil, "gone")
	s.Require().NoError(err)
	s.True(rec.Skipped)
}

func (s *BalanceAggregatorTestSuite) TestUnknownKind() {
	_, err := s.agg.Recalculate(s.ctx, nil, domain.ContainerRef{Kind: "ledger", ID: "x"})
	s.Error(err)
}

func (s *BalanceAggregatorTestSuite) TestStoreFailurePropagates() {
	s.f.addAccount(s.T(), "acc", nil, "0")
	boom := errors.New("disk on fire")
	s.f.store.FailOn("UpdateAccountBalanceInTx", boom)

	_, err := s.agg.RecalculateAccount(s.ctx, nil, "acc")
	s.ErrorIs(err, boom)
}

func TestBalanceAggregatorTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceAggregatorTestSuite))
}
