package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/finance_reconciler/internal/apperrors"
	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/SscSPs/finance_reconciler/internal/dto"
	"github.com/stretchr/testify/suite"
)

type EntryServiceTestSuite struct {
	suite.Suite
	ctx context.Context
	f   *ledgerFixture
}

func (s *EntryServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.f = newLedgerFixture(s.T())
	s.f.addAccount(s.T(), "acc", strPtr("afn"), "1000")
}

func (s *EntryServiceTestSuite) balance(id string) string {
	return s.f.account(s.T(), id).CurrentBalance.StringFixed(2)
}

func (s *EntryServiceTestSuite) TestCreateIncomeConvertsAndUpdatesBalance() {
	entry, recalcs, err := s.f.svc.Entry.CreateIncome(s.ctx, testOrg, dto.CreateIncomeRequest{
		AccountID:  strPtr("acc"),
		CurrencyID: strPtr("usd"),
		Amount:     dec("100"),
		Date:       day("2024-02-01"),
	}, testUser)
	s.Require().NoError(err)
	s.NotEmpty(entry.EntryID)
	s.Equal(testUser, entry.CreatedBy)

	s.Require().Len(recalcs, 1)
	s.Equal("8000.00", recalcs[0].Balance.StringFixed(2))
	s.Equal("8000.00", s.balance("acc"))
}

func (s *EntryServiceTestSuite) TestExpenseApprovalMovesTotalsByConvertedAmount() {
	expense, _, err := s.f.svc.Entry.CreateExpense(s.ctx, testOrg, dto.CreateExpenseRequest{
		AccountID:  strPtr("acc"),
		CurrencyID: strPtr("usd"),
		Amount:     dec("2"),
		Date:       day("2024-03-01"),
		Status:     string(domain.ExpensePending),
	}, testUser)
	s.Require().NoError(err)
	s.Equal("1000.00", s.balance("acc"), "pending expenses do not count")

	_, recalcs, err := s.f.svc.Entry.UpdateExpense(s.ctx, testOrg, expense.EntryID, dto.UpdateExpenseRequest{
		AccountID:  strPtr("acc"),
		CurrencyID: strPtr("usd"),
		Amount:     dec("2"),
		Date:       day("2024-03-01"),
		Status:     string(domain.ExpenseApproved),
	}, testUser)
	s.Require().NoError(err)
	s.Require().Len(recalcs, 1)
	s.Equal("860.00", s.balance("acc"))
	s.Equal("140.00", recalcs[0].TotalExpense.StringFixed(2))
}

func (s *EntryServiceTestSuite) TestExpenseDefaultsToApproved() {
	expense, _, err := s.f.svc.Entry.CreateExpense(s.ctx, testOrg, dto.CreateExpenseRequest{
		AccountID: strPtr("acc"),
		Amount:    dec("250"),
		Date:      day("2024-03-01"),
	}, testUser)
	s.Require().NoError(err)
	s.Equal(domain.ExpenseApproved, expense.Status)
	s.Equal("750.00", s.balance("acc"))
}

func (s *EntryServiceTestSuite) TestAssetReassignmentConservesCombinedBalance() {
	s.f.addAccount(s.T(), "other", strPtr("afn"), "0")
	asset, _, err := s.f.svc.Entry.CreateAsset(s.ctx, testOrg, dto.CreateAssetRequest{
		Name:             "Generator",
		FinanceAccountID: strPtr("acc"),
		CurrencyID:       strPtr("afn"),
		PurchasePrice:    dec("300"),
		PurchaseDate:     dayPtr("2024-01-15"),
		TotalCopies:      2,
	}, testUser)
	s.Require().NoError(err)
	s.Equal(domain.AssetAvailable, asset.Status)
	s.Equal("1600.00", s.balance("acc"))
	combined := s.f.account(s.T(), "acc").CurrentBalance.Add(s.f.account(s.T(), "other").CurrentBalance)

	_, recalcs, err := s.f.svc.Entry.UpdateAsset(s.ctx, testOrg, asset.AssetID, dto.UpdateAssetRequest{
		Name:             "Generator",
		FinanceAccountID: strPtr("other"),
		CurrencyID:       strPtr("afn"),
		PurchasePrice:    dec("300"),
		PurchaseDate:     dayPtr("2024-01-15"),
		TotalCopies:      2,
	}, testUser)
	s.Require().NoError(err)
	s.Len(recalcs, 2, "both the old and the new account are recomputed")

	s.Equal("1000.00", s.balance("acc"))
	s.Equal("600.00", s.balance("other"))
	after := s.f.account(s.T(), "acc").CurrentBalance.Add(s.f.account(s.T(), "other").CurrentBalance)
	s.True(combined.Equal(after))
}

func (s *EntryServiceTestSuite) TestDescriptionOnlyUpdateSkipsRecalculation() {
	req := dto.CreateIncomeRequest{
		AccountID:   strPtr("acc"),
		Amount:      dec("10"),
		Date:        day("2024-02-01"),
		Description: "grant",
	}
	entry, _, err := s.f.svc.Entry.CreateIncome(s.ctx, testOrg, req, testUser)
	s.Require().NoError(err)
	events := len(s.f.publisher.Events())

	req.Description = "grant, second tranche"
	updated, recalcs, err := s.f.svc.Entry.UpdateIncome(s.ctx, testOrg, entry.EntryID, dto.UpdateIncomeRequest(req), testUser)
	s.Require().NoError(err)
	s.Empty(recalcs)
	s.Equal("grant, second tranche", updated.Description)
	s.Len(s.f.publisher.Events(), events)
}

func (s *EntryServiceTestSuite) TestDeleteRecomputes() {
	entry, _, err := s.f.svc.Entry.CreateIncome(s.ctx, testOrg, dto.CreateIncomeRequest{
		AccountID: strPtr("acc"),
		Amount:    dec("500"),
		Date:      day("2024-02-01"),
	}, testUser)
	s.Require().NoError(err)
	s.Equal("1500.00", s.balance("acc"))

	recalcs, err := s.f.svc.Entry.DeleteIncome(s.ctx, testOrg, entry.EntryID, testUser)
	s.Require().NoError(err)
	s.Len(recalcs, 1)
	s.Equal("1000.00", s.balance("acc"))

	_, err = s.f.svc.Entry.DeleteIncome(s.ctx, testOrg, entry.EntryID, testUser)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *EntryServiceTestSuite) TestFailedRecalculationRollsBackRow() {
	boom := errors.New("connection reset")
	s.f.store.FailOn("UpdateAccountBalanceInTx", boom)

	_, _, err := s.f.svc.Entry.CreateIncome(s.ctx, testOrg, dto.CreateIncomeRequest{
		AccountID: strPtr("acc"),
		Amount:    dec("500"),
		Date:      day("2024-02-01"),
	}, testUser)
	s.ErrorIs(err, boom)
	s.Equal("1000.00", s.balance("acc"))

	contributions, err := s.f.store.ListContributions(s.ctx, nil, domain.ContainerRef{Kind: domain.ContainerAccount, ID: "acc"})
	s.Require().NoError(err)
	s.Empty(contributions.Income, "the inserted row is rolled back with the failed recalculation")
	s.Empty(s.f.publisher.Events())
}

func (s *EntryServiceTestSuite) TestUnknownReferencesAreValidationErrors() {
	_, _, err := s.f.svc.Entry.CreateIncome(s.ctx, testOrg, dto.CreateIncomeRequest{
		AccountID:  strPtr("acc"),
		CurrencyID: strPtr("xyz"),
		Amount:     dec("1"),
		Date:       day("2024-02-01"),
	}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, _, err = s.f.svc.Entry.CreateExpense(s.ctx, testOrg, dto.CreateExpenseRequest{
		ProjectID: strPtr("missing"),
		Amount:    dec("1"),
		Date:      day("2024-02-01"),
	}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, _, err = s.f.svc.Entry.CreateIncome(s.ctx, testOrg, dto.CreateIncomeRequest{
		AccountID: strPtr("acc"),
		Amount:    dec("-1"),
		Date:      day("2024-02-01"),
	}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, _, err = s.f.svc.Entry.CreateAsset(s.ctx, testOrg, dto.CreateAssetRequest{
		Name:          "Desk",
		PurchasePrice: dec("10"),
		Status:        "stolen",
	}, testUser)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *EntryServiceTestSuite) TestIncomeUpdatesProjectAndDonor() {
	ctx := s.ctx
	s.Require().NoError(s.f.store.SaveProject(ctx, domain.FinanceProject{ProjectID: "p1", OrganizationID: testOrg, CurrencyID: strPtr("afn"), IsActive: true}))
	s.Require().NoError(s.f.store.SaveDonor(ctx, domain.Donor{DonorID: "d1", OrganizationID: testOrg, CurrencyID: strPtr("usd"), IsActive: true}))

	_, recalcs, err := s.f.svc.Entry.CreateIncome(ctx, testOrg, dto.CreateIncomeRequest{
		AccountID:  strPtr("acc"),
		ProjectID:  strPtr("p1"),
		DonorID:    strPtr("d1"),
		CurrencyID: strPtr("afn"),
		Amount:     dec("700"),
		Date:       day("2024-02-01"),
	}, testUser)
	s.Require().NoError(err)
	s.Len(recalcs, 3)

	project, err := s.f.store.FindProjectByID(ctx, testOrg, "p1")
	s.Require().NoError(err)
	s.Equal("700.00", project.TotalIncome.StringFixed(2))

	donor, err := s.f.store.FindDonorByID(ctx, testOrg, "d1")
	s.Require().NoError(err)
	s.Equal("10.00", donor.TotalDonated.StringFixed(2), "700 AFN reaches a USD donor through the reverse rate")
}

func (s *EntryServiceTestSuite) TestPublishesEventPerRecalculatedContainer() {
	_, _, err := s.f.svc.Entry.CreateIncome(s.ctx, testOrg, dto.CreateIncomeRequest{
		AccountID: strPtr("acc"),
		Amount:    dec("5"),
		Date:      day("2024-02-01"),
	}, testUser)
	s.Require().NoError(err)

	events := s.f.publisher.Events()
	s.Require().Len(events, 1)
	s.Equal("acc", events[0].ContainerID)
	s.Equal(domain.ContainerAccount, events[0].ContainerKind)
	s.Equal("income.created", events[0].Trigger)
	s.Equal("1005.00", events[0].Balance.StringFixed(2))
	s.False(events[0].LowBalance)
}

func TestEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}
