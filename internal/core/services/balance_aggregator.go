package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/apperrors"
	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_reconciler/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// balanceAggregator recomputes container totals from scratch and writes them
// back inside the caller's transaction.
type balanceAggregator struct {
	BaseService
	containers portsrepo.ContainerTransactionSupport
	entries    portsrepo.ContributionReader
	resolver   portssvc.RateResolverSvc
}

// NewBalanceAggregator creates a new balance aggregator.
func NewBalanceAggregator(
	containers portsrepo.ContainerTransactionSupport,
	entries portsrepo.ContributionReader,
	resolver portssvc.RateResolverSvc,
) portssvc.BalanceAggregatorSvc {
	return &balanceAggregator{
		containers: containers,
		entries:    entries,
		resolver:   resolver,
	}
}

var _ portssvc.BalanceAggregatorSvc = (*balanceAggregator)(nil)

func (a *balanceAggregator) Recalculate(ctx context.Context, tx pgx.Tx, ref domain.ContainerRef) (*domain.Recalculation, error) {
	switch ref.Kind {
	case domain.ContainerAccount:
		return a.RecalculateAccount(ctx, tx, ref.ID)
	case domain.ContainerProject:
		return a.RecalculateProject(ctx, tx, ref.ID)
	case domain.ContainerDonor:
		return a.RecalculateDonor(ctx, tx, ref.ID)
	}
	return nil, apperrors.NewValidationError(fmt.Sprintf("unknown container kind %q", ref.Kind))
}

func (a *balanceAggregator) RecalculateAccount(ctx context.Context, tx pgx.Tx, accountID string) (*domain.Recalculation, error) {
	ref := domain.ContainerRef{Kind: domain.ContainerAccount, ID: accountID}

	account, err := a.containers.LockAccountInTx(ctx, tx, accountID)
	if err != nil {
		return a.skipOrFail(ctx, ref, err)
	}

	rows, err := a.entries.ListContributions(ctx, tx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions of %s: %w", ref, err)
	}

	conv := a.newConversion(tx, ref, account.OrganizationID, account.CurrencyID)
	income, err := conv.sum(ctx, incomePostings(rows.Income))
	if err != nil {
		return nil, err
	}
	expense, err := conv.sum(ctx, expensePostings(rows.Expenses))
	if err != nil {
		return nil, err
	}
	assets, err := conv.sum(ctx, assetPostings(rows.Assets))
	if err != nil {
		return nil, err
	}

	balance := domain.RoundMoney(account.OpeningBalance.Add(income).Sub(expense).Add(assets))
	now := a.Now()
	if err := a.containers.UpdateAccountBalanceInTx(ctx, tx, accountID, balance, now); err != nil {
		return nil, fmt.Errorf("failed to update balance of %s: %w", ref, err)
	}

	rec := conv.result(now)
	rec.OpeningBalance = account.OpeningBalance
	rec.TotalIncome = domain.RoundMoney(income)
	rec.TotalExpense = domain.RoundMoney(expense)
	rec.Balance = balance
	a.logResult(ctx, rec)
	return rec, nil
}

func (a *balanceAggregator) RecalculateProject(ctx context.Context, tx pgx.Tx, projectID string) (*domain.Recalculation, error) {
	ref := domain.ContainerRef{Kind: domain.ContainerProject, ID: projectID}

	project, err := a.containers.LockProjectInTx(ctx, tx, projectID)
	if err != nil {
		return a.skipOrFail(ctx, ref, err)
	}

	rows, err := a.entries.ListContributions(ctx, tx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions of %s: %w", ref, err)
	}

	conv := a.newConversion(tx, ref, project.OrganizationID, project.CurrencyID)
	income, err := conv.sum(ctx, incomePostings(rows.Income))
	if err != nil {
		return nil, err
	}
	expense, err := conv.sum(ctx, expensePostings(rows.Expenses))
	if err != nil {
		return nil, err
	}

	totalIncome, totalExpense := domain.RoundMoney(income), domain.RoundMoney(expense)
	now := a.Now()
	if err := a.containers.UpdateProjectTotalsInTx(ctx, tx, projectID, totalIncome, totalExpense, now); err != nil {
		return nil, fmt.Errorf("failed to update totals of %s: %w", ref, err)
	}

	rec := conv.result(now)
	rec.TotalIncome = totalIncome
	rec.TotalExpense = totalExpense
	rec.Balance = totalIncome.Sub(totalExpense)
	a.logResult(ctx, rec)
	return rec, nil
}

func (a *balanceAggregator) RecalculateDonor(ctx context.Context, tx pgx.Tx, donorID string) (*domain.Recalculation, error) {
	ref := domain.ContainerRef{Kind: domain.ContainerDonor, ID: donorID}

	donor, err := a.containers.LockDonorInTx(ctx, tx, donorID)
	if err != nil {
		return a.skipOrFail(ctx, ref, err)
	}

	rows, err := a.entries.ListContributions(ctx, tx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributions of %s: %w", ref, err)
	}

	conv := a.newConversion(tx, ref, donor.OrganizationID, donor.CurrencyID)
	donated, err := conv.sum(ctx, incomePostings(rows.Income))
	if err != nil {
		return nil, err
	}

	total := domain.RoundMoney(donated)
	now := a.Now()
	if err := a.containers.UpdateDonorTotalInTx(ctx, tx, donorID, total, now); err != nil {
		return nil, fmt.Errorf("failed to update total of %s: %w", ref, err)
	}

	rec := conv.result(now)
	rec.TotalIncome = total
	rec.Balance = total
	a.logResult(ctx, rec)
	return rec, nil
}

// skipOrFail turns a missing container into a skipped no-op.
func (a *balanceAggregator) skipOrFail(ctx context.Context, ref domain.ContainerRef, err error) (*domain.Recalculation, error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		a.LogDebug(ctx, "Container missing or deleted, nothing to recalculate", slog.String("container", ref.String()))
		return &domain.Recalculation{Container: ref, Skipped: true, RecalculatedAt: a.Now()}, nil
	}
	return nil, fmt.Errorf("failed to lock %s: %w", ref, err)
}

func (a *balanceAggregator) logResult(ctx context.Context, rec *domain.Recalculation) {
	a.LogDebug(ctx, "Container recalculated",
		slog.String("container", rec.Container.String()),
		slog.String("balance", rec.Balance.StringFixed(domain.MoneyScale)),
		slog.Bool("degraded", rec.Degraded))
}

// conversion accumulates postings into one container's currency and
// remembers which rows had to be summed unconverted. Rates are read on the
// recalculation's own tx.
type conversion struct {
	agg         *balanceAggregator
	tx          pgx.Tx
	ref         domain.ContainerRef
	orgID       string
	target      *string
	unconverted []string
}

func (a *balanceAggregator) newConversion(tx pgx.Tx, ref domain.ContainerRef, orgID string, target *string) *conversion {
	return &conversion{agg: a, tx: tx, ref: ref, orgID: orgID, target: target}
}

// sum adds postings at full precision; callers round once.
func (c *conversion) sum(ctx context.Context, postings []domain.Posting) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range postings {
		amount, err := c.convert(ctx, p)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(amount)
	}
	return total, nil
}

func (c *conversion) convert(ctx context.Context, p domain.Posting) (decimal.Decimal, error) {
	// No fixed container currency, or a row posted without one: plain sum.
	if c.target == nil || p.CurrencyID == nil || *p.CurrencyID == *c.target {
		return p.Amount, nil
	}

	day := domain.DateOnly(p.Date)
	factor, ok, err := c.agg.resolver.Resolve(ctx, c.tx, c.orgID, *p.CurrencyID, *c.target, &day)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to convert %s %s for %s: %w", p.Kind, p.RowID, c.ref, err)
	}
	if !ok {
		c.agg.LogWarn(ctx, "No exchange rate path, using unconverted amount",
			slog.String("organization_id", c.orgID),
			slog.String("container", c.ref.String()),
			slog.String("row_kind", string(p.Kind)),
			slog.String("row_id", p.RowID),
			slog.String("from_currency_id", *p.CurrencyID),
			slog.String("to_currency_id", *c.target),
			slog.Time("date", day))
		c.unconverted = append(c.unconverted, p.RowID)
		return p.Amount, nil
	}
	return p.Amount.Mul(factor), nil
}

func (c *conversion) result(now time.Time) *domain.Recalculation {
	return &domain.Recalculation{
		Container:       c.ref,
		OrganizationID:  c.orgID,
		CurrencyID:      c.target,
		Degraded:        len(c.unconverted) > 0,
		UnconvertedRows: c.unconverted,
		RecalculatedAt:  now,
	}
}

func incomePostings(rows []domain.IncomeEntry) []domain.Posting {
	out := make([]domain.Posting, 0, len(rows))
	for _, r := range rows {
		if !r.IsDeleted() {
			out = append(out, r.Posting())
		}
	}
	return out
}

func expensePostings(rows []domain.ExpenseEntry) []domain.Posting {
	out := make([]domain.Posting, 0, len(rows))
	for _, r := range rows {
		if r.Counts() {
			out = append(out, r.Posting())
		}
	}
	return out
}

func assetPostings(rows []domain.Asset) []domain.Posting {
	out := make([]domain.Posting, 0, len(rows))
	for _, r := range rows {
		if r.Counts() {
			out = append(out, r.Posting())
		}
	}
	return out
}
