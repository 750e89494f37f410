package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	portssvc "github.com/SscSPs/finance_reconciler/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trigger names carried on published events.
const (
	TriggerIncomeCreated  = "income.created"
	TriggerIncomeUpdated  = "income.updated"
	TriggerIncomeDeleted  = "income.deleted"
	TriggerExpenseCreated = "expense.created"
	TriggerExpenseUpdated = "expense.updated"
	TriggerExpenseDeleted = "expense.deleted"
	TriggerAssetCreated   = "asset.created"
	TriggerAssetUpdated   = "asset.updated"
	TriggerAssetDeleted   = "asset.deleted"
	TriggerOpeningBalance = "account.opening_balance"
	TriggerManual         = "manual"
)

// LowBalancePolicy flags accounts whose balance fell under
// max(opening × Ratio, Floor) without going negative.
type LowBalancePolicy struct {
	Floor decimal.Decimal
	Ratio decimal.Decimal
}

// DefaultLowBalancePolicy matches the configuration defaults.
var DefaultLowBalancePolicy = LowBalancePolicy{
	Floor: decimal.NewFromInt(100),
	Ratio: decimal.RequireFromString("0.1"),
}

// IsLow reports whether balance should raise a low-balance warning.
func (p LowBalancePolicy) IsLow(balance, opening decimal.Decimal) bool {
	if balance.IsNegative() {
		return false
	}
	threshold := decimal.Max(opening.Mul(p.Ratio), p.Floor)
	return balance.LessThan(threshold)
}

// DefaultPublishTimeout bounds how long a mutation waits on the event publisher.
const DefaultPublishTimeout = 5 * time.Second

// balanceNotifier runs after the unit of work commits: it logs low balances
// and publishes one event per recalculated container.
type balanceNotifier struct {
	BaseService
	publisher      portssvc.EventPublisher
	policy         LowBalancePolicy
	publishTimeout time.Duration
}

// NotifierOption configures the balance notifier
type NotifierOption func(*balanceNotifier)

// WithEventPublisher enables event publishing.
func WithEventPublisher(p portssvc.EventPublisher) NotifierOption {
	return func(n *balanceNotifier) {
		n.publisher = p
	}
}

// WithLowBalancePolicy overrides DefaultLowBalancePolicy.
func WithLowBalancePolicy(p LowBalancePolicy) NotifierOption {
	return func(n *balanceNotifier) {
		n.policy = p
	}
}

// WithPublishTimeout overrides DefaultPublishTimeout.
func WithPublishTimeout(d time.Duration) NotifierOption {
	return func(n *balanceNotifier) {
		if d > 0 {
			n.publishTimeout = d
		}
	}
}

// NewBalanceNotifier creates a RecalculationListener.
func NewBalanceNotifier(options ...NotifierOption) portssvc.RecalculationListener {
	n := &balanceNotifier{policy: DefaultLowBalancePolicy, publishTimeout: DefaultPublishTimeout}
	for _, option := range options {
		option(n)
	}
	return n
}

var _ portssvc.RecalculationListener = (*balanceNotifier)(nil)

// AfterCommit never fails: the balances are already durable.
func (n *balanceNotifier) AfterCommit(ctx context.Context, trigger string, recalcs []domain.Recalculation) {
	events := make([]domain.BalanceRecalculatedEvent, 0, len(recalcs))
	for _, rec := range recalcs {
		if rec.Skipped {
			continue
		}

		low := rec.Container.Kind == domain.ContainerAccount && n.policy.IsLow(rec.Balance, rec.OpeningBalance)
		if low {
			n.LogWarn(ctx, "Account balance is low",
				slog.String("organization_id", rec.OrganizationID),
				slog.String("account_id", rec.Container.ID),
				slog.String("balance", rec.Balance.StringFixed(domain.MoneyScale)),
				slog.String("opening_balance", rec.OpeningBalance.StringFixed(domain.MoneyScale)))
		}

		events = append(events, domain.BalanceRecalculatedEvent{
			EventID:        uuid.NewString(),
			OrganizationID: rec.OrganizationID,
			ContainerKind:  rec.Container.Kind,
			ContainerID:    rec.Container.ID,
			CurrencyID:     rec.CurrencyID,
			Balance:        rec.Balance,
			TotalIncome:    rec.TotalIncome,
			TotalExpense:   rec.TotalExpense,
			Degraded:       rec.Degraded,
			LowBalance:     low,
			Trigger:        trigger,
			OccurredAt:     rec.RecalculatedAt,
		})
	}

	if n.publisher == nil || len(events) == 0 {
		return
	}
	// The request may be gone by now; the events still describe committed balances.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.publishTimeout)
	defer cancel()
	if err := n.publisher.PublishBalanceRecalculated(publishCtx, events...); err != nil {
		n.LogError(ctx, err, "Failed to publish balance events",
			slog.String("trigger", trigger),
			slog.Int("events", len(events)))
	}
}
