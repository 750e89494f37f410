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

// DefaultMaxResolveDepth bounds the recursion through the base currency.
// A star topology needs a single hop; anything deeper is a misconfigured graph.
const DefaultMaxResolveDepth = 4

var one = decimal.NewFromInt(1)

// rateResolver implements RateResolverSvc over stored exchange-rate rows.
type rateResolver struct {
	BaseService
	lookup   portsrepo.RateLookup
	maxDepth int
}

// RateResolverOption configures the rate resolver
type RateResolverOption func(*rateResolver)

// WithMaxResolveDepth overrides DefaultMaxResolveDepth.
func WithMaxResolveDepth(depth int) RateResolverOption {
	return func(r *rateResolver) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// WithResolverClock fixes the clock used when asOf is nil.
func WithResolverClock(clock func() time.Time) RateResolverOption {
	return func(r *rateResolver) {
		r.Clock = clock
	}
}

// NewRateResolver creates a resolver reading through lookup.
func NewRateResolver(lookup portsrepo.RateLookup, options ...RateResolverOption) portssvc.RateResolverSvc {
	r := &rateResolver{lookup: lookup, maxDepth: DefaultMaxResolveDepth}
	for _, option := range options {
		option(r)
	}
	return r
}

var _ portssvc.RateResolverSvc = (*rateResolver)(nil)

// visitedPairs is the set of ordered pairs already entered on the current
// resolution path. It is never mutated; with returns an extended copy.
type visitedPairs []string

func (v visitedPairs) has(key string) bool {
	for _, k := range v {
		if k == key {
			return true
		}
	}
	return false
}

func (v visitedPairs) with(key string) visitedPairs {
	next := make(visitedPairs, len(v), len(v)+1)
	copy(next, v)
	return append(next, key)
}

func (r *rateResolver) Resolve(ctx context.Context, tx pgx.Tx, organizationID, fromCurrencyID, toCurrencyID string, asOf *time.Time) (decimal.Decimal, bool, error) {
	day := r.Now()
	if asOf != nil {
		day = *asOf
	}
	day = domain.DateOnly(day)

	factor, ok, err := r.resolve(ctx, tx, organizationID, fromCurrencyID, toCurrencyID, day, nil, 0)
	if err != nil {
		r.LogError(ctx, err, "Failed to resolve exchange rate",
			slog.String("organization_id", organizationID),
			slog.String("from_currency_id", fromCurrencyID),
			slog.String("to_currency_id", toCurrencyID),
			slog.Time("as_of", day))
		return decimal.Zero, false, err
	}
	return factor, ok, nil
}

func (r *rateResolver) resolve(ctx context.Context, tx pgx.Tx, orgID, from, to string, day time.Time, visited visitedPairs, depth int) (decimal.Decimal, bool, error) {
	if from == to {
		return one, true, nil
	}

	key := from + ">" + to
	if visited.has(key) || depth >= r.maxDepth {
		return decimal.Zero, false, nil
	}
	visited = visited.with(key)

	direct, err := r.latest(ctx, tx, orgID, from, to, day)
	if err != nil {
		return decimal.Zero, false, err
	}
	if direct != nil {
		return direct.Rate, true, nil
	}

	reverse, err := r.latest(ctx, tx, orgID, to, from, day)
	if err != nil {
		return decimal.Zero, false, err
	}
	if reverse != nil && !reverse.Rate.IsZero() {
		return one.Div(reverse.Rate), true, nil
	}

	base, err := r.lookup.FindBaseCurrency(ctx, tx, orgID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("failed to find base currency: %w", err)
	}
	if base.CurrencyID == from || base.CurrencyID == to {
		return decimal.Zero, false, nil
	}

	toBase, ok, err := r.resolve(ctx, tx, orgID, from, base.CurrencyID, day, visited, depth+1)
	if err != nil || !ok {
		return decimal.Zero, false, err
	}
	fromBase, ok, err := r.resolve(ctx, tx, orgID, base.CurrencyID, to, day, visited, depth+1)
	if err != nil || !ok {
		return decimal.Zero, false, err
	}
	return toBase.Mul(fromBase), true, nil
}

// latest returns nil, nil when no row applies.
func (r *rateResolver) latest(ctx context.Context, tx pgx.Tx, orgID, from, to string, day time.Time) (*domain.ExchangeRate, error) {
	rate, err := r.lookup.FindLatestRate(ctx, tx, orgID, from, to, day)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find rate %s->%s: %w", from, to, err)
	}
	return rate, nil
}
