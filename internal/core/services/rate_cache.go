package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/apperrors"
	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_reconciler/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	gocache "github.com/patrickmn/go-cache"
)

// RateCacheInvalidator is implemented by rate sources that memoize lookups.
type RateCacheInvalidator interface {
	InvalidateOrganization(organizationID string)
}

// CachedRateSource is a read-through cache in front of a RateLookup.
// Misses are cached as well.
type CachedRateSource struct {
	next  portsrepo.RateLookup
	cache *gocache.Cache
}

type cachedMiss struct{}

// NewCachedRateSource wraps next with a cache whose entries expire after ttl.
func NewCachedRateSource(next portsrepo.RateLookup, ttl time.Duration) *CachedRateSource {
	return &CachedRateSource{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

var (
	_ portsrepo.RateLookup  = (*CachedRateSource)(nil)
	_ RateCacheInvalidator = (*CachedRateSource)(nil)
)

func (c *CachedRateSource) FindLatestRate(ctx context.Context, tx pgx.Tx, organizationID, fromCurrencyID, toCurrencyID string, asOf time.Time) (*domain.ExchangeRate, error) {
	key := organizationID + "|rate|" + fromCurrencyID + "|" + toCurrencyID + "|" + domain.DateOnly(asOf).Format("2006-01-02")
	if v, found := c.cache.Get(key); found {
		if rate, ok := v.(domain.ExchangeRate); ok {
			return &rate, nil
		}
		return nil, apperrors.NewNotFoundError("exchange rate not found")
	}

	rate, err := c.next.FindLatestRate(ctx, tx, organizationID, fromCurrencyID, toCurrencyID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.cache.SetDefault(key, cachedMiss{})
		}
		return nil, err
	}
	c.cache.SetDefault(key, *rate)
	return rate, nil
}

func (c *CachedRateSource) FindBaseCurrency(ctx context.Context, tx pgx.Tx, organizationID string) (*domain.Currency, error) {
	key := organizationID + "|base"
	if v, found := c.cache.Get(key); found {
		if currency, ok := v.(domain.Currency); ok {
			return &currency, nil
		}
		return nil, apperrors.NewNotFoundError("base currency not found")
	}

	currency, err := c.next.FindBaseCurrency(ctx, tx, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.cache.SetDefault(key, cachedMiss{})
		}
		return nil, err
	}
	c.cache.SetDefault(key, *currency)
	return currency, nil
}

// InvalidateOrganization drops every cached entry of the organization.
func (c *CachedRateSource) InvalidateOrganization(organizationID string) {
	prefix := organizationID + "|"
	for key := range c.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			c.cache.Delete(key)
		}
	}
}

// Flush drops every cached entry.
func (c *CachedRateSource) Flush() {
	c.cache.Flush()
}
