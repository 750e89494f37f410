package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

func (s *Store) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	return s.write("SaveExchangeRate", nil, func(d *state) error {
		d.rates[rate.ExchangeRateID] = rate
		return nil
	})
}

func (s *Store) UpdateExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	return s.write("UpdateExchangeRate", nil, func(d *state) error {
		existing, ok := d.rates[rate.ExchangeRateID]
		if !ok || existing.OrganizationID != rate.OrganizationID || existing.IsDeleted() {
			return notFound("exchange rate")
		}
		d.rates[rate.ExchangeRateID] = rate
		return nil
	})
}

func (s *Store) DeleteExchangeRate(ctx context.Context, organizationID, rateID, userID string, now time.Time) error {
	return s.write("DeleteExchangeRate", nil, func(d *state) error {
		r, ok := d.rates[rateID]
		if !ok || r.OrganizationID != organizationID || r.IsDeleted() {
			return notFound("exchange rate")
		}
		r.DeletedAt, r.DeletedBy = &now, &userID
		d.rates[rateID] = r
		return nil
	})
}

func (s *Store) FindExchangeRateByID(ctx context.Context, organizationID, rateID string) (*domain.ExchangeRate, error) {
	var out *domain.ExchangeRate
	err := s.read("FindExchangeRateByID", func(d *state) error {
		r, ok := d.rates[rateID]
		if !ok || r.OrganizationID != organizationID || r.IsDeleted() {
			return notFound("exchange rate")
		}
		out = &r
		return nil
	})
	return out, err
}

func (s *Store) FindExchangeRateByPairAndDate(ctx context.Context, organizationID, fromCurrencyID, toCurrencyID string, effectiveDate time.Time) (*domain.ExchangeRate, error) {
	day := domain.DateOnly(effectiveDate)
	var out *domain.ExchangeRate
	err := s.read("FindExchangeRateByPairAndDate", func(d *state) error {
		for _, r := range d.rates {
			if r.OrganizationID == organizationID && r.FromCurrencyID == fromCurrencyID && r.ToCurrencyID == toCurrencyID &&
				!r.IsDeleted() && domain.DateOnly(r.EffectiveDate).Equal(day) {
				r := r
				out = &r
				return nil
			}
		}
		return notFound("exchange rate")
	})
	return out, err
}

// FindLatestRateInTx picks the applicable row with the greatest effective date,
// breaking ties by the most recently created row.
func (s *Store) FindLatestRateInTx(ctx context.Context, tx pgx.Tx, organizationID, fromCurrencyID, toCurrencyID string, asOf time.Time) (*domain.ExchangeRate, error) {
	var out *domain.ExchangeRate
	err := s.read("FindLatestRateInTx", func(d *state) error {
		for _, r := range d.rates {
			if r.OrganizationID != organizationID || r.FromCurrencyID != fromCurrencyID || r.ToCurrencyID != toCurrencyID || !r.AppliesOn(asOf) {
				continue
			}
			if out == nil || r.EffectiveDate.After(out.EffectiveDate) ||
				(r.EffectiveDate.Equal(out.EffectiveDate) && r.CreatedAt.After(out.CreatedAt)) {
				r := r
				out = &r
			}
		}
		if out == nil {
			return notFound("exchange rate")
		}
		return nil
	})
	return out, err
}

func (s *Store) ListExchangeRates(ctx context.Context, organizationID string, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, error) {
	var out []domain.ExchangeRate
	err := s.read("ListExchangeRates", func(d *state) error {
		for _, r := range d.rates {
			switch {
			case r.OrganizationID != organizationID, r.IsDeleted():
				continue
			case filter.FromCurrencyID != nil && r.FromCurrencyID != *filter.FromCurrencyID:
				continue
			case filter.ToCurrencyID != nil && r.ToCurrencyID != *filter.ToCurrencyID:
				continue
			case filter.ActiveOnly && !r.IsActive:
				continue
			case filter.EffectiveOnOrBefore != nil && domain.DateOnly(r.EffectiveDate).After(domain.DateOnly(*filter.EffectiveOnOrBefore)):
				continue
			case filter.After != nil && !filter.After.Follows(r):
				continue
			}
			out = append(out, r)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EffectiveDate.Equal(out[j].EffectiveDate) {
			return out[i].EffectiveDate.After(out[j].EffectiveDate)
		}
		return out[i].ExchangeRateID < out[j].ExchangeRateID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, err
}
