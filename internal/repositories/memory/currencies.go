package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/apperrors"
	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

func (s *Store) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	return s.write("SaveCurrency", nil, func(d *state) error {
		for _, c := range d.currencies {
			if c.OrganizationID == currency.OrganizationID && c.Code == currency.Code && !c.IsDeleted() {
				return apperrors.NewDuplicateError("currency code already exists")
			}
		}
		d.currencies[currency.CurrencyID] = currency
		return nil
	})
}

func (s *Store) FindCurrencyByID(ctx context.Context, organizationID, currencyID string) (*domain.Currency, error) {
	var out *domain.Currency
	err := s.read("FindCurrencyByID", func(d *state) error {
		c, ok := d.currencies[currencyID]
		if !ok || c.OrganizationID != organizationID || c.IsDeleted() {
			return notFound("currency")
		}
		out = &c
		return nil
	})
	return out, err
}

func (s *Store) FindBaseCurrency(ctx context.Context, organizationID string) (*domain.Currency, error) {
	var out *domain.Currency
	err := s.read("FindBaseCurrency", func(d *state) error {
		for _, c := range d.currencies {
			if c.OrganizationID == organizationID && c.IsBase && !c.IsDeleted() {
				c := c
				out = &c
				return nil
			}
		}
		return notFound("base currency")
	})
	return out, err
}

func (s *Store) FindBaseCurrencyInTx(ctx context.Context, tx pgx.Tx, organizationID string) (*domain.Currency, error) {
	return s.FindBaseCurrency(ctx, organizationID)
}

func (s *Store) ListCurrencies(ctx context.Context, organizationID string) ([]domain.Currency, error) {
	var out []domain.Currency
	err := s.read("ListCurrencies", func(d *state) error {
		for _, c := range d.currencies {
			if c.OrganizationID == organizationID && !c.IsDeleted() {
				out = append(out, c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, err
}

func (s *Store) SetBaseCurrencyInTx(ctx context.Context, tx pgx.Tx, organizationID, currencyID, userID string, now time.Time) error {
	return s.write("SetBaseCurrencyInTx", tx, func(d *state) error {
		target, ok := d.currencies[currencyID]
		if !ok || target.OrganizationID != organizationID || target.IsDeleted() {
			return notFound("currency")
		}
		for id, c := range d.currencies {
			if c.OrganizationID != organizationID {
				continue
			}
			isBase := id == currencyID
			if c.IsBase != isBase {
				c.IsBase = isBase
				c.LastUpdatedAt, c.LastUpdatedBy = now, userID
				d.currencies[id] = c
			}
		}
		return nil
	})
}
