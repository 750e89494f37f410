package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/apperrors"
	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_reconciler/internal/core/ports/repositories"
	"github.com/SscSPs/finance_reconciler/internal/models"
	"github.com/SscSPs/finance_reconciler/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const exchangeRateColumns = `exchange_rate_id, organization_id, from_currency_id, to_currency_id, rate, effective_date, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at, deleted_by`

// PgxExchangeRateRepository implements the ports.ExchangeRateRepositoryFacade interface using pgxpool.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func newPgxExchangeRateRepository(base BaseRepository) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{BaseRepository: base}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// SaveExchangeRate inserts a new exchange rate.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO exchange_rates (
			exchange_rate_id, organization_id, from_currency_id, to_currency_id, rate, effective_date, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
		m.ExchangeRateID, m.OrganizationID, m.FromCurrencyID, m.ToCurrencyID, m.Rate, m.EffectiveDate, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if uniqueViolation(err) {
			return apperrors.NewDuplicateError("a rate for this pair already exists on " + m.EffectiveDate.Format("2006-01-02"))
		}
		return apperrors.NewAppError(500, "failed to save exchange rate", err)
	}
	return nil
}

// UpdateExchangeRate updates an existing exchange rate.
func (r *PgxExchangeRateRepository) UpdateExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE exchange_rates
		SET from_currency_id = $3, to_currency_id = $4, rate = $5, effective_date = $6, is_active = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE organization_id = $1 AND exchange_rate_id = $2 AND deleted_at IS NULL;`,
		m.OrganizationID, m.ExchangeRateID, m.FromCurrencyID, m.ToCurrencyID, m.Rate, m.EffectiveDate, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if uniqueViolation(err) {
		return apperrors.NewDuplicateError("a rate for this pair already exists on " + m.EffectiveDate.Format("2006-01-02"))
	}
	return expectOne(tag, err, "exchange rate")
}

// DeleteExchangeRate soft-deletes an exchange rate.
func (r *PgxExchangeRateRepository) DeleteExchangeRate(ctx context.Context, organizationID, rateID, userID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE exchange_rates
		SET deleted_at = $3, deleted_by = $4, last_updated_at = $3, last_updated_by = $4
		WHERE organization_id = $1 AND exchange_rate_id = $2 AND deleted_at IS NULL;`,
		organizationID, rateID, now, userID)
	return expectOne(tag, err, "exchange rate")
}

// FindExchangeRateByID retrieves a live exchange rate by ID.
func (r *PgxExchangeRateRepository) FindExchangeRateByID(ctx context.Context, organizationID, rateID string) (*domain.ExchangeRate, error) {
	return r.findOne(ctx, nil, `SELECT `+exchangeRateColumns+`
		FROM exchange_rates
		WHERE organization_id = $1 AND exchange_rate_id = $2 AND deleted_at IS NULL;`,
		organizationID, rateID)
}

// FindExchangeRateByPairAndDate retrieves the live row for a pair on an exact effective date.
func (r *PgxExchangeRateRepository) FindExchangeRateByPairAndDate(ctx context.Context, organizationID, fromCurrencyID, toCurrencyID string, effectiveDate time.Time) (*domain.ExchangeRate, error) {
	return r.findOne(ctx, nil, `SELECT `+exchangeRateColumns+`
		FROM exchange_rates
		WHERE organization_id = $1 AND from_currency_id = $2 AND to_currency_id = $3
			AND effective_date = $4 AND deleted_at IS NULL;`,
		organizationID, fromCurrencyID, toCurrencyID, domain.DateOnly(effectiveDate))
}

// FindLatestRateInTx returns the active row for the pair with the greatest effective_date <= asOf.
func (r *PgxExchangeRateRepository) FindLatestRateInTx(ctx context.Context, tx pgx.Tx, organizationID, fromCurrencyID, toCurrencyID string, asOf time.Time) (*domain.ExchangeRate, error) {
	return r.findOne(ctx, tx, `SELECT `+exchangeRateColumns+`
		FROM exchange_rates
		WHERE organization_id = $1 AND from_currency_id = $2 AND to_currency_id = $3
			AND effective_date <= $4 AND is_active AND deleted_at IS NULL
		ORDER BY effective_date DESC, created_at DESC
		LIMIT 1;`,
		organizationID, fromCurrencyID, toCurrencyID, domain.DateOnly(asOf))
}

func (r *PgxExchangeRateRepository) findOne(ctx context.Context, tx pgx.Tx, query string, args ...any) (*domain.ExchangeRate, error) {
	m, err := collectOne[models.ExchangeRate](ctx, r.q(tx), "exchange rate", query, args...)
	if err != nil {
		return nil, err
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// ListExchangeRates lists live rates ordered by effective_date descending.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context, organizationID string, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, error) {
	conditions := []string{"organization_id = $1", "deleted_at IS NULL"}
	args := []any{organizationID}
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}
	if filter.FromCurrencyID != nil {
		add("from_currency_id = $%d", *filter.FromCurrencyID)
	}
	if filter.ToCurrencyID != nil {
		add("to_currency_id = $%d", *filter.ToCurrencyID)
	}
	if filter.EffectiveOnOrBefore != nil {
		add("effective_date <= $%d", domain.DateOnly(*filter.EffectiveOnOrBefore))
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "is_active")
	}
	if filter.After != nil {
		args = append(args, domain.DateOnly(filter.After.EffectiveDate), filter.After.ExchangeRateID)
		conditions = append(conditions, fmt.Sprintf(
			"(effective_date < $%[1]d OR (effective_date = $%[1]d AND exchange_rate_id > $%[2]d))", len(args)-1, len(args)))
	}

	query := `SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY effective_date DESC, exchange_rate_id`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list exchange rates", err)
	}
	modelRates, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ExchangeRate])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan exchange rates", err)
	}
	return mapping.ToDomainExchangeRateSlice(modelRates), nil
}
