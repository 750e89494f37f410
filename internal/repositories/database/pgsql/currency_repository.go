package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/apperrors"
	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_reconciler/internal/core/ports/repositories"
	"github.com/SscSPs/finance_reconciler/internal/models"
	"github.com/SscSPs/finance_reconciler/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const currencyColumns = `currency_id, organization_id, code, symbol, name, decimal_places, is_base, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at, deleted_by`

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(base BaseRepository) *PgxCurrencyRepository {
	return &PgxCurrencyRepository{BaseRepository: base}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryWithTx = (*PgxCurrencyRepository)(nil)

// SaveCurrency inserts a new currency.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)
	query := `
		INSERT INTO currencies (currency_id, organization_id, code, symbol, name, decimal_places, is_base, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CurrencyID, m.OrganizationID, m.Code, m.Symbol, m.Name, m.DecimalPlaces, m.IsBase, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if uniqueViolation(err) {
			return apperrors.NewDuplicateError(fmt.Sprintf("currency %s already exists", m.Code))
		}
		return fmt.Errorf("failed to save currency %s: %w", m.Code, err)
	}
	return nil
}

// FindCurrencyByID retrieves a live currency of the organization.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, organizationID, currencyID string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + `
		FROM currencies
		WHERE organization_id = $1 AND currency_id = $2 AND deleted_at IS NULL;`
	return r.findOne(ctx, nil, query, organizationID, currencyID)
}

// FindBaseCurrency retrieves the organization's base currency.
func (r *PgxCurrencyRepository) FindBaseCurrency(ctx context.Context, organizationID string) (*domain.Currency, error) {
	return r.FindBaseCurrencyInTx(ctx, nil, organizationID)
}

// FindBaseCurrencyInTx retrieves the organization's base currency through tx.
func (r *PgxCurrencyRepository) FindBaseCurrencyInTx(ctx context.Context, tx pgx.Tx, organizationID string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + `
		FROM currencies
		WHERE organization_id = $1 AND is_base AND deleted_at IS NULL
		LIMIT 1;`
	return r.findOne(ctx, tx, query, organizationID)
}

func (r *PgxCurrencyRepository) findOne(ctx context.Context, tx pgx.Tx, query string, args ...any) (*domain.Currency, error) {
	m, err := collectOne[models.Currency](ctx, r.q(tx), "currency", query, args...)
	if err != nil {
		return nil, err
	}
	c := mapping.ToDomainCurrency(m)
	return &c, nil
}

// ListCurrencies retrieves all live currencies ordered by code.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context, organizationID string) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + `
		FROM currencies
		WHERE organization_id = $1 AND deleted_at IS NULL
		ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	modelCurrencies, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Currency])
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}
	return mapping.ToDomainCurrencySlice(modelCurrencies), nil
}

// SetBaseCurrencyInTx clears is_base on every sibling and sets it on currencyID.
func (r *PgxCurrencyRepository) SetBaseCurrencyInTx(ctx context.Context, tx pgx.Tx, organizationID, currencyID, userID string, now time.Time) error {
	db := r.q(tx)
	_, err := db.Exec(ctx, `
		UPDATE currencies
		SET is_base = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE organization_id = $1 AND currency_id <> $2 AND is_base;`,
		organizationID, currencyID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to clear base currency: %w", err)
	}

	tag, err := db.Exec(ctx, `
		UPDATE currencies
		SET is_base = TRUE, last_updated_at = $3, last_updated_by = $4
		WHERE organization_id = $1 AND currency_id = $2 AND deleted_at IS NULL;`,
		organizationID, currencyID, now, userID)
	return expectOne(tag, err, "currency")
}
