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

const (
	incomeColumns = `entry_id, organization_id, account_id, project_id, donor_id, currency_id, amount, entry_date, description, reference_no,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at, deleted_by`
	expenseColumns = `entry_id, organization_id, account_id, project_id, currency_id, amount, entry_date, status, description, reference_no,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at, deleted_by`
	assetColumns = `asset_id, organization_id, name, asset_tag, finance_account_id, currency_id, purchase_price, purchase_date, total_copies, status,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at, deleted_by`
)

// PgxEntryRepository stores income entries, expense entries and assets.
type PgxEntryRepository struct {
	BaseRepository
}

func newPgxEntryRepository(base BaseRepository) *PgxEntryRepository {
	return &PgxEntryRepository{BaseRepository: base}
}

var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

// containerColumn maps a container to the foreign key column each row table uses for it.
// An empty string means the table never points at that kind of container.
func containerColumn(kind domain.ContainerKind, table string) string {
	switch kind {
	case domain.ContainerAccount:
		if table == "assets" {
			return "finance_account_id"
		}
		return "account_id"
	case domain.ContainerProject:
		if table == "assets" {
			return ""
		}
		return "project_id"
	case domain.ContainerDonor:
		if table == "income_entries" {
			return "donor_id"
		}
	}
	return ""
}

// ListContributions returns live income, approved expenses and owned assets pointing at ref.
func (r *PgxEntryRepository) ListContributions(ctx context.Context, tx pgx.Tx, ref domain.ContainerRef) (domain.Contributions, error) {
	var out domain.Contributions
	db := r.q(tx)

	if col := containerColumn(ref.Kind, "income_entries"); col != "" {
		rows, err := db.Query(ctx, `SELECT `+incomeColumns+`
			FROM income_entries
			WHERE `+col+` = $1 AND deleted_at IS NULL
			ORDER BY entry_id;`, ref.ID)
		if err != nil {
			return out, fmt.Errorf("failed to query income: %w", err)
		}
		ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.IncomeEntry])
		if err != nil {
			return out, fmt.Errorf("failed to scan income: %w", err)
		}
		for _, m := range ms {
			out.Income = append(out.Income, mapping.ToDomainIncomeEntry(m))
		}
	}

	if col := containerColumn(ref.Kind, "expense_entries"); col != "" {
		rows, err := db.Query(ctx, `SELECT `+expenseColumns+`
			FROM expense_entries
			WHERE `+col+` = $1 AND status = $2 AND deleted_at IS NULL
			ORDER BY entry_id;`, ref.ID, string(domain.ExpenseApproved))
		if err != nil {
			return out, fmt.Errorf("failed to query expenses: %w", err)
		}
		ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ExpenseEntry])
		if err != nil {
			return out, fmt.Errorf("failed to scan expenses: %w", err)
		}
		for _, m := range ms {
			out.Expenses = append(out.Expenses, mapping.ToDomainExpenseEntry(m))
		}
	}

	if col := containerColumn(ref.Kind, "assets"); col != "" {
		owned := make([]string, len(domain.OwnedAssetStatuses))
		for i, s := range domain.OwnedAssetStatuses {
			owned[i] = string(s)
		}
		rows, err := db.Query(ctx, `SELECT `+assetColumns+`
			FROM assets
			WHERE `+col+` = $1 AND status = ANY($2) AND deleted_at IS NULL
			ORDER BY asset_id;`, ref.ID, owned)
		if err != nil {
			return out, fmt.Errorf("failed to query assets: %w", err)
		}
		ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Asset])
		if err != nil {
			return out, fmt.Errorf("failed to scan assets: %w", err)
		}
		for _, m := range ms {
			out.Assets = append(out.Assets, mapping.ToDomainAsset(m))
		}
	}
	return out, nil
}

// --- income ---

func (r *PgxEntryRepository) LockIncomeInTx(ctx context.Context, tx pgx.Tx, organizationID, entryID string) (*domain.IncomeEntry, error) {
	m, err := collectOne[models.IncomeEntry](ctx, r.q(tx), "income entry", `SELECT `+incomeColumns+`
		FROM income_entries
		WHERE organization_id = $1 AND entry_id = $2 AND deleted_at IS NULL
		FOR UPDATE;`, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	e := mapping.ToDomainIncomeEntry(m)
	return &e, nil
}

func (r *PgxEntryRepository) InsertIncomeInTx(ctx context.Context, tx pgx.Tx, entry domain.IncomeEntry) error {
	m := mapping.ToModelIncomeEntry(entry)
	_, err := r.q(tx).Exec(ctx, `
		INSERT INTO income_entries (entry_id, organization_id, account_id, project_id, donor_id, currency_id, amount, entry_date,
			description, reference_no, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`,
		m.EntryID, m.OrganizationID, m.AccountID, m.ProjectID, m.DonorID, m.CurrencyID, m.Amount, m.Date,
		m.Description, m.ReferenceNo, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert income entry", err)
	}
	return nil
}

func (r *PgxEntryRepository) UpdateIncomeInTx(ctx context.Context, tx pgx.Tx, entry domain.IncomeEntry) error {
	m := mapping.ToModelIncomeEntry(entry)
	tag, err := r.q(tx).Exec(ctx, `
		UPDATE income_entries
		SET account_id = $2, project_id = $3, donor_id = $4, currency_id = $5, amount = $6, entry_date = $7,
			description = $8, reference_no = $9, last_updated_at = $10, last_updated_by = $11
		WHERE entry_id = $1 AND deleted_at IS NULL;`,
		m.EntryID, m.AccountID, m.ProjectID, m.DonorID, m.CurrencyID, m.Amount, m.Date,
		m.Description, m.ReferenceNo, m.LastUpdatedAt, m.LastUpdatedBy)
	return expectOne(tag, err, "income entry")
}

func (r *PgxEntryRepository) SoftDeleteIncomeInTx(ctx context.Context, tx pgx.Tx, entryID, userID string, now time.Time) error {
	return r.softDelete(ctx, tx, "income_entries", "entry_id", entryID, userID, now, "income entry")
}

// --- expenses ---

func (r *PgxEntryRepository) LockExpenseInTx(ctx context.Context, tx pgx.Tx, organizationID, entryID string) (*domain.ExpenseEntry, error) {
	m, err := collectOne[models.ExpenseEntry](ctx, r.q(tx), "expense entry", `SELECT `+expenseColumns+`
		FROM expense_entries
		WHERE organization_id = $1 AND entry_id = $2 AND deleted_at IS NULL
		FOR UPDATE;`, organizationID, entryID)
	if err != nil {
		return nil, err
	}
	e := mapping.ToDomainExpenseEntry(m)
	return &e, nil
}

func (r *PgxEntryRepository) InsertExpenseInTx(ctx context.Context, tx pgx.Tx, entry domain.ExpenseEntry) error {
	m := mapping.ToModelExpenseEntry(entry)
	_, err := r.q(tx).Exec(ctx, `
		INSERT INTO expense_entries (entry_id, organization_id, account_id, project_id, currency_id, amount, entry_date, status,
			description, reference_no, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`,
		m.EntryID, m.OrganizationID, m.AccountID, m.ProjectID, m.CurrencyID, m.Amount, m.Date, m.Status,
		m.Description, m.ReferenceNo, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert expense entry", err)
	}
	return nil
}

func (r *PgxEntryRepository) UpdateExpenseInTx(ctx context.Context, tx pgx.Tx, entry domain.ExpenseEntry) error {
	m := mapping.ToModelExpenseEntry(entry)
	tag, err := r.q(tx).Exec(ctx, `
		UPDATE expense_entries
		SET account_id = $2, project_id = $3, currency_id = $4, amount = $5, entry_date = $6, status = $7,
			description = $8, reference_no = $9, last_updated_at = $10, last_updated_by = $11
		WHERE entry_id = $1 AND deleted_at IS NULL;`,
		m.EntryID, m.AccountID, m.ProjectID, m.CurrencyID, m.Amount, m.Date, m.Status,
		m.Description, m.ReferenceNo, m.LastUpdatedAt, m.LastUpdatedBy)
	return expectOne(tag, err, "expense entry")
}

func (r *PgxEntryRepository) SoftDeleteExpenseInTx(ctx context.Context, tx pgx.Tx, entryID, userID string, now time.Time) error {
	return r.softDelete(ctx, tx, "expense_entries", "entry_id", entryID, userID, now, "expense entry")
}

// --- assets ---

func (r *PgxEntryRepository) LockAssetInTx(ctx context.Context, tx pgx.Tx, organizationID, assetID string) (*domain.Asset, error) {
	m, err := collectOne[models.Asset](ctx, r.q(tx), "asset", `SELECT `+assetColumns+`
		FROM assets
		WHERE organization_id = $1 AND asset_id = $2 AND deleted_at IS NULL
		FOR UPDATE;`, organizationID, assetID)
	if err != nil {
		return nil, err
	}
	a := mapping.ToDomainAsset(m)
	return &a, nil
}

func (r *PgxEntryRepository) InsertAssetInTx(ctx context.Context, tx pgx.Tx, asset domain.Asset) error {
	m := mapping.ToModelAsset(asset)
	_, err := r.q(tx).Exec(ctx, `
		INSERT INTO assets (asset_id, organization_id, name, asset_tag, finance_account_id, currency_id, purchase_price, purchase_date,
			total_copies, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);`,
		m.AssetID, m.OrganizationID, m.Name, m.AssetTag, m.FinanceAccountID, m.CurrencyID, m.PurchasePrice, m.PurchaseDate,
		m.TotalCopies, m.Status, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert asset", err)
	}
	return nil
}

func (r *PgxEntryRepository) UpdateAssetInTx(ctx context.Context, tx pgx.Tx, asset domain.Asset) error {
	m := mapping.ToModelAsset(asset)
	tag, err := r.q(tx).Exec(ctx, `
		UPDATE assets
		SET name = $2, asset_tag = $3, finance_account_id = $4, currency_id = $5, purchase_price = $6, purchase_date = $7,
			total_copies = $8, status = $9, last_updated_at = $10, last_updated_by = $11
		WHERE asset_id = $1 AND deleted_at IS NULL;`,
		m.AssetID, m.Name, m.AssetTag, m.FinanceAccountID, m.CurrencyID, m.PurchasePrice, m.PurchaseDate,
		m.TotalCopies, m.Status, m.LastUpdatedAt, m.LastUpdatedBy)
	return expectOne(tag, err, "asset")
}

func (r *PgxEntryRepository) SoftDeleteAssetInTx(ctx context.Context, tx pgx.Tx, assetID, userID string, now time.Time) error {
	return r.softDelete(ctx, tx, "assets", "asset_id", assetID, userID, now, "asset")
}

func (r *PgxEntryRepository) softDelete(ctx context.Context, tx pgx.Tx, table, idColumn, id, userID string, now time.Time, what string) error {
	tag, err := r.q(tx).Exec(ctx, `
		UPDATE `+table+`
		SET deleted_at = $2, deleted_by = $3, last_updated_at = $2, last_updated_by = $3
		WHERE `+idColumn+` = $1 AND deleted_at IS NULL;`, id, now, userID)
	return expectOne(tag, err, what)
}
