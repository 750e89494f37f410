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
	"github.com/shopspring/decimal"
)

const (
	accountColumns = `account_id, organization_id, name, code, currency_id, opening_balance, current_balance, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at, deleted_by`
	projectColumns = `project_id, organization_id, name, code, currency_id, budget, total_income, total_expense, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at, deleted_by`
	donorColumns = `donor_id, organization_id, name, currency_id, total_donated, is_active,
	created_at, created_by, last_updated_at, last_updated_by, deleted_at, deleted_by`
)

// PgxContainerRepository stores finance accounts, projects and donors.
type PgxContainerRepository struct {
	BaseRepository
}

func newPgxContainerRepository(base BaseRepository) *PgxContainerRepository {
	return &PgxContainerRepository{BaseRepository: base}
}

var _ portsrepo.ContainerRepositoryWithTx = (*PgxContainerRepository)(nil)

func (r *PgxContainerRepository) SaveAccount(ctx context.Context, account domain.FinanceAccount) error {
	m := mapping.ToModelFinanceAccount(account)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO finance_accounts (account_id, organization_id, name, code, currency_id, opening_balance, current_balance, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
		m.AccountID, m.OrganizationID, m.Name, m.Code, m.CurrencyID, m.OpeningBalance, m.CurrentBalance, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		if uniqueViolation(err) {
			return apperrors.NewDuplicateError(fmt.Sprintf("account code %s already exists", m.Code))
		}
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

func (r *PgxContainerRepository) SaveProject(ctx context.Context, project domain.FinanceProject) error {
	m := mapping.ToModelFinanceProject(project)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO finance_projects (project_id, organization_id, name, code, currency_id, budget, total_income, total_expense, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		m.ProjectID, m.OrganizationID, m.Name, m.Code, m.CurrencyID, m.Budget, m.TotalIncome, m.TotalExpense, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		if uniqueViolation(err) {
			return apperrors.NewDuplicateError(fmt.Sprintf("project code %s already exists", m.Code))
		}
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

func (r *PgxContainerRepository) SaveDonor(ctx context.Context, donor domain.Donor) error {
	m := mapping.ToModelDonor(donor)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO donors (donor_id, organization_id, name, currency_id, total_donated, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		m.DonorID, m.OrganizationID, m.Name, m.CurrencyID, m.TotalDonated, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to save donor: %w", err)
	}
	return nil
}

func (r *PgxContainerRepository) FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.FinanceAccount, error) {
	m, err := collectOne[models.FinanceAccount](ctx, r.Pool, "finance account", `SELECT `+accountColumns+`
		FROM finance_accounts
		WHERE organization_id = $1 AND account_id = $2 AND deleted_at IS NULL;`, organizationID, accountID)
	if err != nil {
		return nil, err
	}
	a := mapping.ToDomainFinanceAccount(m)
	return &a, nil
}

func (r *PgxContainerRepository) FindProjectByID(ctx context.Context, organizationID, projectID string) (*domain.FinanceProject, error) {
	m, err := collectOne[models.FinanceProject](ctx, r.Pool, "finance project", `SELECT `+projectColumns+`
		FROM finance_projects
		WHERE organization_id = $1 AND project_id = $2 AND deleted_at IS NULL;`, organizationID, projectID)
	if err != nil {
		return nil, err
	}
	p := mapping.ToDomainFinanceProject(m)
	return &p, nil
}

func (r *PgxContainerRepository) FindDonorByID(ctx context.Context, organizationID, donorID string) (*domain.Donor, error) {
	m, err := collectOne[models.Donor](ctx, r.Pool, "donor", `SELECT `+donorColumns+`
		FROM donors
		WHERE organization_id = $1 AND donor_id = $2 AND deleted_at IS NULL;`, organizationID, donorID)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainDonor(m)
	return &d, nil
}

// ListContainerRefs lists every live container ordered by kind, then id.
func (r *PgxContainerRepository) ListContainerRefs(ctx context.Context, organizationID string) ([]domain.ContainerRef, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT kind, id FROM (
			SELECT 'account' AS kind, account_id AS id FROM finance_accounts WHERE organization_id = $1 AND deleted_at IS NULL
			UNION ALL
			SELECT 'project', project_id FROM finance_projects WHERE organization_id = $1 AND deleted_at IS NULL
			UNION ALL
			SELECT 'donor', donor_id FROM donors WHERE organization_id = $1 AND deleted_at IS NULL
		) c
		ORDER BY kind, id;`, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ContainerRef, error) {
		var ref domain.ContainerRef
		var kind string
		err := row.Scan(&kind, &ref.ID)
		ref.Kind = domain.ContainerKind(kind)
		return ref, err
	})
}

func (r *PgxContainerRepository) UpdateAccountOpeningBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, opening decimal.Decimal, userID string, now time.Time) error {
	tag, err := r.q(tx).Exec(ctx, `
		UPDATE finance_accounts
		SET opening_balance = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND deleted_at IS NULL;`,
		accountID, opening, now, userID)
	return expectOne(tag, err, "finance account")
}

// LockAccountInTx reads the account with a row lock held until tx ends.
func (r *PgxContainerRepository) LockAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) (*domain.FinanceAccount, error) {
	m, err := collectOne[models.FinanceAccount](ctx, r.q(tx), "finance account", `SELECT `+accountColumns+`
		FROM finance_accounts
		WHERE account_id = $1 AND deleted_at IS NULL
		FOR UPDATE;`, accountID)
	if err != nil {
		return nil, err
	}
	a := mapping.ToDomainFinanceAccount(m)
	return &a, nil
}

func (r *PgxContainerRepository) LockProjectInTx(ctx context.Context, tx pgx.Tx, projectID string) (*domain.FinanceProject, error) {
	m, err := collectOne[models.FinanceProject](ctx, r.q(tx), "finance project", `SELECT `+projectColumns+`
		FROM finance_projects
		WHERE project_id = $1 AND deleted_at IS NULL
		FOR UPDATE;`, projectID)
	if err != nil {
		return nil, err
	}
	p := mapping.ToDomainFinanceProject(m)
	return &p, nil
}

func (r *PgxContainerRepository) LockDonorInTx(ctx context.Context, tx pgx.Tx, donorID string) (*domain.Donor, error) {
	m, err := collectOne[models.Donor](ctx, r.q(tx), "donor", `SELECT `+donorColumns+`
		FROM donors
		WHERE donor_id = $1 AND deleted_at IS NULL
		FOR UPDATE;`, donorID)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainDonor(m)
	return &d, nil
}

func (r *PgxContainerRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, now time.Time) error {
	tag, err := r.q(tx).Exec(ctx, `
		UPDATE finance_accounts SET current_balance = $2, last_updated_at = $3
		WHERE account_id = $1;`, accountID, balance, now)
	return expectOne(tag, err, "finance account")
}

func (r *PgxContainerRepository) UpdateProjectTotalsInTx(ctx context.Context, tx pgx.Tx, projectID string, totalIncome, totalExpense decimal.Decimal, now time.Time) error {
	tag, err := r.q(tx).Exec(ctx, `
		UPDATE finance_projects SET total_income = $2, total_expense = $3, last_updated_at = $4
		WHERE project_id = $1;`, projectID, totalIncome, totalExpense, now)
	return expectOne(tag, err, "finance project")
}

func (r *PgxContainerRepository) UpdateDonorTotalInTx(ctx context.Context, tx pgx.Tx, donorID string, totalDonated decimal.Decimal, now time.Time) error {
	tag, err := r.q(tx).Exec(ctx, `
		UPDATE donors SET total_donated = $2, last_updated_at = $3
		WHERE donor_id = $1;`, donorID, totalDonated, now)
	return expectOne(tag, err, "donor")
}
