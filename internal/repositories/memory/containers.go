package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

func (s *Store) SaveAccount(ctx context.Context, account domain.FinanceAccount) error {
	return s.write("SaveAccount", nil, func(d *state) error {
		d.accounts[account.AccountID] = account
		return nil
	})
}

func (s *Store) SaveProject(ctx context.Context, project domain.FinanceProject) error {
	return s.write("SaveProject", nil, func(d *state) error {
		d.projects[project.ProjectID] = project
		return nil
	})
}

func (s *Store) SaveDonor(ctx context.Context, donor domain.Donor) error {
	return s.write("SaveDonor", nil, func(d *state) error {
		d.donors[donor.DonorID] = donor
		return nil
	})
}

// SoftDeleteAccount marks a live account as deleted.
func (s *Store) SoftDeleteAccount(ctx context.Context, organizationID, accountID, userID string, now time.Time) error {
	return s.write("SoftDeleteAccount", nil, func(d *state) error {
		a, ok := d.accounts[accountID]
		if !ok || a.OrganizationID != organizationID || a.IsDeleted() {
			return notFound("finance account")
		}
		a.DeletedAt, a.DeletedBy = &now, &userID
		d.accounts[accountID] = a
		return nil
	})
}

func (s *Store) FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.FinanceAccount, error) {
	var out *domain.FinanceAccount
	err := s.read("FindAccountByID", func(d *state) error {
		a, ok := d.accounts[accountID]
		if !ok || a.OrganizationID != organizationID || a.IsDeleted() {
			return notFound("finance account")
		}
		out = &a
		return nil
	})
	return out, err
}

func (s *Store) FindProjectByID(ctx context.Context, organizationID, projectID string) (*domain.FinanceProject, error) {
	var out *domain.FinanceProject
	err := s.read("FindProjectByID", func(d *state) error {
		p, ok := d.projects[projectID]
		if !ok || p.OrganizationID != organizationID || p.IsDeleted() {
			return notFound("finance project")
		}
		out = &p
		return nil
	})
	return out, err
}

func (s *Store) FindDonorByID(ctx context.Context, organizationID, donorID string) (*domain.Donor, error) {
	var out *domain.Donor
	err := s.read("FindDonorByID", func(d *state) error {
		dn, ok := d.donors[donorID]
		if !ok || dn.OrganizationID != organizationID || dn.IsDeleted() {
			return notFound("donor")
		}
		out = &dn
		return nil
	})
	return out, err
}

func (s *Store) ListContainerRefs(ctx context.Context, organizationID string) ([]domain.ContainerRef, error) {
	var out []domain.ContainerRef
	err := s.read("ListContainerRefs", func(d *state) error {
		for id, a := range d.accounts {
			if a.OrganizationID == organizationID && !a.IsDeleted() {
				out = append(out, domain.ContainerRef{Kind: domain.ContainerAccount, ID: id})
			}
		}
		for id, p := range d.projects {
			if p.OrganizationID == organizationID && !p.IsDeleted() {
				out = append(out, domain.ContainerRef{Kind: domain.ContainerProject, ID: id})
			}
		}
		for id, dn := range d.donors {
			if dn.OrganizationID == organizationID && !dn.IsDeleted() {
				out = append(out, domain.ContainerRef{Kind: domain.ContainerDonor, ID: id})
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (s *Store) UpdateAccountOpeningBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, opening decimal.Decimal, userID string, now time.Time) error {
	return s.write("UpdateAccountOpeningBalanceInTx", tx, func(d *state) error {
		a, ok := d.accounts[accountID]
		if !ok || a.IsDeleted() {
			return notFound("finance account")
		}
		a.OpeningBalance = opening
		a.LastUpdatedAt, a.LastUpdatedBy = now, userID
		d.accounts[accountID] = a
		return nil
	})
}

// Lock*InTx only read: Begin already serializes every transaction.

func (s *Store) LockAccountInTx(ctx context.Context, tx pgx.Tx, accountID string) (*domain.FinanceAccount, error) {
	var out *domain.FinanceAccount
	err := s.read("LockAccountInTx", func(d *state) error {
		a, ok := d.accounts[accountID]
		if !ok || a.IsDeleted() {
			return notFound("finance account")
		}
		out = &a
		return nil
	})
	return out, err
}

func (s *Store) LockProjectInTx(ctx context.Context, tx pgx.Tx, projectID string) (*domain.FinanceProject, error) {
	var out *domain.FinanceProject
	err := s.read("LockProjectInTx", func(d *state) error {
		p, ok := d.projects[projectID]
		if !ok || p.IsDeleted() {
			return notFound("finance project")
		}
		out = &p
		return nil
	})
	return out, err
}

func (s *Store) LockDonorInTx(ctx context.Context, tx pgx.Tx, donorID string) (*domain.Donor, error) {
	var out *domain.Donor
	err := s.read("LockDonorInTx", func(d *state) error {
		dn, ok := d.donors[donorID]
		if !ok || dn.IsDeleted() {
			return notFound("donor")
		}
		out = &dn
		return nil
	})
	return out, err
}

func (s *Store) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, now time.Time) error {
	return s.write("UpdateAccountBalanceInTx", tx, func(d *state) error {
		a, ok := d.accounts[accountID]
		if !ok {
			return notFound("finance account")
		}
		a.CurrentBalance = balance
		a.LastUpdatedAt = now
		d.accounts[accountID] = a
		return nil
	})
}

func (s *Store) UpdateProjectTotalsInTx(ctx context.Context, tx pgx.Tx, projectID string, totalIncome, totalExpense decimal.Decimal, now time.Time) error {
	return s.write("UpdateProjectTotalsInTx", tx, func(d *state) error {
		p, ok := d.projects[projectID]
		if !ok {
			return notFound("finance project")
		}
		p.TotalIncome, p.TotalExpense = totalIncome, totalExpense
		p.LastUpdatedAt = now
		d.projects[projectID] = p
		return nil
	})
}

func (s *Store) UpdateDonorTotalInTx(ctx context.Context, tx pgx.Tx, donorID string, totalDonated decimal.Decimal, now time.Time) error {
	return s.write("UpdateDonorTotalInTx", tx, func(d *state) error {
		dn, ok := d.donors[donorID]
		if !ok {
			return notFound("donor")
		}
		dn.TotalDonated = totalDonated
		dn.LastUpdatedAt = now
		d.donors[donorID] = dn
		return nil
	})
}
