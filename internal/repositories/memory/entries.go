package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

func matches(id *string, want string) bool {
	return id != nil && *id == want
}

// ListContributions mirrors the SQL: live income, approved expenses and owned assets.
func (s *Store) ListContributions(ctx context.Context, tx pgx.Tx, ref domain.ContainerRef) (domain.Contributions, error) {
	var out domain.Contributions
	err := s.read("ListContributions", func(d *state) error {
		for _, e := range d.income {
			if e.IsDeleted() {
				continue
			}
			if (ref.Kind == domain.ContainerAccount && matches(e.AccountID, ref.ID)) ||
				(ref.Kind == domain.ContainerProject && matches(e.ProjectID, ref.ID)) ||
				(ref.Kind == domain.ContainerDonor && matches(e.DonorID, ref.ID)) {
				out.Income = append(out.Income, e)
			}
		}
		if ref.Kind == domain.ContainerDonor {
			return nil
		}
		for _, e := range d.expenses {
			if !e.Counts() {
				continue
			}
			if (ref.Kind == domain.ContainerAccount && matches(e.AccountID, ref.ID)) ||
				(ref.Kind == domain.ContainerProject && matches(e.ProjectID, ref.ID)) {
				out.Expenses = append(out.Expenses, e)
			}
		}
		if ref.Kind != domain.ContainerAccount {
			return nil
		}
		for _, a := range d.assets {
			if a.Counts() && matches(a.FinanceAccountID, ref.ID) {
				out.Assets = append(out.Assets, a)
			}
		}
		return nil
	})

	sort.Slice(out.Income, func(i, j int) bool { return out.Income[i].EntryID < out.Income[j].EntryID })
	sort.Slice(out.Expenses, func(i, j int) bool { return out.Expenses[i].EntryID < out.Expenses[j].EntryID })
	sort.Slice(out.Assets, func(i, j int) bool { return out.Assets[i].AssetID < out.Assets[j].AssetID })
	return out, err
}

// --- income ---

func (s *Store) LockIncomeInTx(ctx context.Context, tx pgx.Tx, organizationID, entryID string) (*domain.IncomeEntry, error) {
	var out *domain.IncomeEntry
	err := s.read("LockIncomeInTx", func(d *state) error {
		e, ok := d.income[entryID]
		if !ok || e.OrganizationID != organizationID || e.IsDeleted() {
			return notFound("income entry")
		}
		out = &e
		return nil
	})
	return out, err
}

func (s *Store) InsertIncomeInTx(ctx context.Context, tx pgx.Tx, entry domain.IncomeEntry) error {
	return s.write("InsertIncomeInTx", tx, func(d *state) error {
		d.income[entry.EntryID] = entry
		return nil
	})
}

func (s *Store) UpdateIncomeInTx(ctx context.Context, tx pgx.Tx, entry domain.IncomeEntry) error {
	return s.write("UpdateIncomeInTx", tx, func(d *state) error {
		if _, ok := d.income[entry.EntryID]; !ok {
			return notFound("income entry")
		}
		d.income[entry.EntryID] = entry
		return nil
	})
}

func (s *Store) SoftDeleteIncomeInTx(ctx context.Context, tx pgx.Tx, entryID, userID string, now time.Time) error {
	return s.write("SoftDeleteIncomeInTx", tx, func(d *state) error {
		e, ok := d.income[entryID]
		if !ok {
			return notFound("income entry")
		}
		e.DeletedAt, e.DeletedBy = &now, &userID
		d.income[entryID] = e
		return nil
	})
}

// --- expense ---

func (s *Store) LockExpenseInTx(ctx context.Context, tx pgx.Tx, organizationID, entryID string) (*domain.ExpenseEntry, error) {
	var out *domain.ExpenseEntry
	err := s.read("LockExpenseInTx", func(d *state) error {
		e, ok := d.expenses[entryID]
		if !ok || e.OrganizationID != organizationID || e.IsDeleted() {
			return notFound("expense entry")
		}
		out = &e
		return nil
	})
	return out, err
}

func (s *Store) InsertExpenseInTx(ctx context.Context, tx pgx.Tx, entry domain.ExpenseEntry) error {
	return s.write("InsertExpenseInTx", tx, func(d *state) error {
		d.expenses[entry.EntryID] = entry
		return nil
	})
}

func (s *Store) UpdateExpenseInTx(ctx context.Context, tx pgx.Tx, entry domain.ExpenseEntry) error {
	return s.write("UpdateExpenseInTx", tx, func(d *state) error {
		if _, ok := d.expenses[entry.EntryID]; !ok {
			return notFound("expense entry")
		}
		d.expenses[entry.EntryID] = entry
		return nil
	})
}

func (s *Store) SoftDeleteExpenseInTx(ctx context.Context, tx pgx.Tx, entryID, userID string, now time.Time) error {
	return s.write("SoftDeleteExpenseInTx", tx, func(d *state) error {
		e, ok := d.expenses[entryID]
		if !ok {
			return notFound("expense entry")
		}
		e.DeletedAt, e.DeletedBy = &now, &userID
		d.expenses[entryID] = e
		return nil
	})
}

// --- asset ---

func (s *Store) LockAssetInTx(ctx context.Context, tx pgx.Tx, organizationID, assetID string) (*domain.Asset, error) {
	var out *domain.Asset
	err := s.read("LockAssetInTx", func(d *state) error {
		a, ok := d.assets[assetID]
		if !ok || a.OrganizationID != organizationID || a.IsDeleted() {
			return notFound("asset")
		}
		out = &a
		return nil
	})
	return out, err
}

func (s *Store) InsertAssetInTx(ctx context.Context, tx pgx.Tx, asset domain.Asset) error {
	return s.write("InsertAssetInTx", tx, func(d *state) error {
		d.assets[asset.AssetID] = asset
		return nil
	})
}

func (s *Store) UpdateAssetInTx(ctx context.Context, tx pgx.Tx, asset domain.Asset) error {
	return s.write("UpdateAssetInTx", tx, func(d *state) error {
		if _, ok := d.assets[asset.AssetID]; !ok {
			return notFound("asset")
		}
		d.assets[asset.AssetID] = asset
		return nil
	})
}

func (s *Store) SoftDeleteAssetInTx(ctx context.Context, tx pgx.Tx, assetID, userID string, now time.Time) error {
	return s.write("SoftDeleteAssetInTx", tx, func(d *state) error {
		a, ok := d.assets[assetID]
		if !ok {
			return notFound("asset")
		}
		a.DeletedAt, a.DeletedBy = &now, &userID
		d.assets[assetID] = a
		return nil
	})
}
