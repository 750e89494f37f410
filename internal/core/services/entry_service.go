package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_reconciler/internal/apperrors"
	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_reconciler/internal/core/ports/services"
	"github.com/SscSPs/finance_reconciler/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// entryService is the write path for income, expense and asset rows. Every
// mutation and the recalculations it triggers share one transaction.
type entryService struct {
	unitOfWork
	entries      portsrepo.EntryTransactionSupport
	containers   portsrepo.ContainerReader
	currencies   portsrepo.CurrencyReader
	orchestrator portssvc.RecalculationOrchestratorSvc
}

// EntryServiceOption is a functional option for configuring the entry service
type EntryServiceOption func(*entryService)

// WithRecalculationListener registers the post-commit listener.
func WithRecalculationListener(l portssvc.RecalculationListener) EntryServiceOption {
	return func(s *entryService) {
		s.listener = l
	}
}

// NewEntryService creates a new entry service.
func NewEntryService(
	txManager portsrepo.TransactionManager,
	entries portsrepo.EntryTransactionSupport,
	containers portsrepo.ContainerReader,
	currencies portsrepo.CurrencyReader,
	orchestrator portssvc.RecalculationOrchestratorSvc,
	options ...EntryServiceOption,
) portssvc.EntrySvcFacade {
	svc := &entryService{
		unitOfWork:   unitOfWork{txManager: txManager},
		entries:      entries,
		containers:   containers,
		currencies:   currencies,
		orchestrator: orchestrator,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.EntrySvcFacade = (*entryService)(nil)

// --- income ---

func (s *entryService) CreateIncome(ctx context.Context, organizationID string, req dto.CreateIncomeRequest, userID string) (*domain.IncomeEntry, []domain.Recalculation, error) {
	now := s.Now()
	entry := domain.IncomeEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: organizationID,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
	}
	applyIncome(&entry, req)
	if err := s.validateIncome(ctx, entry); err != nil {
		return nil, nil, err
	}

	recalcs, err := s.run(ctx, TriggerIncomeCreated, func(tx pgx.Tx) ([]domain.Recalculation, error) {
		if err := s.entries.InsertIncomeInTx(ctx, tx, entry); err != nil {
			return nil, fmt.Errorf("failed to insert income: %w", err)
		}
		return s.orchestrator.OnCreated(ctx, tx, entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create income", slog.String("organization_id", organizationID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Income created", slog.String("entry_id", entry.EntryID), slog.Int("recalculated", len(recalcs)))
	return &entry, recalcs, nil
}

func (s *entryService) UpdateIncome(ctx context.Context, organizationID, entryID string, req dto.UpdateIncomeRequest, userID string) (*domain.IncomeEntry, []domain.Recalculation, error) {
	var updated domain.IncomeEntry
	recalcs, err := s.run(ctx, TriggerIncomeUpdated, func(tx pgx.Tx) ([]domain.Recalculation, error) {
		previous, err := s.entries.LockIncomeInTx(ctx, tx, organizationID, entryID)
		if err != nil {
			return nil, err
		}
		updated = *previous
		applyIncome(&updated, dto.CreateIncomeRequest(req))
		updated.LastUpdatedAt, updated.LastUpdatedBy = s.Now(), userID
		if err := s.validateIncome(ctx, updated); err != nil {
			return nil, err
		}
		if err := s.entries.UpdateIncomeInTx(ctx, tx, updated); err != nil {
			return nil, fmt.Errorf("failed to update income: %w", err)
		}
		return s.orchestrator.OnUpdated(ctx, tx, updated, *previous)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update income", slog.String("entry_id", entryID))
		return nil, nil, err
	}
	return &updated, recalcs, nil
}

func (s *entryService) DeleteIncome(ctx context.Context, organizationID, entryID, userID string) ([]domain.Recalculation, error) {
	recalcs, err := s.run(ctx, TriggerIncomeDeleted, func(tx pgx.Tx) ([]domain.Recalculation, error) {
		previous, err := s.entries.LockIncomeInTx(ctx, tx, organizationID, entryID)
		if err != nil {
			return nil, err
		}
		if err := s.entries.SoftDeleteIncomeInTx(ctx, tx, entryID, userID, s.Now()); err != nil {
			return nil, fmt.Errorf("failed to delete income: %w", err)
		}
		return s.orchestrator.OnDeleted(ctx, tx, *previous)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete income", slog.String("entry_id", entryID))
		return nil, err
	}
	return recalcs, nil
}

func applyIncome(e *domain.IncomeEntry, req dto.CreateIncomeRequest) {
	e.AccountID = req.AccountID
	e.ProjectID = req.ProjectID
	e.DonorID = req.DonorID
	e.CurrencyID = req.CurrencyID
	e.Amount = req.Amount
	e.Date = domain.DateOnly(req.Date)
	e.Description = req.Description
	e.ReferenceNo = req.ReferenceNo
}

func (s *entryService) validateIncome(ctx context.Context, e domain.IncomeEntry) error {
	if !e.Amount.IsPositive() {
		return apperrors.NewValidationError("amount must be positive")
	}
	if e.Date.IsZero() {
		return apperrors.NewValidationError("date is required")
	}
	return s.validateReferences(ctx, e.OrganizationID, e.CurrencyID, e.Containers())
}

// --- expense ---

func (s *entryService) CreateExpense(ctx context.Context, organizationID string, req dto.CreateExpenseRequest, userID string) (*domain.ExpenseEntry, []domain.Recalculation, error) {
	now := s.Now()
	entry := domain.ExpenseEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: organizationID,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
	}
	applyExpense(&entry, req)
	if err := s.validateExpense(ctx, entry); err != nil {
		return nil, nil, err
	}

	recalcs, err := s.run(ctx, TriggerExpenseCreated, func(tx pgx.Tx) ([]domain.Recalculation, error) {
		if err := s.entries.InsertExpenseInTx(ctx, tx, entry); err != nil {
			return nil, fmt.Errorf("failed to insert expense: %w", err)
		}
		return s.orchestrator.OnCreated(ctx, tx, entry)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create expense", slog.String("organization_id", organizationID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Expense created", slog.String("entry_id", entry.EntryID), slog.String("status", string(entry.Status)))
	return &entry, recalcs, nil
}

func (s *entryService) UpdateExpense(ctx context.Context, organizationID, entryID string, req dto.UpdateExpenseRequest, userID string) (*domain.ExpenseEntry, []domain.Recalculation, error) {
	var updated domain.ExpenseEntry
	recalcs, err := s.run(ctx, TriggerExpenseUpdated, func(tx pgx.Tx) ([]domain.Recalculation, error) {
		previous, err := s.entries.LockExpenseInTx(ctx, tx, organizationID, entryID)
		if err != nil {
			return nil, err
		}
		updated = *previous
		applyExpense(&updated, dto.CreateExpenseRequest(req))
		updated.LastUpdatedAt, updated.LastUpdatedBy = s.Now(), userID
		if err := s.validateExpense(ctx, updated); err != nil {
			return nil, err
		}
		if err := s.entries.UpdateExpenseInTx(ctx, tx, updated); err != nil {
			return nil, fmt.Errorf("failed to update expense: %w", err)
		}
		return s.orchestrator.OnUpdated(ctx, tx, updated, *previous)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("entry_id", entryID))
		return nil, nil, err
	}
	return &updated, recalcs, nil
}

func (s *entryService) DeleteExpense(ctx context.Context, organizationID, entryID, userID string) ([]domain.Recalculation, error) {
	recalcs, err := s.run(ctx, TriggerExpenseDeleted, func(tx pgx.Tx) ([]domain.Recalculation, error) {
		previous, err := s.entries.LockExpenseInTx(ctx, tx, organizationID, entryID)
		if err != nil {
			return nil, err
		}
		if err := s.entries.SoftDeleteExpenseInTx(ctx, tx, entryID, userID, s.Now()); err != nil {
			return nil, fmt.Errorf("failed to delete expense: %w", err)
		}
		return s.orchestrator.OnDeleted(ctx, tx, *previous)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete expense", slog.String("entry_id", entryID))
		return nil, err
	}
	return recalcs, nil
}

func applyExpense(e *domain.ExpenseEntry, req dto.CreateExpenseRequest) {
	e.AccountID = req.AccountID
	e.ProjectID = req.ProjectID
	e.CurrencyID = req.CurrencyID
	e.Amount = req.Amount
	e.Date = domain.DateOnly(req.Date)
	e.Status = domain.ExpenseStatus(req.Status)
	if e.Status == "" {
		e.Status = domain.ExpenseApproved
	}
	e.Description = req.Description
	e.ReferenceNo = req.ReferenceNo
}

func (s *entryService) validateExpense(ctx context.Context, e domain.ExpenseEntry) error {
	if !e.Amount.IsPositive() {
		return apperrors.NewValidationError("amount must be positive")
	}
	if e.Date.IsZero() {
		return apperrors.NewValidationError("date is required")
	}
	if !e.Status.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("invalid expense status %q", e.Status))
	}
	return s.validateReferences(ctx, e.OrganizationID, e.CurrencyID, e.Containers())
}

// --- asset ---

func (s *entryService) CreateAsset(ctx context.Context, organizationID string, req dto.CreateAssetRequest, userID string) (*domain.Asset, []domain.Recalculation, error) {
	now := s.Now()
	asset := domain.Asset{
		AssetID:        uuid.NewString(),
		OrganizationID: organizationID,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
	}
	applyAsset(&asset, req)
	if err := s.validateAsset(ctx, asset); err != nil {
		return nil, nil, err
	}

	recalcs, err := s.run(ctx, TriggerAssetCreated, func(tx pgx.Tx) ([]domain.Recalculation, error) {
		if err := s.entries.InsertAssetInTx(ctx, tx, asset); err != nil {
			return nil, fmt.Errorf("failed to insert asset: %w", err)
		}
		return s.orchestrator.OnCreated(ctx, tx, asset)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create asset", slog.String("organization_id", organizationID))
		return nil, nil, err
	}

	s.LogInfo(ctx, "Asset created", slog.String("asset_id", asset.AssetID), slog.String("status", string(asset.Status)))
	return &asset, recalcs, nil
}

func (s *entryService) UpdateAsset(ctx context.Context, organizationID, assetID string, req dto.UpdateAssetRequest, userID string) (*domain.Asset, []domain.Recalculation, error) {
	var updated domain.Asset
	recalcs, err := s.run(ctx, TriggerAssetUpdated, func(tx pgx.Tx) ([]domain.Recalculation, error) {
		previous, err := s.entries.LockAssetInTx(ctx, tx, organizationID, assetID)
		if err != nil {
			return nil, err
		}
		updated = *previous
		applyAsset(&updated, dto.CreateAssetRequest(req))
		updated.LastUpdatedAt, updated.LastUpdatedBy = s.Now(), userID
		if err := s.validateAsset(ctx, updated); err != nil {
			return nil, err
		}
		if err := s.entries.UpdateAssetInTx(ctx, tx, updated); err != nil {
			return nil, fmt.Errorf("failed to update asset: %w", err)
		}
		return s.orchestrator.OnUpdated(ctx, tx, updated, *previous)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update asset", slog.String("asset_id", assetID))
		return nil, nil, err
	}
	return &updated, recalcs, nil
}

func (s *entryService) DeleteAsset(ctx context.Context, organizationID, assetID, userID string) ([]domain.Recalculation, error) {
	recalcs, err := s.run(ctx, TriggerAssetDeleted, func(tx pgx.Tx) ([]domain.Recalculation, error) {
		previous, err := s.entries.LockAssetInTx(ctx, tx, organizationID, assetID)
		if err != nil {
			return nil, err
		}
		if err := s.entries.SoftDeleteAssetInTx(ctx, tx, assetID, userID, s.Now()); err != nil {
			return nil, fmt.Errorf("failed to delete asset: %w", err)
		}
		return s.orchestrator.OnDeleted(ctx, tx, *previous)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete asset", slog.String("asset_id", assetID))
		return nil, err
	}
	return recalcs, nil
}

func applyAsset(a *domain.Asset, req dto.CreateAssetRequest) {
	a.Name = req.Name
	a.AssetTag = req.AssetTag
	a.FinanceAccountID = req.FinanceAccountID
	a.CurrencyID = req.CurrencyID
	a.PurchasePrice = req.PurchasePrice
	a.PurchaseDate = nil
	if req.PurchaseDate != nil {
		d := domain.DateOnly(*req.PurchaseDate)
		a.PurchaseDate = &d
	}
	a.TotalCopies = req.TotalCopies
	a.Status = domain.AssetStatus(req.Status)
	if a.Status == "" {
		a.Status = domain.AssetAvailable
	}
}

func (s *entryService) validateAsset(ctx context.Context, a domain.Asset) error {
	if a.PurchasePrice.IsNegative() {
		return apperrors.NewValidationError("purchase price cannot be negative")
	}
	if a.TotalCopies < 0 {
		return apperrors.NewValidationError("total copies cannot be negative")
	}
	if !a.Status.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("invalid asset status %q", a.Status))
	}
	return s.validateReferences(ctx, a.OrganizationID, a.CurrencyID, a.Containers())
}

// validateReferences checks that the posting currency and every container exist in the organization.
func (s *entryService) validateReferences(ctx context.Context, organizationID string, currencyID *string, refs []domain.ContainerRef) error {
	if currencyID != nil {
		if _, err := s.currencies.FindCurrencyByID(ctx, organizationID, *currencyID); err != nil {
			return notFoundAsValidation(err, "currency", *currencyID)
		}
	}
	for _, ref := range refs {
		var err error
		switch ref.Kind {
		case domain.ContainerAccount:
			_, err = s.containers.FindAccountByID(ctx, organizationID, ref.ID)
		case domain.ContainerProject:
			_, err = s.containers.FindProjectByID(ctx, organizationID, ref.ID)
		case domain.ContainerDonor:
			_, err = s.containers.FindDonorByID(ctx, organizationID, ref.ID)
		}
		if err != nil {
			return notFoundAsValidation(err, string(ref.Kind), ref.ID)
		}
	}
	return nil
}

func notFoundAsValidation(err error, what, id string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewValidationError(fmt.Sprintf("%s %s not found", what, id))
	}
	return fmt.Errorf("failed to look up %s %s: %w", what, id, err)
}
