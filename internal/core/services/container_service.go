package services

import (
	"context"
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

// containerService manages accounts, projects and donors and their explicit recalculation.
type containerService struct {
	unitOfWork
	containerRepo portsrepo.ContainerRepositoryFacade
	currencies    portsrepo.CurrencyReader
	aggregator    portssvc.BalanceAggregatorSvc
	orchestrator  portssvc.RecalculationOrchestratorSvc
}

// ContainerServiceOption is a functional option for configuring the container service
type ContainerServiceOption func(*containerService)

// WithContainerListener registers the post-commit listener.
func WithContainerListener(l portssvc.RecalculationListener) ContainerServiceOption {
	return func(s *containerService) {
		s.listener = l
	}
}

// NewContainerService creates a new container service.
func NewContainerService(
	txManager portsrepo.TransactionManager,
	containerRepo portsrepo.ContainerRepositoryFacade,
	currencies portsrepo.CurrencyReader,
	aggregator portssvc.BalanceAggregatorSvc,
	orchestrator portssvc.RecalculationOrchestratorSvc,
	options ...ContainerServiceOption,
) portssvc.ContainerSvcFacade {
	svc := &containerService{
		unitOfWork:    unitOfWork{txManager: txManager},
		containerRepo: containerRepo,
		currencies:    currencies,
		aggregator:    aggregator,
		orchestrator:  orchestrator,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ContainerSvcFacade = (*containerService)(nil)

func (s *containerService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.FinanceAccount, error) {
	if err := s.validateCurrency(ctx, organizationID, req.CurrencyID); err != nil {
		return nil, err
	}
	if req.OpeningBalance.IsNegative() {
		return nil, apperrors.NewValidationError("opening balance cannot be negative")
	}

	now := s.Now()
	opening := domain.RoundMoney(req.OpeningBalance)
	account := domain.FinanceAccount{
		AccountID:      uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Code:           req.Code,
		CurrencyID:     req.CurrencyID,
		OpeningBalance: opening,
		CurrentBalance: opening,
		IsActive:       true,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
	}

	if err := s.containerRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

func (s *containerService) CreateProject(ctx context.Context, organizationID string, req dto.CreateProjectRequest, userID string) (*domain.FinanceProject, error) {
	if err := s.validateCurrency(ctx, organizationID, req.CurrencyID); err != nil {
		return nil, err
	}

	now := s.Now()
	project := domain.FinanceProject{
		ProjectID:      uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Code:           req.Code,
		CurrencyID:     req.CurrencyID,
		Budget:         domain.RoundMoney(req.Budget),
		IsActive:       true,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
	}

	if err := s.containerRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.LogInfo(ctx, "Project created", slog.String("project_id", project.ProjectID))
	return &project, nil
}

func (s *containerService) CreateDonor(ctx context.Context, organizationID string, req dto.CreateDonorRequest, userID string) (*domain.Donor, error) {
	if err := s.validateCurrency(ctx, organizationID, req.CurrencyID); err != nil {
		return nil, err
	}

	now := s.Now()
	donor := domain.Donor{
		DonorID:        uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		CurrencyID:     req.CurrencyID,
		IsActive:       true,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: userID, LastUpdatedAt: now, LastUpdatedBy: userID},
	}

	if err := s.containerRepo.SaveDonor(ctx, donor); err != nil {
		s.LogError(ctx, err, "Failed to save donor", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to create donor: %w", err)
	}

	s.LogInfo(ctx, "Donor created", slog.String("donor_id", donor.DonorID))
	return &donor, nil
}

func (s *containerService) GetAccount(ctx context.Context, organizationID, accountID string) (*domain.FinanceAccount, error) {
	account, err := s.containerRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (s *containerService) GetProject(ctx context.Context, organizationID, projectID string) (*domain.FinanceProject, error) {
	project, err := s.containerRepo.FindProjectByID(ctx, organizationID, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

func (s *containerService) GetDonor(ctx context.Context, organizationID, donorID string) (*domain.Donor, error) {
	donor, err := s.containerRepo.FindDonorByID(ctx, organizationID, donorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get donor: %w", err)
	}
	return donor, nil
}

func (s *containerService) UpdateOpeningBalance(ctx context.Context, organizationID, accountID string, req dto.UpdateOpeningBalanceRequest, userID string) (*domain.Recalculation, error) {
	if req.OpeningBalance.IsNegative() {
		return nil, apperrors.NewValidationError("opening balance cannot be negative")
	}
	if _, err := s.GetAccount(ctx, organizationID, accountID); err != nil {
		return nil, err
	}

	recalcs, err := s.run(ctx, TriggerOpeningBalance, func(tx pgx.Tx) ([]domain.Recalculation, error) {
		if _, err := s.containerRepo.LockAccountInTx(ctx, tx, accountID); err != nil {
			return nil, err
		}
		opening := domain.RoundMoney(req.OpeningBalance)
		if err := s.containerRepo.UpdateAccountOpeningBalanceInTx(ctx, tx, accountID, opening, userID, s.Now()); err != nil {
			return nil, fmt.Errorf("failed to update opening balance: %w", err)
		}
		rec, err := s.aggregator.RecalculateAccount(ctx, tx, accountID)
		if err != nil {
			return nil, err
		}
		return []domain.Recalculation{*rec}, nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update opening balance", slog.String("account_id", accountID))
		return nil, err
	}
	return &recalcs[0], nil
}

func (s *containerService) RecalculateContainer(ctx context.Context, organizationID string, ref domain.ContainerRef) (*domain.Recalculation, error) {
	if err := s.ensureContainer(ctx, organizationID, ref); err != nil {
		return nil, err
	}

	recalcs, err := s.run(ctx, TriggerManual, func(tx pgx.Tx) ([]domain.Recalculation, error) {
		return s.orchestrator.RecalculateContainers(ctx, tx, []domain.ContainerRef{ref})
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to recalculate container", slog.String("container", ref.String()))
		return nil, err
	}
	return &recalcs[0], nil
}

// RecalculateOrganization rebuilds every live container, one transaction per container,
// and stops at the first failure.
func (s *containerService) RecalculateOrganization(ctx context.Context, organizationID string) ([]domain.Recalculation, error) {
	refs, err := s.containerRepo.ListContainerRefs(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	results := make([]domain.Recalculation, 0, len(refs))
	degraded := 0
	for _, ref := range refs {
		recalcs, err := s.run(ctx, TriggerManual, func(tx pgx.Tx) ([]domain.Recalculation, error) {
			return s.orchestrator.RecalculateContainers(ctx, tx, []domain.ContainerRef{ref})
		})
		if err != nil {
			s.LogError(ctx, err, "Organization recalculation aborted",
				slog.String("organization_id", organizationID),
				slog.String("container", ref.String()),
				slog.Int("completed", len(results)))
			return results, err
		}
		for _, rec := range recalcs {
			if rec.Degraded {
				degraded++
			}
		}
		results = append(results, recalcs...)
	}

	s.LogInfo(ctx, "Organization recalculated",
		slog.String("organization_id", organizationID),
		slog.Int("containers", len(results)),
		slog.Int("degraded", degraded))
	return results, nil
}

func (s *containerService) ensureContainer(ctx context.Context, organizationID string, ref domain.ContainerRef) error {
	var err error
	switch ref.Kind {
	case domain.ContainerAccount:
		_, err = s.GetAccount(ctx, organizationID, ref.ID)
	case domain.ContainerProject:
		_, err = s.GetProject(ctx, organizationID, ref.ID)
	case domain.ContainerDonor:
		_, err = s.GetDonor(ctx, organizationID, ref.ID)
	default:
		err = apperrors.NewValidationError(fmt.Sprintf("unknown container kind %q", ref.Kind))
	}
	return err
}

func (s *containerService) validateCurrency(ctx context.Context, organizationID string, currencyID *string) error {
	if currencyID == nil {
		return nil
	}
	if _, err := s.currencies.FindCurrencyByID(ctx, organizationID, *currencyID); err != nil {
		return notFoundAsValidation(err, "currency", *currencyID)
	}
	return nil
}
