package services

import (
	"context"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/SscSPs/finance_reconciler/internal/dto"
)

// ContainerReaderSvc defines read operations for accounts, projects and donors
type ContainerReaderSvc interface {
	GetAccount(ctx context.Context, organizationID, accountID string) (*domain.FinanceAccount, error)
	GetProject(ctx context.Context, organizationID, projectID string) (*domain.FinanceProject, error)
	GetDonor(ctx context.Context, organizationID, donorID string) (*domain.Donor, error)
}

// ContainerWriterSvc defines write operations for containers
type ContainerWriterSvc interface {
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.FinanceAccount, error)
	CreateProject(ctx context.Context, organizationID string, req dto.CreateProjectRequest, userID string) (*domain.FinanceProject, error)
	CreateDonor(ctx context.Context, organizationID string, req dto.CreateDonorRequest, userID string) (*domain.Donor, error)

	// UpdateOpeningBalance changes the opening balance and recalculates the account.
	UpdateOpeningBalance(ctx context.Context, organizationID, accountID string, req dto.UpdateOpeningBalanceRequest, userID string) (*domain.Recalculation, error)
}

// ContainerRecalculatorSvc triggers explicit full recomputes.
type ContainerRecalculatorSvc interface {
	RecalculateContainer(ctx context.Context, organizationID string, ref domain.ContainerRef) (*domain.Recalculation, error)
	RecalculateOrganization(ctx context.Context, organizationID string) ([]domain.Recalculation, error)
}

// ContainerSvcFacade combines all container-related service interfaces
type ContainerSvcFacade interface {
	ContainerReaderSvc
	ContainerWriterSvc
	ContainerRecalculatorSvc
}
