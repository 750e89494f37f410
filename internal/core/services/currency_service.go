package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/finance_reconciler/internal/apperrors"
	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_reconciler/internal/core/ports/services"
	"github.com/SscSPs/finance_reconciler/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const defaultDecimalPlaces = 2

type currencyService struct {
	unitOfWork
	currencyRepo portsrepo.CurrencyRepositoryFacade
	rateCache    RateCacheInvalidator
}

// CurrencyServiceOption is a functional option for configuring the currency service
type CurrencyServiceOption func(*currencyService)

// WithCurrencyRateCache invalidates cached rate lookups when the base currency moves.
func WithCurrencyRateCache(c RateCacheInvalidator) CurrencyServiceOption {
	return func(s *currencyService) {
		s.rateCache = c
	}
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(txManager portsrepo.TransactionManager, currencyRepo portsrepo.CurrencyRepositoryFacade, options ...CurrencyServiceOption) portssvc.CurrencySvcFacade {
	svc := &currencyService{
		unitOfWork:   unitOfWork{txManager: txManager},
		currencyRepo: currencyRepo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, organizationID string, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	existing, err := s.currencyRepo.ListCurrencies(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	for _, c := range existing {
		if c.Code == code {
			return nil, apperrors.NewDuplicateError(fmt.Sprintf("currency %s already exists", code))
		}
	}

	places := defaultDecimalPlaces
	if req.DecimalPlaces != nil {
		places = *req.DecimalPlaces
	}

	now := s.Now()
	currency := domain.Currency{
		CurrencyID:     uuid.NewString(),
		OrganizationID: organizationID,
		Code:           code,
		Symbol:         req.Symbol,
		Name:           req.Name,
		DecimalPlaces:  places,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to save currency", slog.String("code", code))
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}

	if req.IsBase {
		return s.SetBaseCurrency(ctx, organizationID, currency.CurrencyID, creatorUserID)
	}

	s.LogInfo(ctx, "Currency created", slog.String("currency_id", currency.CurrencyID), slog.String("code", code))
	return &currency, nil
}

func (s *currencyService) GetCurrency(ctx context.Context, organizationID, currencyID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, organizationID, currencyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency in service: %w", err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context, organizationID string) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// SetBaseCurrency clears is_base on every sibling and sets it on currencyID in one transaction.
func (s *currencyService) SetBaseCurrency(ctx context.Context, organizationID, currencyID, userID string) (*domain.Currency, error) {
	if _, err := s.GetCurrency(ctx, organizationID, currencyID); err != nil {
		return nil, err
	}

	_, err := s.run(ctx, "currency.base", func(tx pgx.Tx) ([]domain.Recalculation, error) {
		return nil, s.currencyRepo.SetBaseCurrencyInTx(ctx, tx, organizationID, currencyID, userID, s.Now())
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to set base currency", slog.String("currency_id", currencyID))
		return nil, fmt.Errorf("failed to set base currency: %w", err)
	}
	if s.rateCache != nil {
		s.rateCache.InvalidateOrganization(organizationID)
	}

	s.LogInfo(ctx, "Base currency changed",
		slog.String("organization_id", organizationID),
		slog.String("currency_id", currencyID))
	return s.GetCurrency(ctx, organizationID, currencyID)
}
