package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/finance_reconciler/internal/apperrors"
	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_reconciler/internal/core/ports/services"
	"github.com/SscSPs/finance_reconciler/internal/dto"
	"github.com/SscSPs/finance_reconciler/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const defaultRatePageSize = 100

// exchangeRateService provides business logic for exchange rates.
// Rate edits never trigger recalculation; containers pick them up on their next recompute.
type exchangeRateService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	resolver     portssvc.RateResolverSvc
	rateCache    RateCacheInvalidator
}

// ExchangeRateServiceOption is a functional option for configuring the exchange rate service
type ExchangeRateServiceOption func(*exchangeRateService)

// WithRateCache invalidates cached rate lookups after every write.
func WithRateCache(c RateCacheInvalidator) ExchangeRateServiceOption {
	return func(s *exchangeRateService) {
		s.rateCache = c
	}
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	currencyRepo portsrepo.CurrencyReader,
	resolver portssvc.RateResolverSvc,
	options ...ExchangeRateServiceOption,
) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
		resolver:     resolver,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate handles the creation of a new exchange rate.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, organizationID string, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := s.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		OrganizationID: organizationID,
		FromCurrencyID: req.FromCurrencyID,
		ToCurrencyID:   req.ToCurrencyID,
		Rate:           req.Rate.Round(domain.RateScale),
		EffectiveDate:  domain.DateOnly(req.EffectiveDate),
		IsActive:       isActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.validate(ctx, rate); err != nil {
		return nil, err
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate",
			slog.String("from_currency_id", rate.FromCurrencyID),
			slog.String("to_currency_id", rate.ToCurrencyID))
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}
	s.invalidate(organizationID)

	s.LogInfo(ctx, "Exchange rate created",
		slog.String("exchange_rate_id", rate.ExchangeRateID),
		slog.String("rate", rate.Rate.String()),
		slog.Time("effective_date", rate.EffectiveDate))
	return &rate, nil
}

// GetExchangeRate retrieves a specific exchange rate by ID.
func (s *exchangeRateService) GetExchangeRate(ctx context.Context, organizationID, rateID string) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindExchangeRateByID(ctx, organizationID, rateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

// ListExchangeRates lists rates newest effective date first, one page at a time.
func (s *exchangeRateService) ListExchangeRates(ctx context.Context, organizationID string, params dto.ListExchangeRatesParams) (*dto.ListExchangeRatesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultRatePageSize
	}

	filter := domain.ExchangeRateFilter{ActiveOnly: params.ActiveOnly, Limit: limit + 1}
	if params.FromCurrencyID != "" {
		filter.FromCurrencyID = &params.FromCurrencyID
	}
	if params.ToCurrencyID != "" {
		filter.ToCurrencyID = &params.ToCurrencyID
	}
	if params.NextToken != "" {
		date, id, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		filter.After = &domain.ExchangeRateCursor{EffectiveDate: date, ExchangeRateID: id}
	}

	rates, err := s.rateRepo.ListExchangeRates(ctx, organizationID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}

	res := &dto.ListExchangeRatesResponse{}
	if len(rates) > limit {
		rates = rates[:limit]
		last := rates[limit-1]
		token := pagination.EncodeToken(last.EffectiveDate, last.ExchangeRateID)
		res.NextToken = &token
	}
	res.Rates = dto.ToListExchangeRateResponse(rates)
	return res, nil
}

// UpdateExchangeRate applies the provided fields and revalidates the row.
func (s *exchangeRateService) UpdateExchangeRate(ctx context.Context, organizationID, rateID string, req dto.UpdateExchangeRateRequest, userID string) (*domain.ExchangeRate, error) {
	rate, err := s.GetExchangeRate(ctx, organizationID, rateID)
	if err != nil {
		return nil, err
	}

	if req.FromCurrencyID != nil {
		rate.FromCurrencyID = *req.FromCurrencyID
	}
	if req.ToCurrencyID != nil {
		rate.ToCurrencyID = *req.ToCurrencyID
	}
	if req.Rate != nil {
		rate.Rate = req.Rate.Round(domain.RateScale)
	}
	if req.EffectiveDate != nil {
		rate.EffectiveDate = domain.DateOnly(*req.EffectiveDate)
	}
	if req.IsActive != nil {
		rate.IsActive = *req.IsActive
	}
	rate.LastUpdatedAt = s.Now()
	rate.LastUpdatedBy = userID

	if err := s.validate(ctx, *rate); err != nil {
		return nil, err
	}

	if err := s.rateRepo.UpdateExchangeRate(ctx, *rate); err != nil {
		s.LogError(ctx, err, "Failed to update exchange rate", slog.String("exchange_rate_id", rateID))
		return nil, fmt.Errorf("failed to update exchange rate in service: %w", err)
	}
	s.invalidate(organizationID)
	return rate, nil
}

// DeleteExchangeRate soft-deletes a rate.
func (s *exchangeRateService) DeleteExchangeRate(ctx context.Context, organizationID, rateID, userID string) error {
	if err := s.rateRepo.DeleteExchangeRate(ctx, organizationID, rateID, userID, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to delete exchange rate", slog.String("exchange_rate_id", rateID))
		return fmt.Errorf("failed to delete exchange rate in service: %w", err)
	}
	s.invalidate(organizationID)
	return nil
}

// ResolveRate reports the conversion factor in force on params.AsOf and, when
// an amount is given, the amount converted and rounded to money scale.
func (s *exchangeRateService) ResolveRate(ctx context.Context, organizationID string, params dto.ResolveRateParams) (*dto.ResolveRateResponse, error) {
	var amount *decimal.Decimal
	if raw := strings.TrimSpace(params.Amount); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid amount %q", raw))
		}
		amount = &parsed
	}

	for _, id := range []string{params.FromCurrencyID, params.ToCurrencyID} {
		if _, err := s.currencyRepo.FindCurrencyByID(ctx, organizationID, id); err != nil {
			return nil, notFoundAsValidation(err, "currency", id)
		}
	}

	asOf := s.Now()
	if params.AsOf != nil {
		asOf = *params.AsOf
	}
	asOf = domain.DateOnly(asOf)

	factor, ok, err := s.resolver.Resolve(ctx, nil, organizationID, params.FromCurrencyID, params.ToCurrencyID, &asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve rate: %w", err)
	}

	res := &dto.ResolveRateResponse{
		FromCurrencyID: params.FromCurrencyID,
		ToCurrencyID:   params.ToCurrencyID,
		AsOf:           asOf,
		Found:          ok,
		Amount:         amount,
	}
	if ok {
		res.Rate = &factor
		if amount != nil {
			converted := domain.RoundMoney(amount.Mul(factor))
			res.ConvertedAmount = &converted
		}
	}
	return res, nil
}

func (s *exchangeRateService) validate(ctx context.Context, rate domain.ExchangeRate) error {
	if rate.Rate.LessThan(domain.MinExchangeRate) {
		return apperrors.NewValidationError(fmt.Sprintf("exchange rate must be at least %s", domain.MinExchangeRate))
	}
	if rate.FromCurrencyID == rate.ToCurrencyID {
		return apperrors.NewValidationError("from and to currencies cannot be the same")
	}
	if rate.EffectiveDate.IsZero() {
		return apperrors.NewValidationError("effective date is required")
	}

	if _, err := s.currencyRepo.FindCurrencyByID(ctx, rate.OrganizationID, rate.FromCurrencyID); err != nil {
		return notFoundAsValidation(err, "'from' currency", rate.FromCurrencyID)
	}
	if _, err := s.currencyRepo.FindCurrencyByID(ctx, rate.OrganizationID, rate.ToCurrencyID); err != nil {
		return notFoundAsValidation(err, "'to' currency", rate.ToCurrencyID)
	}

	existing, err := s.rateRepo.FindExchangeRateByPairAndDate(ctx, rate.OrganizationID, rate.FromCurrencyID, rate.ToCurrencyID, rate.EffectiveDate)
	switch {
	case err == nil && existing.ExchangeRateID != rate.ExchangeRateID:
		return apperrors.NewDuplicateError(fmt.Sprintf("a rate for this pair already exists on %s", rate.EffectiveDate.Format("2006-01-02")))
	case err != nil && !errors.Is(err, apperrors.ErrNotFound):
		return fmt.Errorf("failed to check for duplicate rate: %w", err)
	}
	return nil
}

func (s *exchangeRateService) invalidate(organizationID string) {
	if s.rateCache != nil {
		s.rateCache.InvalidateOrganization(organizationID)
	}
}
