package services

import (
	portsrepo "github.com/SscSPs/finance_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_reconciler/internal/core/ports/services"
	"github.com/SscSPs/finance_reconciler/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// publisher may be nil, in which case recalculations are only logged.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Rate reads go through an optional cache shared by the resolver and the write paths that invalidate it.
	var lookup portsrepo.RateLookup = NewRateLookup(repos.ExchangeRateRepo, repos.CurrencyRepo)
	var rateCache RateCacheInvalidator
	if cfg.RateCacheTTL > 0 {
		cached := NewCachedRateSource(lookup, cfg.RateCacheTTL)
		lookup, rateCache = cached, cached
	}

	container.Resolver = NewRateResolver(lookup)
	container.Aggregator = NewBalanceAggregator(repos.ContainerRepo, repos.EntryRepo, container.Resolver)
	container.Orchestrator = NewRecalculationOrchestrator(container.Aggregator)

	notifierOpts := []NotifierOption{
		WithLowBalancePolicy(LowBalancePolicy{Floor: cfg.LowBalanceFloor, Ratio: cfg.LowBalanceRatio}),
		WithPublishTimeout(cfg.EventPublishTimeout),
	}
	if publisher != nil {
		notifierOpts = append(notifierOpts, WithEventPublisher(publisher))
	}
	listener := NewBalanceNotifier(notifierOpts...)

	currencyOpts := []CurrencyServiceOption{}
	rateOpts := []ExchangeRateServiceOption{}
	if rateCache != nil {
		currencyOpts = append(currencyOpts, WithCurrencyRateCache(rateCache))
		rateOpts = append(rateOpts, WithRateCache(rateCache))
	}

	container.Currency = NewCurrencyService(repos.TxManager, repos.CurrencyRepo, currencyOpts...)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, repos.CurrencyRepo, container.Resolver, rateOpts...)
	container.Container = NewContainerService(
		repos.TxManager,
		repos.ContainerRepo,
		repos.CurrencyRepo,
		container.Aggregator,
		container.Orchestrator,
		WithContainerListener(listener),
	)
	container.Entry = NewEntryService(
		repos.TxManager,
		repos.EntryRepo,
		repos.ContainerRepo,
		repos.CurrencyRepo,
		container.Orchestrator,
		WithRecalculationListener(listener),
	)

	return container
}
