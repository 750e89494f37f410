// Package memory is an in-process implementation of every repository port.
// Transactions are serialized and roll back by restoring a snapshot taken at Begin.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/SscSPs/finance_reconciler/internal/apperrors"
	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_reconciler/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type state struct {
	currencies map[string]domain.Currency
	rates      map[string]domain.ExchangeRate
	accounts   map[string]domain.FinanceAccount
	projects   map[string]domain.FinanceProject
	donors     map[string]domain.Donor
	income     map[string]domain.IncomeEntry
	expenses   map[string]domain.ExpenseEntry
	assets     map[string]domain.Asset
}

func newState() *state {
	return &state{
		currencies: make(map[string]domain.Currency),
		rates:      make(map[string]domain.ExchangeRate),
		accounts:   make(map[string]domain.FinanceAccount),
		projects:   make(map[string]domain.FinanceProject),
		donors:     make(map[string]domain.Donor),
		income:     make(map[string]domain.IncomeEntry),
		expenses:   make(map[string]domain.ExpenseEntry),
		assets:     make(map[string]domain.Asset),
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *state) clone() *state {
	return &state{
		currencies: cloneMap(s.currencies),
		rates:      cloneMap(s.rates),
		accounts:   cloneMap(s.accounts),
		projects:   cloneMap(s.projects),
		donors:     cloneMap(s.donors),
		income:     cloneMap(s.income),
		expenses:   cloneMap(s.expenses),
		assets:     cloneMap(s.assets),
	}
}

// Store holds all data in memory and is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex // guards data
	data *state

	txLock sync.Mutex // held from Begin until Commit/Rollback
	txSeq  int

	failMu sync.Mutex
	fail   map[string]error
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: newState(), fail: make(map[string]error)}
}

var (
	_ portsrepo.TransactionManager           = (*Store)(nil)
	_ portsrepo.CurrencyRepositoryFacade     = (*Store)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade = (*Store)(nil)
	_ portsrepo.ContainerRepositoryFacade    = (*Store)(nil)
	_ portsrepo.EntryRepositoryFacade        = (*Store)(nil)
)

// Provider exposes the store through a RepositoryProvider.
func (s *Store) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        s,
		CurrencyRepo:     s,
		ExchangeRateRepo: s,
		ContainerRepo:    s,
		EntryRepo:        s,
	}
}

// FailOn makes the next call of the named method return err.
func (s *Store) FailOn(method string, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.fail[method] = err
}

func (s *Store) injected(method string) error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	err, ok := s.fail[method]
	if ok {
		delete(s.fail, method)
	}
	return err
}

// memTx identifies one transaction. pgx.Tx is embedded only to satisfy the
// interface; calling its methods panics.
type memTx struct {
	pgx.Tx
	seq      int
	snapshot *state
	done     bool
}

var errTxDone = errors.New("transaction already closed")

// Begin starts a transaction, blocking until any other transaction finishes.
func (s *Store) Begin(ctx context.Context) (pgx.Tx, error) {
	if err := s.injected("Begin"); err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	s.txLock.Lock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	s.txSeq++
	return &memTx{seq: s.txSeq, snapshot: snapshot}, nil
}

func (s *Store) Commit(ctx context.Context, tx pgx.Tx) error {
	mtx, ok := tx.(*memTx)
	if !ok || mtx.done {
		return apperrors.NewAppError(500, "failed to commit transaction", errTxDone)
	}
	if err := s.injected("Commit"); err != nil {
		s.restore(mtx)
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	mtx.done = true
	mtx.snapshot = nil
	s.txLock.Unlock()
	return nil
}

// Rollback restores the snapshot. Rolling back a closed transaction is a no-op.
func (s *Store) Rollback(ctx context.Context, tx pgx.Tx) error {
	mtx, ok := tx.(*memTx)
	if !ok || mtx.done {
		return nil
	}
	s.restore(mtx)
	return nil
}

func (s *Store) restore(mtx *memTx) {
	s.mu.Lock()
	s.data = mtx.snapshot
	s.mu.Unlock()
	mtx.done = true
	mtx.snapshot = nil
	s.txLock.Unlock()
}

// write runs fn under the data lock unless a failure was injected for method.
// Without an open transaction the write is its own transaction: it waits for
// txLock so a concurrent Rollback cannot discard it.
func (s *Store) write(method string, tx pgx.Tx, fn func(d *state) error) error {
	if err := s.injected(method); err != nil {
		return err
	}
	if mtx, ok := tx.(*memTx); !ok || mtx.done {
		s.txLock.Lock()
		defer s.txLock.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

func (s *Store) read(method string, fn func(d *state) error) error {
	if err := s.injected(method); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

func notFound(what string) error {
	return apperrors.NewNotFoundError(what + " not found")
}
