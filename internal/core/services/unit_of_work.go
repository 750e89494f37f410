package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_reconciler/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
)

// unitOfWork runs a row mutation and the recalculations it triggers in one
// transaction, then hands the committed results to the listener.
type unitOfWork struct {
	BaseService
	txManager portsrepo.TransactionManager
	listener  portssvc.RecalculationListener
}

func (u *unitOfWork) run(ctx context.Context, trigger string, fn func(tx pgx.Tx) ([]domain.Recalculation, error)) ([]domain.Recalculation, error) {
	tx, err := u.txManager.Begin(ctx)
	if err != nil {
		u.LogError(ctx, err, "Failed to begin transaction", slog.String("trigger", trigger))
		return nil, err
	}
	defer u.txManager.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	recalcs, err := fn(tx)
	if err != nil {
		return nil, err
	}

	if err := u.txManager.Commit(ctx, tx); err != nil {
		u.LogError(ctx, err, "Failed to commit transaction", slog.String("trigger", trigger))
		return nil, fmt.Errorf("failed to commit %s: %w", trigger, err)
	}

	if u.listener != nil {
		u.listener.AfterCommit(ctx, trigger, recalcs)
	}
	return recalcs, nil
}
