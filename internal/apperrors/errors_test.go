package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/finance_reconciler/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppError_MatchesSentinels(t *testing.T) {
	notFound := apperrors.NewNotFoundError("account not found")
	assert.ErrorIs(t, notFound, apperrors.ErrNotFound)
	assert.NotErrorIs(t, notFound, apperrors.ErrValidation)

	wrapped := fmt.Errorf("service: %w", apperrors.NewValidationError("bad rate"))
	assert.ErrorIs(t, wrapped, apperrors.ErrValidation)

	dup := apperrors.NewDuplicateError("rate exists")
	assert.ErrorIs(t, dup, apperrors.ErrDuplicate)
	assert.ErrorIs(t, dup, apperrors.ErrConflict)
}

func TestAppError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to commit transaction: connection reset", err.Error())
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"sentinel validation", fmt.Errorf("%w: bad", apperrors.ErrValidation), http.StatusBadRequest},
		{"sentinel not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"sentinel duplicate", apperrors.ErrDuplicate, http.StatusConflict},
		{"app error", apperrors.NewNotFoundError("x"), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.StatusCode(tt.err))
		})
	}
}
