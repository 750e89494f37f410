package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/finance_reconciler/internal/core/domain"
	"github.com/SscSPs/finance_reconciler/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEventPublisher implements EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishBalanceRecalculated(ctx context.Context, events ...domain.BalanceRecalculatedEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

func TestLowBalancePolicy_IsLow(t *testing.T) {
	policy := services.LowBalancePolicy{Floor: dec("100"), Ratio: dec("0.1")}

	tests := []struct {
		name             string
		balance, opening string
		want             bool
	}{
		{"ratio threshold", "499.99", "5000", true},
		{"at ratio threshold", "500", "5000", false},
		{"floor wins for small openings", "99", "200", true},
		{"above floor", "150", "200", false},
		{"negative is not low", "-10", "5000", false},
		{"zero", "0", "0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.IsLow(dec(tt.balance), dec(tt.opening)))
		})
	}
}

func TestBalanceNotifier_PublishesOneEventPerContainer(t *testing.T) {
	publisher := new(MockEventPublisher)
	var published []domain.BalanceRecalculatedEvent
	publisher.On("PublishBalanceRecalculated", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(1).([]domain.BalanceRecalculatedEvent)
		}).
		Return(nil).Once()

	n := services.NewBalanceNotifier(services.WithEventPublisher(publisher))
	n.AfterCommit(context.Background(), services.TriggerExpenseUpdated, []domain.Recalculation{
		{Container: domain.ContainerRef{Kind: domain.ContainerAccount, ID: "acc"}, OrganizationID: testOrg, Balance: dec("50"), OpeningBalance: dec("5000")},
		{Container: domain.ContainerRef{Kind: domain.ContainerProject, ID: "p1"}, OrganizationID: testOrg, Balance: dec("5"), TotalExpense: dec("5"), Degraded: true},
		{Container: domain.ContainerRef{Kind: domain.ContainerDonor, ID: "gone"}, Skipped: true},
	})

	publisher.AssertExpectations(t)
	require.Len(t, published, 2)
	assert.Equal(t, "acc", published[0].ContainerID)
	assert.True(t, published[0].LowBalance)
	assert.Equal(t, services.TriggerExpenseUpdated, published[0].Trigger)
	assert.NotEmpty(t, published[0].EventID)

	assert.Equal(t, domain.ContainerProject, published[1].ContainerKind)
	assert.False(t, published[1].LowBalance, "only accounts are checked")
	assert.True(t, published[1].Degraded)
}

func TestBalanceNotifier_PublishOutlivesCanceledRequest(t *testing.T) {
	publisher := new(MockEventPublisher)
	var publishCtx context.Context
	var errDuringPublish error
	publisher.On("PublishBalanceRecalculated", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			publishCtx = args.Get(0).(context.Context)
			errDuringPublish = publishCtx.Err()
		}).
		Return(nil).Once()

	reqCtx, cancel := context.WithCancel(context.Background())
	cancel()

	n := services.NewBalanceNotifier(services.WithEventPublisher(publisher), services.WithPublishTimeout(time.Minute))
	n.AfterCommit(reqCtx, services.TriggerIncomeCreated, []domain.Recalculation{
		{Container: domain.ContainerRef{Kind: domain.ContainerDonor, ID: "d1"}, OrganizationID: testOrg},
	})

	publisher.AssertExpectations(t)
	require.NotNil(t, publishCtx)
	assert.NoError(t, errDuringPublish, "the canceled request does not cancel the publish")
	deadline, ok := publishCtx.Deadline()
	require.True(t, ok, "publishing is bounded by a timeout")
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
	// released once AfterCommit returns
	assert.ErrorIs(t, publishCtx.Err(), context.Canceled)
}

func TestBalanceNotifier_SwallowsPublishErrors(t *testing.T) {
	publisher := new(MockEventPublisher)
	publisher.On("PublishBalanceRecalculated", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	n := services.NewBalanceNotifier(services.WithEventPublisher(publisher))
	assert.NotPanics(t, func() {
		n.AfterCommit(context.Background(), services.TriggerManual, []domain.Recalculation{
			{Container: domain.ContainerRef{Kind: domain.ContainerDonor, ID: "d1"}},
		})
	})
	publisher.AssertExpectations(t)
}

func TestBalanceNotifier_NothingToPublish(t *testing.T) {
	publisher := new(MockEventPublisher)
	n := services.NewBalanceNotifier(services.WithEventPublisher(publisher))

	n.AfterCommit(context.Background(), services.TriggerManual, []domain.Recalculation{{Skipped: true}})
	n.AfterCommit(context.Background(), services.TriggerManual, nil)
	publisher.AssertNotCalled(t, "PublishBalanceRecalculated", mock.Anything, mock.Anything)

	assert.NotPanics(t, func() {
		services.NewBalanceNotifier().AfterCommit(context.Background(), services.TriggerManual, []domain.Recalculation{
			{Container: domain.ContainerRef{Kind: domain.ContainerAccount, ID: "acc"}, Balance: dec("1")},
		})
	})
}
