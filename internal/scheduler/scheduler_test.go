package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	checkoutdomain "github.com/smallbiznis/shoplink/internal/checkout/domain"
	"github.com/smallbiznis/shoplink/internal/clock"
	"github.com/smallbiznis/shoplink/internal/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type checkoutServiceMock struct {
	mock.Mock
}

func (m *checkoutServiceMock) SyncAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *checkoutServiceMock) FindByEmail(ctx context.Context, email string) ([]checkoutdomain.AbandonedCheckout, error) {
	args := m.Called(ctx, email)
	res := args.Get(0)
	if res == nil {
		return nil, args.Error(1)
	}
	return res.([]checkoutdomain.AbandonedCheckout), args.Error(1)
}

func (m *checkoutServiceMock) EraseByEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func newTestScheduler(t *testing.T, checkouts checkoutdomain.Service) *Scheduler {
	t.Helper()
	sched, err := New(Params{
		Config:    config.Config{SyncInterval: time.Minute},
		Log:       zap.NewNop(),
		Clock:     clock.NewFakeClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)),
		Checkouts: checkouts,
	})
	require.NoError(t, err)
	return sched
}

func TestRunOnceSweeps(t *testing.T) {
	checkouts := &checkoutServiceMock{}
	checkouts.On("SyncAll", mock.Anything).Return(3, nil)

	sched := newTestScheduler(t, checkouts)
	require.NoError(t, sched.RunOnce(context.Background()))
	checkouts.AssertExpectations(t)
}

func TestRunOncePropagatesSweepFailure(t *testing.T) {
	boom := errors.New("store unreachable")
	checkouts := &checkoutServiceMock{}
	checkouts.On("SyncAll", mock.Anything).Return(0, boom)

	sched := newTestScheduler(t, checkouts)
	require.ErrorIs(t, sched.RunOnce(context.Background()), boom)
}

func TestNewRejectsMissingCollaborators(t *testing.T) {
	_, err := New(Params{Log: zap.NewNop()})
	require.ErrorIs(t, err, ErrInvalidConfig)
}
