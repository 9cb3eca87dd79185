package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sukh767/Volt-Vogue/internal/model"
)

type staticCounter struct {
	n   int64
	err error
}

func (c staticCounter) Count(_ context.Context) (int64, error) { return c.n, c.err }

type fakeOrderAnalytics struct {
	orders   int64
	revenue  float64
	daily    []model.DailySales
	gotFrom  time.Time
	gotTo    time.Time
	totalErr error
}

func (f *fakeOrderAnalytics) Totals(_ context.Context) (int64, float64, error) {
	return f.orders, f.revenue, f.totalErr
}

func (f *fakeOrderAnalytics) DailySales(_ context.Context, from time.Time, to time.Time) ([]model.DailySales, error) {
	f.gotFrom, f.gotTo = from, to
	return f.daily, nil
}

func TestAnalyticsService_Summary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("aggregates the counters", func(t *testing.T) {
		svc := NewAnalyticsService(
			staticCounter{n: 12},
			staticCounter{n: 34},
			&fakeOrderAnalytics{orders: 5, revenue: 999.5},
		)

		summary, err := svc.Summary(ctx)
		require.NoError(t, err)
		assert.Equal(t, model.AnalyticsSummary{Users: 12, Products: 34, Orders: 5, Revenue: 999.5}, summary)
	})

	t.Run("propagates counter failures", func(t *testing.T) {
		svc := NewAnalyticsService(
			staticCounter{err: errors.New("primary down")},
			staticCounter{},
			&fakeOrderAnalytics{},
		)

		_, err := svc.Summary(ctx)
		assert.Error(t, err)
	})
}

func TestAnalyticsService_DailySales(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("passes an explicit range through", func(t *testing.T) {
		orders := &fakeOrderAnalytics{daily: []model.DailySales{{Date: "2026-08-01", Orders: 2, Revenue: 80}}}
		svc := NewAnalyticsService(staticCounter{}, staticCounter{}, orders)

		from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

		daily, err := svc.DailySales(ctx, from, to)
		require.NoError(t, err)
		require.Len(t, daily, 1)
		assert.Equal(t, from, orders.gotFrom)
		assert.Equal(t, to, orders.gotTo)
	})

	t.Run("defaults to the last seven days", func(t *testing.T) {
		orders := &fakeOrderAnalytics{}
		svc := NewAnalyticsService(staticCounter{}, staticCounter{}, orders)

		_, err := svc.DailySales(ctx, time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().UTC(), orders.gotTo, time.Minute)
		assert.Equal(t, 7*24*time.Hour, orders.gotTo.Sub(orders.gotFrom))
	})
}
