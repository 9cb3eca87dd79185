package service

import (
	"context"
	"time"

	"github.com/Sukh767/Volt-Vogue/internal/model"
)

type userCounter interface {
	Count(ctx context.Context) (int64, error)
}

type productCounter interface {
	Count(ctx context.Context) (int64, error)
}

type orderAnalytics interface {
	Totals(ctx context.Context) (int64, float64, error)
	DailySales(ctx context.Context, from time.Time, to time.Time) ([]model.DailySales, error)
}

type AnalyticsService struct {
	users    userCounter
	products productCounter
	orders   orderAnalytics
}

func NewAnalyticsService(users userCounter, products productCounter, orders orderAnalytics) *AnalyticsService {
	return &AnalyticsService{users: users, products: products, orders: orders}
}

func (s *AnalyticsService) Summary(ctx context.Context) (model.AnalyticsSummary, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return model.AnalyticsSummary{}, err
	}

	products, err := s.products.Count(ctx)
	if err != nil {
		return model.AnalyticsSummary{}, err
	}

	orders, revenue, err := s.orders.Totals(ctx)
	if err != nil {
		return model.AnalyticsSummary{}, err
	}

	return model.AnalyticsSummary{
		Users:    users,
		Products: products,
		Orders:   orders,
		Revenue:  revenue,
	}, nil
}

// DailySales covers the last seven days by default.
func (s *AnalyticsService) DailySales(ctx context.Context, from time.Time, to time.Time) ([]model.DailySales, error) {
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.Add(-7 * 24 * time.Hour)
	}
	return s.orders.DailySales(ctx, from, to)
}
