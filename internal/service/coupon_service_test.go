package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sukh767/Volt-Vogue/internal/model"
)

type fakeCoupons struct {
	mu      sync.Mutex
	coupons map[primitive.ObjectID]model.Coupon
}

func newFakeCoupons(coupons ...model.Coupon) *fakeCoupons {
	f := &fakeCoupons{coupons: map[primitive.ObjectID]model.Coupon{}}
	for _, c := range coupons {
		if c.ID.IsZero() {
			c.ID = primitive.NewObjectID()
		}
		f.coupons[c.ID] = c
	}
	return f
}

func (f *fakeCoupons) ActiveForUser(_ context.Context, userID primitive.ObjectID) (model.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.coupons {
		if c.UserID == userID && c.IsActive {
			return c, nil
		}
	}
	return model.Coupon{}, model.ErrCouponNotFound
}

func (f *fakeCoupons) FindByCode(_ context.Context, userID primitive.ObjectID, code string) (model.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.coupons {
		if c.UserID == userID && strings.EqualFold(c.Code, code) {
			return c, nil
		}
	}
	return model.Coupon{}, model.ErrCouponNotFound
}

func (f *fakeCoupons) Create(_ context.Context, c model.Coupon) (model.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = primitive.NewObjectID()
	f.coupons[c.ID] = c
	return c, nil
}

func (f *fakeCoupons) Deactivate(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.coupons[id]
	if !ok {
		return model.ErrCouponNotFound
	}
	c.IsActive = false
	f.coupons[id] = c
	return nil
}

func (f *fakeCoupons) DeleteForUser(_ context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, c := range f.coupons {
		if c.UserID == userID {
			delete(f.coupons, id)
		}
	}
	return nil
}

func TestCouponService_Validate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	userID := primitive.NewObjectID()

	newService := func(coupons ...model.Coupon) (*CouponService, *fakeCoupons) {
		store := newFakeCoupons(coupons...)
		svc := NewCouponService(store)
		svc.now = func() time.Time { return now }
		return svc, store
	}

	t.Run("returns a valid coupon", func(t *testing.T) {
		svc, _ := newService(model.Coupon{
			Code:               "SAVE10",
			DiscountPercentage: 10,
			ExpirationDate:     now.Add(24 * time.Hour),
			IsActive:           true,
			UserID:             userID,
		})

		coupon, err := svc.Validate(ctx, userID.Hex(), "SAVE10")
		require.NoError(t, err)
		assert.Equal(t, 10.0, coupon.DiscountPercentage)
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.Validate(ctx, userID.Hex(), "NOPE")
		assert.ErrorIs(t, err, model.ErrCouponNotFound)
	})

	t.Run("another user's coupon is not found", func(t *testing.T) {
		svc, _ := newService(model.Coupon{
			Code:           "SAVE10",
			ExpirationDate: now.Add(24 * time.Hour),
			IsActive:       true,
			UserID:         primitive.NewObjectID(),
		})

		_, err := svc.Validate(ctx, userID.Hex(), "SAVE10")
		assert.ErrorIs(t, err, model.ErrCouponNotFound)
	})

	t.Run("inactive coupon is not found", func(t *testing.T) {
		svc, _ := newService(model.Coupon{
			Code:           "SAVE10",
			ExpirationDate: now.Add(24 * time.Hour),
			IsActive:       false,
			UserID:         userID,
		})

		_, err := svc.Validate(ctx, userID.Hex(), "SAVE10")
		assert.ErrorIs(t, err, model.ErrCouponNotFound)
	})

	t.Run("expired coupon is deactivated on the spot", func(t *testing.T) {
		svc, store := newService(model.Coupon{
			Code:           "SAVE10",
			ExpirationDate: now.Add(-time.Hour),
			IsActive:       true,
			UserID:         userID,
		})

		_, err := svc.Validate(ctx, userID.Hex(), "SAVE10")
		assert.ErrorIs(t, err, model.ErrCouponExpired)

		stored, err := store.FindByCode(ctx, userID, "SAVE10")
		require.NoError(t, err)
		assert.False(t, stored.IsActive)
	})

	t.Run("blank code is not found", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.Validate(ctx, userID.Hex(), "   ")
		assert.ErrorIs(t, err, model.ErrCouponNotFound)
	})
}

func TestCouponService_ActiveForUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	userID := primitive.NewObjectID()
	store := newFakeCoupons(model.Coupon{
		Code:           "SAVE10",
		ExpirationDate: time.Now().UTC().Add(24 * time.Hour),
		IsActive:       true,
		UserID:         userID,
	})
	svc := NewCouponService(store)

	coupon, err := svc.ActiveForUser(ctx, userID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", coupon.Code)

	_, err = svc.ActiveForUser(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, model.ErrCouponNotFound)

	_, err = svc.ActiveForUser(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, model.ErrCouponNotFound)
}
