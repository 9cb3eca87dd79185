package service

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sukh767/Volt-Vogue/internal/model"
)

// CouponStore is the slice of the coupon repository the coupon endpoints
// and checkout need.
type CouponStore interface {
	ActiveForUser(ctx context.Context, userID primitive.ObjectID) (model.Coupon, error)
	FindByCode(ctx context.Context, userID primitive.ObjectID, code string) (model.Coupon, error)
	Create(ctx context.Context, c model.Coupon) (model.Coupon, error)
	Deactivate(ctx context.Context, id primitive.ObjectID) error
	DeleteForUser(ctx context.Context, userID primitive.ObjectID) error
}

type CouponService struct {
	coupons CouponStore
	now     func() time.Time
}

func NewCouponService(coupons CouponStore) *CouponService {
	return &CouponService{coupons: coupons, now: func() time.Time { return time.Now().UTC() }}
}

func (s *CouponService) ActiveForUser(ctx context.Context, userID string) (model.Coupon, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return model.Coupon{}, model.ErrCouponNotFound
	}
	return s.coupons.ActiveForUser(ctx, oid)
}

// Validate checks that the code belongs to the user, is active and has not
// expired. An expired coupon is deactivated on the spot so it stops
// matching the active-coupon lookup.
func (s *CouponService) Validate(ctx context.Context, userID string, code string) (model.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return model.Coupon{}, model.ErrCouponNotFound
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return model.Coupon{}, model.ErrCouponNotFound
	}

	coupon, err := s.coupons.FindByCode(ctx, oid, code)
	if err != nil {
		return model.Coupon{}, err
	}
	if !coupon.IsActive {
		return model.Coupon{}, model.ErrCouponNotFound
	}

	if s.now().After(coupon.ExpirationDate) {
		if err := s.coupons.Deactivate(ctx, coupon.ID); err != nil {
			return model.Coupon{}, err
		}
		return model.Coupon{}, model.ErrCouponExpired
	}

	return coupon, nil
}
