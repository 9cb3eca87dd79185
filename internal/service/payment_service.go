package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sukh767/Volt-Vogue/internal/model"
)

// giftThreshold is the order total (after discount) at which checkout
// gifts the customer a fresh coupon.
const giftThreshold = 200.0

const giftDiscountPercentage = 10.0

// CheckoutOrder is the payload handed to the payment gateway and read back
// on confirmation.
type CheckoutOrder struct {
	UserID     string
	Items      []model.OrderItem
	Total      float64
	CouponCode string
}

type GatewaySession struct {
	ID  string
	URL string
}

// PaymentGateway is the opaque external collaborator that collects the
// payment. The core only creates sessions and asks whether one was paid.
type PaymentGateway interface {
	CreateSession(ctx context.Context, order CheckoutOrder) (GatewaySession, error)
	Session(ctx context.Context, sessionID string) (CheckoutOrder, bool, error)
}

// OrderStore persists paid orders.
type OrderStore interface {
	Create(ctx context.Context, o model.Order) (model.Order, error)
}

type PaymentService struct {
	gateway  PaymentGateway
	orders   OrderStore
	products CartProductStore
	coupons  CouponStore
}

func NewPaymentService(gateway PaymentGateway, orders OrderStore, products CartProductStore, coupons CouponStore) *PaymentService {
	return &PaymentService{gateway: gateway, orders: orders, products: products, coupons: coupons}
}

// CreateCheckout prices the requested items from the product collection
// (never trusting client-side prices), applies any valid coupon and opens a
// gateway session.
func (s *PaymentService) CreateCheckout(ctx context.Context, userID string, req model.CreateCheckoutRequest) (GatewaySession, float64, error) {
	if len(req.Items) == 0 {
		return GatewaySession{}, 0, fmt.Errorf("%w: checkout requires at least one item", model.ErrInvalidInput)
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	total := 0.0
	for _, reqItem := range req.Items {
		if reqItem.Quantity <= 0 {
			return GatewaySession{}, 0, fmt.Errorf("%w: quantity must be at least 1", model.ErrInvalidInput)
		}

		product, err := s.products.FindByID(ctx, reqItem.ProductID)
		if err != nil {
			return GatewaySession{}, 0, err
		}

		unit := product.Price * (1 - product.Discount/100)
		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Quantity:  reqItem.Quantity,
			Price:     unit,
		})
		total += unit * float64(reqItem.Quantity)
	}

	couponCode := strings.TrimSpace(req.CouponCode)
	if couponCode != "" {
		coupon, err := s.validCoupon(ctx, userID, couponCode)
		if err != nil {
			return GatewaySession{}, 0, err
		}
		total *= 1 - coupon.DiscountPercentage/100
	}
	total = math.Round(total*100) / 100

	gatewaySession, err := s.gateway.CreateSession(ctx, CheckoutOrder{
		UserID:     userID,
		Items:      items,
		Total:      total,
		CouponCode: couponCode,
	})
	if err != nil {
		return GatewaySession{}, 0, fmt.Errorf("create gateway session: %w", err)
	}

	return gatewaySession, total, nil
}

// ConfirmCheckout marks the order paid once the gateway reports the session
// settled: it persists the order, burns the used coupon and gifts a new one
// for large totals.
func (s *PaymentService) ConfirmCheckout(ctx context.Context, userID string, sessionID string) (model.Order, error) {
	if strings.TrimSpace(sessionID) == "" {
		return model.Order{}, fmt.Errorf("%w: session_id is required", model.ErrInvalidInput)
	}

	order, paid, err := s.gateway.Session(ctx, sessionID)
	if err != nil {
		return model.Order{}, fmt.Errorf("look up gateway session: %w", err)
	}
	if !paid {
		return model.Order{}, fmt.Errorf("%w: session not paid", model.ErrOrderNotFound)
	}
	if order.UserID != userID {
		return model.Order{}, model.ErrForbidden
	}

	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return model.Order{}, model.ErrUserNotFound
	}

	saved, err := s.orders.Create(ctx, model.Order{
		UserID:           userOID,
		Items:            order.Items,
		TotalAmount:      order.Total,
		GatewaySessionID: sessionID,
		CreatedAt:        time.Now().UTC(),
	})
	if err != nil {
		return model.Order{}, err
	}

	if order.CouponCode != "" {
		s.burnCoupon(ctx, userOID, order.CouponCode)
	}
	if order.Total >= giftThreshold {
		s.giftCoupon(ctx, userOID)
	}

	slog.Info("order paid", "order_id", saved.ID.Hex(), "user_id", userID, "total", order.Total)
	return saved, nil
}

func (s *PaymentService) validCoupon(ctx context.Context, userID string, code string) (model.Coupon, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return model.Coupon{}, model.ErrCouponNotFound
	}

	coupon, err := s.coupons.FindByCode(ctx, oid, code)
	if err != nil {
		return model.Coupon{}, err
	}
	if !coupon.IsActive || time.Now().UTC().After(coupon.ExpirationDate) {
		return model.Coupon{}, model.ErrCouponExpired
	}
	return coupon, nil
}

func (s *PaymentService) burnCoupon(ctx context.Context, userID primitive.ObjectID, code string) {
	coupon, err := s.coupons.FindByCode(ctx, userID, code)
	if err != nil {
		slog.Warn("used coupon lookup failed", "user_id", userID.Hex(), "error", err)
		return
	}
	if err := s.coupons.Deactivate(ctx, coupon.ID); err != nil {
		slog.Warn("used coupon deactivation failed", "user_id", userID.Hex(), "error", err)
	}
}

func (s *PaymentService) giftCoupon(ctx context.Context, userID primitive.ObjectID) {
	if err := s.coupons.DeleteForUser(ctx, userID); err != nil {
		slog.Warn("clearing old coupons failed", "user_id", userID.Hex(), "error", err)
		return
	}

	code := "GIFT" + strings.ToUpper(uuid.NewString()[:8])
	_, err := s.coupons.Create(ctx, model.Coupon{
		Code:               code,
		DiscountPercentage: giftDiscountPercentage,
		ExpirationDate:     time.Now().UTC().Add(30 * 24 * time.Hour),
		IsActive:           true,
		UserID:             userID,
		CreatedAt:          time.Now().UTC(),
	})
	if err != nil {
		slog.Warn("gift coupon creation failed", "user_id", userID.Hex(), "error", err)
	}
}
