package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sukh767/Volt-Vogue/internal/model"
)

type CouponRepository struct {
	coll *mongo.Collection
}

func NewCouponRepository(db *mongo.Database) *CouponRepository {
	return &CouponRepository{coll: db.Collection("coupons")}
}

func (r *CouponRepository) ActiveForUser(ctx context.Context, userID primitive.ObjectID) (model.Coupon, error) {
	var c model.Coupon
	err := r.coll.FindOne(ctx, bson.M{"userId": userID, "isActive": true}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Coupon{}, model.ErrCouponNotFound
	}
	if err != nil {
		return model.Coupon{}, fmt.Errorf("find active coupon: %w", err)
	}
	return c, nil
}

func (r *CouponRepository) FindByCode(ctx context.Context, userID primitive.ObjectID, code string) (model.Coupon, error) {
	var c model.Coupon
	err := r.coll.FindOne(ctx, bson.M{"code": code, "userId": userID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Coupon{}, model.ErrCouponNotFound
	}
	if err != nil {
		return model.Coupon{}, fmt.Errorf("find coupon by code: %w", err)
	}
	return c, nil
}

func (r *CouponRepository) Create(ctx context.Context, c model.Coupon) (model.Coupon, error) {
	result, err := r.coll.InsertOne(ctx, c)
	if err != nil {
		return model.Coupon{}, fmt.Errorf("create coupon: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid
	}
	return c, nil
}

func (r *CouponRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		return fmt.Errorf("deactivate coupon: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrCouponNotFound
	}
	return nil
}

// DeleteForUser clears any existing coupon before gifting a new one; a user
// holds at most one.
func (r *CouponRepository) DeleteForUser(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("delete coupons for user: %w", err)
	}
	return nil
}
