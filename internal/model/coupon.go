package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon is a per-user discount code. At most one active coupon exists per
// user; checkout deactivates the used one and may gift a replacement.
type Coupon struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code               string             `bson:"code" json:"code"`
	DiscountPercentage float64            `bson:"discountPercentage" json:"discount_percentage"`
	ExpirationDate     time.Time          `bson:"expirationDate" json:"expiration_date"`
	IsActive           bool               `bson:"isActive" json:"is_active"`
	UserID             primitive.ObjectID `bson:"userId" json:"user_id"`
	CreatedAt          time.Time          `bson:"createdAt" json:"created_at"`
}
