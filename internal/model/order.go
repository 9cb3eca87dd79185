package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	Price     float64            `bson:"price" json:"price"`
}

type Order struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID           primitive.ObjectID `bson:"userId" json:"user_id"`
	Items            []OrderItem        `bson:"items" json:"items"`
	TotalAmount      float64            `bson:"totalAmount" json:"total_amount"`
	GatewaySessionID string             `bson:"gatewaySessionId" json:"-"`
	CreatedAt        time.Time          `bson:"createdAt" json:"created_at"`
}

// DailySales is one bucket of the admin analytics range query.
type DailySales struct {
	Date    string  `bson:"_id" json:"date"`
	Orders  int     `bson:"orders" json:"orders"`
	Revenue float64 `bson:"revenue" json:"revenue"`
}

type AnalyticsSummary struct {
	Users    int64   `json:"users"`
	Products int64   `json:"products"`
	Orders   int64   `json:"orders"`
	Revenue  float64 `json:"revenue"`
}
