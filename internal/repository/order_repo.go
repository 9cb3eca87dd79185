package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Sukh767/Volt-Vogue/internal/model"
)

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection("orders")}
}

func (r *OrderRepository) Create(ctx context.Context, o model.Order) (model.Order, error) {
	result, err := r.coll.InsertOne(ctx, o)
	if err != nil {
		return model.Order{}, fmt.Errorf("create order: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		o.ID = oid
	}
	return o, nil
}

// Totals aggregates order count and revenue for the analytics summary.
func (r *OrderRepository) Totals(ctx context.Context) (int64, float64, error) {
	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "orders", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$totalAmount"}}},
		}}},
	})
	if err != nil {
		return 0, 0, fmt.Errorf("aggregate order totals: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Orders  int64   `bson:"orders"`
		Revenue float64 `bson:"revenue"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, 0, fmt.Errorf("aggregate order totals: decode: %w", err)
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Orders, rows[0].Revenue, nil
}

// DailySales buckets paid orders per day over [from, to].
func (r *OrderRepository) DailySales(ctx context.Context, from time.Time, to time.Time) ([]model.DailySales, error) {
	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "createdAt", Value: bson.D{
				{Key: "$gte", Value: from},
				{Key: "$lte", Value: to},
			}},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$createdAt"},
			}}}},
			{Key: "orders", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$totalAmount"}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate daily sales: %w", err)
	}
	defer cursor.Close(ctx)

	sales := make([]model.DailySales, 0)
	if err := cursor.All(ctx, &sales); err != nil {
		return nil, fmt.Errorf("aggregate daily sales: decode: %w", err)
	}
	return sales, nil
}
