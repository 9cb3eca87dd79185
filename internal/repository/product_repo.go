package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Sukh767/Volt-Vogue/internal/model"
)

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection("products")}
}

func (r *ProductRepository) List(ctx context.Context) ([]model.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return decodeProducts(ctx, cursor, "list products")
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Product{}, model.ErrProductNotFound
	}

	var p model.Product
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, model.ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find products by ids: %w", err)
	}
	return decodeProducts(ctx, cursor, "find products by ids")
}

// Featured backs the catalog cache; it is the source of truth the cache
// falls back to on a miss.
func (r *ProductRepository) Featured(ctx context.Context) ([]model.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"isFeatured": true})
	if err != nil {
		return nil, fmt.Errorf("find featured products: %w", err)
	}
	return decodeProducts(ctx, cursor, "find featured products")
}

func (r *ProductRepository) ByCategory(ctx context.Context, category model.Category) ([]model.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"category": category})
	if err != nil {
		return nil, fmt.Errorf("find products by category: %w", err)
	}
	return decodeProducts(ctx, cursor, "find products by category")
}

// Sample returns up to n random products for the recommendations view.
func (r *ProductRepository) Sample(ctx context.Context, n int) ([]model.Product, error) {
	cursor, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: n}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("sample products: %w", err)
	}
	return decodeProducts(ctx, cursor, "sample products")
}

func (r *ProductRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	result, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return p, nil
}

// SetFeatured flips the featured flag and returns the updated document so
// the caller knows whether a cache invalidation is due.
func (r *ProductRepository) SetFeatured(ctx context.Context, id string, featured bool) (model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Product{}, model.ErrProductNotFound
	}

	var p model.Product
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"isFeatured": featured, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, model.ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("set product featured: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Product{}, model.ErrProductNotFound
	}

	var p model.Product
	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, model.ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("delete product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor, op string) ([]model.Product, error) {
	defer cursor.Close(ctx)

	products := make([]model.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	return products, nil
}
