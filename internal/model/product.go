package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is the closed set of product categories the storefront sells.
type Category string

const (
	CategoryShirt       Category = "Shirt"
	CategoryJeans       Category = "Jeans"
	CategoryTShirts     Category = "T-shirts"
	CategoryShoes       Category = "Shoes"
	CategoryGlasses     Category = "Glasses"
	CategoryJackets     Category = "Jackets"
	CategorySuits       Category = "Suits"
	CategoryBags        Category = "Bags"
	CategorySmartphones Category = "Smart phones"
)

var categories = map[Category]struct{}{
	CategoryShirt:       {},
	CategoryJeans:       {},
	CategoryTShirts:     {},
	CategoryShoes:       {},
	CategoryGlasses:     {},
	CategoryJackets:     {},
	CategorySuits:       {},
	CategoryBags:        {},
	CategorySmartphones: {},
}

func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

type ProductImage struct {
	AssetID string `bson:"assetId" json:"asset_id"`
	URL     string `bson:"url" json:"url"`
}

type Review struct {
	UserID    primitive.ObjectID `bson:"userId" json:"user_id"`
	Name      string             `bson:"name" json:"name"`
	Rating    float64            `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Discount    float64            `bson:"discount" json:"discount"`
	Category    Category           `bson:"category" json:"category"`
	Brand       string             `bson:"brand" json:"brand"`
	Stock       int                `bson:"stock" json:"stock"`
	Images      []ProductImage     `bson:"images" json:"images"`
	Ratings     float64            `bson:"ratings" json:"ratings"`
	Reviews     []Review           `bson:"reviews" json:"reviews"`
	IsFeatured  bool               `bson:"isFeatured" json:"is_featured"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`
}

// CartLine is a cart item joined with its product document, the shape the
// cart endpoints return.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
