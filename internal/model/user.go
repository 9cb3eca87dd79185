package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	CartItems    []CartItem         `bson:"cartItems" json:"cart_items"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updated_at"`
}

// CartItem is embedded on the user document, matching the store layout where
// a cart has no collection of its own.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"productId" json:"product_id"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// Profile is the outward view of a user; the credential hash never leaves
// the repository layer in this shape.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u User) Profile() Profile {
	return Profile{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// AuthClaims is what the access-token verification step attaches to the
// request context.
type AuthClaims struct {
	UserID  string `json:"sub"`
	Role    Role   `json:"role"`
	Type    string `json:"typ"`
	TokenID string `json:"jti"`
}

type TokenPair struct {
	AccessToken  string `json:"-"`
	RefreshToken string `json:"-"`
}
