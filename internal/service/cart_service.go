package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sukh767/Volt-Vogue/internal/model"
)

// CartUserStore is the slice of the user repository the cart flow needs;
// cart items live embedded on the user document.
type CartUserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	ReplaceCart(ctx context.Context, userID string, items []model.CartItem) error
}

// CartProductStore resolves cart item ids to product documents.
type CartProductStore interface {
	FindByID(ctx context.Context, id string) (model.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Product, error)
}

type CartService struct {
	users    CartUserStore
	products CartProductStore
}

func NewCartService(users CartUserStore, products CartProductStore) *CartService {
	return &CartService{users: users, products: products}
}

// Add puts a product in the cart, or bumps its quantity when it is already
// there.
func (s *CartService) Add(ctx context.Context, userID string, productID string) ([]model.CartItem, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := user.CartItems
	found := false
	for i := range items {
		if items[i].ProductID == product.ID {
			items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		items = append(items, model.CartItem{ProductID: product.ID, Quantity: 1})
	}

	if err := s.users.ReplaceCart(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// Items joins the embedded cart with product documents and attaches
// quantities. Items whose product has since been deleted are skipped.
func (s *CartService) Items(ctx context.Context, userID string) ([]model.CartLine, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.CartItems) == 0 {
		return []model.CartLine{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(user.CartItems))
	quantities := make(map[primitive.ObjectID]int, len(user.CartItems))
	for _, item := range user.CartItems {
		ids = append(ids, item.ProductID)
		quantities[item.ProductID] = item.Quantity
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]model.CartLine, 0, len(products))
	for _, product := range products {
		lines = append(lines, model.CartLine{Product: product, Quantity: quantities[product.ID]})
	}
	return lines, nil
}

// Remove drops one product from the cart; an empty product id clears the
// whole cart.
func (s *CartService) Remove(ctx context.Context, userID string, productID string) ([]model.CartItem, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if productID == "" {
		if err := s.users.ReplaceCart(ctx, userID, nil); err != nil {
			return nil, err
		}
		return []model.CartItem{}, nil
	}

	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, model.ErrCartItemNotFound
	}

	items := make([]model.CartItem, 0, len(user.CartItems))
	for _, item := range user.CartItems {
		if item.ProductID != oid {
			items = append(items, item)
		}
	}

	if err := s.users.ReplaceCart(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateQuantity sets an item's quantity; zero removes the item.
func (s *CartService) UpdateQuantity(ctx context.Context, userID string, productID string, quantity int) ([]model.CartItem, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", model.ErrInvalidInput)
	}

	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, model.ErrCartItemNotFound
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := user.CartItems
	index := -1
	for i := range items {
		if items[i].ProductID == oid {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, model.ErrCartItemNotFound
	}

	if quantity == 0 {
		items = append(items[:index], items[index+1:]...)
	} else {
		items[index].Quantity = quantity
	}

	if err := s.users.ReplaceCart(ctx, userID, items); err != nil {
		return nil, err
	}
	return items, nil
}
