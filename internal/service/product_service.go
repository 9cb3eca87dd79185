package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Sukh767/Volt-Vogue/internal/model"
)

const recommendationCount = 4

// ProductCatalog is the slice of the product repository the catalog
// endpoints need.
type ProductCatalog interface {
	List(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	ByCategory(ctx context.Context, category model.Category) ([]model.Product, error)
	Sample(ctx context.Context, n int) ([]model.Product, error)
	Create(ctx context.Context, p model.Product) (model.Product, error)
	SetFeatured(ctx context.Context, id string, featured bool) (model.Product, error)
	Delete(ctx context.Context, id string) (model.Product, error)
}

// FeaturedCache is the cache-aside view over the featured flag.
type FeaturedCache interface {
	Featured(ctx context.Context) ([]model.Product, error)
	Invalidate(ctx context.Context) error
}

// AssetStore holds product images; deletion is best-effort cleanup.
type AssetStore interface {
	Save(ctx context.Context, dataURL string) (assetID string, url string, err error)
	Delete(ctx context.Context, assetID string) error
}

type ProductService struct {
	catalog ProductCatalog
	cache   FeaturedCache
	assets  AssetStore
}

func NewProductService(catalog ProductCatalog, cache FeaturedCache, assets AssetStore) *ProductService {
	return &ProductService{catalog: catalog, cache: cache, assets: assets}
}

func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	return s.catalog.List(ctx)
}

func (s *ProductService) Featured(ctx context.Context) ([]model.Product, error) {
	return s.cache.Featured(ctx)
}

func (s *ProductService) ByCategory(ctx context.Context, rawCategory string) ([]model.Product, error) {
	category := model.Category(strings.TrimSpace(rawCategory))
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidCategory, rawCategory)
	}
	return s.catalog.ByCategory(ctx, category)
}

func (s *ProductService) Recommendations(ctx context.Context) ([]model.Product, error) {
	return s.catalog.Sample(ctx, recommendationCount)
}

func (s *ProductService) Create(ctx context.Context, req model.CreateProductRequest) (model.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || strings.TrimSpace(req.Description) == "" {
		return model.Product{}, fmt.Errorf("%w: name and description are required", model.ErrInvalidInput)
	}
	if req.Price <= 0 {
		return model.Product{}, fmt.Errorf("%w: price must be greater than zero", model.ErrInvalidInput)
	}
	if req.Discount < 0 || req.Discount > 100 {
		return model.Product{}, fmt.Errorf("%w: discount must be between 0 and 100", model.ErrInvalidInput)
	}
	if req.Stock < 0 {
		return model.Product{}, fmt.Errorf("%w: stock cannot be negative", model.ErrInvalidInput)
	}

	category := model.Category(strings.TrimSpace(req.Category))
	if !category.Valid() {
		return model.Product{}, fmt.Errorf("%w: %q", model.ErrInvalidCategory, req.Category)
	}

	var images []model.ProductImage
	if strings.TrimSpace(req.Image) != "" {
		assetID, url, err := s.assets.Save(ctx, req.Image)
		if err != nil {
			return model.Product{}, err
		}
		images = append(images, model.ProductImage{AssetID: assetID, URL: url})
	}

	now := time.Now().UTC()
	product, err := s.catalog.Create(ctx, model.Product{
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		Discount:    req.Discount,
		Category:    category,
		Brand:       strings.TrimSpace(req.Brand),
		Stock:       req.Stock,
		Images:      images,
		Reviews:     []model.Review{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Product{}, err
	}

	slog.Info("product created", "product_id", product.ID.Hex(), "category", category)
	return product, nil
}

// ToggleFeatured flips the flag and refreshes the cache so readers see the
// change without waiting out the TTL. A failed refresh is logged, not
// fatal: the entry is disposable and expires on its own.
func (s *ProductService) ToggleFeatured(ctx context.Context, id string) (model.Product, error) {
	product, err := s.catalog.FindByID(ctx, id)
	if err != nil {
		return model.Product{}, err
	}

	updated, err := s.catalog.SetFeatured(ctx, id, !product.IsFeatured)
	if err != nil {
		return model.Product{}, err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		slog.Warn("featured cache refresh failed after toggle", "product_id", id, "error", err)
	}

	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.catalog.Delete(ctx, id)
	if err != nil {
		return err
	}

	for _, image := range product.Images {
		if image.AssetID == "" {
			continue
		}
		if err := s.assets.Delete(ctx, image.AssetID); err != nil {
			slog.Warn("asset cleanup failed", "product_id", id, "asset_id", image.AssetID, "error", err)
		}
	}

	if product.IsFeatured {
		if err := s.cache.Invalidate(ctx); err != nil {
			slog.Warn("featured cache refresh failed after delete", "product_id", id, "error", err)
		}
	}

	slog.Info("product deleted", "product_id", id)
	return nil
}
