package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Sukh767/Volt-Vogue/internal/model"
)

type fakeCatalog struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]model.Product
}

func newFakeCatalog(products ...model.Product) *fakeCatalog {
	f := &fakeCatalog{products: map[primitive.ObjectID]model.Product{}}
	for _, p := range products {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeCatalog) List(_ context.Context) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	all := make([]model.Product, 0, len(f.products))
	for _, p := range f.products {
		all = append(all, p)
	}
	return all, nil
}

func (f *fakeCatalog) FindByID(_ context.Context, id string) (model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Product{}, model.ErrProductNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[oid]
	if !ok {
		return model.Product{}, model.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeCatalog) ByCategory(_ context.Context, category model.Category) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matched := []model.Product{}
	for _, p := range f.products {
		if p.Category == category {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (f *fakeCatalog) Sample(_ context.Context, n int) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sample := make([]model.Product, 0, n)
	for _, p := range f.products {
		if len(sample) == n {
			break
		}
		sample = append(sample, p)
	}
	return sample, nil
}

func (f *fakeCatalog) Create(_ context.Context, p model.Product) (model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = primitive.NewObjectID()
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeCatalog) SetFeatured(_ context.Context, id string, featured bool) (model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Product{}, model.ErrProductNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[oid]
	if !ok {
		return model.Product{}, model.ErrProductNotFound
	}
	p.IsFeatured = featured
	f.products[oid] = p
	return p, nil
}

func (f *fakeCatalog) Delete(_ context.Context, id string) (model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Product{}, model.ErrProductNotFound
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[oid]
	if !ok {
		return model.Product{}, model.ErrProductNotFound
	}
	delete(f.products, oid)
	return p, nil
}

type fakeFeaturedCache struct {
	invalidations atomic.Int64
	err           error
}

func (f *fakeFeaturedCache) Featured(_ context.Context) ([]model.Product, error) {
	return []model.Product{}, nil
}

func (f *fakeFeaturedCache) Invalidate(_ context.Context) error {
	f.invalidations.Add(1)
	return f.err
}

type fakeAssets struct {
	mu      sync.Mutex
	saved   map[string]string
	deleted []string
	saveErr error
}

func newFakeAssets() *fakeAssets {
	return &fakeAssets{saved: map[string]string{}}
}

func (f *fakeAssets) Save(_ context.Context, dataURL string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", "", f.saveErr
	}
	assetID := primitive.NewObjectID().Hex() + ".png"
	f.saved[assetID] = dataURL
	return assetID, "/assets/" + assetID, nil
}

func (f *fakeAssets) Delete(_ context.Context, assetID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, assetID)
	return nil
}

func validCreateRequest() model.CreateProductRequest {
	return model.CreateProductRequest{
		Name:        "Leather Jacket",
		Description: "A jacket",
		Price:       120,
		Discount:    10,
		Category:    string(model.CategoryJackets),
		Brand:       "Volt",
		Stock:       5,
	}
}

func TestProductService_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates a product", func(t *testing.T) {
		catalog := newFakeCatalog()
		svc := NewProductService(catalog, &fakeFeaturedCache{}, newFakeAssets())

		product, err := svc.Create(ctx, validCreateRequest())
		require.NoError(t, err)
		assert.False(t, product.ID.IsZero())
		assert.Equal(t, model.CategoryJackets, product.Category)
		assert.Empty(t, product.Images)
	})

	t.Run("stores the image asset when given", func(t *testing.T) {
		assets := newFakeAssets()
		svc := NewProductService(newFakeCatalog(), &fakeFeaturedCache{}, assets)

		req := validCreateRequest()
		req.Image = "data:image/png;base64,aGVsbG8="

		product, err := svc.Create(ctx, req)
		require.NoError(t, err)
		require.Len(t, product.Images, 1)
		assert.NotEmpty(t, product.Images[0].AssetID)
		assert.Contains(t, product.Images[0].URL, "/assets/")
	})

	t.Run("asset store failure aborts creation", func(t *testing.T) {
		assets := newFakeAssets()
		assets.saveErr = errors.New("disk full")
		catalog := newFakeCatalog()
		svc := NewProductService(catalog, &fakeFeaturedCache{}, assets)

		req := validCreateRequest()
		req.Image = "data:image/png;base64,aGVsbG8="

		_, err := svc.Create(ctx, req)
		require.Error(t, err)
		all, _ := catalog.List(ctx)
		assert.Empty(t, all)
	})

	t.Run("validates the category", func(t *testing.T) {
		svc := NewProductService(newFakeCatalog(), &fakeFeaturedCache{}, newFakeAssets())

		req := validCreateRequest()
		req.Category = "Furniture"

		_, err := svc.Create(ctx, req)
		assert.ErrorIs(t, err, model.ErrInvalidCategory)
	})

	t.Run("validates fields", func(t *testing.T) {
		svc := NewProductService(newFakeCatalog(), &fakeFeaturedCache{}, newFakeAssets())

		for name, mutate := range map[string]func(*model.CreateProductRequest){
			"empty name":        func(r *model.CreateProductRequest) { r.Name = " " },
			"empty description": func(r *model.CreateProductRequest) { r.Description = "" },
			"zero price":        func(r *model.CreateProductRequest) { r.Price = 0 },
			"discount over 100": func(r *model.CreateProductRequest) { r.Discount = 101 },
			"negative stock":    func(r *model.CreateProductRequest) { r.Stock = -1 },
		} {
			t.Run(name, func(t *testing.T) {
				req := validCreateRequest()
				mutate(&req)
				_, err := svc.Create(ctx, req)
				assert.ErrorIs(t, err, model.ErrInvalidInput)
			})
		}
	})
}

func TestProductService_ByCategory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	catalog := newFakeCatalog(
		model.Product{Name: "jacket", Category: model.CategoryJackets},
		model.Product{Name: "boots", Category: model.CategoryShoes},
	)
	svc := NewProductService(catalog, &fakeFeaturedCache{}, newFakeAssets())

	products, err := svc.ByCategory(ctx, "Jackets")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "jacket", products[0].Name)

	// Unknown categories are a closed-set violation, not an empty result.
	_, err = svc.ByCategory(ctx, "Furniture")
	assert.ErrorIs(t, err, model.ErrInvalidCategory)
}

func TestProductService_Recommendations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	catalog := newFakeCatalog(
		model.Product{Name: "a", Category: model.CategoryShoes},
		model.Product{Name: "b", Category: model.CategoryShoes},
		model.Product{Name: "c", Category: model.CategoryShoes},
		model.Product{Name: "d", Category: model.CategoryShoes},
		model.Product{Name: "e", Category: model.CategoryShoes},
		model.Product{Name: "f", Category: model.CategoryShoes},
	)
	svc := NewProductService(catalog, &fakeFeaturedCache{}, newFakeAssets())

	products, err := svc.Recommendations(ctx)
	require.NoError(t, err)
	assert.Len(t, products, recommendationCount)
}

func TestProductService_ToggleFeatured(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("flips the flag and refreshes the cache", func(t *testing.T) {
		catalog := newFakeCatalog(model.Product{Name: "jacket", Category: model.CategoryJackets})
		cache := &fakeFeaturedCache{}
		svc := NewProductService(catalog, cache, newFakeAssets())

		all, _ := catalog.List(ctx)
		id := all[0].ID.Hex()

		updated, err := svc.ToggleFeatured(ctx, id)
		require.NoError(t, err)
		assert.True(t, updated.IsFeatured)
		assert.Equal(t, int64(1), cache.invalidations.Load())

		updated, err = svc.ToggleFeatured(ctx, id)
		require.NoError(t, err)
		assert.False(t, updated.IsFeatured)
		assert.Equal(t, int64(2), cache.invalidations.Load())
	})

	t.Run("cache refresh failure is not fatal", func(t *testing.T) {
		catalog := newFakeCatalog(model.Product{Name: "jacket", Category: model.CategoryJackets})
		cache := &fakeFeaturedCache{err: errors.New("redis down")}
		svc := NewProductService(catalog, cache, newFakeAssets())

		all, _ := catalog.List(ctx)
		updated, err := svc.ToggleFeatured(ctx, all[0].ID.Hex())
		require.NoError(t, err)
		assert.True(t, updated.IsFeatured)
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		svc := NewProductService(newFakeCatalog(), &fakeFeaturedCache{}, newFakeAssets())

		_, err := svc.ToggleFeatured(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})
}

func TestProductService_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("removes the product and its assets", func(t *testing.T) {
		catalog := newFakeCatalog(model.Product{
			Name:     "jacket",
			Category: model.CategoryJackets,
			Images:   []model.ProductImage{{AssetID: "img.png", URL: "/assets/img.png"}},
		})
		assets := newFakeAssets()
		svc := NewProductService(catalog, &fakeFeaturedCache{}, assets)

		all, _ := catalog.List(ctx)
		require.NoError(t, svc.Delete(ctx, all[0].ID.Hex()))

		remaining, _ := catalog.List(ctx)
		assert.Empty(t, remaining)
		assert.Equal(t, []string{"img.png"}, assets.deleted)
	})

	t.Run("featured deletion refreshes the cache", func(t *testing.T) {
		catalog := newFakeCatalog(model.Product{Name: "jacket", Category: model.CategoryJackets, IsFeatured: true})
		cache := &fakeFeaturedCache{}
		svc := NewProductService(catalog, cache, newFakeAssets())

		all, _ := catalog.List(ctx)
		require.NoError(t, svc.Delete(ctx, all[0].ID.Hex()))
		assert.Equal(t, int64(1), cache.invalidations.Load())
	})

	t.Run("non-featured deletion leaves the cache alone", func(t *testing.T) {
		catalog := newFakeCatalog(model.Product{Name: "jacket", Category: model.CategoryJackets})
		cache := &fakeFeaturedCache{}
		svc := NewProductService(catalog, cache, newFakeAssets())

		all, _ := catalog.List(ctx)
		require.NoError(t, svc.Delete(ctx, all[0].ID.Hex()))
		assert.Equal(t, int64(0), cache.invalidations.Load())
	})
}
