package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/domain"
	pkgerrors "github.com/oubata/HealThea/pkg/errors"
)

// mapCache is an in-process Cache for tests
type mapCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{values: make(map[string][]byte)}
}

func (m *mapCache) Get(ctx context.Context, key string, out interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.values[key]
	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(data, out)
}

func (m *mapCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = data
	return nil
}

type catalogBackend struct {
	mu           sync.Mutex
	regions      []domain.Region
	regionsErr   error
	regionCalls  int
	products     []domain.Product
	productsErr  error
	productCalls int
	categories   []domain.Category
}

func (f *catalogBackend) ListRegions(ctx context.Context) ([]domain.Region, error) {
	f.mu.Lock()
	f.regionCalls++
	f.mu.Unlock()
	return f.regions, f.regionsErr
}

func (f *catalogBackend) ListProducts(ctx context.Context, regionID string) ([]domain.Product, error) {
	f.mu.Lock()
	f.productCalls++
	f.mu.Unlock()
	return f.products, f.productsErr
}

func (f *catalogBackend) GetProductByHandle(ctx context.Context, regionID, handle string) (*domain.Product, error) {
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	for _, p := range f.products {
		if p.Handle == handle {
			cp := p
			return &cp, nil
		}
	}
	return nil, &pkgerrors.ErrNotFound{Resource: "product", ID: handle}
}

func (f *catalogBackend) ListProductsByCategory(ctx context.Context, regionID, categoryID string) ([]domain.Product, error) {
	if f.productsErr != nil {
		return nil, f.productsErr
	}
	var out []domain.Product
	for _, p := range f.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *catalogBackend) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return f.categories, f.productsErr
}

func liveBackend() *catalogBackend {
	return &catalogBackend{
		regions: []domain.Region{{ID: "reg_ca", Name: "Canada", CurrencyCode: "cad"}},
		products: []domain.Product{
			{ID: "prod_live", Title: "Live Sencha", Handle: "live-sencha", CategoryID: "col_green",
				Variants: []domain.ProductVariant{{ID: "var_live", Title: "50g", Price: 1499}}},
		},
		categories: []domain.Category{{ID: "col_green", Name: "Green Tea", Slug: "green-tea"}},
	}
}

func TestDefaultRegionIDResolvedOnce(t *testing.T) {
	api := liveBackend()
	svc := NewService(api, newMapCache(), zap.NewNop())
	ctx := context.Background()

	first, err := svc.DefaultRegionID(ctx)
	require.NoError(t, err)
	second, err := svc.DefaultRegionID(ctx)
	require.NoError(t, err)

	assert.Equal(t, "reg_ca", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, api.regionCalls)
}

func TestDefaultRegionIDRetriesAfterFailure(t *testing.T) {
	api := liveBackend()
	api.regionsErr = errors.New("backend down")
	svc := NewService(api, newMapCache(), zap.NewNop())
	ctx := context.Background()

	_, err := svc.DefaultRegionID(ctx)
	require.Error(t, err)

	api.regionsErr = nil
	id, err := svc.DefaultRegionID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "reg_ca", id)
}

func TestListProductsServedFromCache(t *testing.T) {
	api := liveBackend()
	svc := NewService(api, newMapCache(), zap.NewNop())
	ctx := context.Background()

	first, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	second, err := svc.ListProducts(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, api.productCalls)
}

func TestListProductsFallsBackWhenBackendDown(t *testing.T) {
	api := liveBackend()
	api.regionsErr = errors.New("backend down")
	svc := NewService(api, newMapCache(), zap.NewNop())

	products, err := svc.ListProducts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, FallbackProducts(), products)
}

func TestProductByHandleLive(t *testing.T) {
	svc := NewService(liveBackend(), newMapCache(), zap.NewNop())

	p, err := svc.ProductByHandle(context.Background(), "live-sencha")
	require.NoError(t, err)
	assert.Equal(t, "prod_live", p.ID)
}

func TestProductByHandleUnknownIsNotFound(t *testing.T) {
	svc := NewService(liveBackend(), newMapCache(), zap.NewNop())

	_, err := svc.ProductByHandle(context.Background(), "no-such-tea")
	var notFound *pkgerrors.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestProductByHandleFallsBackWhenBackendDown(t *testing.T) {
	api := liveBackend()
	api.productsErr = errors.New("backend down")
	svc := NewService(api, newMapCache(), zap.NewNop())

	p, err := svc.ProductByHandle(context.Background(), "ceremonial-grade-matcha")
	require.NoError(t, err)
	assert.Equal(t, "prod_matcha_1", p.ID)

	// Unknown handle stays not-found even in fallback
	_, err = svc.ProductByHandle(context.Background(), "no-such-tea")
	var notFound *pkgerrors.ErrNotFound
	assert.ErrorAs(t, err, &notFound)
}

func TestProductsByCategoryFallsBack(t *testing.T) {
	api := liveBackend()
	api.productsErr = errors.New("backend down")
	api.regionsErr = errors.New("backend down")
	svc := NewService(api, newMapCache(), zap.NewNop())

	products, err := svc.ProductsByCategory(context.Background(), "col_green")
	require.NoError(t, err)
	require.NotEmpty(t, products)
	for _, p := range products {
		assert.Equal(t, "col_green", p.CategoryID)
	}
}

func TestListCategoriesFallsBack(t *testing.T) {
	api := liveBackend()
	api.productsErr = errors.New("backend down")
	svc := NewService(api, newMapCache(), zap.NewNop())

	categories, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, FallbackCategories(), categories)
}

func TestCacheFailureDegradesToBackend(t *testing.T) {
	api := liveBackend()
	svc := NewService(api, failingCache{}, zap.NewNop())

	products, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

type failingCache struct{}

func (failingCache) Get(ctx context.Context, key string, out interface{}) error {
	return errors.New("redis unreachable")
}

func (failingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return errors.New("redis unreachable")
}
