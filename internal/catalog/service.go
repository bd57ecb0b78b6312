package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/oubata/HealThea/internal/domain"
	pkgerrors "github.com/oubata/HealThea/pkg/errors"
)

const (
	productsTTL   = 5 * time.Minute
	categoriesTTL = 30 * time.Minute
)

// CommerceCatalog is the slice of the commerce backend the catalog reads from
type CommerceCatalog interface {
	ListRegions(ctx context.Context) ([]domain.Region, error)
	ListProducts(ctx context.Context, regionID string) ([]domain.Product, error)
	GetProductByHandle(ctx context.Context, regionID, handle string) (*domain.Product, error)
	ListProductsByCategory(ctx context.Context, regionID, categoryID string) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// Service serves catalog reads through the cache, collapsing concurrent
// misses for the same key into one backend call. When the backend is
// unreachable it falls back to the built-in catalog so browsing keeps
// working; carts and checkout still need the backend.
type Service struct {
	api    CommerceCatalog
	cache  Cache
	flight singleflight.Group
	logger *zap.Logger

	// The region is resolved once and reused for the process lifetime
	regionMu sync.Mutex
	regionID string
}

func NewService(api CommerceCatalog, cache Cache, logger *zap.Logger) *Service {
	return &Service{
		api:    api,
		cache:  cache,
		logger: logger,
	}
}

// DefaultRegionID resolves the first region the backend reports. The result
// is cached for the process lifetime; a failure is retried on the next call.
func (s *Service) DefaultRegionID(ctx context.Context) (string, error) {
	s.regionMu.Lock()
	defer s.regionMu.Unlock()
	if s.regionID != "" {
		return s.regionID, nil
	}

	regions, err := s.api.ListRegions(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve region: %w", err)
	}
	if len(regions) == 0 {
		return "", fmt.Errorf("backend reported no regions")
	}
	s.regionID = regions[0].ID
	return s.regionID, nil
}

// ListProducts returns the full catalog, cached. Falls back to the built-in
// catalog when the backend is unreachable.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := s.cached(ctx, "products", productsTTL, &products, func() (interface{}, error) {
		regionID, err := s.DefaultRegionID(ctx)
		if err != nil {
			return nil, err
		}
		return s.api.ListProducts(ctx, regionID)
	})
	if err != nil {
		s.logger.Warn("Product list unavailable from backend, serving built-in catalog", zap.Error(err))
		return FallbackProducts(), nil
	}
	return products, nil
}

// ProductByHandle returns one product by URL handle, cached per handle. A
// backend outage falls back to the built-in catalog; an unknown handle is
// ErrNotFound either way.
func (s *Service) ProductByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	var product domain.Product
	err := s.cached(ctx, "product:"+handle, productsTTL, &product, func() (interface{}, error) {
		regionID, err := s.DefaultRegionID(ctx)
		if err != nil {
			return nil, err
		}
		p, err := s.api.GetProductByHandle(ctx, regionID, handle)
		if err != nil {
			return nil, err
		}
		return *p, nil
	})
	if err == nil {
		return &product, nil
	}

	var notFound *pkgerrors.ErrNotFound
	if errors.As(err, &notFound) {
		return nil, err
	}

	s.logger.Warn("Product lookup unavailable from backend, serving built-in catalog",
		zap.String("handle", handle), zap.Error(err))
	for _, p := range FallbackProducts() {
		if p.Handle == handle {
			cp := p
			return &cp, nil
		}
	}
	return nil, &pkgerrors.ErrNotFound{Resource: "product", ID: handle}
}

// ProductsByCategory returns the products of one category, cached per
// category. Falls back to filtering the built-in catalog on backend outage.
func (s *Service) ProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	var products []domain.Product
	err := s.cached(ctx, "category-products:"+categoryID, productsTTL, &products, func() (interface{}, error) {
		regionID, err := s.DefaultRegionID(ctx)
		if err != nil {
			return nil, err
		}
		return s.api.ListProductsByCategory(ctx, regionID, categoryID)
	})
	if err != nil {
		s.logger.Warn("Category products unavailable from backend, serving built-in catalog",
			zap.String("category_id", categoryID), zap.Error(err))
		var out []domain.Product
		for _, p := range FallbackProducts() {
			if p.CategoryID == categoryID {
				out = append(out, p)
			}
		}
		return out, nil
	}
	return products, nil
}

// ListCategories returns the category tree, cached. Falls back to the
// built-in categories on backend outage.
func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := s.cached(ctx, "categories", categoriesTTL, &categories, func() (interface{}, error) {
		return s.api.ListCategories(ctx)
	})
	if err != nil {
		s.logger.Warn("Category list unavailable from backend, serving built-in catalog", zap.Error(err))
		return FallbackCategories(), nil
	}
	return categories, nil
}

// cached serves the key from the cache, collapsing concurrent misses into a
// single fetch. Cache failures degrade to a direct fetch; a failed cache
// write is logged only.
func (s *Service) cached(ctx context.Context, key string, ttl time.Duration, out interface{}, fetch func() (interface{}, error)) error {
	if err := s.cache.Get(ctx, key, out); err == nil {
		return nil
	} else if !errors.Is(err, ErrCacheMiss) {
		s.logger.Warn("Cache read failed, fetching from backend", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := s.flight.Do(key, func() (interface{}, error) {
		value, err := fetch()
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, key, value, ttl); err != nil {
			s.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
		}
		return value, nil
	})
	if err != nil {
		return err
	}
	return assign(out, v)
}

// assign copies the singleflight result into the caller's destination. The
// round-trip keeps callers sharing a flight from aliasing each other's data.
func assign(out, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode fetched value: %w", err)
	}
	return json.Unmarshal(data, out)
}
