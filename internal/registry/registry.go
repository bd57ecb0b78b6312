package registry

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/auth"
	"github.com/oubata/HealThea/internal/cart"
	"github.com/oubata/HealThea/internal/catalog"
	"github.com/oubata/HealThea/internal/checkout"
	"github.com/oubata/HealThea/internal/commerce"
	"github.com/oubata/HealThea/internal/session"
)

// Registry owns the per-session stores. Cart and auth stores hydrate from
// persisted state on first access and live for the session; checkout
// sessions are transient and dropped on completion. Idle entries are
// reclaimed by Prune.
type Registry struct {
	mu        sync.Mutex
	carts     map[string]*entry[*cart.Store]
	auths     map[string]*entry[*auth.Store]
	checkouts map[string]*entry[*checkout.Session]

	api        *commerce.Client
	catalog    *catalog.Service
	state      session.StateRepository
	compensate auth.IdentityCompensator
	providers  checkout.Providers
	logger     *zap.Logger
}

type entry[T any] struct {
	value    T
	lastSeen time.Time
}

func New(api *commerce.Client, catalogSvc *catalog.Service, state session.StateRepository, compensate auth.IdentityCompensator, providers checkout.Providers, logger *zap.Logger) *Registry {
	return &Registry{
		carts:      make(map[string]*entry[*cart.Store]),
		auths:      make(map[string]*entry[*auth.Store]),
		checkouts:  make(map[string]*entry[*checkout.Session]),
		api:        api,
		catalog:    catalogSvc,
		state:      state,
		compensate: compensate,
		providers:  providers,
		logger:     logger,
	}
}

// Cart returns the session's cart store, hydrating it on first access
func (r *Registry) Cart(ctx context.Context, sessionKey string) *cart.Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.carts[sessionKey]; ok {
		e.lastSeen = time.Now()
		return e.value
	}
	store := cart.NewStore(ctx, sessionKey, r.api, r.catalog, r.state, r.logger)
	r.carts[sessionKey] = &entry[*cart.Store]{value: store, lastSeen: time.Now()}
	return store
}

// Auth returns the session's auth store, hydrating it on first access
func (r *Registry) Auth(ctx context.Context, sessionKey string) *auth.Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.auths[sessionKey]; ok {
		e.lastSeen = time.Now()
		return e.value
	}
	store := auth.NewStore(ctx, sessionKey, r.api, r.compensate, r.state, r.logger)
	r.auths[sessionKey] = &entry[*auth.Store]{value: store, lastSeen: time.Now()}
	return store
}

// Checkout returns the session's active checkout, starting one at the first
// step when none is in progress.
func (r *Registry) Checkout(ctx context.Context, sessionKey string) *checkout.Session {
	cartStore := r.Cart(ctx, sessionKey)

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.checkouts[sessionKey]; ok {
		e.lastSeen = time.Now()
		return e.value
	}
	cs := checkout.NewSession(cartStore, r.api, r.providers, r.logger)
	r.checkouts[sessionKey] = &entry[*checkout.Session]{value: cs, lastSeen: time.Now()}
	return cs
}

// EndCheckout drops the session's checkout so the next visit starts fresh
func (r *Registry) EndCheckout(sessionKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.checkouts, sessionKey)
}

// Prune evicts stores idle longer than maxIdle. Cart and auth state survive
// eviction in the state repository; only the in-memory instances go.
func (r *Registry) Prune(maxIdle time.Duration) {
	cutoff := time.Now().Add(-maxIdle)
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, e := range r.carts {
		if e.lastSeen.Before(cutoff) {
			delete(r.carts, key)
		}
	}
	for key, e := range r.auths {
		if e.lastSeen.Before(cutoff) {
			delete(r.auths, key)
		}
	}
	for key, e := range r.checkouts {
		if e.lastSeen.Before(cutoff) {
			delete(r.checkouts, key)
		}
	}
}
