package cart

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/oubata/HealThea/internal/domain"
	"github.com/oubata/HealThea/internal/session"
)

// CommerceAPI is the slice of the commerce backend the cart store needs
type CommerceAPI interface {
	CreateCart(ctx context.Context, regionID string) (string, error)
	AddLineItem(ctx context.Context, cartID, variantID string, quantity int) ([]domain.CartItem, error)
	UpdateLineItem(ctx context.Context, cartID, lineItemID string, quantity int) ([]domain.CartItem, error)
	DeleteLineItem(ctx context.Context, cartID, lineItemID string) error
}

// RegionSource supplies the region context for lazy remote cart creation
type RegionSource interface {
	DefaultRegionID(ctx context.Context) (string, error)
}

// Store maintains the authoritative local view of one session's cart,
// applies mutations optimistically, and reconciles them with the remote
// cart resource in the background. Remote failures during reconciliation
// are logged and swallowed; the optimistic state is kept (availability over
// strict consistency), so local and remote may diverge until the next
// successful sync.
type Store struct {
	mu         sync.Mutex
	sessionKey string
	cartID     string
	items      []domain.CartItem
	drawerOpen bool

	// seq increases on every local mutation. A remote response is applied
	// only when its request was the most recently issued one, so a slow
	// response can never overwrite the result of a newer mutation.
	seq uint64

	api     CommerceAPI
	regions RegionSource
	state   session.StateRepository
	create  singleflight.Group
	pending sync.WaitGroup
	logger  *zap.Logger
}

// NewStore builds a cart store for the session and hydrates it from
// persisted state. A failed hydration is treated as an empty cart.
func NewStore(ctx context.Context, sessionKey string, api CommerceAPI, regions RegionSource, state session.StateRepository, logger *zap.Logger) *Store {
	s := &Store{
		sessionKey: sessionKey,
		api:        api,
		regions:    regions,
		state:      state,
		logger:     logger,
	}

	st, err := state.Load(ctx, sessionKey)
	if err != nil {
		logger.Warn("Failed to hydrate cart state, starting empty", zap.String("session", sessionKey), zap.Error(err))
		return s
	}
	s.cartID = st.CartID
	s.items = st.Items
	return s
}

// Add merges the item into the local cart (same variant increments the
// quantity), opens the cart drawer, and reconciles with the remote cart in
// the background. On a successful remote add, the server's item list
// replaces the local one.
func (s *Store) Add(ctx context.Context, item domain.CartItem, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].VariantID == item.VariantID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = quantity
		s.items = append(s.items, item)
	}
	s.drawerOpen = true
	s.seq++
	mySeq := s.seq
	s.persistLocked(ctx)
	variantID := item.VariantID
	s.mu.Unlock()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.syncAdd(variantID, quantity, mySeq)
	}()
}

// Remove drops the variant's line locally and asks the remote cart to
// delete the corresponding line item. No rollback on remote failure.
func (s *Store) Remove(ctx context.Context, variantID string) {
	s.mu.Lock()
	var lineItemID string
	kept := s.items[:0]
	for _, it := range s.items {
		if it.VariantID == variantID {
			lineItemID = it.LineItemID
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	s.seq++
	s.persistLocked(ctx)
	cartID := s.cartID
	s.mu.Unlock()

	if cartID == "" || lineItemID == "" {
		// Never synced remotely; nothing to delete
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.api.DeleteLineItem(context.Background(), cartID, lineItemID); err != nil {
			s.logger.Warn("Remote line item delete failed, keeping local state",
				zap.String("variant_id", variantID), zap.Error(err))
		}
	}()
}

// UpdateQuantity sets the variant's quantity; zero or negative removes it.
func (s *Store) UpdateQuantity(ctx context.Context, variantID string, quantity int) {
	if quantity <= 0 {
		s.Remove(ctx, variantID)
		return
	}

	s.mu.Lock()
	var lineItemID string
	for i := range s.items {
		if s.items[i].VariantID == variantID {
			s.items[i].Quantity = quantity
			lineItemID = s.items[i].LineItemID
			break
		}
	}
	s.seq++
	mySeq := s.seq
	s.persistLocked(ctx)
	cartID := s.cartID
	s.mu.Unlock()

	if cartID == "" || lineItemID == "" {
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		items, err := s.api.UpdateLineItem(context.Background(), cartID, lineItemID, quantity)
		if err != nil {
			s.logger.Warn("Remote quantity update failed, keeping local state",
				zap.String("variant_id", variantID), zap.Error(err))
			return
		}
		s.applyServerItems(items, mySeq)
	}()
}

// Clear resets the local cart and abandons the remote cart identifier. The
// remote cart itself is not deleted.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.cartID = ""
	s.drawerOpen = false
	s.seq++
	s.persistLocked(ctx)
}

// Items returns a copy of the current line items
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CartItem(nil), s.items...)
}

// Subtotal is the derived sum of unit price times quantity
func (s *Store) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := domain.Cart{Items: s.items}
	return cart.Subtotal()
}

// ItemCount is the derived sum of quantities
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := domain.Cart{Items: s.items}
	return cart.ItemCount()
}

// RemoteID returns the remote cart identifier, empty until first creation
func (s *Store) RemoteID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartID
}

// DrawerOpen reports whether the cart preview surface should be showing
func (s *Store) DrawerOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawerOpen
}

// CloseDrawer hides the cart preview surface
func (s *Store) CloseDrawer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawerOpen = false
}

// Flush blocks until all in-flight reconciliations have finished
func (s *Store) Flush() {
	s.pending.Wait()
}

// EnsureRemoteCart returns the remote cart ID, lazily creating the remote
// cart on first use. Concurrent callers share a single creation request, so
// one session never creates two remote carts.
func (s *Store) EnsureRemoteCart(ctx context.Context) (string, error) {
	s.mu.Lock()
	id := s.cartID
	s.mu.Unlock()
	if id != "" {
		return id, nil
	}

	v, err, _ := s.create.Do("create", func() (interface{}, error) {
		// Re-check: another caller may have finished while we queued
		s.mu.Lock()
		existing := s.cartID
		s.mu.Unlock()
		if existing != "" {
			return existing, nil
		}

		regionID, err := s.regions.DefaultRegionID(ctx)
		if err != nil {
			return "", err
		}
		created, err := s.api.CreateCart(ctx, regionID)
		if err != nil {
			return "", err
		}

		s.mu.Lock()
		s.cartID = created
		s.persistLocked(ctx)
		s.mu.Unlock()
		return created, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *Store) syncAdd(variantID string, quantity int, mySeq uint64) {
	ctx := context.Background()

	cartID, err := s.EnsureRemoteCart(ctx)
	if err != nil {
		s.logger.Warn("Remote cart creation failed, keeping local state",
			zap.String("variant_id", variantID), zap.Error(err))
		return
	}

	items, err := s.api.AddLineItem(ctx, cartID, variantID, quantity)
	if err != nil {
		s.logger.Warn("Remote line item add failed, keeping local state",
			zap.String("variant_id", variantID), zap.Error(err))
		return
	}

	s.applyServerItems(items, mySeq)
}

// applyServerItems replaces the local item set with the server's
// authoritative list, unless a newer local mutation was issued after the
// request that produced it.
func (s *Store) applyServerItems(items []domain.CartItem, mySeq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mySeq != s.seq {
		s.logger.Debug("Discarding stale cart sync response",
			zap.Uint64("response_seq", mySeq), zap.Uint64("current_seq", s.seq))
		return
	}
	s.items = items
	s.persistLocked(context.Background())
}

// persistLocked writes the mirrored state under the session key. Callers
// hold s.mu. Persistence failures are logged only; the in-memory state is
// already correct.
func (s *Store) persistLocked(ctx context.Context) {
	if err := s.state.SaveCart(ctx, s.sessionKey, s.cartID, s.items); err != nil {
		s.logger.Warn("Failed to persist cart state", zap.String("session", s.sessionKey), zap.Error(err))
	}
}
