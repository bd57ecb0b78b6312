package cart

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/domain"
	"github.com/oubata/HealThea/internal/session"
)

// fakeCommerce mimics the backend's cart resource: it keeps its own line
// list and echoes it back on every mutation, the way the real API does.
type fakeCommerce struct {
	mu          sync.Mutex
	prices      map[string]int64
	lines       []domain.CartItem
	createCount int
	createDelay time.Duration
	createErr   error
	addErr      error
	updateErr   error
	deleteErr   error
	deleted     []string
}

func newFakeCommerce(prices map[string]int64) *fakeCommerce {
	return &fakeCommerce{prices: prices}
}

func (f *fakeCommerce) CreateCart(ctx context.Context, regionID string) (string, error) {
	f.mu.Lock()
	f.createCount++
	f.mu.Unlock()
	if f.createDelay > 0 {
		time.Sleep(f.createDelay)
	}
	if f.createErr != nil {
		return "", f.createErr
	}
	return "cart_remote_1", nil
}

func (f *fakeCommerce) AddLineItem(ctx context.Context, cartID, variantID string, quantity int) ([]domain.CartItem, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.lines {
		if f.lines[i].VariantID == variantID {
			f.lines[i].Quantity += quantity
			return f.snapshot(), nil
		}
	}
	f.lines = append(f.lines, domain.CartItem{
		VariantID:  variantID,
		Quantity:   quantity,
		UnitPrice:  f.prices[variantID],
		LineItemID: "li_" + variantID,
	})
	return f.snapshot(), nil
}

func (f *fakeCommerce) UpdateLineItem(ctx context.Context, cartID, lineItemID string, quantity int) ([]domain.CartItem, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.lines {
		if f.lines[i].LineItemID == lineItemID {
			f.lines[i].Quantity = quantity
		}
	}
	return f.snapshot(), nil
}

func (f *fakeCommerce) DeleteLineItem(ctx context.Context, cartID, lineItemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, lineItemID)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	kept := f.lines[:0]
	for _, l := range f.lines {
		if l.LineItemID != lineItemID {
			kept = append(kept, l)
		}
	}
	f.lines = kept
	return nil
}

func (f *fakeCommerce) snapshot() []domain.CartItem {
	return append([]domain.CartItem(nil), f.lines...)
}

func (f *fakeCommerce) creations() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCount
}

type fakeRegions struct{ err error }

func (f *fakeRegions) DefaultRegionID(ctx context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "reg_ca", nil
}

func newTestStore(t *testing.T, api *fakeCommerce) (*Store, *session.MemoryRepository) {
	t.Helper()
	repo := session.NewMemoryRepository()
	store := NewStore(context.Background(), "sess_test", api, &fakeRegions{}, repo, zap.NewNop())
	return store, repo
}

func greenTea() domain.CartItem {
	return domain.CartItem{
		ProductID: "prod_green_1", VariantID: "var_g1_50",
		Title: "Japanese Sencha Green Tea", VariantTitle: "50g", UnitPrice: 1499,
	}
}

func matcha() domain.CartItem {
	return domain.CartItem{
		ProductID: "prod_matcha_1", VariantID: "var_m1_30",
		Title: "Ceremonial Grade Matcha", VariantTitle: "30g Tin", UnitPrice: 2999,
	}
}

func TestAddDistinctVariantsAccumulates(t *testing.T) {
	api := newFakeCommerce(map[string]int64{"var_g1_50": 1499, "var_m1_30": 2999})
	store, _ := newTestStore(t, api)
	ctx := context.Background()

	store.Add(ctx, greenTea(), 1)
	store.Flush()
	store.Add(ctx, matcha(), 2)
	store.Flush()

	assert.Equal(t, 3, store.ItemCount())
	assert.Equal(t, int64(1499+2*2999), store.Subtotal())
	assert.Len(t, store.Items(), 2)
}

func TestAddSameVariantMergesQuantity(t *testing.T) {
	api := newFakeCommerce(map[string]int64{"var_g1_50": 1499})
	store, _ := newTestStore(t, api)
	ctx := context.Background()

	store.Add(ctx, greenTea(), 1)
	store.Flush()
	store.Add(ctx, greenTea(), 2)
	store.Flush()

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddClampsQuantityToOne(t *testing.T) {
	api := newFakeCommerce(map[string]int64{"var_g1_50": 1499})
	store, _ := newTestStore(t, api)

	store.Add(context.Background(), greenTea(), 0)
	store.Flush()

	require.Len(t, store.Items(), 1)
	assert.Equal(t, 1, store.Items()[0].Quantity)
}

func TestAddOpensDrawer(t *testing.T) {
	api := newFakeCommerce(map[string]int64{"var_g1_50": 1499})
	store, _ := newTestStore(t, api)

	assert.False(t, store.DrawerOpen())
	store.Add(context.Background(), greenTea(), 1)
	assert.True(t, store.DrawerOpen())

	store.CloseDrawer()
	assert.False(t, store.DrawerOpen())
	store.Flush()
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	api := newFakeCommerce(map[string]int64{"var_g1_50": 1499, "var_m1_30": 2999})
	store, _ := newTestStore(t, api)
	ctx := context.Background()

	store.Add(ctx, greenTea(), 1)
	store.Flush()
	store.Add(ctx, matcha(), 1)
	store.Flush()

	store.UpdateQuantity(ctx, "var_g1_50", 0)
	store.Flush()

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "var_m1_30", items[0].VariantID)

	store.UpdateQuantity(ctx, "var_m1_30", -2)
	store.Flush()
	assert.Empty(t, store.Items())
}

func TestUpdateQuantitySetsValue(t *testing.T) {
	api := newFakeCommerce(map[string]int64{"var_g1_50": 1499})
	store, _ := newTestStore(t, api)
	ctx := context.Background()

	store.Add(ctx, greenTea(), 1)
	store.Flush()

	store.UpdateQuantity(ctx, "var_g1_50", 5)
	store.Flush()

	require.Len(t, store.Items(), 1)
	assert.Equal(t, 5, store.Items()[0].Quantity)
	assert.Equal(t, int64(5*1499), store.Subtotal())
}

func TestRemoveDeletesRemoteLine(t *testing.T) {
	api := newFakeCommerce(map[string]int64{"var_g1_50": 1499})
	store, _ := newTestStore(t, api)
	ctx := context.Background()

	store.Add(ctx, greenTea(), 1)
	store.Flush()
	require.NotEmpty(t, store.RemoteID())

	store.Remove(ctx, "var_g1_50")
	store.Flush()

	assert.Empty(t, store.Items())
	assert.Equal(t, []string{"li_var_g1_50"}, api.deleted)
}

func TestRemoveUnsyncedLineSkipsRemote(t *testing.T) {
	api := newFakeCommerce(map[string]int64{"var_g1_50": 1499})
	api.addErr = errors.New("backend down")
	store, _ := newTestStore(t, api)
	ctx := context.Background()

	store.Add(ctx, greenTea(), 1)
	store.Flush()

	// The line never got a remote ID, so there is nothing to delete
	store.Remove(ctx, "var_g1_50")
	store.Flush()
	assert.Empty(t, store.Items())
	assert.Empty(t, api.deleted)
}

func TestClearResetsEverything(t *testing.T) {
	api := newFakeCommerce(map[string]int64{"var_g1_50": 1499})
	store, repo := newTestStore(t, api)
	ctx := context.Background()

	store.Add(ctx, greenTea(), 2)
	store.Flush()
	require.NotEmpty(t, store.RemoteID())

	store.Clear(ctx)

	assert.Empty(t, store.Items())
	assert.Zero(t, store.Subtotal())
	assert.Empty(t, store.RemoteID())
	assert.False(t, store.DrawerOpen())

	st, err := repo.Load(ctx, "sess_test")
	require.NoError(t, err)
	assert.Empty(t, st.CartID)
	assert.Empty(t, st.Items)
}

func TestRemoteFailureKeepsOptimisticState(t *testing.T) {
	api := newFakeCommerce(map[string]int64{"var_g1_50": 1499})
	api.createErr = errors.New("backend down")
	store, _ := newTestStore(t, api)

	store.Add(context.Background(), greenTea(), 2)
	store.Flush()

	assert.Equal(t, 2, store.ItemCount())
	assert.Empty(t, store.RemoteID())
}

func TestEnsureRemoteCartSingleCreation(t *testing.T) {
	api := newFakeCommerce(nil)
	api.createDelay = 20 * time.Millisecond
	store, _ := newTestStore(t, api)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.EnsureRemoteCart(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "cart_remote_1", id)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, api.creations())
}

func TestEnsureRemoteCartReusesExisting(t *testing.T) {
	api := newFakeCommerce(nil)
	store, _ := newTestStore(t, api)
	ctx := context.Background()

	first, err := store.EnsureRemoteCart(ctx)
	require.NoError(t, err)
	second, err := store.EnsureRemoteCart(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, api.creations())
}

func TestStaleServerResponseDiscarded(t *testing.T) {
	api := newFakeCommerce(map[string]int64{"var_g1_50": 1499})
	store, _ := newTestStore(t, api)
	ctx := context.Background()

	store.Add(ctx, greenTea(), 1)
	store.Flush()

	store.mu.Lock()
	current := store.seq
	store.mu.Unlock()

	// A response issued before the latest mutation must not overwrite it
	store.applyServerItems([]domain.CartItem{{VariantID: "var_stale", Quantity: 9}}, current-1)

	items := store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "var_g1_50", items[0].VariantID)
}

func TestHydrationFromPersistedState(t *testing.T) {
	repo := session.NewMemoryRepository()
	ctx := context.Background()
	seeded := []domain.CartItem{{VariantID: "var_g1_50", UnitPrice: 1499, Quantity: 2, LineItemID: "li_1"}}
	require.NoError(t, repo.SaveCart(ctx, "sess_test", "cart_persisted", seeded))

	api := newFakeCommerce(nil)
	store := NewStore(ctx, "sess_test", api, &fakeRegions{}, repo, zap.NewNop())

	assert.Equal(t, "cart_persisted", store.RemoteID())
	assert.Equal(t, 2, store.ItemCount())
	assert.Equal(t, int64(2998), store.Subtotal())
}

func TestPersistenceOnEveryMutation(t *testing.T) {
	api := newFakeCommerce(map[string]int64{"var_g1_50": 1499})
	store, repo := newTestStore(t, api)
	ctx := context.Background()

	store.Add(ctx, greenTea(), 1)
	store.Flush()

	st, err := repo.Load(ctx, "sess_test")
	require.NoError(t, err)
	require.Len(t, st.Items, 1)
	assert.Equal(t, "cart_remote_1", st.CartID)
}
