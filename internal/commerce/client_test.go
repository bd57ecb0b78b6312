package commerce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/config"
	"github.com/oubata/HealThea/internal/domain"
	pkgerrors "github.com/oubata/HealThea/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(config.CommerceConfig{
		BaseURL:        srv.URL + "/", // trailing slash must be trimmed
		PublishableKey: "pk_test",
	}, zap.NewNop())
	return client, srv
}

func TestCreateCartSendsHeadersAndRegion(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/store/carts", r.URL.Path)
		assert.Equal(t, "pk_test", r.Header.Get("x-publishable-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "reg_ca", body["region_id"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cart":{"id":"cart_123","items":[]}}`))
	})

	id, err := client.CreateCart(context.Background(), "reg_ca")
	require.NoError(t, err)
	assert.Equal(t, "cart_123", id)
}

func TestAddLineItemParsesAuthoritativeList(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/store/carts/cart_123/line-items", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cart":{"id":"cart_123","items":[
			{"id":"li_1","product_title":"Japanese Sencha Green Tea","variant_title":"50g",
			 "variant_id":"var_g1_50","product_id":"prod_green_1","product_handle":"japanese-sencha-green-tea",
			 "unit_price":1499,"quantity":2}
		]}}`))
	})

	items, err := client.AddLineItem(context.Background(), "cart_123", "var_g1_50", 2)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.CartItem{
		ProductID: "prod_green_1", VariantID: "var_g1_50",
		Title: "Japanese Sencha Green Tea", VariantTitle: "50g",
		UnitPrice: 1499, Quantity: 2,
		Handle: "japanese-sencha-green-tea", LineItemID: "li_1",
	}, items[0])
}

func TestCompleteCartReturnsOrder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/store/carts/cart_123/complete", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"type":"order","order":{"id":"order_1","display_id":42,"total":6497}}`))
	})

	order, err := client.CompleteCart(context.Background(), "cart_123")
	require.NoError(t, err)
	assert.Equal(t, "order_1", order.ID)
	assert.Equal(t, int64(42), order.DisplayID)
	assert.Equal(t, int64(6497), order.Total)
}

func TestCompleteCartRejection(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"type":"cart","error":{"message":"insufficient inventory"}}`))
	})

	_, err := client.CompleteCart(context.Background(), "cart_123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient inventory")
}

func TestCreatePaymentSessionExtractsClientSecret(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/store/payment-collections/paycol_1/payment-sessions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"payment_collection":{"id":"paycol_1","payment_sessions":[
			{"id":"ps_1","provider_id":"pp_stripe_stripe","data":{"client_secret":"pi_secret_abc"}}
		]}}`))
	})

	secret, err := client.CreatePaymentSession(context.Background(), "paycol_1", "pp_stripe_stripe")
	require.NoError(t, err)
	assert.Equal(t, "pi_secret_abc", secret)
}

func TestCreatePaymentSessionWithoutSecret(t *testing.T) {
	// Providers without a hosted surface return a session with no secret
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"payment_collection":{"id":"paycol_1","payment_sessions":[
			{"id":"ps_1","provider_id":"pp_system_default","data":{}}
		]}}`))
	})

	secret, err := client.CreatePaymentSession(context.Background(), "paycol_1", "pp_system_default")
	require.NoError(t, err)
	assert.Empty(t, secret)
}

func TestCreatePaymentSessionMissingProvider(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"payment_collection":{"id":"paycol_1","payment_sessions":[]}}`))
	})

	_, err := client.CreatePaymentSession(context.Background(), "paycol_1", "pp_stripe_stripe")
	assert.Error(t, err)
}

func TestGetCustomerSendsBearerToken(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/store/customers/me", r.URL.Path)
		assert.Equal(t, "Bearer tok_1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"customer":{"id":"cus_1","first_name":"Mei","last_name":"Lin","email":"mei@example.com"}}`))
	})

	cust, err := client.GetCustomer(context.Background(), "tok_1")
	require.NoError(t, err)
	assert.Equal(t, "cus_1", cust.ID)
	assert.Equal(t, "Mei", cust.FirstName)
}

func TestUnauthorizedMapsToAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid email or password"}`))
	})

	_, err := client.Login(context.Background(), "mei@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsNotFound(err))
}

func TestGetProductByHandleNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[]}`))
	})

	_, err := client.GetProductByHandle(context.Background(), "reg_ca", "no-such-tea")
	var notFound *pkgerrors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "product", notFound.Resource)
}

func TestListProductsMapsWireShape(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "reg_ca", r.URL.Query().Get("region_id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"products":[{
			"id":"prod_green_1","title":"Japanese Sencha Green Tea","handle":"japanese-sencha-green-tea",
			"thumbnail":"https://img/1.jpg",
			"variants":[{"id":"var_g1_50","title":"50g","calculated_price":{"calculated_amount":1499}}],
			"categories":[{"id":"col_green"}],
			"tags":[{"value":"japanese"}],
			"metadata":{"caffeine_level":"medium"}
		}]}`))
	})

	products, err := client.ListProducts(context.Background(), "reg_ca")
	require.NoError(t, err)
	require.Len(t, products, 1)
	p := products[0]
	assert.Equal(t, "col_green", p.CategoryID)
	assert.Equal(t, []string{"japanese"}, p.Tags)
	require.Len(t, p.Variants, 1)
	assert.Equal(t, int64(1499), p.Variants[0].Price)
}

func TestListShippingOptionsCarriesCartID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/store/shipping-options", r.URL.Path)
		assert.Equal(t, "cart_123", r.URL.Query().Get("cart_id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"shipping_options":[{"id":"so_standard","name":"Standard Shipping","amount":500}]}`))
	})

	options, err := client.ListShippingOptions(context.Background(), "cart_123")
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, int64(500), options[0].Amount)
}
