package session

import (
	"context"
	"time"

	"github.com/oubata/HealThea/internal/domain"
)

// State is the persisted client-side state for one browser session: the
// remote cart identifier, the customer bearer token, and the locally
// mirrored cart items. Each lives under the session's fixed key, read once
// at session start and written on every local mutation.
type State struct {
	Key       string
	CartID    string
	AuthToken string
	Items     []domain.CartItem
	UpdatedAt time.Time
}

// StateRepository defines session state persistence
type StateRepository interface {
	Load(ctx context.Context, key string) (*State, error)
	SaveCart(ctx context.Context, key, cartID string, items []domain.CartItem) error
	SaveToken(ctx context.Context, key, token string) error
}

// CompletionRecord links an idempotency key to the order a completion
// produced, so a retried completion returns the original order.
type CompletionRecord struct {
	Key         string
	SessionKey  string
	OrderID     string
	RequestHash string
	CreatedAt   time.Time
}

// IdempotencyRepository defines idempotency key data access
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string) (*CompletionRecord, error)
	Create(ctx context.Context, record *CompletionRecord) error
}
