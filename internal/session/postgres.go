package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/config"
	"github.com/oubata/HealThea/internal/domain"
)

// NewConnection creates a new PostgreSQL database connection
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// PostgresRepository persists session state and idempotency keys in Postgres
type PostgresRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresRepository(db *sql.DB, logger *zap.Logger) *PostgresRepository {
	return &PostgresRepository{db: db, logger: logger}
}

func (r *PostgresRepository) Load(ctx context.Context, key string) (*State, error) {
	query := `
		SELECT cart_id, auth_token, items, updated_at
		FROM sessions
		WHERE key = $1`

	st := &State{Key: key}
	var itemsJSON []byte
	err := r.db.QueryRowContext(ctx, query, key).Scan(&st.CartID, &st.AuthToken, &itemsJSON, &st.UpdatedAt)
	if err == sql.ErrNoRows {
		// Absent session state is an empty session, not an error
		return &State{Key: key}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}

	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &st.Items); err != nil {
			// Corrupt persisted items are treated as absent
			r.logger.Warn("Discarding unreadable persisted cart items", zap.String("key", key), zap.Error(err))
			st.Items = nil
		}
	}
	return st, nil
}

func (r *PostgresRepository) SaveCart(ctx context.Context, key, cartID string, items []domain.CartItem) error {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		INSERT INTO sessions (key, cart_id, auth_token, items, updated_at)
		VALUES ($1, $2, '', $3, NOW())
		ON CONFLICT (key) DO UPDATE SET
			cart_id = EXCLUDED.cart_id,
			items = EXCLUDED.items,
			updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, key, cartID, itemsJSON); err != nil {
		return fmt.Errorf("failed to save cart state: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SaveToken(ctx context.Context, key, token string) error {
	query := `
		INSERT INTO sessions (key, cart_id, auth_token, items, updated_at)
		VALUES ($1, '', $2, '[]', NOW())
		ON CONFLICT (key) DO UPDATE SET
			auth_token = EXCLUDED.auth_token,
			updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, key, token); err != nil {
		return fmt.Errorf("failed to save auth token: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByKey(ctx context.Context, key string) (*CompletionRecord, error) {
	query := `
		SELECT key, session_key, order_id, request_hash, created_at
		FROM idempotency_keys
		WHERE key = $1`

	rec := &CompletionRecord{}
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&rec.Key, &rec.SessionKey, &rec.OrderID, &rec.RequestHash, &rec.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency key: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Create(ctx context.Context, record *CompletionRecord) error {
	query := `
		INSERT INTO idempotency_keys (key, session_key, order_id, request_hash, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (key) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, record.Key, record.SessionKey, record.OrderID, record.RequestHash); err != nil {
		return fmt.Errorf("failed to create idempotency key: %w", err)
	}
	return nil
}
