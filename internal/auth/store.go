package auth

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/domain"
	"github.com/oubata/HealThea/internal/session"
)

// CommerceAPI is the slice of the commerce backend the auth store needs
type CommerceAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	RegisterIdentity(ctx context.Context, email, password string) (string, error)
	CreateCustomer(ctx context.Context, regToken string, cust domain.Customer) (*domain.Customer, error)
	GetCustomer(ctx context.Context, token string) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, token string, cust domain.Customer) (*domain.Customer, error)
}

// IdentityCompensator removes the auth identity left behind when profile
// creation fails mid-registration. Optional; without one the orphan is
// only logged.
type IdentityCompensator interface {
	DeleteCustomerByEmail(ctx context.Context, email string) error
}

// Store manages the customer's authenticated identity for one session: a
// bearer token persisted under the session key and a cached profile. The
// profile is never trusted without a valid token; an invalid token clears
// both.
type Store struct {
	mu         sync.Mutex
	sessionKey string
	token      string
	customer   *domain.Customer

	api        CommerceAPI
	compensate IdentityCompensator
	state      session.StateRepository
	pending    sync.WaitGroup
	logger     *zap.Logger
}

// NewStore builds an auth store for the session and hydrates it: a
// persisted token triggers a profile fetch, and any failure silently
// clears the persisted token (treated as absent).
func NewStore(ctx context.Context, sessionKey string, api CommerceAPI, compensate IdentityCompensator, state session.StateRepository, logger *zap.Logger) *Store {
	s := &Store{
		sessionKey: sessionKey,
		api:        api,
		compensate: compensate,
		state:      state,
		logger:     logger,
	}

	st, err := state.Load(ctx, sessionKey)
	if err != nil {
		logger.Warn("Failed to hydrate auth state", zap.String("session", sessionKey), zap.Error(err))
		return s
	}
	if st.AuthToken == "" {
		return s
	}

	customer, err := api.GetCustomer(ctx, st.AuthToken)
	if err != nil {
		// Invalid or expired token: clear both token and profile
		logger.Info("Persisted token rejected, clearing session auth", zap.String("session", sessionKey))
		s.clearPersisted(ctx)
		return s
	}
	s.token = st.AuthToken
	s.customer = customer
	return s
}

// IsAuthenticated reports whether a valid token and profile are held
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.customer != nil
}

// Customer returns a copy of the cached profile, nil when unauthenticated
func (s *Store) Customer() *domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.customer == nil {
		return nil
	}
	cp := *s.customer
	return &cp
}

// Token returns the bearer token, empty when unauthenticated
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Login exchanges credentials for a token and fetches the profile. Success
// requires both; a failed profile fetch leaves the session unauthenticated
// and nothing persisted.
func (s *Store) Login(ctx context.Context, email, password string) error {
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Info("Login failed", zap.String("email", email), zap.Error(err))
		return err
	}

	customer, err := s.api.GetCustomer(ctx, token)
	if err != nil {
		s.logger.Warn("Profile fetch after login failed", zap.String("email", email), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.token = token
	s.customer = customer
	s.mu.Unlock()

	if err := s.state.SaveToken(ctx, s.sessionKey, token); err != nil {
		s.logger.Warn("Failed to persist auth token", zap.Error(err))
	}
	return nil
}

// Register creates the auth identity, then the customer profile under it,
// then fetches the profile; success requires the full chain. When profile
// creation fails after the identity exists, the orphaned identity is
// removed best-effort so a retry can start clean.
func (s *Store) Register(ctx context.Context, email, password, firstName, lastName string) error {
	regToken, err := s.api.RegisterIdentity(ctx, email, password)
	if err != nil {
		s.logger.Info("Identity registration failed", zap.String("email", email), zap.Error(err))
		return err
	}

	_, err = s.api.CreateCustomer(ctx, regToken, domain.Customer{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		s.logger.Warn("Profile creation failed after identity registration", zap.String("email", email), zap.Error(err))
		s.compensateOrphan(ctx, email)
		return err
	}

	customer, err := s.api.GetCustomer(ctx, regToken)
	if err != nil {
		s.logger.Warn("Profile fetch after registration failed", zap.String("email", email), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.token = regToken
	s.customer = customer
	s.mu.Unlock()

	if err := s.state.SaveToken(ctx, s.sessionKey, regToken); err != nil {
		s.logger.Warn("Failed to persist auth token", zap.Error(err))
	}
	return nil
}

// Logout clears the token and profile locally. No server-side invalidation
// call is made.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.customer = nil
	s.mu.Unlock()

	if err := s.state.SaveToken(ctx, s.sessionKey, ""); err != nil {
		s.logger.Warn("Failed to clear persisted auth token", zap.Error(err))
	}
}

// UpdateProfile merges the fields into the cached profile immediately and
// pushes the change to the backend in the background. A remote failure is
// logged; the optimistic local profile is kept.
func (s *Store) UpdateProfile(ctx context.Context, firstName, lastName, phone string) {
	s.mu.Lock()
	if s.customer == nil {
		s.mu.Unlock()
		return
	}
	if firstName != "" {
		s.customer.FirstName = firstName
	}
	if lastName != "" {
		s.customer.LastName = lastName
	}
	if phone != "" {
		s.customer.Phone = phone
	}
	updated := *s.customer
	token := s.token
	s.mu.Unlock()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if _, err := s.api.UpdateCustomer(context.Background(), token, updated); err != nil {
			s.logger.Warn("Remote profile update failed, keeping local state",
				zap.String("customer_id", updated.ID), zap.Error(err))
		}
	}()
}

// Flush blocks until in-flight profile updates have finished
func (s *Store) Flush() {
	s.pending.Wait()
}

func (s *Store) compensateOrphan(ctx context.Context, email string) {
	if s.compensate == nil {
		s.logger.Warn("No compensator configured; orphaned identity left on backend", zap.String("email", email))
		return
	}
	if err := s.compensate.DeleteCustomerByEmail(ctx, email); err != nil {
		s.logger.Warn("Failed to remove orphaned identity", zap.String("email", email), zap.Error(err))
	}
}

func (s *Store) clearPersisted(ctx context.Context) {
	if err := s.state.SaveToken(ctx, s.sessionKey, ""); err != nil {
		s.logger.Warn("Failed to clear persisted auth token", zap.Error(err))
	}
}
