package checkout

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/cart"
	"github.com/oubata/HealThea/internal/domain"
	pkgerrors "github.com/oubata/HealThea/pkg/errors"
)

// CommerceAPI is the slice of the commerce backend the checkout flow needs
type CommerceAPI interface {
	SetCartDetails(ctx context.Context, cartID, email string, addr domain.Address) error
	ListShippingOptions(ctx context.Context, cartID string) ([]domain.ShippingOption, error)
	AddShippingMethod(ctx context.Context, cartID, optionID string) error
	CreatePaymentCollection(ctx context.Context, cartID string) (string, error)
	CreatePaymentSession(ctx context.Context, collectionID, providerID string) (string, error)
	CompleteCart(ctx context.Context, cartID string) (*domain.Order, error)
}

// Providers names the payment providers tried when initializing a payment
// session: Preferred first, then Default as fallback.
type Providers struct {
	Preferred string
	Default   string
}

// Session drives one customer through the four checkout steps. Each forward
// transition is gated on a successful remote mutation; Back never touches
// the remote cart. Sessions are transient: one per checkout visit, gone on
// completion or navigation away.
type Session struct {
	mu   sync.Mutex
	step domain.CheckoutStep

	email           string
	shippingAddress domain.Address
	options         []domain.ShippingOption
	selectedOption  string
	clientSecret    string
	paymentReady    bool
	errMsg          string

	completedOrder *domain.Order

	cart      *cart.Store
	api       CommerceAPI
	providers Providers
	logger    *zap.Logger
}

// NewSession starts a fresh checkout at the shipping-info step
func NewSession(cartStore *cart.Store, api CommerceAPI, providers Providers, logger *zap.Logger) *Session {
	return &Session{
		step:      domain.StepShippingInfo,
		cart:      cartStore,
		api:       api,
		providers: providers,
		logger:    logger,
	}
}

// Step returns the current checkout step
func (s *Session) Step() domain.CheckoutStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Err returns the message of the last failed gating call, empty when none
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// ShippingOptions returns the options fetched for the captured address
func (s *Session) ShippingOptions() []domain.ShippingOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ShippingOption(nil), s.options...)
}

// SelectedOption returns the currently selected shipping option ID
func (s *Session) SelectedOption() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedOption
}

// ClientSecret returns the payment session secret, empty in degraded mode
func (s *Session) ClientSecret() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clientSecret
}

// PaymentReady reports whether the hosted capture surface signalled readiness
func (s *Session) PaymentReady() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paymentReady
}

// Order returns the completed order, nil until PlaceOrder succeeds
func (s *Session) Order() *domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completedOrder
}

// SubmitShippingInfo validates presence of the required fields, attaches
// email and address to the remote cart, fetches shipping options for the
// address, and advances to shipping-method. Any remote failure keeps the
// session on shipping-info with a visible error.
func (s *Session) SubmitShippingInfo(ctx context.Context, email string, addr domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != domain.StepShippingInfo {
		return &pkgerrors.ErrInvalidStepTransition{From: s.step, To: domain.StepShippingMethod}
	}

	if fields := missingShippingFields(email, addr); len(fields) > 0 {
		return &pkgerrors.ErrValidation{Message: "missing required fields", Fields: fields}
	}

	if s.cart.ItemCount() == 0 {
		return &pkgerrors.ErrCartEmpty{}
	}

	cartID, err := s.cart.EnsureRemoteCart(ctx)
	if err != nil {
		s.errMsg = "Could not reach the store. Please try again."
		s.logger.Warn("Checkout blocked: remote cart unavailable", zap.Error(err))
		return err
	}

	if err := s.api.SetCartDetails(ctx, cartID, email, addr); err != nil {
		s.errMsg = "Could not save your shipping details. Please try again."
		s.logger.Warn("Checkout blocked: address attachment failed", zap.Error(err))
		return err
	}

	options, err := s.api.ListShippingOptions(ctx, cartID)
	if err != nil {
		s.errMsg = "Could not load shipping options. Please try again."
		s.logger.Warn("Checkout blocked: shipping options fetch failed", zap.Error(err))
		return err
	}

	s.email = email
	s.shippingAddress = addr
	s.options = options
	// Default to the first returned option
	if len(options) > 0 && s.selectedOption == "" {
		s.selectedOption = options[0].ID
	}
	s.errMsg = ""
	s.step = domain.StepShippingMethod
	return nil
}

// SelectShippingMethod attaches the chosen option to the remote cart, then
// initializes a payment session: preferred provider first, default provider
// as fallback, and if both fail the flow proceeds with no payment session
// (degraded mode). Advances to payment.
func (s *Session) SelectShippingMethod(ctx context.Context, optionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != domain.StepShippingMethod {
		return &pkgerrors.ErrInvalidStepTransition{From: s.step, To: domain.StepPayment}
	}

	if optionID == "" {
		optionID = s.selectedOption
	}
	if optionID == "" {
		return &pkgerrors.ErrValidation{Message: "no shipping option selected"}
	}

	cartID := s.cart.RemoteID()
	if err := s.api.AddShippingMethod(ctx, cartID, optionID); err != nil {
		s.errMsg = "Could not set the shipping method. Please try again."
		s.logger.Warn("Checkout blocked: shipping method attachment failed", zap.Error(err))
		return err
	}
	s.selectedOption = optionID

	s.clientSecret = s.initPaymentSession(ctx, cartID)
	s.errMsg = ""
	s.step = domain.StepPayment
	return nil
}

// initPaymentSession tries the preferred provider, then the default one.
// Both failing is not a gating error: checkout continues without a payment
// session and the order is placed unpaid.
func (s *Session) initPaymentSession(ctx context.Context, cartID string) string {
	collectionID, err := s.api.CreatePaymentCollection(ctx, cartID)
	if err != nil {
		s.logger.Warn("Payment collection creation failed, continuing without payment session", zap.Error(err))
		return ""
	}

	secret, err := s.api.CreatePaymentSession(ctx, collectionID, s.providers.Preferred)
	if err == nil {
		return secret
	}
	s.logger.Warn("Preferred payment provider rejected, trying default",
		zap.String("provider", s.providers.Preferred), zap.Error(err))

	secret, err = s.api.CreatePaymentSession(ctx, collectionID, s.providers.Default)
	if err == nil {
		return secret
	}
	s.logger.Warn("Default payment provider rejected, continuing without payment session",
		zap.String("provider", s.providers.Default), zap.Error(err))
	return ""
}

// ConfirmPaymentReady records that the hosted capture surface reported
// readiness. Only meaningful when a payment session exists.
func (s *Session) ConfirmPaymentReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != domain.StepPayment {
		return &pkgerrors.ErrInvalidStepTransition{From: s.step, To: domain.StepPayment}
	}
	if s.clientSecret == "" {
		return &pkgerrors.ErrValidation{Message: "no payment session to confirm"}
	}
	s.paymentReady = true
	return nil
}

// Advance moves payment -> review. With a payment session present the
// capture surface must have signalled readiness first; without one the
// advance is unconditional (degraded mode).
func (s *Session) Advance() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != domain.StepPayment {
		return &pkgerrors.ErrInvalidStepTransition{From: s.step, To: s.step.Next()}
	}
	if s.clientSecret != "" && !s.paymentReady {
		return &pkgerrors.ErrValidation{Message: "payment capture not ready"}
	}
	s.errMsg = ""
	s.step = domain.StepReview
	return nil
}

// Back moves one step backward. Always permitted, never calls the backend.
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = s.step.Prev()
	s.errMsg = ""
}

// PlaceOrder completes the remote cart from the review step. On success the
// cart store is cleared; on failure the session stays on review with a
// visible error.
func (s *Session) PlaceOrder(ctx context.Context) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.step != domain.StepReview {
		return nil, &pkgerrors.ErrInvalidStepTransition{From: s.step, To: domain.StepReview}
	}

	cartID := s.cart.RemoteID()
	if cartID == "" {
		return nil, &pkgerrors.ErrCartEmpty{}
	}

	order, err := s.api.CompleteCart(ctx, cartID)
	if err != nil {
		s.errMsg = "Could not place your order. Please try again."
		s.logger.Warn("Order completion failed", zap.String("cart_id", cartID), zap.Error(err))
		return nil, err
	}

	s.completedOrder = order
	s.errMsg = ""
	s.cart.Clear(ctx)
	s.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.Int64("display_id", order.DisplayID),
	)
	return order, nil
}

func missingShippingFields(email string, addr domain.Address) map[string]string {
	required := map[string]string{
		"email":       email,
		"first_name":  addr.FirstName,
		"last_name":   addr.LastName,
		"address_1":   addr.Address1,
		"city":        addr.City,
		"postal_code": addr.PostalCode,
	}
	missing := make(map[string]string)
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			missing[field] = "required"
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return missing
}
