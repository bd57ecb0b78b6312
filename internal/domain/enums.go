package domain

// CheckoutStep represents the current step of the checkout flow
type CheckoutStep string

const (
	// SHIPPING_INFO - initial step, capture email and shipping address
	StepShippingInfo CheckoutStep = "shipping-info"
	// SHIPPING_METHOD - pick a fulfillment option for the captured address
	StepShippingMethod CheckoutStep = "shipping-method"
	// PAYMENT - payment session setup / capture surface
	StepPayment CheckoutStep = "payment"
	// REVIEW - read-only summary, terminal before completion
	StepReview CheckoutStep = "review"
)

// IsValid checks if the checkout step is valid
func (s CheckoutStep) IsValid() bool {
	switch s {
	case StepShippingInfo, StepShippingMethod, StepPayment, StepReview:
		return true
	default:
		return false
	}
}

// CanAdvanceTo checks if a forward transition is valid. Forward transitions
// are strictly linear and gated on a successful remote mutation; the gating
// itself happens in the checkout session, this only validates adjacency.
func (s CheckoutStep) CanAdvanceTo(next CheckoutStep) bool {
	return s.Next() == next
}

// Next returns the following step, or the same step if already at review.
func (s CheckoutStep) Next() CheckoutStep {
	switch s {
	case StepShippingInfo:
		return StepShippingMethod
	case StepShippingMethod:
		return StepPayment
	case StepPayment:
		return StepReview
	default:
		return s
	}
}

// Prev returns the preceding step, or the same step if already at the start.
// Backward transitions are always permitted and never touch the remote cart.
func (s CheckoutStep) Prev() CheckoutStep {
	switch s {
	case StepReview:
		return StepPayment
	case StepPayment:
		return StepShippingMethod
	case StepShippingMethod:
		return StepShippingInfo
	default:
		return s
	}
}

// String representation (for logging)
func (s CheckoutStep) String() string {
	return string(s)
}
