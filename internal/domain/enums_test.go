package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckoutStepOrder(t *testing.T) {
	assert.Equal(t, StepShippingMethod, StepShippingInfo.Next())
	assert.Equal(t, StepPayment, StepShippingMethod.Next())
	assert.Equal(t, StepReview, StepPayment.Next())
	// Review is terminal
	assert.Equal(t, StepReview, StepReview.Next())

	assert.Equal(t, StepPayment, StepReview.Prev())
	assert.Equal(t, StepShippingMethod, StepPayment.Prev())
	assert.Equal(t, StepShippingInfo, StepShippingMethod.Prev())
	// Shipping info is the start
	assert.Equal(t, StepShippingInfo, StepShippingInfo.Prev())
}

func TestCheckoutStepCanAdvanceTo(t *testing.T) {
	assert.True(t, StepShippingInfo.CanAdvanceTo(StepShippingMethod))
	assert.False(t, StepShippingInfo.CanAdvanceTo(StepPayment))
	assert.False(t, StepPayment.CanAdvanceTo(StepShippingMethod))
}

func TestCheckoutStepIsValid(t *testing.T) {
	for _, s := range []CheckoutStep{StepShippingInfo, StepShippingMethod, StepPayment, StepReview} {
		assert.True(t, s.IsValid())
	}
	assert.False(t, CheckoutStep("confirmation").IsValid())
}

func TestCartDerivedTotals(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{UnitPrice: 1499, Quantity: 2},
		{UnitPrice: 2999, Quantity: 1},
	}}
	assert.Equal(t, int64(5997), cart.Subtotal())
	assert.Equal(t, 3, cart.ItemCount())

	empty := Cart{}
	assert.Zero(t, empty.Subtotal())
	assert.Zero(t, empty.ItemCount())
}
