package errors

import (
	"fmt"

	"github.com/oubata/HealThea/internal/domain"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrConflict is returned when there's a conflict (e.g., idempotency)
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// ErrValidation is returned when validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrInvalidStepTransition is returned when an invalid checkout step transition is attempted
type ErrInvalidStepTransition struct {
	From domain.CheckoutStep
	To   domain.CheckoutStep
}

func (e *ErrInvalidStepTransition) Error() string {
	return fmt.Sprintf("invalid step transition from %s to %s", e.From, e.To)
}

// ErrCartEmpty is returned when checkout is attempted on an empty cart
type ErrCartEmpty struct{}

func (e *ErrCartEmpty) Error() string {
	return "cart is empty"
}
