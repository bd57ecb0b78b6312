package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/api/middleware"
	"github.com/oubata/HealThea/internal/checkout"
	"github.com/oubata/HealThea/internal/domain"
	"github.com/oubata/HealThea/internal/registry"
	"github.com/oubata/HealThea/internal/session"
)

type ShippingInfoRequest struct {
	Email   string         `json:"email" binding:"required"`
	Address domain.Address `json:"address" binding:"required"`
}

type ShippingMethodRequest struct {
	OptionID string `json:"option_id"`
}

// CheckoutResponse is the full checkout state returned after every step
type CheckoutResponse struct {
	Step            string                  `json:"step"`
	Error           string                  `json:"error,omitempty"`
	ShippingOptions []domain.ShippingOption `json:"shipping_options,omitempty"`
	SelectedOption  string                  `json:"selected_option,omitempty"`
	ClientSecret    string                  `json:"client_secret,omitempty"`
	PaymentReady    bool                    `json:"payment_ready"`
	Order           *domain.Order           `json:"order,omitempty"`
}

func checkoutSnapshot(cs *checkout.Session) CheckoutResponse {
	return CheckoutResponse{
		Step:            cs.Step().String(),
		Error:           cs.Err(),
		ShippingOptions: cs.ShippingOptions(),
		SelectedOption:  cs.SelectedOption(),
		ClientSecret:    cs.ClientSecret(),
		PaymentReady:    cs.PaymentReady(),
		Order:           cs.Order(),
	}
}

func HandleGetCheckout(reg *registry.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cs := reg.Checkout(c.Request.Context(), middleware.SessionKey(c))
		c.JSON(http.StatusOK, checkoutSnapshot(cs))
	}
}

func HandleSubmitShippingInfo(reg *registry.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ShippingInfoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		cs := reg.Checkout(c.Request.Context(), middleware.SessionKey(c))
		if err := cs.SubmitShippingInfo(c.Request.Context(), req.Email, req.Address); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, checkoutSnapshot(cs))
	}
}

func HandleSelectShippingMethod(reg *registry.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ShippingMethodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		cs := reg.Checkout(c.Request.Context(), middleware.SessionKey(c))
		if err := cs.SelectShippingMethod(c.Request.Context(), req.OptionID); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, checkoutSnapshot(cs))
	}
}

func HandleConfirmPaymentReady(reg *registry.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cs := reg.Checkout(c.Request.Context(), middleware.SessionKey(c))
		if err := cs.ConfirmPaymentReady(); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, checkoutSnapshot(cs))
	}
}

func HandleAdvanceCheckout(reg *registry.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cs := reg.Checkout(c.Request.Context(), middleware.SessionKey(c))
		if err := cs.Advance(); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, checkoutSnapshot(cs))
	}
}

func HandleCheckoutBack(reg *registry.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cs := reg.Checkout(c.Request.Context(), middleware.SessionKey(c))
		cs.Back()
		c.JSON(http.StatusOK, checkoutSnapshot(cs))
	}
}

func HandlePlaceOrder(reg *registry.Registry, idempotency session.IdempotencyRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionKey := middleware.SessionKey(c)

		// A replayed completion returns the original order
		_, _, existingOrderID, isExisting := middleware.GetIdempotencyInfo(c)
		if isExisting {
			logger.Info("Replayed order completion", zap.String("order_id", existingOrderID))
			c.JSON(http.StatusOK, gin.H{"order": gin.H{"id": existingOrderID}, "replayed": true})
			return
		}

		cs := reg.Checkout(c.Request.Context(), sessionKey)
		order, err := cs.PlaceOrder(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}

		idempotencyKey, requestHash, _, _ := middleware.GetIdempotencyInfo(c)
		if idempotencyKey != "" {
			record := &session.CompletionRecord{
				Key:         idempotencyKey,
				SessionKey:  sessionKey,
				OrderID:     order.ID,
				RequestHash: requestHash,
			}
			if err := idempotency.Create(c.Request.Context(), record); err != nil {
				logger.Warn("Failed to store idempotency key", zap.Error(err))
			}
		}

		// The checkout is done; the next visit starts a fresh one
		reg.EndCheckout(sessionKey)

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}
