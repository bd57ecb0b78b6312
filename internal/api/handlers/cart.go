package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/api/middleware"
	"github.com/oubata/HealThea/internal/cart"
	"github.com/oubata/HealThea/internal/catalog"
	"github.com/oubata/HealThea/internal/domain"
	"github.com/oubata/HealThea/internal/registry"
)

// AddItemRequest identifies what to add. Price and title come from the
// catalog, never from the client.
type AddItemRequest struct {
	Handle    string `json:"handle" binding:"required"`
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse is the snapshot returned after every cart operation
type CartResponse struct {
	Items      []domain.CartItem `json:"items"`
	Subtotal   int64             `json:"subtotal"`
	ItemCount  int               `json:"item_count"`
	DrawerOpen bool              `json:"drawer_open"`
	RemoteID   string            `json:"remote_id,omitempty"`
}

func cartSnapshot(store *cart.Store) CartResponse {
	return CartResponse{
		Items:      store.Items(),
		Subtotal:   store.Subtotal(),
		ItemCount:  store.ItemCount(),
		DrawerOpen: store.DrawerOpen(),
		RemoteID:   store.RemoteID(),
	}
}

func HandleGetCart(reg *registry.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := reg.Cart(c.Request.Context(), middleware.SessionKey(c))
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}

func HandleAddCartItem(reg *registry.Registry, catalogSvc *catalog.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		product, err := catalogSvc.ProductByHandle(c.Request.Context(), req.Handle)
		if err != nil {
			writeError(c, err)
			return
		}

		var variant *domain.ProductVariant
		for i := range product.Variants {
			if product.Variants[i].ID == req.VariantID {
				variant = &product.Variants[i]
				break
			}
		}
		if variant == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "variant not found: " + req.VariantID})
			return
		}

		store := reg.Cart(c.Request.Context(), middleware.SessionKey(c))
		store.Add(c.Request.Context(), domain.CartItem{
			ProductID:    product.ID,
			VariantID:    variant.ID,
			Title:        product.Title,
			VariantTitle: variant.Title,
			UnitPrice:    variant.Price,
			Image:        product.Thumbnail,
			Handle:       product.Handle,
		}, req.Quantity)

		// Optimistic snapshot; remote reconciliation continues in background
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}

func HandleUpdateCartItem(reg *registry.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		store := reg.Cart(c.Request.Context(), middleware.SessionKey(c))
		store.UpdateQuantity(c.Request.Context(), c.Param("variant_id"), req.Quantity)
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}

func HandleRemoveCartItem(reg *registry.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := reg.Cart(c.Request.Context(), middleware.SessionKey(c))
		store.Remove(c.Request.Context(), c.Param("variant_id"))
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}

func HandleClearCart(reg *registry.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := reg.Cart(c.Request.Context(), middleware.SessionKey(c))
		store.Clear(c.Request.Context())
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}

func HandleCloseCartDrawer(reg *registry.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := reg.Cart(c.Request.Context(), middleware.SessionKey(c))
		store.CloseDrawer()
		c.JSON(http.StatusOK, cartSnapshot(store))
	}
}
