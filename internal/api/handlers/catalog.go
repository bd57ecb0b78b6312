package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/catalog"
)

func HandleListProducts(catalogSvc *catalog.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := catalogSvc.ListProducts(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list products", zap.Error(err))
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"count":    len(products),
		})
	}
}

func HandleGetProduct(catalogSvc *catalog.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		handle := c.Param("handle")
		product, err := catalogSvc.ProductByHandle(c.Request.Context(), handle)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

func HandleListCategories(catalogSvc *catalog.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := catalogSvc.ListCategories(c.Request.Context())
		if err != nil {
			logger.Error("Failed to list categories", zap.Error(err))
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"categories": categories,
			"count":      len(categories),
		})
	}
}

func HandleCategoryProducts(catalogSvc *catalog.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID := c.Param("id")
		products, err := catalogSvc.ProductsByCategory(c.Request.Context(), categoryID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"count":    len(products),
		})
	}
}
