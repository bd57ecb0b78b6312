package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/api/middleware"
	"github.com/oubata/HealThea/internal/registry"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func HandleLogin(reg *registry.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		store := reg.Auth(c.Request.Context(), middleware.SessionKey(c))
		if err := store.Login(c.Request.Context(), req.Email, req.Password); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": store.Customer()})
	}
}

func HandleRegister(reg *registry.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		store := reg.Auth(c.Request.Context(), middleware.SessionKey(c))
		if err := store.Register(c.Request.Context(), req.Email, req.Password, req.FirstName, req.LastName); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"customer": store.Customer()})
	}
}

func HandleLogout(reg *registry.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := reg.Auth(c.Request.Context(), middleware.SessionKey(c))
		store.Logout(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"status": "logged out"})
	}
}

func HandleGetProfile(reg *registry.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := reg.Auth(c.Request.Context(), middleware.SessionKey(c))
		if !store.IsAuthenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": store.Customer()})
	}
}

func HandleUpdateProfile(reg *registry.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		store := reg.Auth(c.Request.Context(), middleware.SessionKey(c))
		if !store.IsAuthenticated() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
			return
		}

		// Applied locally right away, pushed to the backend in the background
		store.UpdateProfile(c.Request.Context(), req.FirstName, req.LastName, req.Phone)
		c.JSON(http.StatusOK, gin.H{"customer": store.Customer()})
	}
}
