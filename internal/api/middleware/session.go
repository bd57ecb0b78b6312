package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oubata/HealThea/internal/config"
)

const sessionKeyContext = "session_key"

// Session cookies outlive the JWT default so carts survive a long absence
const sessionTTL = 30 * 24 * time.Hour

// SessionMiddleware attaches a stable session key to every request. The key
// rides in a signed JWT cookie; a missing or tampered cookie gets a fresh
// key, which means a fresh (empty) session.
func SessionMiddleware(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ""
		if raw, err := c.Cookie(cfg.Session.CookieName); err == nil && raw != "" {
			key, err = parseSessionToken(raw, cfg.Session.Secret)
			if err != nil {
				logger.Info("Rejecting session cookie", zap.Error(err))
				key = ""
			}
		}

		if key == "" {
			key = uuid.NewString()
			token, err := signSessionToken(key, cfg.Session.Secret)
			if err != nil {
				logger.Error("Failed to sign session token", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				c.Abort()
				return
			}
			secure := cfg.Environment == "production"
			c.SetCookie(cfg.Session.CookieName, token, int(sessionTTL.Seconds()), "/", "", secure, true)
		}

		c.Set(sessionKeyContext, key)
		c.Next()
	}
}

// SessionKey returns the session key set by SessionMiddleware
func SessionKey(c *gin.Context) string {
	key, _ := c.Get(sessionKeyContext)
	s, _ := key.(string)
	return s
}

func signSessionToken(key, secret string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   key,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
	})
	return token.SignedString([]byte(secret))
}

func parseSessionToken(raw, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("session token missing subject")
	}
	return claims.Subject, nil
}
