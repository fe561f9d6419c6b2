package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"drivethru/internal/admin"
	"drivethru/internal/inventory"
	"drivethru/internal/menu"
	"drivethru/internal/models"
	"drivethru/internal/monitoring"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// AdminLogin exchanges the admin password for a signed token.
func (s *Server) AdminLogin(c *gin.Context) {
	if s.cfg.Auth.AdminPassword == "" || s.cfg.Auth.JWTSecret == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin access is not configured"})
		return
	}

	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Password != s.cfg.Auth.AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	ttl := time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "admin",
		"exp": time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": signed})
}

// AuthMiddleware handles JWT authentication for the admin surface.
func (s *Server) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(s.cfg.Auth.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetInventory returns the full unfiltered stock snapshot.
func (s *Server) GetInventory(c *gin.Context) {
	items, err := s.store.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// AdjustInventory applies a manual signed stock delta.
func (s *Server) AdjustInventory(c *gin.Context) {
	var req struct {
		Item  string `json:"item" binding:"required"`
		Delta int    `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := s.admin.ApplyManualAdjustment(req.Item, req.Delta)
	switch {
	case errors.Is(err, admin.ErrZeroDelta):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
	case errors.Is(err, inventory.ErrInsufficientStock):
		resp := gin.H{"error": "Insufficient stock for that adjustment"}
		if item != nil {
			resp["available"] = item.Quantity
		}
		c.JSON(http.StatusConflict, resp)
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, item)
	}
}

// AdminChat interprets a free-text manager command and applies it.
func (s *Server) AdminChat(c *gin.Context) {
	var req struct {
		Command string `json:"command" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := s.store.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	cmd, err := s.adminIntent.Interpret(c.Request.Context(), req.Command, menu.InventoryText(items))
	if err != nil || cmd == nil {
		c.JSON(http.StatusOK, gin.H{
			"action":  models.AdminActionError,
			"message": "The inventory assistant is unavailable right now.",
		})
		return
	}

	switch cmd.Action {
	case models.AdminActionOrder:
		updated, err := s.admin.ApplyManualAdjustment(cmd.ItemName, int(cmd.QuantityOrdered))
		if err != nil {
			c.JSON(http.StatusOK, gin.H{
				"action":  models.AdminActionError,
				"message": fmt.Sprintf("Couldn't order more %s: %v", cmd.ItemName, err),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"action":  cmd.Action,
			"message": fmt.Sprintf("Ordered %d more %s; now %d in stock.", int(cmd.QuantityOrdered), updated.Name, updated.Quantity),
			"item":    updated,
		})
	case models.AdminActionReport:
		c.JSON(http.StatusOK, gin.H{
			"action":    cmd.Action,
			"message":   cmd.Message,
			"inventory": items,
		})
	default:
		c.JSON(http.StatusOK, gin.H{"action": models.AdminActionError, "message": cmd.Message})
	}
}

// RunRestock triggers the autonomous low-stock check. Threshold and amount
// default to configuration but can be overridden per call.
func (s *Server) RunRestock(c *gin.Context) {
	var req struct {
		Threshold     int `json:"threshold"`
		ReorderAmount int `json:"reorder_amount"`
	}
	// Body is optional.
	_ = c.ShouldBindJSON(&req)

	rec := s.admin
	if req.Threshold > 0 || req.ReorderAmount > 0 {
		threshold, amount := rec.Threshold, rec.ReorderAmount
		if req.Threshold > 0 {
			threshold = req.Threshold
		}
		if req.ReorderAmount > 0 {
			amount = req.ReorderAmount
		}
		rec = admin.New(s.store, threshold, amount)
	}

	report, err := rec.RunAutonomousCheck()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	monitoring.RestockObserved(len(report.Restocked), len(report.Failed))
	c.JSON(http.StatusOK, report)
}
