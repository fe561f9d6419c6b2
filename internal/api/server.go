// Package api exposes the drive-thru over HTTP: the kiosk session endpoints,
// a websocket chat transport, and the JWT-guarded admin surface.
package api

import (
	"context"
	"net/http"

	"drivethru/internal/admin"
	"drivethru/internal/config"
	"drivethru/internal/menu"
	"drivethru/internal/models"
	"drivethru/internal/order"
	"drivethru/internal/speech"

	"github.com/gin-gonic/gin"
)

// Inventory is the store surface the API needs.
type Inventory interface {
	GetAll() ([]models.MenuItem, error)
	GetAvailable() ([]models.MenuItem, error)
	GetByName(name string) (*models.MenuItem, error)
	AdjustQuantity(name string, delta int) (*models.MenuItem, error)
}

// OrderIntent is the customer-facing interpreter contract.
type OrderIntent interface {
	Interpret(ctx context.Context, freeText, menuText string) (*models.InterpreterResult, error)
}

// AdminIntent is the manager-facing interpreter contract.
type AdminIntent interface {
	Interpret(ctx context.Context, command, inventoryText string) (*models.AdminCommand, error)
}

// OrderConfirmer reads a cart back to the customer.
type OrderConfirmer interface {
	Confirm(ctx context.Context, lines []models.OrderLine) (string, error)
}

// Deps bundles everything the server is wired with. Transcriber and
// Synthesizer are optional; the voice endpoints 503 without them.
type Deps struct {
	Store       Inventory
	Sessions    *order.Manager
	Board       *menu.Board
	OrderIntent OrderIntent
	AdminIntent AdminIntent
	Confirmer   OrderConfirmer
	Admin       *admin.Reconciler
	Transcriber speech.Transcriber
	Synthesizer speech.Synthesizer
}

// Server is the HTTP front of the drive-thru.
type Server struct {
	Router *gin.Engine

	cfg        *config.Config
	store      Inventory
	sessions   *order.Manager
	board      *menu.Board
	reconciler *order.Reconciler
	admin      *admin.Reconciler

	orderIntent OrderIntent
	adminIntent AdminIntent
	confirmer   OrderConfirmer

	transcriber speech.Transcriber
	synthesizer speech.Synthesizer
}

// NewServer wires the router and all handlers.
func NewServer(cfg *config.Config, deps Deps) *Server {
	s := &Server{
		Router:      gin.Default(),
		cfg:         cfg,
		store:       deps.Store,
		sessions:    deps.Sessions,
		board:       deps.Board,
		reconciler:  order.NewReconciler(deps.Store),
		admin:       deps.Admin,
		orderIntent: deps.OrderIntent,
		adminIntent: deps.AdminIntent,
		confirmer:   deps.Confirmer,
		transcriber: deps.Transcriber,
		synthesizer: deps.Synthesizer,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints.
func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "drive-thru API is running"})
	})

	v1 := s.Router.Group("/api/v1")
	{
		// Menu
		v1.GET("/menu", s.GetMenuBoard)
		v1.GET("/menu/items", s.GetMenuItems)

		// Kiosk sessions
		v1.POST("/sessions", s.CreateSession)
		v1.GET("/sessions/:id", s.GetSession)
		v1.DELETE("/sessions/:id", s.EndSession)
		v1.GET("/sessions/:id/order", s.GetOrder)
		v1.POST("/sessions/:id/chat", s.Chat)
		v1.POST("/sessions/:id/voice", s.VoiceChat)
		v1.POST("/sessions/:id/confirm", s.ConfirmOrder)
		v1.POST("/sessions/:id/clear", s.ClearOrder)
		v1.GET("/ws/:id", s.handleWebSocket)

		// Speech synthesis for kiosk playback
		v1.POST("/speech", s.Speak)

		// Admin surface
		v1.POST("/admin/login", s.AdminLogin)
		authed := v1.Group("/admin", s.AuthMiddleware())
		{
			authed.GET("/inventory", s.GetInventory)
			authed.POST("/inventory/adjust", s.AdjustInventory)
			authed.POST("/chat", s.AdminChat)
			authed.POST("/restock", s.RunRestock)
		}
	}
}
