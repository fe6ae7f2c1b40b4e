// Package api exposes the ordering service over HTTP: menu and pricing
// queries, the order lifecycle, the conversational surface, and a WebSocket
// feed of order events.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"maitred/internal/agent"
	"maitred/internal/lifecycle"
	"maitred/internal/models"
	"maitred/internal/monitoring"
	"maitred/internal/pricing"
	"maitred/internal/store"
)

// Server represents the main API handler for the ordering service
type Server struct {
	Router  *gin.Engine
	service *lifecycle.Service
	driver  *agent.Driver
	monitor *monitoring.Monitor
	hub     *Hub
	log     *zap.Logger
}

// Config carries the server's collaborators. Driver may be nil when no
// conversation model is configured; the chat endpoint then answers 503.
type Config struct {
	Service *lifecycle.Service
	Driver  *agent.Driver
	Monitor *monitoring.Monitor
	Logger  *zap.Logger
}

// NewServer creates a new API server instance
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	s := &Server{
		Router:  router,
		service: cfg.Service,
		driver:  cfg.Driver,
		monitor: cfg.Monitor,
		hub:     newHub(cfg.Logger),
		log:     cfg.Logger,
	}

	router.Use(gin.Recovery(), s.observe())
	s.setupRoutes()
	return s
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Maitred API is running"})
	})

	// Live order events
	s.Router.GET("/ws", s.handleWebSocket)

	v1 := s.Router.Group("/api/v1")
	{
		// Menu and pricing
		v1.GET("/menu", s.GetMenu)
		v1.POST("/quote", s.QuoteOrder)

		// Order lifecycle
		v1.POST("/orders", s.CreateOrder)
		v1.GET("/orders", s.ListOrders)
		v1.GET("/orders/:id", s.GetOrder)
		v1.POST("/orders/:id/dispatch", s.DispatchOrder)
		v1.POST("/orders/:id/log", s.LogOrder)

		// Conversation
		v1.POST("/chat", s.Chat)

		// Operational counters
		v1.GET("/stats", s.GetStats)
	}
}

// observe records request durations against the route template.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.monitor.ObserveRequest(c.Request.Method, route, time.Since(start).Seconds())
	}
}

// Menu and pricing handlers

func (s *Server) GetMenu(c *gin.Context) {
	category := c.DefaultQuery("category", "all")
	items, ok := s.service.Menu(category)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("category %q not found", category)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category, "items": items})
}

func (s *Server) QuoteOrder(c *gin.Context) {
	var req struct {
		ItemCodes []string `json:"item_codes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := s.service.Quote(req.ItemCodes)
	if err != nil {
		var unknown *pricing.UnknownItemError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "item_code": unknown.Code})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, quote)
}

// Order lifecycle handlers

func (s *Server) CreateOrder(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := s.service.CreateOrder(req)
	if err != nil {
		resp := gin.H{"error": err.Error()}
		var invalid *lifecycle.InvalidItemError
		if errors.As(err, &invalid) {
			resp["item_code"] = invalid.Code
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	s.hub.Broadcast(Event{Type: "order_created", OrderID: result.OrderID, Payload: result.Order})
	c.JSON(http.StatusCreated, result)
}

func (s *Server) ListOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"orders": s.service.Orders()})
}

func (s *Server) GetOrder(c *gin.Context) {
	order, err := s.service.Status(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, order)
}

func (s *Server) DispatchOrder(c *gin.Context) {
	var req struct {
		Recipient string `json:"recipient"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	// A failed delivery is a domain outcome, not an HTTP failure: the
	// result still carries the rendered ticket and the reason.
	result, err := s.service.Dispatch(c.Request.Context(), c.Param("id"), req.Recipient)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.hub.Broadcast(Event{Type: "order_dispatched", OrderID: result.OrderID, Payload: result})
	c.JSON(http.StatusOK, result)
}

func (s *Server) LogOrder(c *gin.Context) {
	result, err := s.service.Log(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.hub.Broadcast(Event{Type: "order_logged", OrderID: result.OrderID, Payload: result})
	c.JSON(http.StatusOK, result)
}

// Conversation handler

func (s *Server) Chat(c *gin.Context) {
	if s.driver == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "conversation model is not configured"})
		return
	}

	var req struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := s.driver.Interpret(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, reply)
}

// Operational handlers

func (s *Server) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.monitor.Snapshot())
}
