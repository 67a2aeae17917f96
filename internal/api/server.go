// Package api serves the fill-up log as a small read-only JSON API.
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/balkashynov/motofuel/internal/backup"
	"github.com/balkashynov/motofuel/internal/config"
	"github.com/balkashynov/motofuel/internal/models"
)

// Store is the read side of the database the API needs
type Store interface {
	ListVehicles() ([]models.Vehicle, error)
	GetVehicle(id uint) (*models.Vehicle, error)
	ListEntries(vehicleID *uint) ([]models.FuelEntry, error)
	ListTrips(vehicleID *uint) ([]models.Trip, error)
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

func sendError(c *gin.Context, status int, err, message string) {
	c.JSON(status, ErrorResponse{Error: err, Message: message, Code: status})
}

// Handler holds the dependencies of every route
type Handler struct {
	store    Store
	prices   backup.PriceReader
	currency string
	now      func() time.Time
}

func NewHandler(store Store, prices backup.PriceReader, currency string) *Handler {
	return &Handler{store: store, prices: prices, currency: currency, now: time.Now}
}

// NewRouter wires middleware and routes. The returned stop function ends the
// rate limiter's background cleanup.
func NewRouter(h *Handler, cfg config.ServerConfig) (*gin.Engine, func()) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	limiter := NewRateLimiter(cfg.RequestsPerMinute, cfg.RequestsPerMinute)
	stop := make(chan struct{})
	startCleanup(limiter, stop)

	apiGroup := r.Group("/api")
	apiGroup.Use(RateLimit(limiter, cfg.RequestsPerMinute))
	{
		apiGroup.GET("/health", h.Health)
		apiGroup.GET("/backup", h.Backup)

		vehicles := apiGroup.Group("/vehicles")
		{
			vehicles.GET("", h.ListVehicles)
			vehicles.GET("/:id/entries", h.ListEntries)
			vehicles.GET("/:id/stats", h.Stats)
			vehicles.GET("/:id/insights", h.Insights)
			vehicles.GET("/:id/trend", h.Trend)
			vehicles.GET("/:id/monthly", h.Monthly)
			vehicles.GET("/:id/trips", h.ListTrips)
		}
	}

	return r, func() { close(stop) }
}

// Serve runs the API until ctx is cancelled
func Serve(ctx context.Context, h *Handler, cfg config.ServerConfig, addr string) error {
	router, stop := NewRouter(h, cfg)
	defer stop()

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Serving motofuel API on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
