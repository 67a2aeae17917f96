package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/balkashynov/motofuel/internal/backup"
	"github.com/balkashynov/motofuel/internal/db"
	"github.com/balkashynov/motofuel/internal/models"
	"github.com/balkashynov/motofuel/internal/stats"
)

// TripView is a trip with its stats once it has ended
type TripView struct {
	models.Trip
	Stats *stats.TripStats `json:"stats,omitempty"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   h.now().UTC(),
	})
}

func (h *Handler) ListVehicles(c *gin.Context) {
	vehicles, err := h.store.ListVehicles()
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to list vehicles", err.Error())
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// vehicleEntries resolves the :id parameter and loads that vehicle's entries.
// It writes the error response itself and returns false on failure.
func (h *Handler) vehicleEntries(c *gin.Context) (*models.Vehicle, []models.FuelEntry, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		sendError(c, http.StatusBadRequest, "Invalid vehicle id", c.Param("id"))
		return nil, nil, false
	}

	vehicle, err := h.store.GetVehicle(uint(id))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			sendError(c, http.StatusNotFound, "Vehicle not found", err.Error())
		} else {
			sendError(c, http.StatusInternalServerError, "Failed to load vehicle", err.Error())
		}
		return nil, nil, false
	}

	entries, err := h.store.ListEntries(&vehicle.ID)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to list entries", err.Error())
		return nil, nil, false
	}
	return vehicle, entries, true
}

func (h *Handler) ListEntries(c *gin.Context) {
	_, entries, ok := h.vehicleEntries(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *Handler) Stats(c *gin.Context) {
	_, entries, ok := h.vehicleEntries(c)
	if !ok {
		return
	}

	s, ok := stats.Compute(entries)
	if !ok {
		sendError(c, http.StatusNotFound, "No data", "Log a fill-up to see statistics")
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) Insights(c *gin.Context) {
	_, entries, ok := h.vehicleEntries(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, stats.InsightsIn(h.currency, entries, h.now()))
}

func (h *Handler) Trend(c *gin.Context) {
	_, entries, ok := h.vehicleEntries(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, stats.EfficiencyTrend(entries))
}

func (h *Handler) Monthly(c *gin.Context) {
	_, entries, ok := h.vehicleEntries(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, stats.MonthlySpend(entries))
}

func (h *Handler) ListTrips(c *gin.Context) {
	vehicle, entries, ok := h.vehicleEntries(c)
	if !ok {
		return
	}

	trips, err := h.store.ListTrips(&vehicle.ID)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to list trips", err.Error())
		return
	}

	views := make([]TripView, 0, len(trips))
	for _, t := range trips {
		view := TripView{Trip: t}
		if ts, ok := stats.ComputeTrip(t, entries); ok {
			view.Stats = &ts
		}
		views = append(views, view)
	}
	c.JSON(http.StatusOK, views)
}

// Backup downloads a full snapshot as a JSON attachment
func (h *Handler) Backup(c *gin.Context) {
	now := h.now()
	snap, err := backup.Export(h.store, h.prices, now)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Backup failed", err.Error())
		return
	}
	data, err := snap.Marshal()
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Backup failed", err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", backup.FileName(now)))
	c.Data(http.StatusOK, "application/json", data)
}
