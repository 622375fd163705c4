// README: Ride handlers for publish, listings, and delete.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/http/middleware"
	"carpool/internal/modules/ride"
	"carpool/internal/types"
)

type RideHandler struct {
	rides *ride.Service
}

func NewRideHandler(rides *ride.Service) *RideHandler {
	return &RideHandler{rides: rides}
}

type publishRideReq struct {
	Vehicle     ride.Vehicle     `json:"vehicle"`
	From        string           `json:"from"`
	To          string           `json:"to"`
	Schedule    ride.Schedule    `json:"schedule"`
	Preferences ride.Preferences `json:"preferences"`
}

func (h *RideHandler) Publish(c *gin.Context) {
	var req publishRideReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	id, err := h.rides.Publish(c.Request.Context(), ride.PublishCommand{
		DriverName:  middleware.CallerName(c),
		DriverPhone: middleware.CallerPhone(c),
		Vehicle:     req.Vehicle,
		FromLabel:   req.From,
		ToLabel:     req.To,
		Schedule:    req.Schedule,
		Preferences: req.Preferences,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"ride_id": id})
}

// ListMine returns the caller's own published rides.
func (h *RideHandler) ListMine(c *gin.Context) {
	offers, err := h.rides.ListMine(c.Request.Context(), middleware.CallerPhone(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"rides": offers})
}

// ListOthers returns every ride published by someone else.
func (h *RideHandler) ListOthers(c *gin.Context) {
	offers, err := h.rides.ListOthers(c.Request.Context(), middleware.CallerPhone(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"rides": offers})
}

func (h *RideHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing ride id")
		return
	}
	o, err := h.rides.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if o.DriverPhone != middleware.CallerPhone(c) {
		writeError(c, http.StatusForbidden, "not your ride")
		return
	}
	if err := h.rides.Delete(c.Request.Context(), types.ID(id)); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"deleted": id})
}
