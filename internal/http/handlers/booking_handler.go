// README: Booking handlers for create, accept, reject, and both views.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/http/middleware"
	"carpool/internal/modules/booking"
	"carpool/internal/modules/ride"
	"carpool/internal/types"
)

type BookingHandler struct {
	bookings *booking.Service
}

func NewBookingHandler(bookings *booking.Service) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

type createBookingReq struct {
	Start         string           `json:"start"`
	End           string           `json:"end"`
	NumPassengers int              `json:"num_passengers"`
	Preferences   ride.Preferences `json:"preferences"`
	RideOfferID   string           `json:"ride_offer_id"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cmd := booking.CreateCommand{
		RiderName:     middleware.CallerName(c),
		RiderPhone:    middleware.CallerPhone(c),
		StartLabel:    req.Start,
		EndLabel:      req.End,
		NumPassengers: req.NumPassengers,
		Preferences:   req.Preferences,
	}
	if req.RideOfferID != "" {
		rideID := types.ID(req.RideOfferID)
		cmd.RideOfferID = &rideID
	}
	id, err := h.bookings.Create(c.Request.Context(), cmd)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"booking_id": id, "status": booking.StatusPending})
}

func (h *BookingHandler) Accept(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing booking id")
		return
	}
	if err := h.bookings.Accept(c.Request.Context(), types.ID(id)); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"booking_id": id, "status": booking.StatusAccepted})
}

func (h *BookingHandler) Reject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing booking id")
		return
	}
	if err := h.bookings.Reject(c.Request.Context(), types.ID(id)); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"booking_id": id, "status": booking.StatusRejected})
}

// RiderView lists the caller's own bookings with driver summaries.
func (h *BookingHandler) RiderView(c *gin.Context) {
	out, err := h.bookings.BookingsForRider(c.Request.Context(), middleware.CallerPhone(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"bookings": out})
}

// DriverRequests lists bookings aimed at the caller's rides.
func (h *BookingHandler) DriverRequests(c *gin.Context) {
	out, err := h.bookings.RequestsForDriver(c.Request.Context(), middleware.CallerPhone(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"requests": out})
}
