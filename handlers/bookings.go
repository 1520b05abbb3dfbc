package handlers

import (
	"net/http"

	"carelink/models"
	"carelink/services/directory"

	"github.com/gin-gonic/gin"
)

type bookingStatusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

// ListBookingsHandler lists the bookings the session takes part in.
func (hb *HandlerBundle) ListBookingsHandler(c *gin.Context) {
	bookings, err := hb.Directory.BookingsForSession()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CreateBookingHandler books a session with a premium provider.
func (hb *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	var in directory.BookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		bindError(c, err)
		return
	}
	booking, err := hb.Directory.CreateBooking(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// UpdateBookingStatusHandler sets a booking's status.
func (hb *HandlerBundle) UpdateBookingStatusHandler(c *gin.Context) {
	var req bookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	id := c.Param("id")
	state, err := hb.Directory.UpdateBookingStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	booking, _ := state.Booking(id)
	c.JSON(http.StatusOK, booking)
}

// CancelBookingHandler cancels a booking.
func (hb *HandlerBundle) CancelBookingHandler(c *gin.Context) {
	id := c.Param("id")
	state, err := hb.Directory.CancelBooking(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	booking, _ := state.Booking(id)
	c.JSON(http.StatusOK, booking)
}
