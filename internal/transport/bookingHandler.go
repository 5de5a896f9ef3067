package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanderbook/wanderbook/internal/service"
)

type BookingHandler struct {
	reservationService service.ReservationService
	bookingService     service.BookingQueryService
}

func NewBookingHandler(reservationService service.ReservationService, bookingService service.BookingQueryService) *BookingHandler {
	return &BookingHandler{
		reservationService: reservationService,
		bookingService:     bookingService,
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req service.ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.reservationService.Reserve(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": booking})
}

// Checkout reserves every cart line. The status reflects the aggregate
// outcome: 201 all lines booked, 200 a partial success, 409 nothing
// booked.
func (h *BookingHandler) Checkout(c *gin.Context) {
	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.reservationService.ReserveCart(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	switch {
	case result.Booked == 0:
		status = http.StatusConflict
	case result.Failed > 0:
		status = http.StatusOK
	}

	c.JSON(status, gin.H{"data": result})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	details, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": details})
}
