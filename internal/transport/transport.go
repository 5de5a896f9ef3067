package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanderbook/wanderbook/internal/entity"
	"github.com/wanderbook/wanderbook/internal/transport/middleware"
)

func InitRoutes(
	experienceHandler *ExperienceHandler,
	promoHandler *PromoHandler,
	pricingHandler *PricingHandler,
	bookingHandler *BookingHandler,
) *gin.Engine {

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(30))

	// API routes
	api := router.Group("/api/v1")
	{
		experiences := api.Group("/experiences")
		{
			experiences.GET("", experienceHandler.GetAllExperiences)
			experiences.GET("/:id", experienceHandler.GetExperience)
		}

		promo := api.Group("/promo")
		{
			promo.POST("/validate", promoHandler.ValidatePromo)
		}

		api.POST("/quote", pricingHandler.Quote)

		bookings := api.Group("/bookings")
		{
			bookings.POST("", bookingHandler.CreateBooking)
			bookings.POST("/checkout", bookingHandler.Checkout)
			bookings.GET("/:id", bookingHandler.GetBooking)
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router
}

// respondError maps domain errors onto HTTP statuses. Storage faults get
// a generic retryable message so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidInput), errors.Is(err, entity.ErrPromoNotValid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrExperienceNotFound),
		errors.Is(err, entity.ErrSlotNotFound),
		errors.Is(err, entity.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, gin.H{"error": "Slot is full or quantity exceeds capacity"})
	case errors.Is(err, entity.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable, please retry"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
