package transport

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanderbook/wanderbook/internal/entity"
	"github.com/wanderbook/wanderbook/internal/service"
)

type PromoHandler struct {
	promoService service.PromoService
}

func NewPromoHandler(promoService service.PromoService) *PromoHandler {
	return &PromoHandler{promoService: promoService}
}

type validatePromoRequest struct {
	Code string `json:"code" binding:"required"`
}

// ValidatePromo reports whether a code is usable. An unknown or inactive
// code answers 404 with valid=false rather than an error envelope, so
// clients can branch on the body alone.
func (h *PromoHandler) ValidatePromo(c *gin.Context) {
	var req validatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	promo, err := h.promoService.Validate(c.Request.Context(), req.Code)
	if err != nil {
		if errors.Is(err, entity.ErrPromoNotValid) {
			c.JSON(http.StatusNotFound, gin.H{"valid": false})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true, "promo": promo})
}
