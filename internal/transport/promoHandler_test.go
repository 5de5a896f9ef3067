package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderbook/wanderbook/internal/entity"
)

type stubPromoService struct {
	promo *entity.PromoDescriptor
	err   error
}

func (s *stubPromoService) Validate(ctx context.Context, code string) (*entity.PromoDescriptor, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.promo, nil
}

func newPromoRouter(svc *stubPromoService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewPromoHandler(svc)
	router.POST("/promo/validate", handler.ValidatePromo)
	return router
}

func TestValidatePromo(t *testing.T) {
	t.Run("valid code", func(t *testing.T) {
		router := newPromoRouter(&stubPromoService{promo: &entity.PromoDescriptor{
			Code:   "SAVE10",
			Type:   entity.PromoTypePercent,
			Amount: decimal.NewFromInt(10),
		}})

		w := postJSON(t, router, "/promo/validate", map[string]string{"code": "SAVE10"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Valid bool `json:"valid"`
			Promo struct {
				Code string `json:"code"`
			} `json:"promo"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Valid)
		assert.Equal(t, "SAVE10", resp.Promo.Code)
	})

	t.Run("unknown code answers valid false", func(t *testing.T) {
		router := newPromoRouter(&stubPromoService{err: entity.ErrPromoNotValid})

		w := postJSON(t, router, "/promo/validate", map[string]string{"code": "NOPE"})
		require.Equal(t, http.StatusNotFound, w.Code)

		var resp struct {
			Valid bool `json:"valid"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Valid)
	})

	t.Run("missing code field", func(t *testing.T) {
		router := newPromoRouter(&stubPromoService{})

		w := postJSON(t, router, "/promo/validate", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
