package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wanderbook/wanderbook/internal/service"
)

type ExperienceHandler struct {
	catalogService service.CatalogService
}

func NewExperienceHandler(catalogService service.CatalogService) *ExperienceHandler {
	return &ExperienceHandler{catalogService: catalogService}
}

func (h *ExperienceHandler) GetAllExperiences(c *gin.Context) {
	experiences, err := h.catalogService.ListExperiences(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": experiences})
}

func (h *ExperienceHandler) GetExperience(c *gin.Context) {
	experience, err := h.catalogService.GetExperience(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": experience})
}
