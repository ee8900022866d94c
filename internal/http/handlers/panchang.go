package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jyotishya/jyotishya-backend/internal/http/response"
	"github.com/jyotishya/jyotishya-backend/internal/services"
)

type PanchangHandler struct {
	panchangService services.PanchangService
}

func NewPanchangHandler(panchangService services.PanchangService) *PanchangHandler {
	return &PanchangHandler{panchangService: panchangService}
}

// GET /api/panchang/today
func (ph *PanchangHandler) GetToday(c *gin.Context) {
	opts, err := parseQueryOptions(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	panchang, err := ph.panchangService.Today(c.Request.Context(), opts)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"panchang": panchang})
}
