package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jyotishya/jyotishya-backend/internal/http/response"
	pkgerrors "github.com/jyotishya/jyotishya-backend/internal/pkg/errors"
	"github.com/jyotishya/jyotishya-backend/internal/services"
)

type HoroscopeHandler struct {
	horoscopeService services.HoroscopeService
}

func NewHoroscopeHandler(horoscopeService services.HoroscopeService) *HoroscopeHandler {
	return &HoroscopeHandler{horoscopeService: horoscopeService}
}

// GET /api/horoscope/daily?sign=leo
func (hh *HoroscopeHandler) GetDaily(c *gin.Context) {
	sign := strings.TrimSpace(c.Query("sign"))
	if sign == "" {
		response.RespondServiceError(c, fmt.Errorf("%w: sign query param required", pkgerrors.ErrInvalidArgument))
		return
	}
	opts, err := parseQueryOptions(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	horoscope, err := hh.horoscopeService.GetDaily(c.Request.Context(), sign, opts)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"horoscope": horoscope})
}

// GET /api/horoscope/daily/batch
func (hh *HoroscopeHandler) GetDailyBatch(c *gin.Context) {
	opts, err := parseQueryOptions(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	horoscopes, err := hh.horoscopeService.GetDailyAll(c.Request.Context(), opts)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"horoscopes": horoscopes})
}
