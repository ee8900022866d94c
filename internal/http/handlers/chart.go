package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jyotishya/jyotishya-backend/internal/astro"
	"github.com/jyotishya/jyotishya-backend/internal/http/response"
	pkgerrors "github.com/jyotishya/jyotishya-backend/internal/pkg/errors"
	"github.com/jyotishya/jyotishya-backend/internal/services"
)

type ChartHandler struct {
	chartService services.ChartService
}

func NewChartHandler(chartService services.ChartService) *ChartHandler {
	return &ChartHandler{chartService: chartService}
}

type birthDetailsRequest struct {
	Year          int     `json:"year" binding:"required"`
	Month         int     `json:"month" binding:"required"`
	Day           int     `json:"day" binding:"required"`
	Hour          int     `json:"hour"`
	Minute        int     `json:"minute"`
	Second        int     `json:"second"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	TZOffsetHours float64 `json:"tz_offset_hours"`
	Ayanamsa      string  `json:"ayanamsa"`
}

func (r birthDetailsRequest) details() astro.BirthDetails {
	return astro.BirthDetails{
		Year:          r.Year,
		Month:         r.Month,
		Day:           r.Day,
		Hour:          r.Hour,
		Minute:        r.Minute,
		Second:        r.Second,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		TZOffsetHours: r.TZOffsetHours,
		Ayanamsa:      r.Ayanamsa,
	}
}

// POST /api/chart/compute
func (ch *ChartHandler) Compute(c *gin.Context) {
	var req birthDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondServiceError(c, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidArgument, err))
		return
	}

	chart, err := ch.chartService.Compute(c.Request.Context(), req.details())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"chart": chart})
}

// POST /api/chart/svg
func (ch *ChartHandler) ComputeSVG(c *gin.Context) {
	var req birthDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondServiceError(c, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidArgument, err))
		return
	}

	svg, err := ch.chartService.ComputeSVG(c.Request.Context(), req.details())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg))
}

type saveChartRequest struct {
	Label   string              `json:"label" binding:"required"`
	Details birthDetailsRequest `json:"details" binding:"required"`
	WithSVG bool                `json:"with_svg"`
}

// POST /api/user/kundli
func (ch *ChartHandler) Save(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	var req saveChartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondServiceError(c, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidArgument, err))
		return
	}

	saved, err := ch.chartService.Save(c.Request.Context(), userID, req.Label, req.Details.details(), req.WithSVG)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"chart": saved})
}

// GET /api/user/kundli?q=&provider=&sort=
func (ch *ChartHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	list, err := ch.chartService.List(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	list = services.FilterCharts(list, c.Query("q"), c.Query("provider"))
	list = services.SortCharts(list, c.Query("sort"))
	response.RespondOK(c, gin.H{"charts": services.PresentCharts(list)})
}

// GET /api/user/kundli/:id
func (ch *ChartHandler) Get(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	chartID, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	chart, err := ch.chartService.Get(c.Request.Context(), userID, chartID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"chart": chart})
}

// PATCH /api/user/kundli/:id
func (ch *ChartHandler) Rename(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	chartID, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	var req struct {
		Label string `json:"label" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondServiceError(c, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidArgument, err))
		return
	}

	chart, err := ch.chartService.Rename(c.Request.Context(), userID, chartID, req.Label)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"chart": chart})
}

// DELETE /api/user/kundli/:id
func (ch *ChartHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	chartID, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	if err := ch.chartService.Delete(c.Request.Context(), userID, chartID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
