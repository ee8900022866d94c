package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jyotishya/jyotishya-backend/internal/http/response"
	pkgerrors "github.com/jyotishya/jyotishya-backend/internal/pkg/errors"
	"github.com/jyotishya/jyotishya-backend/internal/services"
)

type AstrologerHandler struct {
	astrologerService services.AstrologerService
}

func NewAstrologerHandler(astrologerService services.AstrologerService) *AstrologerHandler {
	return &AstrologerHandler{astrologerService: astrologerService}
}

// GET /api/astrologers?specialty=&language=&maxPrice=&sort=
func (ah *AstrologerHandler) List(c *gin.Context) {
	filter := services.AstrologerFilter{
		Specialty: c.Query("specialty"),
		Language:  c.Query("language"),
	}
	if raw := strings.TrimSpace(c.Query("maxPrice")); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 {
			response.RespondServiceError(c, fmt.Errorf("%w: invalid maxPrice", pkgerrors.ErrInvalidArgument))
			return
		}
		filter.MaxRate = f
	}

	astrologers, err := ah.astrologerService.List(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	astrologers = services.FilterAstrologers(astrologers, filter)
	astrologers = services.SortAstrologers(astrologers, c.Query("sort"))
	response.RespondOK(c, gin.H{"astrologers": astrologers})
}

// GET /api/astrologers/:id
func (ah *AstrologerHandler) Get(c *gin.Context) {
	astrologerID, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	astrologer, err := ah.astrologerService.Get(c.Request.Context(), astrologerID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"astrologer": astrologer})
}
