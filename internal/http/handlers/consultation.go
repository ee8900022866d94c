package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jyotishya/jyotishya-backend/internal/http/response"
	pkgerrors "github.com/jyotishya/jyotishya-backend/internal/pkg/errors"
	"github.com/jyotishya/jyotishya-backend/internal/services"
)

type ConsultationHandler struct {
	consultationService services.ConsultationService
}

func NewConsultationHandler(consultationService services.ConsultationService) *ConsultationHandler {
	return &ConsultationHandler{consultationService: consultationService}
}

type bookConsultationRequest struct {
	AstrologerID    string `json:"astrologer_id" binding:"required"`
	ScheduledAt     string `json:"scheduled_at" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	Notes           string `json:"notes"`
}

// POST /api/consultations
func (ch *ConsultationHandler) Book(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	var req bookConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondServiceError(c, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidArgument, err))
		return
	}
	astrologerID, err := uuid.Parse(req.AstrologerID)
	if err != nil {
		response.RespondServiceError(c, fmt.Errorf("%w: astrologer_id must be a uuid", pkgerrors.ErrInvalidArgument))
		return
	}
	at, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		response.RespondServiceError(c, fmt.Errorf("%w: scheduled_at must be RFC3339", pkgerrors.ErrInvalidArgument))
		return
	}

	consultation, err := ch.consultationService.Book(c.Request.Context(), userID, astrologerID, at, req.DurationMinutes, req.Notes)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"consultation": consultation})
}

// GET /api/consultations
func (ch *ConsultationHandler) List(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	consultations, err := ch.consultationService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"consultations": consultations})
}

// POST /api/consultations/:id/cancel
func (ch *ConsultationHandler) Cancel(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	consultationID, err := parseIDParam(c, "id")
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	consultation, err := ch.consultationService.Cancel(c.Request.Context(), userID, consultationID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"consultation": consultation})
}
