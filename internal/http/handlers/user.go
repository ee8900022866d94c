package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/jyotishya/jyotishya-backend/internal/http/response"
	pkgerrors "github.com/jyotishya/jyotishya-backend/internal/pkg/errors"
	"github.com/jyotishya/jyotishya-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /api/user/me
func (uh *UserHandler) Me(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	user, err := uh.userService.Me(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": user})
}

// PATCH /api/user/profile
func (uh *UserHandler) UpdateProfile(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	var update services.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.RespondServiceError(c, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidArgument, err))
		return
	}

	user, err := uh.userService.UpdateProfile(c.Request.Context(), userID, update)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": user})
}

// PATCH /api/user/preferences
func (uh *UserHandler) UpdatePreferences(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		response.RespondServiceError(c, fmt.Errorf("%w: %v", pkgerrors.ErrInvalidArgument, err))
		return
	}
	if len(raw) > 0 && !json.Valid(raw) {
		response.RespondServiceError(c, fmt.Errorf("%w: preferences must be valid json", pkgerrors.ErrInvalidArgument))
		return
	}

	user, err := uh.userService.UpdatePreferences(c.Request.Context(), userID, datatypes.JSON(raw))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"user": user})
}
