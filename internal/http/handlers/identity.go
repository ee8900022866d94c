package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgerrors "github.com/jyotishya/jyotishya-backend/internal/pkg/errors"
	"github.com/jyotishya/jyotishya-backend/internal/requestdata"
)

// currentUserID reads the authenticated identity the auth middleware
// attached. Reaching this without one means the route is miswired.
func currentUserID(c *gin.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: no authenticated user", pkgerrors.ErrUnauthorized)
	}
	return rd.UserID, nil
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s must be a uuid", pkgerrors.ErrInvalidArgument, name)
	}
	return id, nil
}
