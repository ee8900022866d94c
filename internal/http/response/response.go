// Package response holds the JSON envelope every handler writes, plus the
// mapping from service errors to HTTP statuses.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/jyotishya/jyotishya-backend/internal/pkg/errors"
	"github.com/jyotishya/jyotishya-backend/internal/pkg/httpx"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondServiceError translates the service-layer sentinels. Upstream
// provider failures surface as 502 so clients can tell "we broke" apart
// from "the astrology API broke".
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pkgerrors.ErrInvalidArgument):
		RespondError(c, http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, pkgerrors.ErrForbidden):
		RespondError(c, http.StatusForbidden, "forbidden", err)
	case errors.Is(err, pkgerrors.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, pkgerrors.ErrConflict):
		RespondError(c, http.StatusConflict, "conflict", err)
	case errors.Is(err, pkgerrors.ErrProviderUnavailable), isUpstreamError(err):
		RespondError(c, http.StatusBadGateway, "provider_unavailable", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}

func isUpstreamError(err error) bool {
	var coder httpx.HTTPStatusCoder
	return errors.As(err, &coder)
}
