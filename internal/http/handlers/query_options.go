package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jyotishya/jyotishya-backend/internal/astro"
	pkgerrors "github.com/jyotishya/jyotishya-backend/internal/pkg/errors"
)

// parseQueryOptions reads the shared date-scope query params:
// ?date=2006-01-02&tz=Asia/Kolkata&lat=28.61&lon=77.20&locale=en
func parseQueryOptions(c *gin.Context) (astro.QueryOptions, error) {
	opts := astro.QueryOptions{
		Timezone: strings.TrimSpace(c.Query("tz")),
		Locale:   strings.TrimSpace(c.Query("locale")),
	}

	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return opts, fmt.Errorf("%w: date must be YYYY-MM-DD", pkgerrors.ErrInvalidArgument)
		}
		opts.Date = &d
	}
	if raw := strings.TrimSpace(c.Query("lat")); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < -90 || f > 90 {
			return opts, fmt.Errorf("%w: invalid lat", pkgerrors.ErrInvalidArgument)
		}
		opts.Latitude = f
	}
	if raw := strings.TrimSpace(c.Query("lon")); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < -180 || f > 180 {
			return opts, fmt.Errorf("%w: invalid lon", pkgerrors.ErrInvalidArgument)
		}
		opts.Longitude = f
	}
	return opts, nil
}
