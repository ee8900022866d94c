// Package domain re-exports the persistent model types from their
// subpackages so callers can import one package and qualify everything as
// types.X.
package domain

import (
	"github.com/jyotishya/jyotishya-backend/internal/domain/booking"
	"github.com/jyotishya/jyotishya-backend/internal/domain/charts"
	"github.com/jyotishya/jyotishya-backend/internal/domain/user"
)

type User = user.User
type SavedChart = charts.SavedChart
type Astrologer = booking.Astrologer
type Consultation = booking.Consultation

const (
	ConsultationBooked    = booking.ConsultationBooked
	ConsultationCancelled = booking.ConsultationCancelled
	ConsultationCompleted = booking.ConsultationCompleted
)
