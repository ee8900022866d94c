package repos

import (
	"github.com/jyotishya/jyotishya-backend/internal/data/repos/booking"
	"github.com/jyotishya/jyotishya-backend/internal/data/repos/charts"
	"github.com/jyotishya/jyotishya-backend/internal/data/repos/user"
	"github.com/jyotishya/jyotishya-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type UserRepo = user.UserRepo
type SavedChartRepo = charts.SavedChartRepo
type AstrologerRepo = booking.AstrologerRepo
type ConsultationRepo = booking.ConsultationRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return user.NewUserRepo(db, baseLog)
}

func NewSavedChartRepo(db *gorm.DB, baseLog *logger.Logger) SavedChartRepo {
	return charts.NewSavedChartRepo(db, baseLog)
}

func NewAstrologerRepo(db *gorm.DB, baseLog *logger.Logger) AstrologerRepo {
	return booking.NewAstrologerRepo(db, baseLog)
}

func NewConsultationRepo(db *gorm.DB, baseLog *logger.Logger) ConsultationRepo {
	return booking.NewConsultationRepo(db, baseLog)
}
