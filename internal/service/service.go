package service

import (
	"go.uber.org/zap"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/repository"
	"github.com/Giovannytrotta/Programa-SENTYA/pkg/redis"
)

// Service is the aggregate entry point for all services.
type Service struct {
	Workshop   WorkshopService
	Session    SessionService
	Enrollment EnrollmentService
	Attendance AttendanceService
	Export     ExportService
	Reference  ReferenceService
}

// NewService creates the Service aggregate. cache may be nil; dependent
// services degrade to uncached behavior.
func NewService(
	repo *repository.Repository,
	cache *redis.Client,
	logger *zap.Logger,
) *Service {
	attendance := NewAttendanceService(repo, cache, logger)
	return &Service{
		Workshop:   NewWorkshopService(repo, logger),
		Session:    NewSessionService(repo, logger),
		Enrollment: NewEnrollmentService(repo, logger),
		Attendance: attendance,
		Export:     NewExportService(repo, attendance, logger),
		Reference:  NewReferenceService(repo, logger),
	}
}
