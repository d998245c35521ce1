package handler

import "github.com/Giovannytrotta/Programa-SENTYA/internal/service"

// Handler is the aggregate entry point for all handlers.
type Handler struct {
	Workshop   *WorkshopHandler
	Session    *SessionHandler
	Enrollment *EnrollmentHandler
	Attendance *AttendanceHandler
	Export     *ExportHandler
	Reference  *ReferenceHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Workshop:   NewWorkshopHandler(svc.Workshop),
		Session:    NewSessionHandler(svc.Session),
		Enrollment: NewEnrollmentHandler(svc.Enrollment),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Export:     NewExportHandler(svc.Export),
		Reference:  NewReferenceHandler(svc.Reference),
	}
}
