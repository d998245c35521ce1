package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/model"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/repository"
)

type exportFixture struct {
	svc      ExportService
	shops    *mockWorkshopRepo
	sessions *mockSessionRepo
}

func setupTestExportService() *exportFixture {
	f := &exportFixture{
		shops:    newMockWorkshopRepo(),
		sessions: newMockSessionRepo(),
	}

	users := newMockUserRepo()
	seedUser(users, "client-1", "Ana", model.RoleClient)

	f.shops.workshops["ws-1"] = &model.Workshop{
		WorkshopID:  "ws-1",
		Name:        "Memory Workshop",
		MaxCapacity: 15,
		StartTime:   "10:00",
		EndTime:     "11:30",
		WeekDays:    "L,X",
		StartDate:   testDate("2026-02-02"),
		Location:    "Room 3",
		Status:      model.WorkshopActive,
	}

	enrolls := newMockEnrollmentRepo()
	enrolls.enrollments["enr-1"] = &model.Enrollment{
		EnrollmentID:   "enr-1",
		UserID:         "client-1",
		WorkshopID:     "ws-1",
		AssignedBy:     "coord-1",
		AssignmentDate: time.Now().UTC(),
	}

	repo := &repository.Repository{
		User:         users,
		Center:       newMockCenterRepo(),
		ThematicArea: newMockThematicAreaRepo(),
		Workshop:     f.shops,
		Session:      f.sessions,
		Enrollment:   enrolls,
		Attendance:   newMockAttendanceRepo(),
	}
	attendance := NewAttendanceService(repo, nil, zap.NewNop())
	f.svc = NewExportService(repo, attendance, zap.NewNop())
	return f
}

func (f *exportFixture) addSession(id, date string, status model.SessionStatus) {
	f.sessions.sessions[id] = &model.Session{
		SessionID:      id,
		WorkshopID:     "ws-1",
		Date:           testDate(date),
		StartTime:      "10:00",
		EndTime:        "11:30",
		Topic:          "Recall exercises",
		ProfessionalID: "prof-1",
		Status:         status,
	}
}

func TestExportService_WorkshopReportXLSX(t *testing.T) {
	f := setupTestExportService()
	f.addSession("sess-1", "2026-03-02", model.SessionCompleted)

	buf, filename, err := f.svc.WorkshopReportXLSX(context.Background(), "ws-1")
	if err != nil {
		t.Fatalf("WorkshopReportXLSX returned error: %v", err)
	}
	if filename != "attendance_memory_workshop.xlsx" {
		t.Errorf("unexpected filename %q", filename)
	}
	if buf.Len() == 0 {
		t.Error("expected a non-empty workbook")
	}
}

func TestExportService_WorkshopReportXLSX_WorkshopNotFound(t *testing.T) {
	f := setupTestExportService()

	if _, _, err := f.svc.WorkshopReportXLSX(context.Background(), "missing"); !errors.Is(err, ErrWorkshopNotFound) {
		t.Errorf("expected ErrWorkshopNotFound, got %v", err)
	}
}

func TestExportService_WorkshopCalendarICS(t *testing.T) {
	f := setupTestExportService()
	f.addSession("sess-1", "2026-03-02", model.SessionScheduled)
	f.addSession("sess-2", "2026-03-04", model.SessionCancelled)

	buf, filename, err := f.svc.WorkshopCalendarICS(context.Background(), "ws-1")
	if err != nil {
		t.Fatalf("WorkshopCalendarICS returned error: %v", err)
	}
	if filename != "sessions_memory_workshop.ics" {
		t.Errorf("unexpected filename %q", filename)
	}

	body := buf.String()
	if !strings.Contains(body, "BEGIN:VCALENDAR") {
		t.Error("expected an iCalendar document")
	}
	if !strings.Contains(body, "sess-1@sentya") {
		t.Error("expected the scheduled session in the feed")
	}
	// Cancelled sessions are left out.
	if strings.Contains(body, "sess-2@sentya") {
		t.Error("cancelled session must not appear in the feed")
	}
	if !strings.Contains(body, "Memory Workshop: Recall exercises") {
		t.Error("expected summary with workshop name and topic")
	}
}

func TestExportService_WorkshopCalendarICS_NoSessions(t *testing.T) {
	f := setupTestExportService()
	f.addSession("sess-1", "2026-03-02", model.SessionCancelled)

	if _, _, err := f.svc.WorkshopCalendarICS(context.Background(), "ws-1"); !errors.Is(err, ErrExportNoSessions) {
		t.Errorf("expected ErrExportNoSessions when only cancelled sessions exist, got %v", err)
	}
}
