package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/dto"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/model"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/repository"
)

type sessionFixture struct {
	svc      SessionService
	users    *mockUserRepo
	shops    *mockWorkshopRepo
	sessions *mockSessionRepo
	attend   *mockAttendanceRepo
}

func setupTestSessionService() *sessionFixture {
	f := &sessionFixture{
		users:    newMockUserRepo(),
		shops:    newMockWorkshopRepo(),
		sessions: newMockSessionRepo(),
		attend:   newMockAttendanceRepo(),
	}

	seedUser(f.users, "prof-1", "Paula", model.RoleProfessional)
	seedUser(f.users, "coord-1", "Carla", model.RoleCoordinator)

	endDate := testDate("2026-06-30")
	f.shops.workshops["ws-1"] = &model.Workshop{
		WorkshopID:     "ws-1",
		Name:           "Memory Workshop",
		ProfessionalID: "prof-1",
		MaxCapacity:    15,
		StartTime:      "10:00",
		EndTime:        "11:30",
		WeekDays:       "L,X,V",
		StartDate:      testDate("2026-02-02"),
		EndDate:        &endDate,
		Status:         model.WorkshopActive,
	}

	repo := &repository.Repository{
		User:         f.users,
		Center:       newMockCenterRepo(),
		ThematicArea: newMockThematicAreaRepo(),
		Workshop:     f.shops,
		Session:      f.sessions,
		Enrollment:   newMockEnrollmentRepo(),
		Attendance:   f.attend,
	}
	f.svc = NewSessionService(repo, zap.NewNop())
	return f
}

func validCreateSessionRequest() *dto.CreateSessionRequest {
	return &dto.CreateSessionRequest{
		WorkshopID:     "ws-1",
		Date:           "2026-03-02",
		StartTime:      "10:00",
		EndTime:        "11:30",
		Topic:          "Short-term recall",
		ProfessionalID: "prof-1",
	}
}

// ── Create ──

func TestSessionService_Create_Success(t *testing.T) {
	f := setupTestSessionService()

	resp, err := f.svc.Create(context.Background(), validCreateSessionRequest(), "prof-1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if resp.ID == "" {
		t.Error("expected a generated session id")
	}
	if resp.Status != string(model.SessionScheduled) {
		t.Errorf("expected default status scheduled, got %s", resp.Status)
	}
}

func TestSessionService_Create_DateOutsideWindow(t *testing.T) {
	f := setupTestSessionService()

	req := validCreateSessionRequest()
	req.Date = "2026-01-15"
	if _, err := f.svc.Create(context.Background(), req, "prof-1"); !errors.Is(err, ErrSessionBeforeWorkshop) {
		t.Errorf("expected ErrSessionBeforeWorkshop, got %v", err)
	}

	req = validCreateSessionRequest()
	req.Date = "2026-07-01"
	if _, err := f.svc.Create(context.Background(), req, "prof-1"); !errors.Is(err, ErrSessionAfterWorkshop) {
		t.Errorf("expected ErrSessionAfterWorkshop, got %v", err)
	}
}

func TestSessionService_Create_OverlapRejected(t *testing.T) {
	f := setupTestSessionService()

	if _, err := f.svc.Create(context.Background(), validCreateSessionRequest(), "prof-1"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Same date, [11:00, 12:00) crosses the existing [10:00, 11:30).
	req := validCreateSessionRequest()
	req.StartTime = "11:00"
	req.EndTime = "12:00"
	if _, err := f.svc.Create(context.Background(), req, "prof-1"); !errors.Is(err, ErrSessionOverlap) {
		t.Errorf("expected ErrSessionOverlap, got %v", err)
	}
}

func TestSessionService_Create_TouchingEdgesAllowed(t *testing.T) {
	f := setupTestSessionService()

	if _, err := f.svc.Create(context.Background(), validCreateSessionRequest(), "prof-1"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// [11:30, 12:30) starts exactly where the first session ends.
	req := validCreateSessionRequest()
	req.StartTime = "11:30"
	req.EndTime = "12:30"
	if _, err := f.svc.Create(context.Background(), req, "prof-1"); err != nil {
		t.Errorf("expected back-to-back session to be allowed, got %v", err)
	}
}

func TestSessionService_Create_OtherDateNoConflict(t *testing.T) {
	f := setupTestSessionService()

	if _, err := f.svc.Create(context.Background(), validCreateSessionRequest(), "prof-1"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	req := validCreateSessionRequest()
	req.Date = "2026-03-04"
	if _, err := f.svc.Create(context.Background(), req, "prof-1"); err != nil {
		t.Errorf("expected same times on another date to succeed, got %v", err)
	}
}

func TestSessionService_Create_InvalidTimes(t *testing.T) {
	f := setupTestSessionService()

	req := validCreateSessionRequest()
	req.StartTime = "11:30"
	req.EndTime = "10:00"
	if _, err := f.svc.Create(context.Background(), req, "prof-1"); !errors.Is(err, ErrSessionInvalidTime) {
		t.Errorf("expected ErrSessionInvalidTime, got %v", err)
	}
}

// ── Update ──

func TestSessionService_Update_OverlapExcludesSelf(t *testing.T) {
	f := setupTestSessionService()

	created, err := f.svc.Create(context.Background(), validCreateSessionRequest(), "prof-1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Nudging the session's own times may not collide with itself.
	resp, err := f.svc.Update(context.Background(), created.ID, &dto.UpdateSessionRequest{
		StartTime: strPtr("10:15"),
	}, "prof-1")
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if resp.StartTime != "10:15" {
		t.Errorf("expected start time 10:15, got %s", resp.StartTime)
	}
}

func TestSessionService_Update_OverlapWithSibling(t *testing.T) {
	f := setupTestSessionService()

	if _, err := f.svc.Create(context.Background(), validCreateSessionRequest(), "prof-1"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	req := validCreateSessionRequest()
	req.StartTime = "12:00"
	req.EndTime = "13:00"
	second, err := f.svc.Create(context.Background(), req, "prof-1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	_, err = f.svc.Update(context.Background(), second.ID, &dto.UpdateSessionRequest{
		StartTime: strPtr("11:00"),
	}, "prof-1")
	if !errors.Is(err, ErrSessionOverlap) {
		t.Errorf("expected ErrSessionOverlap, got %v", err)
	}
}

// ── Complete / Cancel ──

func TestSessionService_Complete(t *testing.T) {
	f := setupTestSessionService()

	created, err := f.svc.Create(context.Background(), validCreateSessionRequest(), "prof-1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	resp, err := f.svc.Complete(context.Background(), created.ID, "prof-1")
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if resp.Status != string(model.SessionCompleted) {
		t.Errorf("expected status completed, got %s", resp.Status)
	}

	if _, err := f.svc.Complete(context.Background(), created.ID, "prof-1"); !errors.Is(err, ErrSessionAlreadyCompleted) {
		t.Errorf("expected ErrSessionAlreadyCompleted, got %v", err)
	}
}

func TestSessionService_Cancel(t *testing.T) {
	f := setupTestSessionService()

	req := validCreateSessionRequest()
	req.Observations = "bring materials"
	created, err := f.svc.Create(context.Background(), req, "prof-1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := f.svc.Cancel(context.Background(), created.ID, "", "prof-1"); !errors.Is(err, ErrCancelReasonRequired) {
		t.Errorf("expected ErrCancelReasonRequired, got %v", err)
	}

	resp, err := f.svc.Cancel(context.Background(), created.ID, "facility closed", "prof-1")
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if resp.Status != string(model.SessionCancelled) {
		t.Errorf("expected status cancelled, got %s", resp.Status)
	}
	if !strings.HasPrefix(resp.Observations, "Cancelled: facility closed") {
		t.Errorf("expected cancellation note prefix, got %q", resp.Observations)
	}
	if !strings.Contains(resp.Observations, "bring materials") {
		t.Errorf("expected prior observations preserved, got %q", resp.Observations)
	}
}

// ── Delete ──

func TestSessionService_Delete_WithAttendance(t *testing.T) {
	f := setupTestSessionService()

	created, err := f.svc.Create(context.Background(), validCreateSessionRequest(), "prof-1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	f.attend.attendances["att-1"] = &model.Attendance{
		AttendanceID: "att-1",
		SessionID:    created.ID,
		UserID:       "user-1",
		Present:      true,
	}

	if err := f.svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrSessionHasAttendance) {
		t.Errorf("expected ErrSessionHasAttendance, got %v", err)
	}

	delete(f.attend.attendances, "att-1")
	if err := f.svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := f.svc.GetByID(context.Background(), created.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected session to be gone, got %v", err)
	}
}

// ── ListMine ──

func TestSessionService_ListMine_ByRole(t *testing.T) {
	f := setupTestSessionService()

	seedUser(f.users, "prof-2", "Marco", model.RoleProfessional)
	f.shops.workshops["ws-2"] = &model.Workshop{
		WorkshopID:     "ws-2",
		Name:           "Mobility Workshop",
		ProfessionalID: "prof-2",
		MaxCapacity:    10,
		StartTime:      "16:00",
		EndTime:        "17:00",
		WeekDays:       "M,J",
		StartDate:      testDate("2026-02-02"),
		Status:         model.WorkshopActive,
	}

	if _, err := f.svc.Create(context.Background(), validCreateSessionRequest(), "prof-1"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	req := validCreateSessionRequest()
	req.WorkshopID = "ws-2"
	req.ProfessionalID = "prof-2"
	req.StartTime = "16:00"
	req.EndTime = "17:00"
	if _, err := f.svc.Create(context.Background(), req, "prof-2"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	mine, err := f.svc.ListMine(context.Background(), "prof-1", model.RoleProfessional)
	if err != nil {
		t.Fatalf("ListMine returned error: %v", err)
	}
	if len(mine) != 1 || mine[0].ProfessionalID != "prof-1" {
		t.Errorf("expected prof-1's single session, got %+v", mine)
	}

	all, err := f.svc.ListMine(context.Background(), "coord-1", model.RoleCoordinator)
	if err != nil {
		t.Fatalf("ListMine returned error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected coordinator to see all 2 sessions, got %d", len(all))
	}
}
