package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/dto"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/model"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/repository"
)

// ── shared test helpers ──

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

func testDate(value string) time.Time {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return d
}

// seedUser registers a user in the mock identity table.
func seedUser(users *mockUserRepo, id, name string, role model.UserRole) *model.SystemUser {
	u := &model.SystemUser{
		UserID:   id,
		Name:     name,
		LastName: "Test",
		Email:    name + "@example.com",
		Role:     role,
	}
	users.users[id] = u
	return u
}

type workshopFixture struct {
	svc      WorkshopService
	users    *mockUserRepo
	centers  *mockCenterRepo
	areas    *mockThematicAreaRepo
	shops    *mockWorkshopRepo
	enrolls  *mockEnrollmentRepo
	sessions *mockSessionRepo
}

func setupTestWorkshopService() *workshopFixture {
	f := &workshopFixture{
		users:    newMockUserRepo(),
		centers:  newMockCenterRepo(),
		areas:    newMockThematicAreaRepo(),
		shops:    newMockWorkshopRepo(),
		enrolls:  newMockEnrollmentRepo(),
		sessions: newMockSessionRepo(),
	}

	f.areas.areas["area-1"] = &model.ThematicArea{ThematicAreaID: "area-1", Name: "Memory"}
	f.centers.centers["center-1"] = &model.Center{CenterID: "center-1", Name: "North Center"}
	seedUser(f.users, "prof-1", "Paula", model.RoleProfessional)
	seedUser(f.users, "prof-2", "Marco", model.RoleProfessional)
	seedUser(f.users, "coord-1", "Carla", model.RoleCoordinator)

	repo := &repository.Repository{
		User:         f.users,
		Center:       f.centers,
		ThematicArea: f.areas,
		Workshop:     f.shops,
		Session:      f.sessions,
		Enrollment:   f.enrolls,
		Attendance:   newMockAttendanceRepo(),
	}
	f.svc = NewWorkshopService(repo, zap.NewNop())
	return f
}

func validCreateWorkshopRequest() *dto.CreateWorkshopRequest {
	return &dto.CreateWorkshopRequest{
		Name:           "Memory Workshop",
		ThematicAreaID: "area-1",
		CenterID:       "center-1",
		ProfessionalID: "prof-1",
		MaxCapacity:    15,
		StartTime:      "10:00",
		EndTime:        "11:30",
		WeekDays:       "L,X,V",
		StartDate:      "2026-02-02",
		EndDate:        "2026-06-30",
	}
}

// ── Create ──

func TestWorkshopService_Create_Success(t *testing.T) {
	f := setupTestWorkshopService()

	resp, err := f.svc.Create(context.Background(), validCreateWorkshopRequest(), "coord-1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if resp.ID == "" {
		t.Error("expected a generated workshop id")
	}
	if resp.Status != string(model.WorkshopPending) {
		t.Errorf("expected default status pending, got %s", resp.Status)
	}
	if resp.CurrentCapacity != 0 {
		t.Errorf("expected zero current capacity, got %d", resp.CurrentCapacity)
	}
	if resp.AvailableSpots != 15 {
		t.Errorf("expected 15 available spots, got %d", resp.AvailableSpots)
	}
}

func TestWorkshopService_Create_InvalidCapacity(t *testing.T) {
	f := setupTestWorkshopService()

	req := validCreateWorkshopRequest()
	req.MaxCapacity = 0

	if _, err := f.svc.Create(context.Background(), req, "coord-1"); !errors.Is(err, ErrWorkshopInvalidCapacity) {
		t.Errorf("expected ErrWorkshopInvalidCapacity, got %v", err)
	}
}

func TestWorkshopService_Create_InvalidWeekDays(t *testing.T) {
	f := setupTestWorkshopService()

	req := validCreateWorkshopRequest()
	req.WeekDays = "L,Q"

	if _, err := f.svc.Create(context.Background(), req, "coord-1"); !errors.Is(err, ErrWorkshopInvalidWeekDays) {
		t.Errorf("expected ErrWorkshopInvalidWeekDays, got %v", err)
	}
}

func TestWorkshopService_Create_StartNotBeforeEnd(t *testing.T) {
	f := setupTestWorkshopService()

	req := validCreateWorkshopRequest()
	req.StartTime = "11:30"
	req.EndTime = "10:00"

	if _, err := f.svc.Create(context.Background(), req, "coord-1"); !errors.Is(err, ErrWorkshopInvalidTime) {
		t.Errorf("expected ErrWorkshopInvalidTime, got %v", err)
	}
}

func TestWorkshopService_Create_EndDateBeforeStartDate(t *testing.T) {
	f := setupTestWorkshopService()

	req := validCreateWorkshopRequest()
	req.EndDate = "2026-01-01"

	if _, err := f.svc.Create(context.Background(), req, "coord-1"); !errors.Is(err, ErrWorkshopInvalidDate) {
		t.Errorf("expected ErrWorkshopInvalidDate, got %v", err)
	}
}

func TestWorkshopService_Create_ProfessionalRoleRequired(t *testing.T) {
	f := setupTestWorkshopService()

	req := validCreateWorkshopRequest()
	req.ProfessionalID = "coord-1"

	if _, err := f.svc.Create(context.Background(), req, "coord-1"); !errors.Is(err, ErrUserNotProfessional) {
		t.Errorf("expected ErrUserNotProfessional, got %v", err)
	}
}

func TestWorkshopService_Create_DanglingReferences(t *testing.T) {
	f := setupTestWorkshopService()

	req := validCreateWorkshopRequest()
	req.ThematicAreaID = "missing"
	if _, err := f.svc.Create(context.Background(), req, "coord-1"); !errors.Is(err, ErrThematicAreaNotFound) {
		t.Errorf("expected ErrThematicAreaNotFound, got %v", err)
	}

	req = validCreateWorkshopRequest()
	req.CenterID = "missing"
	if _, err := f.svc.Create(context.Background(), req, "coord-1"); !errors.Is(err, ErrCenterNotFound) {
		t.Errorf("expected ErrCenterNotFound, got %v", err)
	}

	req = validCreateWorkshopRequest()
	req.ProfessionalID = "missing"
	if _, err := f.svc.Create(context.Background(), req, "coord-1"); !errors.Is(err, ErrProfessionalNotFound) {
		t.Errorf("expected ErrProfessionalNotFound, got %v", err)
	}
}

// ── Update ──

func TestWorkshopService_Update_Partial(t *testing.T) {
	f := setupTestWorkshopService()

	created, err := f.svc.Create(context.Background(), validCreateWorkshopRequest(), "coord-1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	resp, err := f.svc.Update(context.Background(), created.ID, &dto.UpdateWorkshopRequest{
		Name:   strPtr("Memory Workshop II"),
		Status: strPtr("active"),
	}, "coord-1")
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if resp.Name != "Memory Workshop II" {
		t.Errorf("expected updated name, got %s", resp.Name)
	}
	if resp.Status != string(model.WorkshopActive) {
		t.Errorf("expected status active, got %s", resp.Status)
	}
	// Untouched fields keep their values.
	if resp.MaxCapacity != 15 || resp.WeekDays != "L,X,V" {
		t.Errorf("unrelated fields changed: capacity=%d week_days=%s", resp.MaxCapacity, resp.WeekDays)
	}
}

func TestWorkshopService_Update_CapacityBelowEnrolled(t *testing.T) {
	f := setupTestWorkshopService()

	created, err := f.svc.Create(context.Background(), validCreateWorkshopRequest(), "coord-1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	f.shops.workshops[created.ID].CurrentCapacity = 10

	_, err = f.svc.Update(context.Background(), created.ID, &dto.UpdateWorkshopRequest{
		MaxCapacity: intPtr(5),
	}, "coord-1")
	if !errors.Is(err, ErrCapacityBelowEnrolled) {
		t.Errorf("expected ErrCapacityBelowEnrolled, got %v", err)
	}

	// Shrinking down to exactly the enrolled count is allowed.
	if _, err := f.svc.Update(context.Background(), created.ID, &dto.UpdateWorkshopRequest{
		MaxCapacity: intPtr(10),
	}, "coord-1"); err != nil {
		t.Errorf("expected shrink to enrolled count to succeed, got %v", err)
	}
}

func TestWorkshopService_Update_NotFound(t *testing.T) {
	f := setupTestWorkshopService()

	_, err := f.svc.Update(context.Background(), "missing", &dto.UpdateWorkshopRequest{}, "coord-1")
	if !errors.Is(err, ErrWorkshopNotFound) {
		t.Errorf("expected ErrWorkshopNotFound, got %v", err)
	}
}

// ── AssignProfessional ──

func TestWorkshopService_AssignProfessional(t *testing.T) {
	f := setupTestWorkshopService()

	created, err := f.svc.Create(context.Background(), validCreateWorkshopRequest(), "coord-1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	resp, err := f.svc.AssignProfessional(context.Background(), created.ID, "prof-2", "coord-1")
	if err != nil {
		t.Fatalf("AssignProfessional returned error: %v", err)
	}
	if resp.ProfessionalID != "prof-2" {
		t.Errorf("expected prof-2, got %s", resp.ProfessionalID)
	}

	if _, err := f.svc.AssignProfessional(context.Background(), created.ID, "coord-1", "coord-1"); !errors.Is(err, ErrUserNotProfessional) {
		t.Errorf("expected ErrUserNotProfessional, got %v", err)
	}
}

// ── List ──

func TestWorkshopService_List_Filters(t *testing.T) {
	f := setupTestWorkshopService()

	if _, err := f.svc.Create(context.Background(), validCreateWorkshopRequest(), "coord-1"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	req := validCreateWorkshopRequest()
	req.Name = "Active Workshop"
	req.Status = "active"
	if _, err := f.svc.Create(context.Background(), req, "coord-1"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	all, err := f.svc.List(context.Background(), "", "")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 workshops, got %d", len(all))
	}

	active, err := f.svc.List(context.Background(), "", "active")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(active) != 1 || active[0].Name != "Active Workshop" {
		t.Errorf("expected only the active workshop, got %+v", active)
	}

	if _, err := f.svc.List(context.Background(), "", "bogus"); !errors.Is(err, ErrWorkshopInvalidStatus) {
		t.Errorf("expected ErrWorkshopInvalidStatus, got %v", err)
	}
	if _, err := f.svc.List(context.Background(), "missing", ""); !errors.Is(err, ErrCenterNotFound) {
		t.Errorf("expected ErrCenterNotFound, got %v", err)
	}
}

func TestWorkshopService_ListAvailable(t *testing.T) {
	f := setupTestWorkshopService()

	open := validCreateWorkshopRequest()
	open.Name = "Open Workshop"
	open.Status = "active"
	openResp, err := f.svc.Create(context.Background(), open, "coord-1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	full := validCreateWorkshopRequest()
	full.Name = "Full Workshop"
	full.Status = "active"
	fullResp, err := f.svc.Create(context.Background(), full, "coord-1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	f.shops.workshops[fullResp.ID].CurrentCapacity = 15

	pending := validCreateWorkshopRequest()
	pending.Name = "Pending Workshop"
	if _, err := f.svc.Create(context.Background(), pending, "coord-1"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	available, err := f.svc.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("ListAvailable returned error: %v", err)
	}
	// Only active workshops with open seats qualify.
	if len(available) != 1 || available[0].ID != openResp.ID {
		t.Errorf("expected only the open active workshop, got %+v", available)
	}
	if available[0].AvailableSpots != 15 {
		t.Errorf("expected 15 available spots, got %d", available[0].AvailableSpots)
	}
}

func TestWorkshopService_ListMine_ByRole(t *testing.T) {
	f := setupTestWorkshopService()

	if _, err := f.svc.Create(context.Background(), validCreateWorkshopRequest(), "coord-1"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	req := validCreateWorkshopRequest()
	req.Name = "Other Workshop"
	req.ProfessionalID = "prof-2"
	if _, err := f.svc.Create(context.Background(), req, "coord-1"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	mine, err := f.svc.ListMine(context.Background(), "prof-1", model.RoleProfessional)
	if err != nil {
		t.Fatalf("ListMine returned error: %v", err)
	}
	if len(mine) != 1 || mine[0].ProfessionalID != "prof-1" {
		t.Errorf("expected prof-1's single workshop, got %+v", mine)
	}

	all, err := f.svc.ListMine(context.Background(), "coord-1", model.RoleCoordinator)
	if err != nil {
		t.Fatalf("ListMine returned error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected coordinator to see all 2 workshops, got %d", len(all))
	}
}

// ── Delete ──

func TestWorkshopService_Delete(t *testing.T) {
	f := setupTestWorkshopService()

	created, err := f.svc.Create(context.Background(), validCreateWorkshopRequest(), "coord-1")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	f.shops.workshops[created.ID].CurrentCapacity = 3
	if err := f.svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrWorkshopHasEnrollments) {
		t.Errorf("expected ErrWorkshopHasEnrollments, got %v", err)
	}

	f.shops.workshops[created.ID].CurrentCapacity = 0
	if err := f.svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := f.svc.GetByID(context.Background(), created.ID); !errors.Is(err, ErrWorkshopNotFound) {
		t.Errorf("expected workshop to be gone, got %v", err)
	}
}
