package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.SystemUser
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.SystemUser)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.SystemUser, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock CenterRepository ──

type mockCenterRepo struct {
	centers map[string]*model.Center
}

func newMockCenterRepo() *mockCenterRepo {
	return &mockCenterRepo{centers: make(map[string]*model.Center)}
}

func (m *mockCenterRepo) GetByID(_ context.Context, id string) (*model.Center, error) {
	if c, ok := m.centers[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCenterRepo) List(_ context.Context) ([]model.Center, error) {
	var result []model.Center
	for _, c := range m.centers {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock ThematicAreaRepository ──

type mockThematicAreaRepo struct {
	areas map[string]*model.ThematicArea
}

func newMockThematicAreaRepo() *mockThematicAreaRepo {
	return &mockThematicAreaRepo{areas: make(map[string]*model.ThematicArea)}
}

func (m *mockThematicAreaRepo) GetByID(_ context.Context, id string) (*model.ThematicArea, error) {
	if a, ok := m.areas[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockThematicAreaRepo) List(_ context.Context) ([]model.ThematicArea, error) {
	var result []model.ThematicArea
	for _, a := range m.areas {
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock WorkshopRepository ──

type mockWorkshopRepo struct {
	workshops map[string]*model.Workshop
	seq       int
}

func newMockWorkshopRepo() *mockWorkshopRepo {
	return &mockWorkshopRepo{workshops: make(map[string]*model.Workshop)}
}

func (m *mockWorkshopRepo) Create(_ context.Context, workshop *model.Workshop) error {
	if workshop.WorkshopID == "" {
		m.seq++
		workshop.WorkshopID = fmt.Sprintf("ws-%d", m.seq)
	}
	m.workshops[workshop.WorkshopID] = workshop
	return nil
}

func (m *mockWorkshopRepo) GetByID(_ context.Context, id string) (*model.Workshop, error) {
	if w, ok := m.workshops[id]; ok {
		return w, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWorkshopRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Workshop, error) {
	return m.GetByID(ctx, id)
}

func (m *mockWorkshopRepo) List(_ context.Context, centerID, status string) ([]model.Workshop, error) {
	var result []model.Workshop
	for _, w := range m.workshops {
		if centerID != "" && w.CenterID != centerID {
			continue
		}
		if status != "" && string(w.Status) != status {
			continue
		}
		result = append(result, *w)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].WorkshopID < result[j].WorkshopID })
	return result, nil
}

func (m *mockWorkshopRepo) ListByProfessional(_ context.Context, professionalID string) ([]model.Workshop, error) {
	var result []model.Workshop
	for _, w := range m.workshops {
		if w.ProfessionalID == professionalID {
			result = append(result, *w)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].WorkshopID < result[j].WorkshopID })
	return result, nil
}

func (m *mockWorkshopRepo) Update(_ context.Context, workshop *model.Workshop) error {
	m.workshops[workshop.WorkshopID] = workshop
	return nil
}

func (m *mockWorkshopRepo) Delete(_ context.Context, id string) error {
	delete(m.workshops, id)
	return nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions map[string]*model.Session
	seq      int
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.Session)}
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.Session) error {
	if session.SessionID == "" {
		m.seq++
		session.SessionID = fmt.Sprintf("sess-%d", m.seq)
	}
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func sortSessionsAsc(sessions []model.Session) {
	sort.Slice(sessions, func(i, j int) bool {
		if !sessions[i].Date.Equal(sessions[j].Date) {
			return sessions[i].Date.Before(sessions[j].Date)
		}
		return sessions[i].StartTime < sessions[j].StartTime
	})
}

func (m *mockSessionRepo) ListByWorkshop(_ context.Context, workshopID string) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.WorkshopID == workshopID {
			result = append(result, *s)
		}
	}
	sortSessionsAsc(result)
	return result, nil
}

func (m *mockSessionRepo) ListByProfessional(_ context.Context, professionalID string) ([]model.Session, error) {
	var result []model.Session
	for _, s := range m.sessions {
		if s.ProfessionalID == professionalID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].StartTime > result[j].StartTime
	})
	return result, nil
}

func (m *mockSessionRepo) ListCompletedByWorkshops(_ context.Context, workshopIDs []string) ([]model.Session, error) {
	ids := make(map[string]bool, len(workshopIDs))
	for _, id := range workshopIDs {
		ids[id] = true
	}
	var result []model.Session
	for _, s := range m.sessions {
		if ids[s.WorkshopID] && s.Status == model.SessionCompleted {
			result = append(result, *s)
		}
	}
	sortSessionsAsc(result)
	return result, nil
}

func (m *mockSessionRepo) CountOverlapping(_ context.Context, workshopID string, date time.Time, startTime, endTime, excludeID string) (int64, error) {
	var count int64
	for _, s := range m.sessions {
		if s.WorkshopID != workshopID || !s.Date.Equal(date) || s.SessionID == excludeID {
			continue
		}
		if model.Overlaps(s.StartTime, s.EndTime, startTime, endTime) {
			count++
		}
	}
	return count, nil
}

func (m *mockSessionRepo) Update(_ context.Context, session *model.Session) error {
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	enrollments map[string]*model.Enrollment
	seq         int
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{enrollments: make(map[string]*model.Enrollment)}
}

func (m *mockEnrollmentRepo) Create(_ context.Context, enrollment *model.Enrollment) error {
	if enrollment.EnrollmentID == "" {
		m.seq++
		enrollment.EnrollmentID = fmt.Sprintf("enr-%d", m.seq)
	}
	m.enrollments[enrollment.EnrollmentID] = enrollment
	return nil
}

func (m *mockEnrollmentRepo) GetByID(_ context.Context, id string) (*model.Enrollment, error) {
	if e, ok := m.enrollments[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) GetByUserAndWorkshop(_ context.Context, userID, workshopID string) (*model.Enrollment, error) {
	for _, e := range m.enrollments {
		if e.UserID == userID && e.WorkshopID == workshopID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEnrollmentRepo) ListActive(_ context.Context, workshopID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.WorkshopID == workshopID && e.WaitlistPosition == nil {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].AssignmentDate.Before(result[j].AssignmentDate)
	})
	return result, nil
}

func (m *mockEnrollmentRepo) ListWaitlisted(_ context.Context, workshopID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.WorkshopID == workshopID && e.WaitlistPosition != nil {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return *result[i].WaitlistPosition < *result[j].WaitlistPosition
	})
	return result, nil
}

func (m *mockEnrollmentRepo) ListByUser(_ context.Context, userID string) ([]model.Enrollment, error) {
	var result []model.Enrollment
	for _, e := range m.enrollments {
		if e.UserID == userID {
			result = append(result, *e)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].AssignmentDate.Before(result[j].AssignmentDate)
	})
	return result, nil
}

func (m *mockEnrollmentRepo) CountActive(_ context.Context, workshopID string) (int64, error) {
	var count int64
	for _, e := range m.enrollments {
		if e.WorkshopID == workshopID && e.WaitlistPosition == nil {
			count++
		}
	}
	return count, nil
}

func (m *mockEnrollmentRepo) MaxWaitlistPosition(_ context.Context, workshopID string) (int, error) {
	max := 0
	for _, e := range m.enrollments {
		if e.WorkshopID == workshopID && e.WaitlistPosition != nil && *e.WaitlistPosition > max {
			max = *e.WaitlistPosition
		}
	}
	return max, nil
}

func (m *mockEnrollmentRepo) FirstWaitlisted(_ context.Context, workshopID string) (*model.Enrollment, error) {
	var first *model.Enrollment
	for _, e := range m.enrollments {
		if e.WorkshopID != workshopID || e.WaitlistPosition == nil {
			continue
		}
		if first == nil || *e.WaitlistPosition < *first.WaitlistPosition {
			first = e
		}
	}
	if first == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return first, nil
}

func (m *mockEnrollmentRepo) ShiftPositionsAfter(_ context.Context, workshopID string, position int) error {
	for _, e := range m.enrollments {
		if e.WorkshopID == workshopID && e.WaitlistPosition != nil && *e.WaitlistPosition > position {
			p := *e.WaitlistPosition - 1
			e.WaitlistPosition = &p
		}
	}
	return nil
}

func (m *mockEnrollmentRepo) Update(_ context.Context, enrollment *model.Enrollment) error {
	m.enrollments[enrollment.EnrollmentID] = enrollment
	return nil
}

func (m *mockEnrollmentRepo) Delete(_ context.Context, id string) error {
	delete(m.enrollments, id)
	return nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	attendances map[string]*model.Attendance
	seq         int
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{attendances: make(map[string]*model.Attendance)}
}

func (m *mockAttendanceRepo) CreateBatch(_ context.Context, attendances []model.Attendance) error {
	for i := range attendances {
		if attendances[i].AttendanceID == "" {
			m.seq++
			attendances[i].AttendanceID = fmt.Sprintf("att-%d", m.seq)
		}
		record := attendances[i]
		m.attendances[record.AttendanceID] = &record
	}
	return nil
}

func (m *mockAttendanceRepo) GetBySessionAndUser(_ context.Context, sessionID, userID string) (*model.Attendance, error) {
	for _, a := range m.attendances {
		if a.SessionID == sessionID && a.UserID == userID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) ListBySession(_ context.Context, sessionID string) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range m.attendances {
		if a.SessionID == sessionID {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AttendanceID < result[j].AttendanceID })
	return result, nil
}

func (m *mockAttendanceRepo) ListByUserAndSessions(_ context.Context, userID string, sessionIDs []string) ([]model.Attendance, error) {
	ids := make(map[string]bool, len(sessionIDs))
	for _, id := range sessionIDs {
		ids[id] = true
	}
	var result []model.Attendance
	for _, a := range m.attendances {
		if a.UserID == userID && ids[a.SessionID] {
			result = append(result, *a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AttendanceID < result[j].AttendanceID })
	return result, nil
}

func (m *mockAttendanceRepo) ExistsForSession(_ context.Context, sessionID string) (bool, error) {
	for _, a := range m.attendances {
		if a.SessionID == sessionID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockAttendanceRepo) Update(_ context.Context, attendance *model.Attendance) error {
	m.attendances[attendance.AttendanceID] = attendance
	return nil
}
