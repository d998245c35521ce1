package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/dto"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/model"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/repository"
	"github.com/Giovannytrotta/Programa-SENTYA/pkg/redis"
)

// ── Attendance module business errors ──

var (
	ErrAttendanceNotFound      = errors.New("attendance record not found")
	ErrAttendanceAlreadyTaken  = errors.New("attendance has already been recorded for this session")
	ErrAttendanceOnCancelled   = errors.New("cannot take attendance for a cancelled session")
	ErrAttendanceUserNotFound  = errors.New("user not found")
	ErrUserNotEnrolled         = errors.New("user is not actively enrolled in this workshop")
	ErrDuplicateAttendanceUser = errors.New("duplicate user in attendance batch")

	lowAttendanceThreshold = 60.0
)

const (
	workshopReportCachePrefix = "report:workshop:"
	workshopReportCacheTTL    = 5 * time.Minute
)

// AttendanceService owns the attendance ledger: a one-shot batch
// recording per session, individual corrections afterwards, and the
// derived reports.
type AttendanceService interface {
	Take(ctx context.Context, sessionID string, req *dto.TakeAttendanceRequest, actorID string) (*dto.SessionAttendanceResponse, error)
	Update(ctx context.Context, sessionID string, req *dto.UpdateAttendanceRequest, actorID string) (*dto.SessionAttendanceResponse, error)
	SessionAttendance(ctx context.Context, sessionID string) (*dto.SessionAttendanceResponse, error)
	UserHistory(ctx context.Context, userID, workshopID string) (*dto.UserAttendanceHistory, error)
	WorkshopReport(ctx context.Context, workshopID string) (*dto.WorkshopReport, error)
	ProfessionalSummary(ctx context.Context, userID string) (*dto.ProfessionalSummary, error)
}

type attendanceService struct {
	repo   *repository.Repository
	cache  *redis.Client
	logger *zap.Logger
}

// NewAttendanceService creates an AttendanceService instance. cache may
// be nil; reports are then computed on every request.
func NewAttendanceService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, cache: cache, logger: logger}
}

// ────────────────────── Take ──────────────────────

// Take records the whole session's attendance in one batch. It is
// one-shot: once any record exists for the session, further batches are
// rejected and corrections must go through Update. Recording marks the
// session completed. The batch insert and the status flip commit as one
// transaction.
func (s *attendanceService) Take(ctx context.Context, sessionID string, req *dto.TakeAttendanceRequest, actorID string) (*dto.SessionAttendanceResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	resp, workshopID, err := s.takeLocked(ctx, txRepo, sessionID, req, actorID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("failed to commit attendance batch", zap.Error(err))
			return nil, err
		}
	}

	s.invalidateReport(ctx, workshopID)

	s.logger.Info("attendance recorded",
		zap.String("session_id", sessionID),
		zap.Int("records", len(resp.Attendances)),
	)

	return resp, nil
}

func (s *attendanceService) takeLocked(ctx context.Context, txRepo *repository.Repository, sessionID string, req *dto.TakeAttendanceRequest, actorID string) (*dto.SessionAttendanceResponse, string, error) {
	session, err := txRepo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrSessionNotFound
		}
		s.logger.Error("failed to load session", zap.String("id", sessionID), zap.Error(err))
		return nil, "", err
	}
	if session.Status == model.SessionCancelled {
		return nil, "", ErrAttendanceOnCancelled
	}

	exists, err := txRepo.Attendance.ExistsForSession(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrAttendanceAlreadyTaken
	}

	active, err := txRepo.Enrollment.ListActive(ctx, session.WorkshopID)
	if err != nil {
		return nil, "", err
	}
	enrolled := make(map[string]bool, len(active))
	for i := range active {
		enrolled[active[i].UserID] = true
	}

	// Validate the whole batch before the first write.
	now := time.Now().UTC()
	seen := make(map[string]bool, len(req.Attendances))
	records := make([]model.Attendance, 0, len(req.Attendances))
	for _, entry := range req.Attendances {
		if seen[entry.UserID] {
			return nil, "", ErrDuplicateAttendanceUser
		}
		seen[entry.UserID] = true

		if _, err := txRepo.User.GetByID(ctx, entry.UserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrAttendanceUserNotFound
			}
			return nil, "", err
		}
		if !enrolled[entry.UserID] {
			return nil, "", ErrUserNotEnrolled
		}

		records = append(records, model.Attendance{
			SessionID:    sessionID,
			UserID:       entry.UserID,
			Present:      *entry.Present,
			Observations: entry.Observations,
			RecordedBy:   actorID,
			RecordedAt:   now,
		})
	}

	if err := txRepo.Attendance.CreateBatch(ctx, records); err != nil {
		s.logger.Error("failed to create attendance batch", zap.String("session_id", sessionID), zap.Error(err))
		return nil, "", err
	}

	if session.Status != model.SessionCompleted {
		session.Status = model.SessionCompleted
		session.UpdatedBy = &actorID
		if err := txRepo.Session.Update(ctx, session); err != nil {
			return nil, "", err
		}
	}

	return s.buildSessionAttendance(ctx, sessionID, records), session.WorkshopID, nil
}

// ────────────────────── Update ──────────────────────

// Update corrects existing records of a session. Each entry must match
// an already-recorded (session, user) pair; nil fields keep their
// current value, and the recorder stamp moves to the correcting actor.
// The batch is all-or-nothing: every entry is resolved before the first
// write, and all writes share one transaction.
func (s *attendanceService) Update(ctx context.Context, sessionID string, req *dto.UpdateAttendanceRequest, actorID string) (*dto.SessionAttendanceResponse, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	resp, workshopID, err := s.updateLocked(ctx, txRepo, sessionID, req, actorID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("failed to commit attendance correction", zap.Error(err))
			return nil, err
		}
	}

	s.invalidateReport(ctx, workshopID)

	s.logger.Info("attendance corrected",
		zap.String("session_id", sessionID),
		zap.Int("records", len(resp.Attendances)),
	)

	return resp, nil
}

func (s *attendanceService) updateLocked(ctx context.Context, txRepo *repository.Repository, sessionID string, req *dto.UpdateAttendanceRequest, actorID string) (*dto.SessionAttendanceResponse, string, error) {
	session, err := txRepo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrSessionNotFound
		}
		s.logger.Error("failed to load session", zap.String("id", sessionID), zap.Error(err))
		return nil, "", err
	}

	// Resolve every entry first so a bad one rejects the whole batch
	// before anything is written.
	targets := make([]*model.Attendance, 0, len(req.Attendances))
	for _, entry := range req.Attendances {
		attendance, err := txRepo.Attendance.GetBySessionAndUser(ctx, sessionID, entry.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrAttendanceNotFound
			}
			return nil, "", err
		}
		targets = append(targets, attendance)
	}

	now := time.Now().UTC()
	updated := make([]model.Attendance, 0, len(targets))
	for i, entry := range req.Attendances {
		attendance := targets[i]
		if entry.Present != nil {
			attendance.Present = *entry.Present
		}
		if entry.Observations != nil {
			attendance.Observations = entry.Observations
		}
		attendance.RecordedBy = actorID
		attendance.RecordedAt = now

		if err := txRepo.Attendance.Update(ctx, attendance); err != nil {
			return nil, "", err
		}
		updated = append(updated, *attendance)
	}

	return s.buildSessionAttendance(ctx, sessionID, updated), session.WorkshopID, nil
}

// ────────────────────── SessionAttendance ──────────────────────

func (s *attendanceService) SessionAttendance(ctx context.Context, sessionID string) (*dto.SessionAttendanceResponse, error) {
	if _, err := s.getSessionForAttendance(ctx, sessionID); err != nil {
		return nil, err
	}

	records, err := s.repo.Attendance.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildSessionAttendance(ctx, sessionID, records), nil
}

// ────────────────────── UserHistory ──────────────────────

// UserHistory reports one user's attendance across a workshop. The rate
// counts only sessions where the user's attendance was recorded.
func (s *attendanceService) UserHistory(ctx context.Context, userID, workshopID string) (*dto.UserAttendanceHistory, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceUserNotFound
		}
		return nil, err
	}
	workshop, err := s.repo.Workshop.GetByID(ctx, workshopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkshopNotFound
		}
		return nil, err
	}

	sessions, err := s.repo.Session.ListByWorkshop(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	sessionIDs := make([]string, len(sessions))
	for i := range sessions {
		sessionIDs[i] = sessions[i].SessionID
	}

	records, err := s.repo.Attendance.ListByUserAndSessions(ctx, userID, sessionIDs)
	if err != nil {
		return nil, err
	}

	present := 0
	for i := range records {
		if records[i].Present {
			present++
		}
	}

	resp := &dto.UserAttendanceHistory{
		UserID:           user.UserID,
		UserName:         user.FullName(),
		WorkshopID:       workshop.WorkshopID,
		WorkshopName:     workshop.Name,
		TotalSessions:    len(sessions),
		SessionsRecorded: len(records),
		Stats:            computeStats(len(records), present),
		Attendances:      s.toAttendanceResponses(ctx, records),
	}
	return resp, nil
}

// ────────────────────── WorkshopReport ──────────────────────

// WorkshopReport ranks every enrolled user by attendance rate, with a
// top-5 and a below-60% bucket. Served from cache when available;
// every attendance write invalidates the workshop's entry.
func (s *attendanceService) WorkshopReport(ctx context.Context, workshopID string) (*dto.WorkshopReport, error) {
	if s.cache != nil {
		var cached dto.WorkshopReport
		err := s.cache.GetJSON(ctx, workshopReportCachePrefix+workshopID, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.Warn("report cache read failed", zap.String("workshop_id", workshopID), zap.Error(err))
		}
	}

	workshop, err := s.repo.Workshop.GetByID(ctx, workshopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkshopNotFound
		}
		return nil, err
	}

	sessions, err := s.repo.Session.ListByWorkshop(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	sessionIDs := make([]string, len(sessions))
	for i := range sessions {
		sessionIDs[i] = sessions[i].SessionID
	}

	active, err := s.repo.Enrollment.ListActive(ctx, workshopID)
	if err != nil {
		return nil, err
	}

	students := make([]dto.UserReportRow, 0, len(active))
	for i := range active {
		userID := active[i].UserID
		records, err := s.repo.Attendance.ListByUserAndSessions(ctx, userID, sessionIDs)
		if err != nil {
			return nil, err
		}
		present := 0
		for j := range records {
			if records[j].Present {
				present++
			}
		}
		row := dto.UserReportRow{
			UserID:        userID,
			TotalSessions: len(records),
			Present:       present,
			Absent:        len(records) - present,
		}
		if len(records) > 0 {
			row.AttendanceRate = round2(float64(present) / float64(len(records)) * 100)
		}
		if user, err := s.repo.User.GetByID(ctx, userID); err == nil {
			row.UserName = user.FullName()
		}
		students = append(students, row)
	}

	ranked := make([]dto.UserReportRow, len(students))
	copy(ranked, students)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AttendanceRate > ranked[j].AttendanceRate
	})

	top := ranked
	if len(top) > 5 {
		top = top[:5]
	}

	low := make([]dto.UserReportRow, 0)
	for _, row := range ranked {
		if row.TotalSessions > 0 && row.AttendanceRate < lowAttendanceThreshold {
			low = append(low, row)
		}
	}

	report := &dto.WorkshopReport{
		WorkshopID:    workshop.WorkshopID,
		WorkshopName:  workshop.Name,
		TotalSessions: len(sessions),
		TotalStudents: len(students),
		Students:      students,
		TopStudents:   top,
		LowAttendance: low,
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, workshopReportCachePrefix+workshopID, report, workshopReportCacheTTL); err != nil {
			s.logger.Warn("report cache write failed", zap.String("workshop_id", workshopID), zap.Error(err))
		}
	}

	return report, nil
}

// ────────────────────── ProfessionalSummary ──────────────────────

// ProfessionalSummary aggregates all completed sessions with recorded
// attendance across the caller's workshops. Professionals see their own
// workshops; coordinators and admins see all of them.
func (s *attendanceService) ProfessionalSummary(ctx context.Context, userID string) (*dto.ProfessionalSummary, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttendanceUserNotFound
		}
		return nil, err
	}

	var workshops []model.Workshop
	if user.Role == model.RoleProfessional {
		workshops, err = s.repo.Workshop.ListByProfessional(ctx, userID)
	} else {
		workshops, err = s.repo.Workshop.List(ctx, "", "")
	}
	if err != nil {
		return nil, err
	}

	summary := &dto.ProfessionalSummary{
		Workshops: make([]dto.WorkshopRef, 0, len(workshops)),
		Sessions:  []dto.SessionSummaryRow{},
	}
	names := make(map[string]string, len(workshops))
	workshopIDs := make([]string, 0, len(workshops))
	for i := range workshops {
		summary.Workshops = append(summary.Workshops, dto.WorkshopRef{
			ID:   workshops[i].WorkshopID,
			Name: workshops[i].Name,
		})
		names[workshops[i].WorkshopID] = workshops[i].Name
		workshopIDs = append(workshopIDs, workshops[i].WorkshopID)
	}
	summary.Stats.TotalWorkshops = len(workshops)

	completed, err := s.repo.Session.ListCompletedByWorkshops(ctx, workshopIDs)
	if err != nil {
		return nil, err
	}

	totalPresent, totalRecords := 0, 0
	for i := range completed {
		session := &completed[i]
		records, err := s.repo.Attendance.ListBySession(ctx, session.SessionID)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			continue
		}

		present := 0
		for j := range records {
			if records[j].Present {
				present++
			}
		}
		totalPresent += present
		totalRecords += len(records)

		summary.Sessions = append(summary.Sessions, dto.SessionSummaryRow{
			SessionID:      session.SessionID,
			WorkshopID:     session.WorkshopID,
			WorkshopName:   names[session.WorkshopID],
			Date:           session.Date.Format("2006-01-02"),
			StartTime:      session.StartTime,
			EndTime:        session.EndTime,
			Topic:          session.Topic,
			TotalStudents:  len(records),
			Present:        present,
			Absent:         len(records) - present,
			AttendanceRate: round2(float64(present) / float64(len(records)) * 100),
			RecordedAt:     records[0].RecordedAt.Format(time.RFC3339),
		})
	}

	summary.Stats.TotalSessions = len(summary.Sessions)
	summary.Stats.TotalAttendances = totalRecords
	summary.Stats.TotalPresent = totalPresent
	summary.Stats.TotalAbsent = totalRecords - totalPresent
	if totalRecords > 0 {
		summary.Stats.AverageAttendanceRate = round2(float64(totalPresent) / float64(totalRecords) * 100)
	}

	return summary, nil
}

// ── internal helpers ──

func (s *attendanceService) getSessionForAttendance(ctx context.Context, sessionID string) (*model.Session, error) {
	session, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("failed to load session", zap.String("id", sessionID), zap.Error(err))
		return nil, err
	}
	return session, nil
}

func (s *attendanceService) invalidateReport(ctx context.Context, workshopID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, workshopReportCachePrefix+workshopID); err != nil {
		s.logger.Warn("report cache invalidation failed",
			zap.String("workshop_id", workshopID), zap.Error(err))
	}
}

func (s *attendanceService) buildSessionAttendance(ctx context.Context, sessionID string, records []model.Attendance) *dto.SessionAttendanceResponse {
	present := 0
	for i := range records {
		if records[i].Present {
			present++
		}
	}
	return &dto.SessionAttendanceResponse{
		SessionID:   sessionID,
		Stats:       computeStats(len(records), present),
		Attendances: s.toAttendanceResponses(ctx, records),
	}
}

func (s *attendanceService) toAttendanceResponses(ctx context.Context, records []model.Attendance) []dto.AttendanceResponse {
	result := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		resp := dto.AttendanceResponse{
			ID:         records[i].AttendanceID,
			SessionID:  records[i].SessionID,
			UserID:     records[i].UserID,
			Present:    records[i].Present,
			RecordedBy: records[i].RecordedBy,
			RecordedAt: records[i].RecordedAt.Format(time.RFC3339),
		}
		if records[i].Observations != nil {
			resp.Observations = *records[i].Observations
		}
		if user, err := s.repo.User.GetByID(ctx, records[i].UserID); err == nil {
			resp.UserName = user.FullName()
		}
		result = append(result, resp)
	}
	return result
}

func computeStats(total, present int) dto.AttendanceStats {
	stats := dto.AttendanceStats{
		Total:   total,
		Present: present,
		Absent:  total - present,
	}
	if total > 0 {
		stats.AttendanceRate = round2(float64(present) / float64(total) * 100)
	}
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
