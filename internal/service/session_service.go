package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/dto"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/model"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/repository"
)

// ── Session module business errors ──

var (
	ErrSessionNotFound         = errors.New("session not found")
	ErrSessionInvalidDate      = errors.New("invalid session date, use YYYY-MM-DD")
	ErrSessionBeforeWorkshop   = errors.New("session date is before the workshop start date")
	ErrSessionAfterWorkshop    = errors.New("session date is after the workshop end date")
	ErrSessionInvalidTime      = errors.New("invalid session time, use HH:MM with start before end")
	ErrSessionInvalidStatus    = errors.New("invalid session status")
	ErrSessionOverlap          = errors.New("another session of this workshop overlaps that time range")
	ErrSessionAlreadyCompleted = errors.New("session is already completed")
	ErrSessionHasAttendance    = errors.New("session already has attendance records")
	ErrCancelReasonRequired    = errors.New("a cancellation reason is required")
)

// SessionService schedules and manages class occurrences.
type SessionService interface {
	Create(ctx context.Context, req *dto.CreateSessionRequest, actorID string) (*dto.SessionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SessionResponse, error)
	ListByWorkshop(ctx context.Context, workshopID string) ([]dto.SessionResponse, error)
	ListMine(ctx context.Context, actorID string, actorRole model.UserRole) ([]dto.SessionResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSessionRequest, actorID string) (*dto.SessionResponse, error)
	Delete(ctx context.Context, id string) error
	Complete(ctx context.Context, id, actorID string) (*dto.SessionResponse, error)
	Cancel(ctx context.Context, id, reason, actorID string) (*dto.SessionResponse, error)
}

type sessionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSessionService creates a SessionService instance.
func NewSessionService(repo *repository.Repository, logger *zap.Logger) SessionService {
	return &sessionService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *sessionService) Create(ctx context.Context, req *dto.CreateSessionRequest, actorID string) (*dto.SessionResponse, error) {
	workshop, err := s.repo.Workshop.GetByID(ctx, req.WorkshopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkshopNotFound
		}
		s.logger.Error("failed to load workshop", zap.String("id", req.WorkshopID), zap.Error(err))
		return nil, err
	}

	if err := s.checkProfessional(ctx, req.ProfessionalID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrSessionInvalidDate
	}
	if err := checkDateInWindow(date, workshop); err != nil {
		return nil, err
	}
	if err := validateSessionTimes(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	status := model.SessionScheduled
	if req.Status != "" {
		status = model.SessionStatus(req.Status)
		if !status.Valid() {
			return nil, ErrSessionInvalidStatus
		}
	}

	// Half-open interval check: touching edges do not conflict.
	overlapping, err := s.repo.Session.CountOverlapping(ctx, req.WorkshopID, date, req.StartTime, req.EndTime, "")
	if err != nil {
		s.logger.Error("failed to check session overlap", zap.Error(err))
		return nil, err
	}
	if overlapping > 0 {
		return nil, ErrSessionOverlap
	}

	session := &model.Session{
		WorkshopID:     req.WorkshopID,
		Date:           date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Topic:          req.Topic,
		Observations:   req.Observations,
		ProfessionalID: req.ProfessionalID,
		Status:         status,
	}
	session.CreatedBy = &actorID
	session.UpdatedBy = &actorID

	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.logger.Error("failed to create session", zap.Error(err))
		return nil, err
	}

	return toSessionResponse(session), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *sessionService) GetByID(ctx context.Context, id string) (*dto.SessionResponse, error) {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSessionResponse(session), nil
}

// ────────────────────── ListByWorkshop ──────────────────────

func (s *sessionService) ListByWorkshop(ctx context.Context, workshopID string) ([]dto.SessionResponse, error) {
	if _, err := s.repo.Workshop.GetByID(ctx, workshopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkshopNotFound
		}
		return nil, err
	}

	sessions, err := s.repo.Session.ListByWorkshop(ctx, workshopID)
	if err != nil {
		s.logger.Error("failed to list sessions", zap.String("workshop_id", workshopID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, *toSessionResponse(&sessions[i]))
	}
	return result, nil
}

// ListMine returns the professional's own sessions; coordinators and
// admins see all sessions of all workshops.
func (s *sessionService) ListMine(ctx context.Context, actorID string, actorRole model.UserRole) ([]dto.SessionResponse, error) {
	var (
		sessions []model.Session
		err      error
	)
	if actorRole == model.RoleProfessional {
		sessions, err = s.repo.Session.ListByProfessional(ctx, actorID)
	} else {
		workshops, werr := s.repo.Workshop.List(ctx, "", "")
		if werr != nil {
			return nil, werr
		}
		for i := range workshops {
			ws, serr := s.repo.Session.ListByWorkshop(ctx, workshops[i].WorkshopID)
			if serr != nil {
				return nil, serr
			}
			sessions = append(sessions, ws...)
		}
	}
	if err != nil {
		s.logger.Error("failed to list sessions", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		result = append(result, *toSessionResponse(&sessions[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *sessionService) Update(ctx context.Context, id string, req *dto.UpdateSessionRequest, actorID string) (*dto.SessionResponse, error) {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	workshop, err := s.repo.Workshop.GetByID(ctx, session.WorkshopID)
	if err != nil {
		s.logger.Error("failed to load workshop", zap.String("id", session.WorkshopID), zap.Error(err))
		return nil, err
	}

	timingChanged := false

	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, ErrSessionInvalidDate
		}
		if err := checkDateInWindow(date, workshop); err != nil {
			return nil, err
		}
		session.Date = date
		timingChanged = true
	}
	if req.StartTime != nil {
		session.StartTime = *req.StartTime
		timingChanged = true
	}
	if req.EndTime != nil {
		session.EndTime = *req.EndTime
		timingChanged = true
	}
	if err := validateSessionTimes(session.StartTime, session.EndTime); err != nil {
		return nil, err
	}

	// Re-run the sibling overlap check whenever date or times moved,
	// excluding the session itself.
	if timingChanged {
		overlapping, err := s.repo.Session.CountOverlapping(ctx, session.WorkshopID, session.Date, session.StartTime, session.EndTime, session.SessionID)
		if err != nil {
			s.logger.Error("failed to check session overlap", zap.Error(err))
			return nil, err
		}
		if overlapping > 0 {
			return nil, ErrSessionOverlap
		}
	}

	if req.ProfessionalID != nil {
		if err := s.checkProfessional(ctx, *req.ProfessionalID); err != nil {
			return nil, err
		}
		session.ProfessionalID = *req.ProfessionalID
	}
	if req.Topic != nil {
		session.Topic = *req.Topic
	}
	if req.Observations != nil {
		session.Observations = *req.Observations
	}
	if req.Status != nil {
		status := model.SessionStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrSessionInvalidStatus
		}
		session.Status = status
	}

	session.UpdatedBy = &actorID

	if err := s.repo.Session.Update(ctx, session); err != nil {
		s.logger.Error("failed to update session", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSessionResponse(session), nil
}

// ────────────────────── Delete ──────────────────────

func (s *sessionService) Delete(ctx context.Context, id string) error {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return err
	}

	hasAttendance, err := s.repo.Attendance.ExistsForSession(ctx, session.SessionID)
	if err != nil {
		s.logger.Error("failed to check session attendance", zap.String("id", id), zap.Error(err))
		return err
	}
	if hasAttendance {
		return ErrSessionHasAttendance
	}

	if err := s.repo.Session.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete session", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── Complete ──────────────────────

func (s *sessionService) Complete(ctx context.Context, id, actorID string) (*dto.SessionResponse, error) {
	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Status == model.SessionCompleted {
		return nil, ErrSessionAlreadyCompleted
	}

	session.Status = model.SessionCompleted
	session.UpdatedBy = &actorID

	if err := s.repo.Session.Update(ctx, session); err != nil {
		s.logger.Error("failed to complete session", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSessionResponse(session), nil
}

// ────────────────────── Cancel ──────────────────────

func (s *sessionService) Cancel(ctx context.Context, id, reason, actorID string) (*dto.SessionResponse, error) {
	if reason == "" {
		return nil, ErrCancelReasonRequired
	}

	session, err := s.getSession(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Status = model.SessionCancelled
	if session.Observations != "" {
		session.Observations = "Cancelled: " + reason + "\n" + session.Observations
	} else {
		session.Observations = "Cancelled: " + reason
	}
	session.UpdatedBy = &actorID

	if err := s.repo.Session.Update(ctx, session); err != nil {
		s.logger.Error("failed to cancel session", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSessionResponse(session), nil
}

// ── internal helpers ──

func (s *sessionService) getSession(ctx context.Context, id string) (*model.Session, error) {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("failed to load session", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return session, nil
}

func (s *sessionService) checkProfessional(ctx context.Context, professionalID string) error {
	professional, err := s.repo.User.GetByID(ctx, professionalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfessionalNotFound
		}
		return err
	}
	if professional.Role != model.RoleProfessional {
		return ErrUserNotProfessional
	}
	return nil
}

func checkDateInWindow(date time.Time, workshop *model.Workshop) error {
	if date.Before(workshop.StartDate) {
		return ErrSessionBeforeWorkshop
	}
	if workshop.EndDate != nil && date.After(*workshop.EndDate) {
		return ErrSessionAfterWorkshop
	}
	return nil
}

func validateSessionTimes(start, end string) error {
	if _, err := time.Parse("15:04", start); err != nil {
		return ErrSessionInvalidTime
	}
	if _, err := time.Parse("15:04", end); err != nil {
		return ErrSessionInvalidTime
	}
	if start >= end {
		return ErrSessionInvalidTime
	}
	return nil
}

func toSessionResponse(session *model.Session) *dto.SessionResponse {
	resp := &dto.SessionResponse{
		ID:             session.SessionID,
		WorkshopID:     session.WorkshopID,
		Date:           session.Date.Format("2006-01-02"),
		StartTime:      session.StartTime,
		EndTime:        session.EndTime,
		Topic:          session.Topic,
		Observations:   session.Observations,
		ProfessionalID: session.ProfessionalID,
		Status:         string(session.Status),
		CreatedAt:      session.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      session.UpdatedAt.Format(time.RFC3339),
	}
	if session.Workshop != nil {
		resp.WorkshopName = session.Workshop.Name
	}
	return resp
}
