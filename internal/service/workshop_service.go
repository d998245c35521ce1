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

// ── Workshop module business errors ──

var (
	ErrWorkshopNotFound        = errors.New("workshop not found")
	ErrThematicAreaNotFound    = errors.New("thematic area not found")
	ErrCenterNotFound          = errors.New("service center not found")
	ErrProfessionalNotFound    = errors.New("professional not found")
	ErrUserNotProfessional     = errors.New("selected user does not hold the professional role")
	ErrWorkshopInvalidCapacity = errors.New("max capacity must be at least 1")
	ErrWorkshopInvalidWeekDays = errors.New("invalid week day code, use L,M,X,J,V,S,D")
	ErrWorkshopInvalidTime     = errors.New("invalid time, use HH:MM with start before end")
	ErrWorkshopInvalidDate     = errors.New("invalid date, use YYYY-MM-DD with start on or before end")
	ErrWorkshopInvalidStatus   = errors.New("invalid workshop status")
	ErrCapacityBelowEnrolled   = errors.New("max capacity cannot drop below current enrollment")
	ErrWorkshopHasEnrollments  = errors.New("workshop still has enrolled users")
)

// WorkshopService is the workshop registry.
type WorkshopService interface {
	Create(ctx context.Context, req *dto.CreateWorkshopRequest, actorID string) (*dto.WorkshopResponse, error)
	GetByID(ctx context.Context, id string) (*dto.WorkshopResponse, error)
	List(ctx context.Context, centerID, status string) ([]dto.WorkshopResponse, error)
	ListAvailable(ctx context.Context) ([]dto.WorkshopResponse, error)
	ListMine(ctx context.Context, actorID string, actorRole model.UserRole) ([]dto.WorkshopResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateWorkshopRequest, actorID string) (*dto.WorkshopResponse, error)
	AssignProfessional(ctx context.Context, id, professionalID, actorID string) (*dto.WorkshopResponse, error)
	Delete(ctx context.Context, id string) error
}

type workshopService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewWorkshopService creates a WorkshopService instance.
func NewWorkshopService(repo *repository.Repository, logger *zap.Logger) WorkshopService {
	return &workshopService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *workshopService) Create(ctx context.Context, req *dto.CreateWorkshopRequest, actorID string) (*dto.WorkshopResponse, error) {
	if req.MaxCapacity < 1 {
		return nil, ErrWorkshopInvalidCapacity
	}
	if !model.ValidWeekDays(req.WeekDays) {
		return nil, ErrWorkshopInvalidWeekDays
	}
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrWorkshopInvalidDate
	}
	var endDate *time.Time
	if req.EndDate != "" {
		d, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil || d.Before(startDate) {
			return nil, ErrWorkshopInvalidDate
		}
		endDate = &d
	}

	status := model.WorkshopPending
	if req.Status != "" {
		status = model.WorkshopStatus(req.Status)
		if !status.Valid() {
			return nil, ErrWorkshopInvalidStatus
		}
	}

	if err := s.checkReferences(ctx, &req.ThematicAreaID, &req.CenterID, &req.ProfessionalID); err != nil {
		return nil, err
	}

	workshop := &model.Workshop{
		Name:            req.Name,
		Description:     req.Description,
		ThematicAreaID:  req.ThematicAreaID,
		CenterID:        req.CenterID,
		ProfessionalID:  req.ProfessionalID,
		MaxCapacity:     req.MaxCapacity,
		CurrentCapacity: 0,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		WeekDays:        req.WeekDays,
		StartDate:       startDate,
		EndDate:         endDate,
		Location:        req.Location,
		SessionDuration: req.SessionDuration,
		Status:          status,
		Observations:    req.Observations,
	}
	workshop.CreatedBy = &actorID
	workshop.UpdatedBy = &actorID

	if err := s.repo.Workshop.Create(ctx, workshop); err != nil {
		s.logger.Error("failed to create workshop", zap.Error(err))
		return nil, err
	}

	return toWorkshopResponse(workshop), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *workshopService) GetByID(ctx context.Context, id string) (*dto.WorkshopResponse, error) {
	workshop, err := s.repo.Workshop.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkshopNotFound
		}
		s.logger.Error("failed to load workshop", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toWorkshopResponse(workshop), nil
}

// ────────────────────── List ──────────────────────

func (s *workshopService) List(ctx context.Context, centerID, status string) ([]dto.WorkshopResponse, error) {
	if status != "" && !model.WorkshopStatus(status).Valid() {
		return nil, ErrWorkshopInvalidStatus
	}
	if centerID != "" {
		if _, err := s.repo.Center.GetByID(ctx, centerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCenterNotFound
			}
			return nil, err
		}
	}

	workshops, err := s.repo.Workshop.List(ctx, centerID, status)
	if err != nil {
		s.logger.Error("failed to list workshops", zap.Error(err))
		return nil, err
	}

	result := make([]dto.WorkshopResponse, 0, len(workshops))
	for i := range workshops {
		result = append(result, *toWorkshopResponse(&workshops[i]))
	}
	return result, nil
}

// ListAvailable returns active workshops that still have open seats,
// the browse view offered to prospective enrollees.
func (s *workshopService) ListAvailable(ctx context.Context) ([]dto.WorkshopResponse, error) {
	workshops, err := s.repo.Workshop.List(ctx, "", string(model.WorkshopActive))
	if err != nil {
		s.logger.Error("failed to list workshops", zap.Error(err))
		return nil, err
	}

	result := make([]dto.WorkshopResponse, 0, len(workshops))
	for i := range workshops {
		if workshops[i].AvailableSpots() > 0 {
			result = append(result, *toWorkshopResponse(&workshops[i]))
		}
	}
	return result, nil
}

// ListMine returns the professional's own workshops; coordinators and
// admins see everything.
func (s *workshopService) ListMine(ctx context.Context, actorID string, actorRole model.UserRole) ([]dto.WorkshopResponse, error) {
	var (
		workshops []model.Workshop
		err       error
	)
	if actorRole == model.RoleProfessional {
		workshops, err = s.repo.Workshop.ListByProfessional(ctx, actorID)
	} else {
		workshops, err = s.repo.Workshop.List(ctx, "", "")
	}
	if err != nil {
		s.logger.Error("failed to list workshops", zap.Error(err))
		return nil, err
	}

	result := make([]dto.WorkshopResponse, 0, len(workshops))
	for i := range workshops {
		result = append(result, *toWorkshopResponse(&workshops[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *workshopService) Update(ctx context.Context, id string, req *dto.UpdateWorkshopRequest, actorID string) (*dto.WorkshopResponse, error) {
	workshop, err := s.repo.Workshop.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkshopNotFound
		}
		s.logger.Error("failed to load workshop", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if err := s.checkReferences(ctx, req.ThematicAreaID, req.CenterID, req.ProfessionalID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		workshop.Name = *req.Name
	}
	if req.Description != nil {
		workshop.Description = *req.Description
	}
	if req.ThematicAreaID != nil {
		workshop.ThematicAreaID = *req.ThematicAreaID
	}
	if req.CenterID != nil {
		workshop.CenterID = *req.CenterID
	}
	if req.ProfessionalID != nil {
		workshop.ProfessionalID = *req.ProfessionalID
	}
	if req.MaxCapacity != nil {
		if *req.MaxCapacity < 1 {
			return nil, ErrWorkshopInvalidCapacity
		}
		// Capacity may shrink, but never below the already-enrolled
		// count. The waitlist is not rebalanced here.
		if *req.MaxCapacity < workshop.CurrentCapacity {
			return nil, ErrCapacityBelowEnrolled
		}
		workshop.MaxCapacity = *req.MaxCapacity
	}
	if req.StartTime != nil {
		workshop.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		workshop.EndTime = *req.EndTime
	}
	if err := validateTimeRange(workshop.StartTime, workshop.EndTime); err != nil {
		return nil, err
	}
	if req.WeekDays != nil {
		if !model.ValidWeekDays(*req.WeekDays) {
			return nil, ErrWorkshopInvalidWeekDays
		}
		workshop.WeekDays = *req.WeekDays
	}
	if req.StartDate != nil {
		d, err := time.Parse("2006-01-02", *req.StartDate)
		if err != nil {
			return nil, ErrWorkshopInvalidDate
		}
		workshop.StartDate = d
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			workshop.EndDate = nil
		} else {
			d, err := time.Parse("2006-01-02", *req.EndDate)
			if err != nil {
				return nil, ErrWorkshopInvalidDate
			}
			workshop.EndDate = &d
		}
	}
	if workshop.EndDate != nil && workshop.EndDate.Before(workshop.StartDate) {
		return nil, ErrWorkshopInvalidDate
	}
	if req.Location != nil {
		workshop.Location = *req.Location
	}
	if req.SessionDuration != nil {
		workshop.SessionDuration = req.SessionDuration
	}
	if req.Status != nil {
		status := model.WorkshopStatus(*req.Status)
		if !status.Valid() {
			return nil, ErrWorkshopInvalidStatus
		}
		workshop.Status = status
	}
	if req.Observations != nil {
		workshop.Observations = *req.Observations
	}

	workshop.UpdatedBy = &actorID

	if err := s.repo.Workshop.Update(ctx, workshop); err != nil {
		s.logger.Error("failed to update workshop", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toWorkshopResponse(workshop), nil
}

// ────────────────────── AssignProfessional ──────────────────────

func (s *workshopService) AssignProfessional(ctx context.Context, id, professionalID, actorID string) (*dto.WorkshopResponse, error) {
	workshop, err := s.repo.Workshop.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkshopNotFound
		}
		s.logger.Error("failed to load workshop", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if err := s.checkProfessional(ctx, professionalID); err != nil {
		return nil, err
	}

	workshop.ProfessionalID = professionalID
	workshop.UpdatedBy = &actorID

	if err := s.repo.Workshop.Update(ctx, workshop); err != nil {
		s.logger.Error("failed to assign professional", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toWorkshopResponse(workshop), nil
}

// ────────────────────── Delete ──────────────────────

func (s *workshopService) Delete(ctx context.Context, id string) error {
	workshop, err := s.repo.Workshop.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWorkshopNotFound
		}
		s.logger.Error("failed to load workshop", zap.String("id", id), zap.Error(err))
		return err
	}

	if workshop.CurrentCapacity > 0 {
		return ErrWorkshopHasEnrollments
	}

	if err := s.repo.Workshop.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete workshop", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// ── internal helpers ──

// checkReferences verifies the dangling-reference rules for any of the
// three foreign keys that are present.
func (s *workshopService) checkReferences(ctx context.Context, thematicAreaID, centerID, professionalID *string) error {
	if thematicAreaID != nil {
		if _, err := s.repo.ThematicArea.GetByID(ctx, *thematicAreaID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrThematicAreaNotFound
			}
			return err
		}
	}
	if centerID != nil {
		if _, err := s.repo.Center.GetByID(ctx, *centerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCenterNotFound
			}
			return err
		}
	}
	if professionalID != nil {
		if err := s.checkProfessional(ctx, *professionalID); err != nil {
			return err
		}
	}
	return nil
}

func (s *workshopService) checkProfessional(ctx context.Context, professionalID string) error {
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

// validateTimeRange checks "HH:MM" syntax and strict start < end.
func validateTimeRange(start, end string) error {
	if _, err := time.Parse("15:04", start); err != nil {
		return ErrWorkshopInvalidTime
	}
	if _, err := time.Parse("15:04", end); err != nil {
		return ErrWorkshopInvalidTime
	}
	if start >= end {
		return ErrWorkshopInvalidTime
	}
	return nil
}

func toWorkshopResponse(w *model.Workshop) *dto.WorkshopResponse {
	resp := &dto.WorkshopResponse{
		ID:              w.WorkshopID,
		Name:            w.Name,
		Description:     w.Description,
		ThematicAreaID:  w.ThematicAreaID,
		CenterID:        w.CenterID,
		ProfessionalID:  w.ProfessionalID,
		MaxCapacity:     w.MaxCapacity,
		CurrentCapacity: w.CurrentCapacity,
		AvailableSpots:  w.AvailableSpots(),
		StartTime:       w.StartTime,
		EndTime:         w.EndTime,
		WeekDays:        w.WeekDays,
		StartDate:       w.StartDate.Format("2006-01-02"),
		Location:        w.Location,
		SessionDuration: w.SessionDuration,
		Status:          string(w.Status),
		Observations:    w.Observations,
		CreatedAt:       w.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       w.UpdatedAt.Format(time.RFC3339),
	}
	if w.EndDate != nil {
		resp.EndDate = w.EndDate.Format("2006-01-02")
	}
	return resp
}
