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

// ── Enrollment module business errors ──

var (
	ErrEnrollmentNotFound     = errors.New("enrollment not found")
	ErrEnrollUserNotFound     = errors.New("user not found")
	ErrWorkshopNotActive      = errors.New("only active workshops accept enrollments")
	ErrAlreadyEnrolled        = errors.New("user is already enrolled in this workshop")
	ErrUnenrollReasonRequired = errors.New("a removal reason is required")
)

// EnrollmentService is the enrollment/waitlist engine. It is the only
// writer of Workshop.CurrentCapacity and of waitlist positions, and it
// keeps two invariants at all times: the capacity counter equals the
// number of active enrollments, and waitlist positions are exactly 1..N
// in join order.
type EnrollmentService interface {
	Enroll(ctx context.Context, req *dto.EnrollRequest, actorID string) (*dto.EnrollResponse, error)
	Unenroll(ctx context.Context, enrollmentID, reason, actorID string) (*dto.UnenrollResponse, error)
	WorkshopStudents(ctx context.Context, workshopID string) (*dto.WorkshopStudentsResponse, error)
	WorkshopWaitlist(ctx context.Context, workshopID string) ([]dto.EnrollmentResponse, error)
	UserWorkshops(ctx context.Context, userID string) (*dto.UserWorkshopsResponse, error)
}

type enrollmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEnrollmentService creates an EnrollmentService instance.
func NewEnrollmentService(repo *repository.Repository, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{repo: repo, logger: logger}
}

// ────────────────────── Enroll ──────────────────────

// Enroll places the user in the workshop: on a free seat as an active
// enrollment, otherwise at the tail of the waitlist. The whole decision
// runs in one transaction holding the workshop row lock, so concurrent
// enrolls cannot both take the last seat.
func (s *enrollmentService) Enroll(ctx context.Context, req *dto.EnrollRequest, actorID string) (*dto.EnrollResponse, error) {
	user, err := s.repo.User.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollUserNotFound
		}
		s.logger.Error("failed to load user", zap.String("id", req.UserID), zap.Error(err))
		return nil, err
	}

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

	resp, err := s.enrollLocked(ctx, txRepo, req, user, actorID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("failed to commit enrollment", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("user enrolled",
		zap.String("user_id", req.UserID),
		zap.String("workshop_id", req.WorkshopID),
		zap.Bool("waitlisted", resp.InWaitlist),
	)

	return resp, nil
}

func (s *enrollmentService) enrollLocked(ctx context.Context, txRepo *repository.Repository, req *dto.EnrollRequest, user *model.SystemUser, actorID string) (*dto.EnrollResponse, error) {
	workshop, err := txRepo.Workshop.GetByIDForUpdate(ctx, req.WorkshopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkshopNotFound
		}
		s.logger.Error("failed to lock workshop", zap.String("id", req.WorkshopID), zap.Error(err))
		return nil, err
	}

	if workshop.Status != model.WorkshopActive {
		return nil, ErrWorkshopNotActive
	}

	if _, err := txRepo.Enrollment.GetByUserAndWorkshop(ctx, req.UserID, req.WorkshopID); err == nil {
		return nil, ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{
		UserID:         req.UserID,
		WorkshopID:     req.WorkshopID,
		AssignedBy:     actorID,
		AssignmentDate: time.Now().UTC(),
	}
	enrollment.CreatedBy = &actorID

	var waitlistPosition *int
	if workshop.CurrentCapacity < workshop.MaxCapacity {
		workshop.CurrentCapacity++
		if err := txRepo.Workshop.Update(ctx, workshop); err != nil {
			return nil, err
		}
	} else {
		maxPos, err := txRepo.Enrollment.MaxWaitlistPosition(ctx, req.WorkshopID)
		if err != nil {
			return nil, err
		}
		next := maxPos + 1
		enrollment.WaitlistPosition = &next
		waitlistPosition = &next
	}

	if err := txRepo.Enrollment.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	return &dto.EnrollResponse{
		Enrollment:       toEnrollmentResponse(enrollment, user),
		InWaitlist:       waitlistPosition != nil,
		WaitlistPosition: waitlistPosition,
		Workshop:         toWorkshopCapacity(workshop),
	}, nil
}

// ────────────────────── Unenroll ──────────────────────

// Unenroll removes an enrollment. Removing a waitlisted one closes the
// gap in the queue; removing an active one frees a seat and promotes
// the head of the waitlist, renumbering the remainder from 1. Both
// paths run under the workshop row lock.
func (s *enrollmentService) Unenroll(ctx context.Context, enrollmentID, reason, actorID string) (*dto.UnenrollResponse, error) {
	if reason == "" {
		return nil, ErrUnenrollReasonRequired
	}

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

	resp, err := s.unenrollLocked(ctx, txRepo, enrollmentID, reason, actorID)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("failed to commit unenrollment", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("user unenrolled",
		zap.String("enrollment_id", enrollmentID),
		zap.Bool("promoted", resp.Promoted != nil),
	)

	return resp, nil
}

func (s *enrollmentService) unenrollLocked(ctx context.Context, txRepo *repository.Repository, enrollmentID, reason, actorID string) (*dto.UnenrollResponse, error) {
	enrollment, err := txRepo.Enrollment.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		s.logger.Error("failed to load enrollment", zap.String("id", enrollmentID), zap.Error(err))
		return nil, err
	}

	workshop, err := txRepo.Workshop.GetByIDForUpdate(ctx, enrollment.WorkshopID)
	if err != nil {
		s.logger.Error("failed to lock workshop", zap.String("id", enrollment.WorkshopID), zap.Error(err))
		return nil, err
	}

	// Waitlisted: drop the row and close the gap, capacity untouched.
	if enrollment.Waitlisted() {
		removedPos := *enrollment.WaitlistPosition
		if err := txRepo.Enrollment.Delete(ctx, enrollmentID); err != nil {
			return nil, err
		}
		if err := txRepo.Enrollment.ShiftPositionsAfter(ctx, workshop.WorkshopID, removedPos); err != nil {
			return nil, err
		}
		return &dto.UnenrollResponse{
			Reason:   reason,
			Workshop: toWorkshopCapacity(workshop),
		}, nil
	}

	// Active: record why, free the seat, then promote the head of the
	// waitlist if someone is queued.
	now := time.Now().UTC()
	enrollment.UnassignmentReason = &reason
	enrollment.UnassignmentDate = &now
	if err := txRepo.Enrollment.Update(ctx, enrollment); err != nil {
		return nil, err
	}
	if err := txRepo.Enrollment.Delete(ctx, enrollmentID); err != nil {
		return nil, err
	}
	workshop.CurrentCapacity--

	var promoted *dto.PromotedUser
	first, err := txRepo.Enrollment.FirstWaitlisted(ctx, workshop.WorkshopID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if first != nil {
		first.WaitlistPosition = nil
		first.AssignmentDate = now
		first.UpdatedBy = &actorID
		if err := txRepo.Enrollment.Update(ctx, first); err != nil {
			return nil, err
		}
		workshop.CurrentCapacity++

		// Renumber the rest of the queue back to 1..N.
		remaining, err := txRepo.Enrollment.ListWaitlisted(ctx, workshop.WorkshopID)
		if err != nil {
			return nil, err
		}
		for i := range remaining {
			pos := i + 1
			if remaining[i].WaitlistPosition == nil || *remaining[i].WaitlistPosition != pos {
				remaining[i].WaitlistPosition = &pos
				if err := txRepo.Enrollment.Update(ctx, &remaining[i]); err != nil {
					return nil, err
				}
			}
		}

		promotedUser, err := txRepo.User.GetByID(ctx, first.UserID)
		if err != nil {
			return nil, err
		}
		promoted = &dto.PromotedUser{
			UserID:   promotedUser.UserID,
			UserName: promotedUser.FullName(),
		}
	}

	if err := txRepo.Workshop.Update(ctx, workshop); err != nil {
		return nil, err
	}

	return &dto.UnenrollResponse{
		Reason:   reason,
		Workshop: toWorkshopCapacity(workshop),
		Promoted: promoted,
	}, nil
}

// ────────────────────── WorkshopStudents ──────────────────────

func (s *enrollmentService) WorkshopStudents(ctx context.Context, workshopID string) (*dto.WorkshopStudentsResponse, error) {
	workshop, err := s.repo.Workshop.GetByID(ctx, workshopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkshopNotFound
		}
		s.logger.Error("failed to load workshop", zap.String("id", workshopID), zap.Error(err))
		return nil, err
	}

	active, err := s.repo.Enrollment.ListActive(ctx, workshopID)
	if err != nil {
		return nil, err
	}
	waitlist, err := s.repo.Enrollment.ListWaitlisted(ctx, workshopID)
	if err != nil {
		return nil, err
	}

	return &dto.WorkshopStudentsResponse{
		Workshop: toWorkshopCapacity(workshop),
		Enrolled: s.toEnrollmentResponses(ctx, active),
		Waitlist: s.toEnrollmentResponses(ctx, waitlist),
	}, nil
}

// ────────────────────── WorkshopWaitlist ──────────────────────

func (s *enrollmentService) WorkshopWaitlist(ctx context.Context, workshopID string) ([]dto.EnrollmentResponse, error) {
	if _, err := s.repo.Workshop.GetByID(ctx, workshopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkshopNotFound
		}
		return nil, err
	}

	waitlist, err := s.repo.Enrollment.ListWaitlisted(ctx, workshopID)
	if err != nil {
		s.logger.Error("failed to list waitlist", zap.String("workshop_id", workshopID), zap.Error(err))
		return nil, err
	}

	return s.toEnrollmentResponses(ctx, waitlist), nil
}

// ────────────────────── UserWorkshops ──────────────────────

func (s *enrollmentService) UserWorkshops(ctx context.Context, userID string) (*dto.UserWorkshopsResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollUserNotFound
		}
		s.logger.Error("failed to load user", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	enrollments, err := s.repo.Enrollment.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserWorkshopsResponse{
		UserID:   user.UserID,
		UserName: user.FullName(),
		Active:   []dto.EnrollmentResponse{},
		Waitlist: []dto.EnrollmentResponse{},
	}
	for i := range enrollments {
		er := toEnrollmentResponse(&enrollments[i], user)
		if enrollments[i].Waitlisted() {
			resp.Waitlist = append(resp.Waitlist, er)
		} else {
			resp.Active = append(resp.Active, er)
		}
	}
	return resp, nil
}

// ── internal helpers ──

func (s *enrollmentService) toEnrollmentResponses(ctx context.Context, enrollments []model.Enrollment) []dto.EnrollmentResponse {
	result := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		var user *model.SystemUser
		if u, err := s.repo.User.GetByID(ctx, enrollments[i].UserID); err == nil {
			user = u
		}
		result = append(result, toEnrollmentResponse(&enrollments[i], user))
	}
	return result
}

func toEnrollmentResponse(e *model.Enrollment, user *model.SystemUser) dto.EnrollmentResponse {
	resp := dto.EnrollmentResponse{
		ID:               e.EnrollmentID,
		UserID:           e.UserID,
		WorkshopID:       e.WorkshopID,
		AssignedBy:       e.AssignedBy,
		AssignmentDate:   e.AssignmentDate.Format(time.RFC3339),
		WaitlistPosition: e.WaitlistPosition,
		InWaitlist:       e.Waitlisted(),
	}
	if user != nil {
		resp.UserName = user.FullName()
	}
	return resp
}

func toWorkshopCapacity(w *model.Workshop) dto.WorkshopCapacity {
	return dto.WorkshopCapacity{
		WorkshopID:      w.WorkshopID,
		Name:            w.Name,
		CurrentCapacity: w.CurrentCapacity,
		MaxCapacity:     w.MaxCapacity,
		AvailableSpots:  w.AvailableSpots(),
	}
}
