package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/model"
)

// EnrollmentRepository is the workshop_users data-access interface. It
// exclusively owns waitlist-position ordering; the mutating methods are
// meant to run inside the transaction that holds the workshop row lock.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	GetByID(ctx context.Context, id string) (*model.Enrollment, error)
	GetByUserAndWorkshop(ctx context.Context, userID, workshopID string) (*model.Enrollment, error)
	ListActive(ctx context.Context, workshopID string) ([]model.Enrollment, error)
	ListWaitlisted(ctx context.Context, workshopID string) ([]model.Enrollment, error)
	ListByUser(ctx context.Context, userID string) ([]model.Enrollment, error)
	CountActive(ctx context.Context, workshopID string) (int64, error)
	// MaxWaitlistPosition returns 0 when the workshop has no waitlist.
	MaxWaitlistPosition(ctx context.Context, workshopID string) (int, error)
	// FirstWaitlisted returns the lowest-position waitlisted enrollment,
	// or gorm.ErrRecordNotFound when the waitlist is empty.
	FirstWaitlisted(ctx context.Context, workshopID string) (*model.Enrollment, error)
	// ShiftPositionsAfter closes the gap left at position: every
	// waitlisted row of the workshop with a strictly greater position
	// moves down by one.
	ShiftPositionsAfter(ctx context.Context, workshopID string, position int) error
	Update(ctx context.Context, enrollment *model.Enrollment) error
	Delete(ctx context.Context, id string) error
}

type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo creates an EnrollmentRepository instance.
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) Create(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepo) GetByID(ctx context.Context, id string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.WithContext(ctx).
		Where("enrollment_id = ?", id).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepo) GetByUserAndWorkshop(ctx context.Context, userID, workshopID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND workshop_id = ?", userID, workshopID).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepo) ListActive(ctx context.Context, workshopID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.WithContext(ctx).
		Where("workshop_id = ? AND waitlist_position IS NULL", workshopID).
		Order("assignment_date ASC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *enrollmentRepo) ListWaitlisted(ctx context.Context, workshopID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.WithContext(ctx).
		Where("workshop_id = ? AND waitlist_position IS NOT NULL", workshopID).
		Order("waitlist_position ASC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *enrollmentRepo) ListByUser(ctx context.Context, userID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("assignment_date ASC").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *enrollmentRepo) CountActive(ctx context.Context, workshopID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("workshop_id = ? AND waitlist_position IS NULL", workshopID).
		Count(&count).Error
	return count, err
}

func (r *enrollmentRepo) MaxWaitlistPosition(ctx context.Context, workshopID string) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("workshop_id = ?", workshopID).
		Select("MAX(waitlist_position)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *enrollmentRepo) FirstWaitlisted(ctx context.Context, workshopID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.WithContext(ctx).
		Where("workshop_id = ? AND waitlist_position IS NOT NULL", workshopID).
		Order("waitlist_position ASC").
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepo) ShiftPositionsAfter(ctx context.Context, workshopID string, position int) error {
	return r.db.WithContext(ctx).
		Model(&model.Enrollment{}).
		Where("workshop_id = ? AND waitlist_position > ?", workshopID, position).
		Update("waitlist_position", gorm.Expr("waitlist_position - 1")).Error
}

func (r *enrollmentRepo) Update(ctx context.Context, enrollment *model.Enrollment) error {
	return r.db.WithContext(ctx).Save(enrollment).Error
}

func (r *enrollmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("enrollment_id = ?", id).
		Delete(&model.Enrollment{}).Error
}
