package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/model"
)

// SessionRepository is the session data-access interface.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	ListByWorkshop(ctx context.Context, workshopID string) ([]model.Session, error)
	ListByProfessional(ctx context.Context, professionalID string) ([]model.Session, error)
	ListCompletedByWorkshops(ctx context.Context, workshopIDs []string) ([]model.Session, error)
	// CountOverlapping counts sessions of the workshop on date whose
	// half-open [start_time, end_time) range collides with the given
	// one. excludeID skips the session being updated ("" on create).
	CountOverlapping(ctx context.Context, workshopID string, date time.Time, startTime, endTime, excludeID string) (int64, error)
	Update(ctx context.Context, session *model.Session) error
	Delete(ctx context.Context, id string) error
}

type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo creates a SessionRepository instance.
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) ListByWorkshop(ctx context.Context, workshopID string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Where("workshop_id = ?", workshopID).
		Order("date ASC, start_time ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) ListByProfessional(ctx context.Context, professionalID string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("date DESC, start_time DESC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) ListCompletedByWorkshops(ctx context.Context, workshopIDs []string) ([]model.Session, error) {
	if len(workshopIDs) == 0 {
		return nil, nil
	}
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Where("workshop_id IN ? AND status = ?", workshopIDs, model.SessionCompleted).
		Order("date ASC, start_time ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepo) CountOverlapping(ctx context.Context, workshopID string, date time.Time, startTime, endTime, excludeID string) (int64, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("workshop_id = ? AND date = ?", workshopID, date).
		Where("start_time < ? AND end_time > ?", endTime, startTime)
	if excludeID != "" {
		q = q.Where("session_id <> ?", excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *sessionRepo) Update(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", id).
		Delete(&model.Session{}).Error
}
