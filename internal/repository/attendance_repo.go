package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/model"
)

// AttendanceRepository is the attendance data-access interface.
type AttendanceRepository interface {
	CreateBatch(ctx context.Context, attendances []model.Attendance) error
	GetBySessionAndUser(ctx context.Context, sessionID, userID string) (*model.Attendance, error)
	ListBySession(ctx context.Context, sessionID string) ([]model.Attendance, error)
	ListByUserAndSessions(ctx context.Context, userID string, sessionIDs []string) ([]model.Attendance, error)
	ExistsForSession(ctx context.Context, sessionID string) (bool, error)
	Update(ctx context.Context, attendance *model.Attendance) error
}

type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo creates an AttendanceRepository instance.
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) CreateBatch(ctx context.Context, attendances []model.Attendance) error {
	return r.db.WithContext(ctx).Create(&attendances).Error
}

func (r *attendanceRepo) GetBySessionAndUser(ctx context.Context, sessionID, userID string) (*model.Attendance, error) {
	var attendance model.Attendance
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *attendanceRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Attendance, error) {
	var attendances []model.Attendance
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("recorded_at ASC").
		Find(&attendances).Error
	return attendances, err
}

func (r *attendanceRepo) ListByUserAndSessions(ctx context.Context, userID string, sessionIDs []string) ([]model.Attendance, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	var attendances []model.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND session_id IN ?", userID, sessionIDs).
		Order("recorded_at ASC").
		Find(&attendances).Error
	return attendances, err
}

func (r *attendanceRepo) ExistsForSession(ctx context.Context, sessionID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error
	return count > 0, err
}

func (r *attendanceRepo) Update(ctx context.Context, attendance *model.Attendance) error {
	return r.db.WithContext(ctx).Save(attendance).Error
}
