package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates all data-access interfaces.
type Repository struct {
	db *gorm.DB

	User         UserRepository
	Center       CenterRepository
	ThematicArea ThematicAreaRepository
	Workshop     WorkshopRepository
	Session      SessionRepository
	Enrollment   EnrollmentRepository
	Attendance   AttendanceRepository
}

// NewRepository creates the Repository aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:           db,
		User:         NewUserRepo(db),
		Center:       NewCenterRepo(db),
		ThematicArea: NewThematicAreaRepo(db),
		Workshop:     NewWorkshopRepo(db),
		Session:      NewSessionRepo(db),
		Enrollment:   NewEnrollmentRepo(db),
		Attendance:   NewAttendanceRepo(db),
	}
}

// BeginTx opens a transaction. Returns (nil, nil) when the aggregate
// has no live DB (unit tests over mock repos); callers must tolerate a
// nil tx.
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	return tx, tx.Error
}

// WithTx returns a Repository bound to the given transaction, or the
// receiver itself when tx is nil.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
