package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/model"
)

// WorkshopRepository is the workshop data-access interface. The
// capacity counters live on the workshop row; GetByIDForUpdate must be
// used inside a transaction whenever they are about to change.
type WorkshopRepository interface {
	Create(ctx context.Context, workshop *model.Workshop) error
	GetByID(ctx context.Context, id string) (*model.Workshop, error)
	// GetByIDForUpdate loads the row under SELECT ... FOR UPDATE.
	GetByIDForUpdate(ctx context.Context, id string) (*model.Workshop, error)
	List(ctx context.Context, centerID string, status string) ([]model.Workshop, error)
	ListByProfessional(ctx context.Context, professionalID string) ([]model.Workshop, error)
	Update(ctx context.Context, workshop *model.Workshop) error
	Delete(ctx context.Context, id string) error
}

type workshopRepo struct {
	db *gorm.DB
}

// NewWorkshopRepo creates a WorkshopRepository instance.
func NewWorkshopRepo(db *gorm.DB) WorkshopRepository {
	return &workshopRepo{db: db}
}

func (r *workshopRepo) Create(ctx context.Context, workshop *model.Workshop) error {
	return r.db.WithContext(ctx).Create(workshop).Error
}

func (r *workshopRepo) GetByID(ctx context.Context, id string) (*model.Workshop, error) {
	var workshop model.Workshop
	err := r.db.WithContext(ctx).
		Where("workshop_id = ?", id).
		First(&workshop).Error
	if err != nil {
		return nil, err
	}
	return &workshop, nil
}

func (r *workshopRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Workshop, error) {
	var workshop model.Workshop
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("workshop_id = ?", id).
		First(&workshop).Error
	if err != nil {
		return nil, err
	}
	return &workshop, nil
}

func (r *workshopRepo) List(ctx context.Context, centerID string, status string) ([]model.Workshop, error) {
	q := r.db.WithContext(ctx).Order("name ASC")
	if centerID != "" {
		q = q.Where("center_id = ?", centerID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var workshops []model.Workshop
	err := q.Find(&workshops).Error
	return workshops, err
}

func (r *workshopRepo) ListByProfessional(ctx context.Context, professionalID string) ([]model.Workshop, error) {
	var workshops []model.Workshop
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("name ASC").
		Find(&workshops).Error
	return workshops, err
}

func (r *workshopRepo) Update(ctx context.Context, workshop *model.Workshop) error {
	return r.db.WithContext(ctx).Save(workshop).Error
}

func (r *workshopRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("workshop_id = ?", id).
		Delete(&model.Workshop{}).Error
}
