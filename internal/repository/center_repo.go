package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/model"
)

// CenterRepository reads service-center reference data.
type CenterRepository interface {
	GetByID(ctx context.Context, id string) (*model.Center, error)
	List(ctx context.Context) ([]model.Center, error)
}

type centerRepo struct {
	db *gorm.DB
}

// NewCenterRepo creates a CenterRepository instance.
func NewCenterRepo(db *gorm.DB) CenterRepository {
	return &centerRepo{db: db}
}

func (r *centerRepo) GetByID(ctx context.Context, id string) (*model.Center, error) {
	var center model.Center
	err := r.db.WithContext(ctx).
		Where("center_id = ?", id).
		First(&center).Error
	if err != nil {
		return nil, err
	}
	return &center, nil
}

func (r *centerRepo) List(ctx context.Context) ([]model.Center, error) {
	var centers []model.Center
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&centers).Error
	return centers, err
}
