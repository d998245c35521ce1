package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/model"
)

// ThematicAreaRepository reads thematic-area reference data.
type ThematicAreaRepository interface {
	GetByID(ctx context.Context, id string) (*model.ThematicArea, error)
	List(ctx context.Context) ([]model.ThematicArea, error)
}

type thematicAreaRepo struct {
	db *gorm.DB
}

// NewThematicAreaRepo creates a ThematicAreaRepository instance.
func NewThematicAreaRepo(db *gorm.DB) ThematicAreaRepository {
	return &thematicAreaRepo{db: db}
}

func (r *thematicAreaRepo) GetByID(ctx context.Context, id string) (*model.ThematicArea, error) {
	var area model.ThematicArea
	err := r.db.WithContext(ctx).
		Where("thematic_area_id = ?", id).
		First(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *thematicAreaRepo) List(ctx context.Context) ([]model.ThematicArea, error) {
	var areas []model.ThematicArea
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&areas).Error
	return areas, err
}
