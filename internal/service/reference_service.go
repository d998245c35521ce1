package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/dto"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/repository"
)

// ReferenceService serves the read-only lookup tables.
type ReferenceService interface {
	ListThematicAreas(ctx context.Context) ([]dto.ThematicAreaResponse, error)
	GetThematicArea(ctx context.Context, id string) (*dto.ThematicAreaResponse, error)
	ListCenters(ctx context.Context) ([]dto.CenterResponse, error)
	GetCenter(ctx context.Context, id string) (*dto.CenterResponse, error)
}

type referenceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReferenceService creates a ReferenceService instance.
func NewReferenceService(repo *repository.Repository, logger *zap.Logger) ReferenceService {
	return &referenceService{repo: repo, logger: logger}
}

func (s *referenceService) ListThematicAreas(ctx context.Context) ([]dto.ThematicAreaResponse, error) {
	areas, err := s.repo.ThematicArea.List(ctx)
	if err != nil {
		s.logger.Error("failed to list thematic areas", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ThematicAreaResponse, 0, len(areas))
	for i := range areas {
		result = append(result, dto.ThematicAreaResponse{
			ID:          areas[i].ThematicAreaID,
			Name:        areas[i].Name,
			Description: areas[i].Description,
		})
	}
	return result, nil
}

func (s *referenceService) GetThematicArea(ctx context.Context, id string) (*dto.ThematicAreaResponse, error) {
	area, err := s.repo.ThematicArea.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThematicAreaNotFound
		}
		return nil, err
	}
	return &dto.ThematicAreaResponse{
		ID:          area.ThematicAreaID,
		Name:        area.Name,
		Description: area.Description,
	}, nil
}

func (s *referenceService) ListCenters(ctx context.Context) ([]dto.CenterResponse, error) {
	centers, err := s.repo.Center.List(ctx)
	if err != nil {
		s.logger.Error("failed to list centers", zap.Error(err))
		return nil, err
	}
	result := make([]dto.CenterResponse, 0, len(centers))
	for i := range centers {
		result = append(result, dto.CenterResponse{
			ID:      centers[i].CenterID,
			Name:    centers[i].Name,
			Address: centers[i].Address,
		})
	}
	return result, nil
}

func (s *referenceService) GetCenter(ctx context.Context, id string) (*dto.CenterResponse, error) {
	center, err := s.repo.Center.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCenterNotFound
		}
		return nil, err
	}
	return &dto.CenterResponse{
		ID:      center.CenterID,
		Name:    center.Name,
		Address: center.Address,
	}, nil
}
