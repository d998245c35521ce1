package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/model"
)

// UserRepository reads identity-service user records.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.SystemUser, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a UserRepository instance.
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.SystemUser, error) {
	var user model.SystemUser
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
