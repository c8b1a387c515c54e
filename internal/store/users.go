package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"appointments-server/internal/models"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserStore {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Avatar").First(&user, id).Error; err != nil {
		return nil, translate(err, "find user")
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Avatar").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "find user by email")
	}
	return &user, nil
}

func (r *userRepository) ListProviders(ctx context.Context) ([]models.User, error) {
	var providers []models.User
	err := r.db.WithContext(ctx).Preload("Avatar").
		Where("provider = ?", true).
		Order("name asc").
		Find(&providers).Error
	if err != nil {
		return nil, translate(err, "list providers")
	}
	return providers, nil
}

func (r *userRepository) Create(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error, "create user")
}

func (r *userRepository) Update(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error, "update user")
}
