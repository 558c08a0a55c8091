package user

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/careerforge/careerforge/internal/domains/user"
)

type GormUserRepo struct {
	db *gorm.DB
}

func NewGormUserRepo(db *gorm.DB) user.UserRepository {
	return &GormUserRepo{db: db}
}

// Create implements user.UserRepository
func (g *GormUserRepo) Create(u *user.User) error {
	entity := NewUserEntityFromDomain(u)
	if err := g.db.Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	*u = *entity.ToDomain()
	return nil
}

// GetByID implements user.UserRepository
func (g *GormUserRepo) GetByID(id string) (*user.User, error) {
	var entity UserEntity
	if err := g.db.Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return entity.ToDomain(), nil
}

// GetByEmail implements user.UserRepository
func (g *GormUserRepo) GetByEmail(email string) (*user.User, error) {
	var entity UserEntity
	if err := g.db.Where("email = ?", email).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return entity.ToDomain(), nil
}

// Update implements user.UserRepository
func (g *GormUserRepo) Update(u *user.User) error {
	updates := map[string]interface{}{
		"display_name": u.DisplayName,
	}
	result := g.db.Model(&UserEntity{}).Where("id = ?", u.ID).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// EmailExists implements user.UserRepository
func (g *GormUserRepo) EmailExists(email string) (bool, error) {
	var count int64
	if err := g.db.Model(&UserEntity{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count users by email: %w", err)
	}
	return count > 0, nil
}
