package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careerforge/careerforge/internal/domains/user"
)

// UserEntity is the GORM mapping for accounts.
type UserEntity struct {
	ID          string         `gorm:"primaryKey;type:char(36);not null"`
	DisplayName string         `gorm:"column:display_name;type:varchar(255);not null"`
	Email       string         `gorm:"uniqueIndex;type:varchar(191);not null"`
	Password    string         `gorm:"column:password_hash;type:char(60);not null"`
	CreatedAt   time.Time      `gorm:"autoCreateTime(3)"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime(3)"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (UserEntity) TableName() string {
	return "users"
}

func (u *UserEntity) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

func (u *UserEntity) ToDomain() *user.User {
	return &user.User{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Password:    u.Password,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func NewUserEntityFromDomain(d *user.User) *UserEntity {
	return &UserEntity{
		ID:          d.ID,
		DisplayName: d.DisplayName,
		Email:       d.Email,
		Password:    d.Password,
	}
}
