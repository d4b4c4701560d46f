package store

import (
	"context"
	"strings"

	"github.com/wanderlist/api-go/models"
	"gorm.io/gorm"
)

// UserStore is the persistence boundary for user records. All lookups
// exclude soft-deleted users.
type UserStore interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	SoftDelete(ctx context.Context, id uint) error
}

type GormUserStore struct {
	DB *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{DB: db}
}

var _ UserStore = &GormUserStore{}

func (s *GormUserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByUsername is case-insensitive: "Alice" and "alice" name the same user.
func (s *GormUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).
		Where("LOWER(username) = ?", strings.ToLower(username)).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormUserStore) Create(ctx context.Context, user *models.User) error {
	return translate(s.DB.WithContext(ctx).Create(user).Error)
}

func (s *GormUserStore) Update(ctx context.Context, user *models.User) error {
	return translate(s.DB.WithContext(ctx).Save(user).Error)
}

func (s *GormUserStore) SoftDelete(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
