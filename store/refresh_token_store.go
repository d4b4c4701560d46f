package store

import (
	"context"
	"time"

	"github.com/wanderlist/api-go/models"
	"gorm.io/gorm"
)

type RefreshTokenStore interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteForUser(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

type GormRefreshTokenStore struct {
	DB *gorm.DB
}

func NewGormRefreshTokenStore(db *gorm.DB) *GormRefreshTokenStore {
	return &GormRefreshTokenStore{DB: db}
}

var _ RefreshTokenStore = &GormRefreshTokenStore{}

func (s *GormRefreshTokenStore) Create(ctx context.Context, token *models.RefreshToken) error {
	return translate(s.DB.WithContext(ctx).Create(token).Error)
}

func (s *GormRefreshTokenStore) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := s.DB.WithContext(ctx).Where("token = ?", token).First(&rt).Error
	if err != nil {
		return nil, translate(err)
	}
	return &rt, nil
}

func (s *GormRefreshTokenStore) DeleteByToken(ctx context.Context, token string) error {
	return translate(s.DB.WithContext(ctx).Where("token = ?", token).Delete(&models.RefreshToken{}).Error)
}

func (s *GormRefreshTokenStore) DeleteForUser(ctx context.Context, userID uint) error {
	return translate(s.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error)
}

func (s *GormRefreshTokenStore) DeleteExpired(ctx context.Context) error {
	return translate(s.DB.WithContext(ctx).
		Where("expiration_date < ?", time.Now()).
		Delete(&models.RefreshToken{}).Error)
}
