package store

import (
	"context"

	"github.com/wanderlist/api-go/models"
	"gorm.io/gorm"
)

// FollowStore is the persistence boundary for follow edges. The unique
// index on (followed_by_id, following_id) is the authoritative guard
// against duplicate edges; CreateEdge surfaces a violation as ErrDuplicate.
type FollowStore interface {
	FindEdge(ctx context.Context, followedByID, followingID uint) (*models.Follow, error)
	CreateEdge(ctx context.Context, edge *models.Follow) error
	UpdateEdgeStatus(ctx context.Context, edge *models.Follow, status string) error
	ListAccepted(ctx context.Context, relation string, userID uint, offset, limit int) ([]models.Follow, error)
	ListPending(ctx context.Context, userID uint) ([]models.Follow, error)
	CountAccepted(ctx context.Context, relation string, userID uint) (int64, error)
}

type GormFollowStore struct {
	DB *gorm.DB
}

func NewGormFollowStore(db *gorm.DB) *GormFollowStore {
	return &GormFollowStore{DB: db}
}

var _ FollowStore = &GormFollowStore{}

func (s *GormFollowStore) FindEdge(ctx context.Context, followedByID, followingID uint) (*models.Follow, error) {
	var edge models.Follow
	err := s.DB.WithContext(ctx).
		Where("followed_by_id = ? AND following_id = ?", followedByID, followingID).
		First(&edge).Error
	if err != nil {
		return nil, translate(err)
	}
	return &edge, nil
}

func (s *GormFollowStore) CreateEdge(ctx context.Context, edge *models.Follow) error {
	return translate(s.DB.WithContext(ctx).Create(edge).Error)
}

func (s *GormFollowStore) UpdateEdgeStatus(ctx context.Context, edge *models.Follow, status string) error {
	err := s.DB.WithContext(ctx).
		Model(edge).
		Update("status", status).Error
	if err != nil {
		return translate(err)
	}
	edge.Status = status
	return nil
}

// ListAccepted returns accepted edges on the given side of userID, the
// related user preloaded, most recently updated first. The join against
// users drops edges whose related user is soft-deleted; the edge WHERE
// alone would still match them and the preload would come back empty.
func (s *GormFollowStore) ListAccepted(ctx context.Context, relation string, userID uint, offset, limit int) ([]models.Follow, error) {
	var edges []models.Follow
	q := s.DB.WithContext(ctx).Where("follows.status = ?", models.FollowStatusAccepted)
	if relation == models.RelationFollowedBy {
		q = q.Where("follows.following_id = ?", userID).
			Joins("JOIN users ON users.id = follows.followed_by_id").
			Preload("FollowedBy")
	} else {
		q = q.Where("follows.followed_by_id = ?", userID).
			Joins("JOIN users ON users.id = follows.following_id").
			Preload("Following")
	}
	err := q.Where("users.deleted_at IS NULL").
		Order("follows.updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&edges).Error
	if err != nil {
		return nil, translate(err)
	}
	return edges, nil
}

func (s *GormFollowStore) ListPending(ctx context.Context, userID uint) ([]models.Follow, error) {
	var edges []models.Follow
	err := s.DB.WithContext(ctx).
		Where("follows.following_id = ? AND follows.status = ?", userID, models.FollowStatusPending).
		Joins("JOIN users ON users.id = follows.followed_by_id").
		Where("users.deleted_at IS NULL").
		Preload("FollowedBy").
		Order("follows.updated_at DESC").
		Find(&edges).Error
	if err != nil {
		return nil, translate(err)
	}
	return edges, nil
}

func (s *GormFollowStore) CountAccepted(ctx context.Context, relation string, userID uint) (int64, error) {
	var count int64
	q := s.DB.WithContext(ctx).Model(&models.Follow{}).
		Where("follows.status = ?", models.FollowStatusAccepted)
	if relation == models.RelationFollowedBy {
		q = q.Where("follows.following_id = ?", userID).
			Joins("JOIN users ON users.id = follows.followed_by_id")
	} else {
		q = q.Where("follows.followed_by_id = ?", userID).
			Joins("JOIN users ON users.id = follows.following_id")
	}
	if err := q.Where("users.deleted_at IS NULL").Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}
