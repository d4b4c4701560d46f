package services

import (
	"context"
	"errors"

	"github.com/wanderlist/api-go/models"
	"github.com/wanderlist/api-go/store"
)

// PermissionReasonPrivate is the only denial reason the evaluator produces.
const PermissionReasonPrivate = "private"

// Permission is the result of a visibility check. Reason is empty when
// permission is granted.
type Permission struct {
	HasPermission bool   `json:"has_permission"`
	Reason        string `json:"reason,omitempty"`
}

// PermissionService derives view permission for profile and list endpoints
// from the target's privacy flag and the actor's relationship to them. It
// performs no mutation.
type PermissionService struct {
	users   store.UserStore
	follows store.FollowStore
}

func NewPermissionService(users store.UserStore, follows store.FollowStore) *PermissionService {
	return &PermissionService{users: users, follows: follows}
}

// CheckViewingPermission evaluates, in order: self is always visible, the
// target must exist, public targets are visible to everyone, private
// targets only to accepted followers.
func (s *PermissionService) CheckViewingPermission(ctx context.Context, actorID, targetID uint) (Permission, error) {
	if actorID == targetID {
		return Permission{HasPermission: true}, nil
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Permission{}, ErrUserNotFound
		}
		return Permission{}, err
	}

	if !target.IsPrivate {
		return Permission{HasPermission: true}, nil
	}

	edge, err := s.follows.FindEdge(ctx, actorID, targetID)
	if err == nil && edge.Status == models.FollowStatusAccepted {
		return Permission{HasPermission: true}, nil
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return Permission{}, err
	}

	return Permission{HasPermission: false, Reason: PermissionReasonPrivate}, nil
}
