package services

import (
	"context"
	"errors"

	"github.com/wanderlist/api-go/models"
	"github.com/wanderlist/api-go/store"
)

// FollowPageSize is the fixed page size for follower/following lists.
const FollowPageSize = 20

// ErrUnknownAction is returned for an action outside the transition table.
var ErrUnknownAction = errors.New("unknown follow action")

// FollowService owns the directed follow-edge data and its status
// transitions. All mutation of follow edges goes through it.
type FollowService struct {
	users   store.UserStore
	follows store.FollowStore
}

func NewFollowService(users store.UserStore, follows store.FollowStore) *FollowService {
	return &FollowService{users: users, follows: follows}
}

type FollowListResult struct {
	Users   []SanitizedUser `json:"users"`
	HasMore bool            `json:"has_more"`
}

type FollowResult struct {
	Follow            *models.Follow `json:"follow"`
	IsNewRelationship bool           `json:"is_new_relationship"`
}

type UpdateStatusResult struct {
	Follow  *models.Follow `json:"follow"`
	Message string         `json:"message"`
}

// transition describes one row of the status-update table. Incoming actions
// manage a relationship where the actor is the one being followed; the edge
// is looked up as (followedBy=target, following=actor). Outgoing actions
// manage the actor's own follow, (followedBy=actor, following=target).
type transition struct {
	from     string
	to       string
	incoming bool
	message  string
}

var transitions = map[string]transition{
	"accept":   {from: models.FollowStatusPending, to: models.FollowStatusAccepted, incoming: true, message: "Follow request accepted"},
	"reject":   {from: models.FollowStatusPending, to: models.FollowStatusNotFollowing, incoming: true, message: "Follow request rejected"},
	"remove":   {from: models.FollowStatusAccepted, to: models.FollowStatusNotFollowing, incoming: true, message: "Follower removed"},
	"cancel":   {from: models.FollowStatusPending, to: models.FollowStatusNotFollowing, incoming: false, message: "Follow request cancelled"},
	"unfollow": {from: models.FollowStatusAccepted, to: models.FollowStatusNotFollowing, incoming: false, message: "Unfollowed user"},
}

// GetFollowList returns one page of accepted followers or followings of
// targetID, most recently updated first. It fetches one row beyond the page
// size to compute HasMore without a count query.
func (s *FollowService) GetFollowList(ctx context.Context, targetID uint, relation string, loadIndex int) (*FollowListResult, error) {
	if loadIndex < 0 {
		loadIndex = 0
	}
	offset := loadIndex * FollowPageSize

	edges, err := s.follows.ListAccepted(ctx, relation, targetID, offset, FollowPageSize+1)
	if err != nil {
		return nil, err
	}

	hasMore := len(edges) > FollowPageSize
	if hasMore {
		edges = edges[:FollowPageSize]
	}

	users := make([]SanitizedUser, 0, len(edges))
	for _, edge := range edges {
		if relation == models.RelationFollowedBy {
			users = append(users, SanitizeUser(&edge.FollowedBy, false))
		} else {
			users = append(users, SanitizeUser(&edge.Following, false))
		}
	}

	return &FollowListResult{Users: users, HasMore: hasMore}, nil
}

// FollowUser creates or revives the actor→target edge. The desired status
// depends on the target's privacy flag: private targets get a pending
// request, public targets an immediate accepted follow. An edge that is
// already pending or accepted rejects the attempt.
func (s *FollowService) FollowUser(ctx context.Context, actorID, targetID uint) (*FollowResult, error) {
	if actorID == targetID {
		return nil, ErrFollowSelf
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	desired := models.FollowStatusAccepted
	if target.IsPrivate {
		desired = models.FollowStatusPending
	}

	edge, err := s.follows.FindEdge(ctx, actorID, targetID)
	if errors.Is(err, store.ErrNotFound) {
		edge = &models.Follow{
			FollowedByID: actorID,
			FollowingID:  targetID,
			Status:       desired,
		}
		createErr := s.follows.CreateEdge(ctx, edge)
		if createErr == nil {
			return &FollowResult{Follow: edge, IsNewRelationship: true}, nil
		}
		if !errors.Is(createErr, store.ErrDuplicate) {
			return nil, createErr
		}
		// Lost a race with a concurrent follow: the unique index on the
		// pair is the authority, so re-read and proceed as if the edge
		// had been found.
		edge, err = s.follows.FindEdge(ctx, actorID, targetID)
		if err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	switch edge.Status {
	case models.FollowStatusAccepted, models.FollowStatusPending:
		return nil, &DuplicateFollowError{Status: edge.Status}
	}

	if err := s.follows.UpdateEdgeStatus(ctx, edge, desired); err != nil {
		return nil, err
	}
	return &FollowResult{Follow: edge, IsNewRelationship: false}, nil
}

// UpdateFollowStatus applies one action from the transition table to the
// edge between actor and target. The action fixes both the edge direction
// and the status the edge must currently hold.
func (s *FollowService) UpdateFollowStatus(ctx context.Context, actorID, targetID uint, action string) (*UpdateStatusResult, error) {
	tr, ok := transitions[action]
	if !ok {
		return nil, ErrUnknownAction
	}

	followedByID, followingID := actorID, targetID
	if tr.incoming {
		followedByID, followingID = targetID, actorID
	}

	edge, err := s.follows.FindEdge(ctx, followedByID, followingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoRelationship
		}
		return nil, err
	}

	if edge.Status != tr.from {
		return nil, &InvalidActionError{Action: action, Expected: tr.from, Actual: edge.Status}
	}

	if err := s.follows.UpdateEdgeStatus(ctx, edge, tr.to); err != nil {
		return nil, err
	}
	return &UpdateStatusResult{Follow: edge, Message: tr.message}, nil
}

// GetPendingFollowRequests returns all pending requests addressed to the
// actor, most recently updated first.
func (s *FollowService) GetPendingFollowRequests(ctx context.Context, actorID uint) ([]models.Follow, error) {
	return s.follows.ListPending(ctx, actorID)
}

// GetFollowStatus reports the status of the actor→target edge. A nil result
// means the actor is the target: a user holds no relationship with
// themselves, which is distinct from notFollowing.
func (s *FollowService) GetFollowStatus(ctx context.Context, actorID, targetID uint) (*string, error) {
	if actorID == targetID {
		return nil, nil
	}

	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	status := models.FollowStatusNotFollowing
	edge, err := s.follows.FindEdge(ctx, actorID, targetID)
	if err == nil {
		status = edge.Status
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	return &status, nil
}

// GetFollowCount counts accepted edges on the given side of targetID.
func (s *FollowService) GetFollowCount(ctx context.Context, targetID uint, relation string) (int64, error) {
	return s.follows.CountAccepted(ctx, relation, targetID)
}
