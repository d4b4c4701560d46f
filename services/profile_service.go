package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/wanderlist/api-go/cache"
	"github.com/wanderlist/api-go/models"
	"github.com/wanderlist/api-go/store"
)

const profileCacheTTL = 5 * time.Minute

// Profile is a sanitized user plus follow counts and, for non-self viewers,
// the viewer's follow status toward the user. FollowStatus stays nil when
// the viewer is looking at their own profile; Email is set only then.
type Profile struct {
	ID             uint      `json:"id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"display_name,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	IsPrivate      bool      `json:"is_private"`
	CreatedAt      time.Time `json:"created_at"`
	Email          *string   `json:"email,omitempty"`
	FollowersCount int64     `json:"followers_count"`
	FollowingCount int64     `json:"following_count"`
	FollowStatus   *string   `json:"follow_status,omitempty"`
	IsOwnProfile   bool      `json:"is_own_profile"`
}

// ProfileService composes a user's profile from the user store, the follow
// service, and an optional cache. The cache is best-effort: reads fall back
// to the store and writes never fail a request.
type ProfileService struct {
	users   store.UserStore
	follows *FollowService
	cache   cache.Cache
}

// NewProfileService builds a ProfileService. A nil cache disables caching.
func NewProfileService(users store.UserStore, follows *FollowService, c cache.Cache) *ProfileService {
	return &ProfileService{users: users, follows: follows, cache: c}
}

// GetProfile resolves targetID and aggregates counts and follow status. The
// caller passes the already-authenticated actor so a self lookup needs no
// extra store round trip.
func (s *ProfileService) GetProfile(ctx context.Context, actor *models.User, targetID uint) (*Profile, error) {
	isSelf := actor.ID == targetID

	target := actor
	if !isSelf {
		var err error
		target, err = s.resolveUser(ctx, targetID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
	}

	var (
		wg             sync.WaitGroup
		followersCount int64
		followingCount int64
		followStatus   *string
		firstErr       error
		mu             sync.Mutex
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		count, err := s.follows.GetFollowCount(ctx, target.ID, models.RelationFollowedBy)
		if err != nil {
			fail(err)
			return
		}
		followersCount = count
	}()
	go func() {
		defer wg.Done()
		count, err := s.follows.GetFollowCount(ctx, target.ID, models.RelationFollowing)
		if err != nil {
			fail(err)
			return
		}
		followingCount = count
	}()
	if !isSelf {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, err := s.follows.GetFollowStatus(ctx, actor.ID, target.ID)
			if err != nil {
				fail(err)
				return
			}
			followStatus = status
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	profile := &Profile{
		ID:             target.ID,
		Username:       target.Username,
		DisplayName:    target.DisplayName,
		Bio:            target.Bio,
		IsPrivate:      target.IsPrivate,
		CreatedAt:      target.CreatedAt,
		FollowersCount: followersCount,
		FollowingCount: followingCount,
		FollowStatus:   followStatus,
		IsOwnProfile:   isSelf,
	}
	if isSelf {
		email := target.Email
		profile.Email = &email
	}
	return profile, nil
}

// InvalidateProfile drops the cached record for a user. Called after
// profile updates and account deletion; a cache error is swallowed.
func (s *ProfileService) InvalidateProfile(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, cache.ProfileKey(userID))
}

// resolveUser reads a user through the cache, falling back to the store on
// any miss or cache failure, and repopulates the cache in the background.
func (s *ProfileService) resolveUser(ctx context.Context, userID uint) (*models.User, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cache.ProfileKey(userID)); err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(raw), &user); err == nil {
				return &user, nil
			}
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(user); err == nil {
			go func() {
				_ = s.cache.Set(context.Background(), cache.ProfileKey(userID), string(raw), profileCacheTTL)
			}()
		}
	}
	return user, nil
}
