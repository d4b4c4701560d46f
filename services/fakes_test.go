package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wanderlist/api-go/cache"
	"github.com/wanderlist/api-go/models"
	"github.com/wanderlist/api-go/store"
)

// -------- test fakes --------

type fakeUserStore struct {
	mu      sync.Mutex
	nextID  uint
	users   map[uint]*models.User
	deleted map[uint]bool
	findErr error

	findByIDCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		nextID:  1,
		users:   make(map[uint]*models.User),
		deleted: make(map[uint]bool),
	}
}

func (f *fakeUserStore) add(user models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.nextID++
	f.users[user.ID] = &user
	return &user
}

func (f *fakeUserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findByIDCalls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	user, ok := f.users[id]
	if !ok || f.deleted[id] {
		return nil, store.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, user := range f.users {
		if strings.EqualFold(user.Username, username) && !f.deleted[id] {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, user := range f.users {
		if user.Email == email && !f.deleted[id] {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if strings.EqualFold(existing.Username, user.Username) || existing.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) Update(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, existing := range f.users {
		if id == user.ID {
			continue
		}
		if strings.EqualFold(existing.Username, user.Username) || existing.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) SoftDelete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok || f.deleted[id] {
		return store.ErrNotFound
	}
	f.deleted[id] = true
	return nil
}

type fakeFollowStore struct {
	mu        sync.Mutex
	users     *fakeUserStore
	nextID    uint
	edges     []*models.Follow
	createErr error
	onCreate  func() // runs before the duplicate check, under the lock
}

func newFakeFollowStore(users *fakeUserStore) *fakeFollowStore {
	return &fakeFollowStore{users: users, nextID: 1}
}

func (f *fakeFollowStore) addEdge(followedByID, followingID uint, status string, updatedAt time.Time) *models.Follow {
	f.mu.Lock()
	defer f.mu.Unlock()
	edge := &models.Follow{
		ID:           f.nextID,
		FollowedByID: followedByID,
		FollowingID:  followingID,
		Status:       status,
		CreatedAt:    updatedAt,
		UpdatedAt:    updatedAt,
	}
	f.nextID++
	f.edges = append(f.edges, edge)
	return edge
}

func (f *fakeFollowStore) find(followedByID, followingID uint) *models.Follow {
	for _, edge := range f.edges {
		if edge.FollowedByID == followedByID && edge.FollowingID == followingID {
			return edge
		}
	}
	return nil
}

func (f *fakeFollowStore) FindEdge(ctx context.Context, followedByID, followingID uint) (*models.Follow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if edge := f.find(followedByID, followingID); edge != nil {
		copied := *edge
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeFollowStore) CreateEdge(ctx context.Context, edge *models.Follow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.onCreate != nil {
		f.onCreate()
	}
	if f.createErr != nil {
		return f.createErr
	}
	if f.find(edge.FollowedByID, edge.FollowingID) != nil {
		return store.ErrDuplicate
	}
	edge.ID = f.nextID
	edge.CreatedAt = time.Now()
	edge.UpdatedAt = edge.CreatedAt
	f.nextID++
	copied := *edge
	f.edges = append(f.edges, &copied)
	return nil
}

func (f *fakeFollowStore) UpdateEdgeStatus(ctx context.Context, edge *models.Follow, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := f.find(edge.FollowedByID, edge.FollowingID)
	if stored == nil {
		return store.ErrNotFound
	}
	stored.Status = status
	stored.UpdatedAt = time.Now()
	edge.Status = status
	edge.UpdatedAt = stored.UpdatedAt
	return nil
}

// relatedAlive reports whether the user on the related side of the edge
// exists and is not soft-deleted, mirroring the store's join against users.
func (f *fakeFollowStore) relatedAlive(edge *models.Follow, relation string) bool {
	relatedID := edge.FollowedByID
	if relation == models.RelationFollowing {
		relatedID = edge.FollowingID
	}
	_, ok := f.users.users[relatedID]
	return ok && !f.users.deleted[relatedID]
}

func (f *fakeFollowStore) ListAccepted(ctx context.Context, relation string, userID uint, offset, limit int) ([]models.Follow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*models.Follow
	for _, edge := range f.edges {
		if edge.Status != models.FollowStatusAccepted || !f.relatedAlive(edge, relation) {
			continue
		}
		if relation == models.RelationFollowedBy && edge.FollowingID == userID {
			matched = append(matched, edge)
		}
		if relation == models.RelationFollowing && edge.FollowedByID == userID {
			matched = append(matched, edge)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})
	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if len(matched) > limit {
		matched = matched[:limit]
	}
	out := make([]models.Follow, 0, len(matched))
	for _, edge := range matched {
		copied := *edge
		if user, ok := f.users.users[copied.FollowedByID]; ok {
			copied.FollowedBy = *user
		}
		if user, ok := f.users.users[copied.FollowingID]; ok {
			copied.Following = *user
		}
		out = append(out, copied)
	}
	return out, nil
}

func (f *fakeFollowStore) ListPending(ctx context.Context, userID uint) ([]models.Follow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []*models.Follow
	for _, edge := range f.edges {
		if edge.FollowingID == userID && edge.Status == models.FollowStatusPending &&
			f.relatedAlive(edge, models.RelationFollowedBy) {
			matched = append(matched, edge)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})
	out := make([]models.Follow, 0, len(matched))
	for _, edge := range matched {
		out = append(out, *edge)
	}
	return out, nil
}

func (f *fakeFollowStore) CountAccepted(ctx context.Context, relation string, userID uint) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, edge := range f.edges {
		if edge.Status != models.FollowStatusAccepted || !f.relatedAlive(edge, relation) {
			continue
		}
		if relation == models.RelationFollowedBy && edge.FollowingID == userID {
			count++
		}
		if relation == models.RelationFollowing && edge.FollowedByID == userID {
			count++
		}
	}
	return count, nil
}

type fakeTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*models.RefreshToken)}
}

func (f *fakeTokenStore) Create(ctx context.Context, token *models.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeTokenStore) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rt, ok := f.tokens[token]; ok {
		return rt, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeTokenStore) DeleteByToken(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	return nil
}

func (f *fakeTokenStore) DeleteForUser(ctx context.Context, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, rt := range f.tokens {
		if rt.UserID == userID {
			delete(f.tokens, key)
		}
	}
	return nil
}

func (f *fakeTokenStore) DeleteExpired(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, rt := range f.tokens {
		if time.Now().After(rt.ExpirationDate) {
			delete(f.tokens, key)
		}
	}
	return nil
}

type fakeCache struct {
	mu      sync.Mutex
	values map[string]string
	getErr error
	setErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", f.getErr
	}
	if val, ok := f.values[key]; ok {
		return val, nil
	}
	return "", cache.ErrCacheMiss
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return nil
}
