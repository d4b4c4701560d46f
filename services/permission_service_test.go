package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wanderlist/api-go/models"
)

func newPermissionFixture() (*PermissionService, *fakeUserStore, *fakeFollowStore) {
	users := newFakeUserStore()
	follows := newFakeFollowStore(users)
	return NewPermissionService(users, follows), users, follows
}

func TestCheckViewingPermissionSelf(t *testing.T) {
	svc, users, _ := newPermissionFixture()
	alice := users.add(models.User{Username: "alice", Email: "alice@example.com", IsPrivate: true})

	perm, err := svc.CheckViewingPermission(context.Background(), alice.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, perm.HasPermission)
	assert.Empty(t, perm.Reason)
}

func TestCheckViewingPermissionTargetMissing(t *testing.T) {
	svc, users, _ := newPermissionFixture()
	alice := users.add(models.User{Username: "alice", Email: "alice@example.com"})

	_, err := svc.CheckViewingPermission(context.Background(), alice.ID, 999)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestCheckViewingPermissionPublicTarget(t *testing.T) {
	svc, users, _ := newPermissionFixture()
	alice := users.add(models.User{Username: "alice", Email: "alice@example.com"})
	bob := users.add(models.User{Username: "bob", Email: "bob@example.com"})

	perm, err := svc.CheckViewingPermission(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, perm.HasPermission)
}

func TestCheckViewingPermissionPrivateTarget(t *testing.T) {
	svc, users, follows := newPermissionFixture()
	viewer := users.add(models.User{Username: "viewer", Email: "viewer@example.com"})
	private := users.add(models.User{Username: "private", Email: "private@example.com", IsPrivate: true})

	// No edge: denied with reason.
	perm, err := svc.CheckViewingPermission(context.Background(), viewer.ID, private.ID)
	require.NoError(t, err)
	assert.False(t, perm.HasPermission)
	assert.Equal(t, PermissionReasonPrivate, perm.Reason)

	// A pending request grants nothing.
	edge := follows.addEdge(viewer.ID, private.ID, models.FollowStatusPending, time.Now())
	perm, err = svc.CheckViewingPermission(context.Background(), viewer.ID, private.ID)
	require.NoError(t, err)
	assert.False(t, perm.HasPermission)

	// An accepted follow opens the account to the viewer.
	edge.Status = models.FollowStatusAccepted
	perm, err = svc.CheckViewingPermission(context.Background(), viewer.ID, private.ID)
	require.NoError(t, err)
	assert.True(t, perm.HasPermission)
	assert.Empty(t, perm.Reason)
}

func TestCheckViewingPermissionDirection(t *testing.T) {
	svc, users, follows := newPermissionFixture()
	viewer := users.add(models.User{Username: "viewer", Email: "viewer@example.com"})
	private := users.add(models.User{Username: "private", Email: "private@example.com", IsPrivate: true})

	// The private account following the viewer does not let the viewer in;
	// only viewer→target counts.
	follows.addEdge(private.ID, viewer.ID, models.FollowStatusAccepted, time.Now())

	perm, err := svc.CheckViewingPermission(context.Background(), viewer.ID, private.ID)
	require.NoError(t, err)
	assert.False(t, perm.HasPermission)
	assert.Equal(t, PermissionReasonPrivate, perm.Reason)
}
