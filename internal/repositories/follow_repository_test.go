package repositories

import (
	"testing"

	"github.com/lumagram/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFollowUpdatesCounters(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID}))

	following, err := repo.IsFollowing(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, following)

	var refreshedAlice, refreshedBob models.User
	require.NoError(t, db.First(&refreshedAlice, alice.ID).Error)
	require.NoError(t, db.First(&refreshedBob, bob.ID).Error)
	assert.Equal(t, 1, refreshedAlice.FollowersCount)
	assert.Equal(t, 0, refreshedAlice.FollowingCount)
	assert.Equal(t, 1, refreshedBob.FollowingCount)
	assert.Equal(t, 0, refreshedBob.FollowersCount)
}

func TestCreateFollowRejectsDuplicateEdge(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID}))
	err := repo.CreateFollow(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID})
	require.Error(t, err)

	// The failed transaction must not have touched the counters.
	var refreshedAlice models.User
	require.NoError(t, db.First(&refreshedAlice, alice.ID).Error)
	assert.Equal(t, 1, refreshedAlice.FollowersCount)
}

func TestDeleteFollowRestoresCounters(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID}))

	deleted, err := repo.DeleteFollow(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var refreshedAlice, refreshedBob models.User
	require.NoError(t, db.First(&refreshedAlice, alice.ID).Error)
	require.NoError(t, db.First(&refreshedBob, bob.ID).Error)
	assert.Equal(t, 0, refreshedAlice.FollowersCount)
	assert.Equal(t, 0, refreshedBob.FollowingCount)

	// Deleting a missing edge is a no-op.
	deleted, err = repo.DeleteFollow(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
	require.NoError(t, db.First(&refreshedBob, bob.ID).Error)
	assert.Equal(t, 0, refreshedBob.FollowingCount)
}

func TestGetFollowersAndFollowing(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID}))
	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: carol.ID, FollowingID: alice.ID}))
	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: carol.ID}))

	followers, err := repo.GetFollowers(alice.ID, 10)
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	following, err := repo.GetFollowing(alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "carol", following[0].Username)

	ids, err := repo.GetFollowingIDs(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{carol.ID}, ids)
}

func TestReconcileCountsRepairsDrift(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID}))
	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: carol.ID, FollowingID: alice.ID}))
	require.NoError(t, repo.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))

	// Simulate counter drift from an out-of-band write.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", alice.ID).
		UpdateColumns(map[string]interface{}{"followers_count": 41, "following_count": 7}).Error)

	require.NoError(t, repo.ReconcileCounts(alice.ID))

	var refreshed models.User
	require.NoError(t, db.First(&refreshed, alice.ID).Error)
	assert.Equal(t, 2, refreshed.FollowersCount)
	assert.Equal(t, 1, refreshed.FollowingCount)
}
