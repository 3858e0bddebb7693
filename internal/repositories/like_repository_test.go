package repositories

import (
	"testing"
	"time"

	"github.com/lumagram/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeUnlikeRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresLikeRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "pic", time.Now())

	like, err := repo.LikePost(bob.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, like.UserID)

	liked, err := repo.IsPostLiked(bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	var refreshed models.Post
	require.NoError(t, db.First(&refreshed, post.ID).Error)
	assert.Equal(t, 1, refreshed.LikeCount)

	removed, err := repo.UnlikePost(bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	require.NoError(t, db.First(&refreshed, post.ID).Error)
	assert.Equal(t, 0, refreshed.LikeCount)

	// A second unlike finds nothing and leaves the counter alone.
	removed, err = repo.UnlikePost(bob.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	require.NoError(t, db.First(&refreshed, post.ID).Error)
	assert.Equal(t, 0, refreshed.LikeCount)
}

func TestLikePostRejectsDuplicate(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresLikeRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "pic", time.Now())

	_, err := repo.LikePost(bob.ID, post.ID)
	require.NoError(t, err)
	_, err = repo.LikePost(bob.ID, post.ID)
	require.Error(t, err)

	var refreshed models.Post
	require.NoError(t, db.First(&refreshed, post.ID).Error)
	assert.Equal(t, 1, refreshed.LikeCount)
}

func TestGetPostLikesIncludesUsers(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresLikeRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	post := seedPost(t, db, alice.ID, "pic", time.Now())

	_, err := repo.LikePost(bob.ID, post.ID)
	require.NoError(t, err)
	_, err = repo.LikePost(carol.ID, post.ID)
	require.NoError(t, err)

	likes, err := repo.GetPostLikes(post.ID, 10)
	require.NoError(t, err)
	require.Len(t, likes, 2)
	usernames := []string{likes[0].User.Username, likes[1].User.Username}
	assert.ElementsMatch(t, []string{"bob", "carol"}, usernames)
}

func TestGetLikedPostIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresLikeRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	liked := seedPost(t, db, alice.ID, "liked", time.Now())
	skipped := seedPost(t, db, alice.ID, "skipped", time.Now().Add(time.Second))

	_, err := repo.LikePost(bob.ID, liked.ID)
	require.NoError(t, err)

	likedMap, err := repo.GetLikedPostIDs(bob.ID, []uint{liked.ID, skipped.ID})
	require.NoError(t, err)
	assert.True(t, likedMap[liked.ID])
	assert.False(t, likedMap[skipped.ID])
}
