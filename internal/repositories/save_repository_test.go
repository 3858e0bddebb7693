package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveUnsaveRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresSaveRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "keeper", time.Now())

	save, err := repo.SavePost(bob.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, save.PostID)

	saved, err := repo.IsPostSaved(bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	_, err = repo.SavePost(bob.ID, post.ID)
	require.Error(t, err)

	removed, err := repo.UnsavePost(bob.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.UnsavePost(bob.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestGetUserSavedPosts(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresSaveRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "keeper", time.Now())
	seedPost(t, db, alice.ID, "ignored", time.Now().Add(time.Second))

	_, err := repo.SavePost(bob.ID, post.ID)
	require.NoError(t, err)

	savedPosts, err := repo.GetUserSavedPosts(bob.ID, 10)
	require.NoError(t, err)
	require.Len(t, savedPosts, 1)
	assert.Equal(t, "keeper", savedPosts[0].Post.Caption)
	assert.Equal(t, "alice", savedPosts[0].Post.AuthorProfile.Username)
}

func TestGetSavedPostIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresSaveRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	saved := seedPost(t, db, alice.ID, "saved", time.Now())
	other := seedPost(t, db, alice.ID, "other", time.Now().Add(time.Second))

	_, err := repo.SavePost(bob.ID, saved.ID)
	require.NoError(t, err)

	savedMap, err := repo.GetSavedPostIDs(bob.ID, []uint{saved.ID, other.ID})
	require.NoError(t, err)
	assert.True(t, savedMap[saved.ID])
	assert.False(t, savedMap[other.ID])
}
