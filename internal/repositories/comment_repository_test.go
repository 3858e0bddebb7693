package repositories

import (
	"testing"
	"time"

	"github.com/lumagram/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentBumpsCommentCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "pic", time.Now())

	require.NoError(t, repo.CreateComment(&models.Comment{
		PostID: post.ID, AuthorID: bob.ID, Text: "first",
	}))

	var refreshed models.Post
	require.NoError(t, db.First(&refreshed, post.ID).Error)
	assert.Equal(t, 1, refreshed.CommentCount)
}

func TestGetPostCommentsWithAuthors(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "pic", time.Now())

	older := &models.Comment{PostID: post.ID, AuthorID: bob.ID, Text: "older", CreatedAt: time.Now().Add(-time.Minute)}
	require.NoError(t, repo.CreateComment(older))
	reply := &models.Comment{PostID: post.ID, AuthorID: alice.ID, Text: "reply", ParentID: &older.ID}
	require.NoError(t, repo.CreateComment(reply))

	comments, err := repo.GetPostComments(post.ID, 10)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "reply", comments[0].Text)
	assert.Equal(t, "alice", comments[0].AuthorProfile.Username)
	require.NotNil(t, comments[0].ParentID)
	assert.Equal(t, older.ID, *comments[0].ParentID)
	assert.Equal(t, "older", comments[1].Text)
	assert.Equal(t, "bob", comments[1].AuthorProfile.Username)
}

func TestDeleteCommentOwnership(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "pic", time.Now())

	comment := &models.Comment{PostID: post.ID, AuthorID: bob.ID, Text: "mine"}
	require.NoError(t, repo.CreateComment(comment))

	// Only the comment's author may delete it.
	deleted, err := repo.DeleteComment(comment.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.DeleteComment(comment.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var refreshed models.Post
	require.NoError(t, db.First(&refreshed, post.ID).Error)
	assert.Equal(t, 0, refreshed.CommentCount)

	deleted, err = repo.DeleteComment(comment.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
