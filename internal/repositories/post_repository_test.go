package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/lumagram/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostBumpsAuthorPostCount(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice")

	seedPost(t, db, alice.ID, "first", time.Now())

	var refreshed models.User
	require.NoError(t, db.First(&refreshed, alice.ID).Error)
	assert.Equal(t, 1, refreshed.PostsCount)
}

func TestGetPostWithAuthor(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPostRepository(db)
	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, alice.ID, "sunset", time.Now())

	got, err := repo.GetPostWithAuthor(post.ID)
	require.NoError(t, err)
	assert.Equal(t, "sunset", got.Caption)
	assert.Equal(t, "alice", got.AuthorProfile.Username)
	require.Len(t, got.Media, 1)
	assert.Equal(t, "image", got.Media[0].Type)
}

func TestDeletePostOwnershipAndCascade(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostgresPostRepository(db)
	likeRepo := NewPostgresLikeRepository(db)
	commentRepo := NewPostgresCommentRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "doomed", time.Now())

	_, err := likeRepo.LikePost(bob.ID, post.ID)
	require.NoError(t, err)
	require.NoError(t, commentRepo.CreateComment(&models.Comment{
		PostID: post.ID, AuthorID: bob.ID, Text: "nice",
	}))

	// A non-owner cannot delete the post.
	deleted, err := postRepo.DeletePost(post.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = postRepo.DeletePost(post.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var refreshed models.User
	require.NoError(t, db.First(&refreshed, alice.ID).Error)
	assert.Equal(t, 0, refreshed.PostsCount)

	var likeCount, commentCount int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount).Error)
	assert.Zero(t, likeCount)
	assert.Zero(t, commentCount)
}

func TestGetFeedPostsPagination(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostgresPostRepository(db)
	followRepo := NewPostgresFollowRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	require.NoError(t, followRepo.CreateFollow(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID}))

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		seedPost(t, db, alice.ID, fmt.Sprintf("alice-%d", i), base.Add(time.Duration(i)*time.Minute))
	}
	// Not followed by bob, must never appear in his feed.
	seedPost(t, db, carol.ID, "carol-0", base.Add(10*time.Minute))

	page1, err := postRepo.GetFeedPosts(bob.ID, 3, 0)
	require.NoError(t, err)
	require.Len(t, page1, 3)
	assert.Equal(t, "alice-4", page1[0].Caption)
	assert.Equal(t, "alice-2", page1[2].Caption)
	assert.Equal(t, "alice", page1[0].AuthorProfile.Username)

	page2, err := postRepo.GetFeedPosts(bob.ID, 3, page1[2].ID)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, "alice-1", page2[0].Caption)
	assert.Equal(t, "alice-0", page2[1].Caption)

	// Pages must not overlap.
	seen := map[uint]bool{}
	for _, p := range append(page1, page2...) {
		assert.False(t, seen[p.ID])
		seen[p.ID] = true
	}
}

func TestGetExplorePostsOrdersByEngagement(t *testing.T) {
	db := newTestDB(t)
	postRepo := NewPostgresPostRepository(db)
	likeRepo := NewPostgresLikeRepository(db)
	commentRepo := NewPostgresCommentRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	base := time.Now().Add(-time.Hour)
	quiet := seedPost(t, db, alice.ID, "quiet", base.Add(2*time.Minute))
	popular := seedPost(t, db, alice.ID, "popular", base.Add(time.Minute))

	_, err := likeRepo.LikePost(bob.ID, popular.ID)
	require.NoError(t, err)
	_, err = likeRepo.LikePost(carol.ID, popular.ID)
	require.NoError(t, err)
	require.NoError(t, commentRepo.CreateComment(&models.Comment{
		PostID: popular.ID, AuthorID: bob.ID, Text: "great",
	}))

	posts, err := postRepo.GetExplorePosts(10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, popular.ID, posts[0].ID)
	assert.Equal(t, quiet.ID, posts[1].ID)
}

func TestGetUserPosts(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPostRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	base := time.Now().Add(-time.Hour)
	seedPost(t, db, alice.ID, "old", base)
	seedPost(t, db, alice.ID, "new", base.Add(time.Minute))
	seedPost(t, db, bob.ID, "other", base.Add(2*time.Minute))

	posts, err := repo.GetUserPosts(alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].Caption)
	assert.Equal(t, "old", posts[1].Caption)
}

func TestSearchPosts(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPostRepository(db)
	alice := seedUser(t, db, "alice")

	base := time.Now().Add(-time.Hour)
	seedPost(t, db, alice.ID, "Morning Coffee", base)
	seedPost(t, db, alice.ID, "evening run", base.Add(time.Minute))

	posts, err := repo.SearchPosts("coffee", 10)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Morning Coffee", posts[0].Caption)
}
