package blogRepository

import (
	blogs "BlogGolang/internal/api/blog"
	"BlogGolang/internal/entity"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `
CREATE TABLE users (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	password TEXT NOT NULL,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	is_staff BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);

CREATE TABLE posts (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	content TEXT NOT NULL,
	image TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'published')),
	author_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	category_id TEXT REFERENCES categories(id) ON DELETE SET NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE comments (
	id TEXT PRIMARY KEY,
	post_id TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	author_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	content TEXT NOT NULL,
	is_approved BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMP NOT NULL
);
`

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	return db
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestClient(t *testing.T) (Client, *sqlx.DB) {
	t.Helper()

	db := newTestDB(t)
	repo := New(db, newTestLogger())
	client, err := repo.NewClient(false)
	require.NoError(t, err)

	return client, db
}

func seedUser(t *testing.T, db *sqlx.DB, id, username string) entity.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	user := entity.User{
		ID:        id,
		Username:  username,
		Email:     username + "@example.com",
		Password:  "hash",
		FirstName: "Test",
		LastName:  "User",
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := db.Exec(`
		INSERT INTO users (id, username, email, password, first_name, last_name, is_staff, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.Password, user.FirstName, user.LastName, false, user.CreatedAt, user.UpdatedAt)
	require.NoError(t, err)

	return user
}

func seedPost(t *testing.T, client Client, id, authorID, categoryID, title, status string, createdAt time.Time) entity.Post {
	t.Helper()

	post := entity.Post{
		ID:         id,
		Title:      title,
		Content:    "Content of " + title,
		Status:     status,
		AuthorID:   authorID,
		CategoryID: categoryID,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}
	require.NoError(t, client.Posts.CreatePost(context.Background(), post))

	return post
}

func seedComment(t *testing.T, client Client, id, postID, authorID, content string, approved bool, createdAt time.Time) {
	t.Helper()

	require.NoError(t, client.Comments.CreateComment(context.Background(), entity.Comment{
		ID:         id,
		PostID:     postID,
		AuthorID:   authorID,
		Content:    content,
		IsApproved: approved,
		CreatedAt:  createdAt,
	}))
}

func TestCategoryCRUD(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, client.Categories.CreateCategory(ctx, entity.Category{
		ID:          "cat-1",
		Name:        "Technology",
		Description: "Tech posts",
		CreatedAt:   now,
	}))
	require.NoError(t, client.Categories.CreateCategory(ctx, entity.Category{
		ID:        "cat-2",
		Name:      "Art",
		CreatedAt: now,
	}))

	got, err := client.Categories.GetCategoryByID(ctx, "cat-1")
	require.NoError(t, err)
	assert.Equal(t, "Technology", got.Name)
	assert.Equal(t, "Tech posts", got.Description)

	list, count, err := client.Categories.ListCategories(ctx, "", "name", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, list, 2)
	assert.Equal(t, "Art", list[0].Name)

	list, count, err = client.Categories.ListCategories(ctx, "tech", "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, list, 1)
	assert.Equal(t, "Technology", list[0].Name)

	require.NoError(t, client.Categories.UpdateCategory(ctx, entity.Category{
		ID:   "cat-2",
		Name: "Fine Art",
	}))
	got, err = client.Categories.GetCategoryByID(ctx, "cat-2")
	require.NoError(t, err)
	assert.Equal(t, "Fine Art", got.Name)

	require.NoError(t, client.Categories.DeleteCategory(ctx, "cat-2"))
	_, err = client.Categories.GetCategoryByID(ctx, "cat-2")
	assert.ErrorIs(t, err, blogs.ErrCategoryNotFound)

	err = client.Categories.DeleteCategory(ctx, "missing")
	assert.ErrorIs(t, err, blogs.ErrCategoryNotFound)
}

func TestPostVisibility(t *testing.T) {
	client, db := newTestClient(t)
	ctx := context.Background()

	author := seedUser(t, db, "user-1", "alice")
	now := time.Now().UTC().Truncate(time.Second)
	seedPost(t, client, "post-draft", author.ID, "", "Draft post", entity.PostStatusDraft, now)
	seedPost(t, client, "post-pub", author.ID, "", "Published post", entity.PostStatusPublished, now.Add(time.Second))

	// Staff view: everything.
	posts, count, err := client.Posts.ListPosts(ctx, blogs.PostFilter{}, false, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, posts, 2)

	// Public view: drafts hidden, even when asked for explicitly.
	posts, count, err = client.Posts.ListPosts(ctx, blogs.PostFilter{}, true, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, posts, 1)
	assert.Equal(t, "post-pub", posts[0].ID)

	posts, count, err = client.Posts.ListPosts(ctx, blogs.PostFilter{Status: entity.PostStatusDraft}, true, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, posts)

	_, err = client.Posts.GetPostByID(ctx, "post-draft", true)
	assert.ErrorIs(t, err, blogs.ErrPostNotFound)

	got, err := client.Posts.GetPostByID(ctx, "post-draft", false)
	require.NoError(t, err)
	assert.Equal(t, "Draft post", got.Title)
	assert.Equal(t, "alice", got.Author.Username)
}

func TestPostFilters(t *testing.T) {
	client, db := newTestClient(t)
	ctx := context.Background()

	alice := seedUser(t, db, "user-1", "alice")
	bob := seedUser(t, db, "user-2", "bob")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	seedPost(t, client, "post-1", alice.ID, "", "Go concurrency patterns", entity.PostStatusPublished, base)
	seedPost(t, client, "post-2", alice.ID, "", "Cooking with cast iron", entity.PostStatusPublished, base.AddDate(0, 0, 5))
	seedPost(t, client, "post-3", bob.ID, "", "Concurrency in databases", entity.PostStatusPublished, base.AddDate(0, 0, 10))

	posts, count, err := client.Posts.ListPosts(ctx, blogs.PostFilter{Title: "CONCURRENCY"}, true, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, posts, 2)

	posts, count, err = client.Posts.ListPosts(ctx, blogs.PostFilter{AuthorUsername: "bob"}, true, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, posts, 1)
	assert.Equal(t, "post-3", posts[0].ID)

	posts, count, err = client.Posts.ListPosts(ctx, blogs.PostFilter{Search: "alice"}, true, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	after := base.AddDate(0, 0, 3)
	before := base.AddDate(0, 0, 8)
	posts, count, err = client.Posts.ListPosts(ctx, blogs.PostFilter{CreatedAfter: &after, CreatedBefore: &before}, true, "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, posts, 1)
	assert.Equal(t, "post-2", posts[0].ID)

	// Scoped to one author regardless of other filters.
	posts, count, err = client.Posts.ListPosts(ctx, blogs.PostFilter{}, false, alice.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	posts, _, err = client.Posts.ListPosts(ctx, blogs.PostFilter{Ordering: "title"}, true, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "Concurrency in databases", posts[0].Title)

	// Unknown ordering keys fall back to newest-first.
	posts, _, err = client.Posts.ListPosts(ctx, blogs.PostFilter{Ordering: "author__secret"}, true, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "post-3", posts[0].ID)
}

func TestPostCategoryJoin(t *testing.T) {
	client, db := newTestClient(t)
	ctx := context.Background()

	author := seedUser(t, db, "user-1", "alice")
	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, client.Categories.CreateCategory(ctx, entity.Category{
		ID:        "cat-1",
		Name:      "Technology",
		CreatedAt: now,
	}))

	seedPost(t, client, "post-1", author.ID, "cat-1", "With category", entity.PostStatusPublished, now)
	seedPost(t, client, "post-2", author.ID, "", "Without category", entity.PostStatusPublished, now)

	got, err := client.Posts.GetPostByID(ctx, "post-1", false)
	require.NoError(t, err)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Technology", got.Category.Name)

	got, err = client.Posts.GetPostByID(ctx, "post-2", false)
	require.NoError(t, err)
	assert.Nil(t, got.Category)

	// Deleting the category clears the reference instead of dropping the post.
	require.NoError(t, client.Categories.DeleteCategory(ctx, "cat-1"))
	got, err = client.Posts.GetPostByID(ctx, "post-1", false)
	require.NoError(t, err)
	assert.Nil(t, got.Category)
}

func TestPopularPosts(t *testing.T) {
	client, db := newTestClient(t)
	ctx := context.Background()

	author := seedUser(t, db, "user-1", "alice")
	now := time.Now().UTC().Truncate(time.Second)

	seedPost(t, client, "post-a", author.ID, "", "Two comments", entity.PostStatusPublished, now)
	seedPost(t, client, "post-b", author.ID, "", "Three comments", entity.PostStatusPublished, now)
	seedPost(t, client, "post-c", author.ID, "", "Two comments as well", entity.PostStatusPublished, now)
	seedPost(t, client, "post-d", author.ID, "", "Popular draft", entity.PostStatusDraft, now)

	for i := 0; i < 2; i++ {
		seedComment(t, client, fmt.Sprintf("cm-a-%d", i), "post-a", author.ID, "hi", true, now)
		seedComment(t, client, fmt.Sprintf("cm-c-%d", i), "post-c", author.ID, "hi", true, now)
	}
	for i := 0; i < 3; i++ {
		// Unapproved comments still count towards popularity.
		seedComment(t, client, fmt.Sprintf("cm-b-%d", i), "post-b", author.ID, "hi", i == 0, now)
	}
	for i := 0; i < 5; i++ {
		seedComment(t, client, fmt.Sprintf("cm-d-%d", i), "post-d", author.ID, "hi", true, now)
	}

	posts, err := client.Posts.PopularPosts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "post-b", posts[0].ID)
	// Tie broken by id ascending.
	assert.Equal(t, "post-a", posts[1].ID)
	assert.Equal(t, "post-c", posts[2].ID)

	// comments_count still only counts approved comments.
	assert.Equal(t, 1, posts[0].CommentsCount)
}

func TestPostUpdatePartial(t *testing.T) {
	client, db := newTestClient(t)
	ctx := context.Background()

	author := seedUser(t, db, "user-1", "alice")
	now := time.Now().UTC().Truncate(time.Second)
	seedPost(t, client, "post-1", author.ID, "", "Original title", entity.PostStatusDraft, now)

	require.NoError(t, client.Posts.UpdatePost(ctx, entity.Post{
		ID:     "post-1",
		Status: entity.PostStatusPublished,
	}))

	got, err := client.Posts.GetPostByID(ctx, "post-1", false)
	require.NoError(t, err)
	assert.Equal(t, "Original title", got.Title)
	assert.Equal(t, entity.PostStatusPublished, got.Status)

	err = client.Posts.UpdatePost(ctx, entity.Post{ID: "missing", Title: "x"})
	assert.ErrorIs(t, err, blogs.ErrPostNotFound)
}

func TestPostDeleteCascades(t *testing.T) {
	client, db := newTestClient(t)
	ctx := context.Background()

	author := seedUser(t, db, "user-1", "alice")
	now := time.Now().UTC().Truncate(time.Second)
	seedPost(t, client, "post-1", author.ID, "", "Doomed", entity.PostStatusPublished, now)
	seedComment(t, client, "cm-1", "post-1", author.ID, "first", true, now)

	require.NoError(t, client.Posts.DeletePost(ctx, "post-1"))

	_, err := client.Posts.GetPostByID(ctx, "post-1", false)
	assert.ErrorIs(t, err, blogs.ErrPostNotFound)

	_, err = client.Comments.GetCommentByID(ctx, "cm-1", false)
	assert.ErrorIs(t, err, blogs.ErrCommentNotFound)
}

func TestCommentListing(t *testing.T) {
	client, db := newTestClient(t)
	ctx := context.Background()

	author := seedUser(t, db, "user-1", "alice")
	now := time.Now().UTC().Truncate(time.Second)
	seedPost(t, client, "post-1", author.ID, "", "Post", entity.PostStatusPublished, now)

	seedComment(t, client, "cm-1", "post-1", author.ID, "oldest", true, now)
	seedComment(t, client, "cm-2", "post-1", author.ID, "middle", false, now.Add(time.Second))
	seedComment(t, client, "cm-3", "post-1", author.ID, "newest", true, now.Add(2*time.Second))

	// Approved-only base listing.
	comments, count, err := client.Comments.ListComments(ctx, blogs.CommentFilter{}, true, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, comments, 2)
	assert.Equal(t, "cm-3", comments[0].ID)

	// Asking for unapproved on top of the approved base yields nothing.
	unapproved := false
	comments, count, err = client.Comments.ListComments(ctx, blogs.CommentFilter{IsApproved: &unapproved}, true, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Empty(t, comments)

	// Per-post listing reads oldest-first.
	comments, count, err = client.Comments.ListCommentsByPost(ctx, "post-1", true, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, comments, 2)
	assert.Equal(t, "cm-1", comments[0].ID)
	assert.Equal(t, "alice", comments[0].Author.Username)

	_, err = client.Comments.GetCommentByID(ctx, "cm-2", true)
	assert.ErrorIs(t, err, blogs.ErrCommentNotFound)

	got, err := client.Comments.GetCommentByID(ctx, "cm-2", false)
	require.NoError(t, err)
	assert.False(t, got.IsApproved)
}

func TestListCommentsByPostIDs(t *testing.T) {
	client, db := newTestClient(t)
	ctx := context.Background()

	author := seedUser(t, db, "user-1", "alice")
	now := time.Now().UTC().Truncate(time.Second)
	seedPost(t, client, "post-1", author.ID, "", "First", entity.PostStatusPublished, now)
	seedPost(t, client, "post-2", author.ID, "", "Second", entity.PostStatusPublished, now)

	seedComment(t, client, "cm-1", "post-1", author.ID, "a", true, now)
	seedComment(t, client, "cm-2", "post-1", author.ID, "b", false, now.Add(time.Second))
	seedComment(t, client, "cm-3", "post-2", author.ID, "c", true, now)

	grouped, err := client.Comments.ListCommentsByPostIDs(ctx, []string{"post-1", "post-2", "post-3"})
	require.NoError(t, err)

	require.Len(t, grouped["post-1"], 2)
	assert.Equal(t, "cm-1", grouped["post-1"][0].ID)
	require.Len(t, grouped["post-2"], 1)
	assert.Empty(t, grouped["post-3"])

	grouped, err = client.Comments.ListCommentsByPostIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, grouped)
}

func TestCommentUpdateAndDelete(t *testing.T) {
	client, db := newTestClient(t)
	ctx := context.Background()

	author := seedUser(t, db, "user-1", "alice")
	now := time.Now().UTC().Truncate(time.Second)
	seedPost(t, client, "post-1", author.ID, "", "Post", entity.PostStatusPublished, now)
	seedComment(t, client, "cm-1", "post-1", author.ID, "typo", true, now)

	require.NoError(t, client.Comments.UpdateComment(ctx, "cm-1", "fixed"))
	got, err := client.Comments.GetCommentByID(ctx, "cm-1", false)
	require.NoError(t, err)
	assert.Equal(t, "fixed", got.Content)

	require.NoError(t, client.Comments.DeleteComment(ctx, "cm-1"))
	assert.ErrorIs(t, client.Comments.DeleteComment(ctx, "cm-1"), blogs.ErrCommentNotFound)
}
