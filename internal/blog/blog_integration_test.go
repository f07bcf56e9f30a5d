//go:build integration

package blog_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/go-pg/pg/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daniilsolovey/blog-portal/internal/blog"
	"github.com/daniilsolovey/blog-portal/internal/db"
)

var testDB *pg.DB

func TestMain(m *testing.M) {
	var err error
	testDB, err = db.SetupTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to prepare test database: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()

	if err := testDB.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close database connection: %v\n", err)
	}

	os.Exit(code)
}

type managers struct {
	repo     *db.Repository
	posts    *blog.PostManager
	tags     *blog.TagManager
	comments *blog.CommentManager
}

func withTx(t *testing.T) (context.Context, managers) {
	t.Helper()
	ctx := context.Background()

	tx, err := testDB.Begin()
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Errorf("failed to rollback transaction: %v", err)
		}
	})

	repo := db.New(tx)
	return ctx, managers{
		repo:     repo,
		posts:    blog.NewPostManager(repo),
		tags:     blog.NewTagManager(repo),
		comments: blog.NewCommentManager(repo),
	}
}

func tagNames(p *blog.Post) []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}

func TestPostManager_GoRustScenario_Integration(t *testing.T) {
	ctx, m := withTx(t)

	goTag, err := m.tags.Create(ctx, "golang")
	require.NoError(t, err)
	rustTag, err := m.tags.Create(ctx, "rustlang")
	require.NoError(t, err)

	post, err := m.posts.Create(ctx, blog.PostInput{
		Title:    "Systems languages",
		Summary:  "A comparison",
		Content:  "Body",
		AuthorID: db.TestAliceID,
		TagIDs:   []int{goTag.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"golang"}, tagNames(post))

	post, err = m.posts.Update(ctx, post.ID, blog.PostInput{
		Title:   "Systems languages",
		Summary: "A comparison",
		Content: "Body",
		TagIDs:  []int{rustTag.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"rustlang"}, tagNames(post))
	assert.Equal(t, db.TestAliceID, post.AuthorID)

	ids, err := m.repo.PostTagIDs(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{rustTag.ID}, ids)
}

func TestPostManager_Create_DropsUnknownAndDuplicateTags_Integration(t *testing.T) {
	ctx, m := withTx(t)

	post, err := m.posts.Create(ctx, blog.PostInput{
		Title:    "Tagged",
		Summary:  "Summary",
		Content:  "Content",
		AuthorID: db.TestBobID,
		TagIDs:   []int{1, 1, 999, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"databases", "go"}, tagNames(post))
}

func TestPostManager_Update_ReplacesTagsDroppingUnknown_Integration(t *testing.T) {
	ctx, m := withTx(t)

	post, err := m.posts.Create(ctx, blog.PostInput{
		Title:    "Retagged",
		Summary:  "Summary",
		Content:  "Content",
		AuthorID: db.TestBobID,
		TagIDs:   []int{1, 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "rust"}, tagNames(post))

	post, err = m.posts.Update(ctx, post.ID, blog.PostInput{
		Title:   "Retagged",
		Summary: "Summary",
		Content: "Content",
		TagIDs:  []int{2, 999},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"rust"}, tagNames(post))

	ids, err := m.repo.PostTagIDs(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, ids)
}

func TestPostManager_Create_TitleLength_Integration(t *testing.T) {
	ctx, m := withTx(t)

	post, err := m.posts.Create(ctx, blog.PostInput{
		Title:    strings.Repeat("t", 100),
		Summary:  "Summary",
		Content:  "Content",
		AuthorID: db.TestBobID,
	})
	require.NoError(t, err)
	assert.NotNil(t, post.Tags)

	before, err := m.posts.Count(ctx, blog.PostFilter{})
	require.NoError(t, err)

	_, err = m.posts.Create(ctx, blog.PostInput{
		Title:    strings.Repeat("t", 101),
		Summary:  "Summary",
		Content:  "Content",
		AuthorID: db.TestBobID,
	})
	var ve *blog.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "title")

	after, err := m.posts.Count(ctx, blog.PostFilter{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPostManager_Create_UnknownAuthor_Integration(t *testing.T) {
	ctx, m := withTx(t)

	_, err := m.posts.Create(ctx, blog.PostInput{
		Title:    "t",
		Summary:  "s",
		Content:  "c",
		AuthorID: "99999999-9999-4999-8999-999999999999",
	})
	assert.ErrorIs(t, err, blog.ErrNotFound)
}

func TestPostManager_Update_NotFound_Integration(t *testing.T) {
	ctx, m := withTx(t)

	_, err := m.posts.Update(ctx, 999, blog.PostInput{Title: "t", Summary: "s", Content: "c"})
	assert.ErrorIs(t, err, blog.ErrNotFound)
}

func TestPostManager_RecordViewTwice_Integration(t *testing.T) {
	ctx, m := withTx(t)

	before, err := m.posts.GetByID(ctx, 2)
	require.NoError(t, err)

	_, err = m.posts.RecordView(ctx, 2)
	require.NoError(t, err)
	_, err = m.posts.RecordView(ctx, 2)
	require.NoError(t, err)

	after, err := m.posts.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, before.ViewCount+2, after.ViewCount)

	_, err = m.posts.RecordView(ctx, 999)
	assert.ErrorIs(t, err, blog.ErrNotFound)
}

func TestPostManager_Details_Integration(t *testing.T) {
	ctx, m := withTx(t)

	details, err := m.posts.Details(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, details.ViewCount)
	assert.Len(t, details.Comments, 2)
	assert.Equal(t, []string{"go", "web"}, tagNames(&details.Post))

	details, err = m.posts.Details(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, details.ViewCount)

	stored, err := m.posts.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, details.ViewCount, stored.ViewCount)

	list, err := m.posts.ListAll(ctx, blog.PostFilter{})
	require.NoError(t, err)
	for _, p := range list {
		if p.ID == 1 {
			assert.Equal(t, 2, p.ViewCount)
		}
	}

	_, err = m.posts.Details(ctx, 999)
	assert.ErrorIs(t, err, blog.ErrNotFound)
}

func TestTagManager_DeleteCascade_Integration(t *testing.T) {
	ctx, m := withTx(t)

	require.NoError(t, m.tags.Delete(ctx, 4))

	post, err := m.posts.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, tagNames(post))

	assert.ErrorIs(t, m.tags.Delete(ctx, 4), blog.ErrNotFound)
}

func TestPostManager_DeleteCascade_Integration(t *testing.T) {
	ctx, m := withTx(t)

	require.NoError(t, m.posts.Delete(ctx, 1))

	_, err := m.posts.GetByID(ctx, 1)
	assert.ErrorIs(t, err, blog.ErrNotFound)

	comments, err := m.comments.ListByPost(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, comments)

	tags, err := m.tags.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 4)
}

func TestTagManager_Update_Integration(t *testing.T) {
	ctx, m := withTx(t)

	_, err := m.tags.Update(ctx, 1, blog.TagInput{ID: 2, Name: "changed"})
	var ve *blog.ValidationError
	require.ErrorAs(t, err, &ve)

	tag, err := m.tags.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "go", tag.Name)

	_, err = m.tags.Update(ctx, 1, blog.TagInput{Name: "golang"})
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "id")

	tag, err = m.tags.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "go", tag.Name)

	tag, err = m.tags.Update(ctx, 1, blog.TagInput{ID: 1, Name: "golang"})
	require.NoError(t, err)
	assert.Equal(t, "golang", tag.Name)

	_, err = m.tags.Update(ctx, 1, blog.TagInput{ID: 1, Name: "rust"})
	assert.ErrorIs(t, err, blog.ErrConflict)

	_, err = m.tags.Update(ctx, 999, blog.TagInput{ID: 999, Name: "x"})
	assert.ErrorIs(t, err, blog.ErrNotFound)

	_, err = m.tags.Create(ctx, "web")
	assert.ErrorIs(t, err, blog.ErrConflict)
}

func TestCommentManager_Integration(t *testing.T) {
	ctx, m := withTx(t)

	_, err := m.comments.Create(ctx, blog.CommentInput{Content: "hi", PostID: 999, AuthorID: db.TestBobID})
	assert.ErrorIs(t, err, blog.ErrNotFound)

	c, err := m.comments.Create(ctx, blog.CommentInput{Content: "<b>hi</b><script>x()</script>", PostID: 3, AuthorID: db.TestBobID})
	require.NoError(t, err)
	assert.Equal(t, "<b>hi</b>", c.Content)
	assert.Equal(t, "bob", c.Author.UserName)

	_, err = m.comments.Update(ctx, c.ID, blog.CommentInput{Content: "no id", PostID: 2})
	var ve *blog.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "id")

	c, err = m.comments.Update(ctx, c.ID, blog.CommentInput{ID: c.ID, Content: "moved", PostID: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, c.PostID)

	c, err = m.comments.Update(ctx, c.ID, blog.CommentInput{ID: c.ID, Content: "kept post"})
	require.NoError(t, err)
	assert.Equal(t, 2, c.PostID)

	_, err = m.comments.Update(ctx, 999, blog.CommentInput{ID: 999, Content: "x", PostID: 1})
	assert.ErrorIs(t, err, blog.ErrNotFound)

	require.NoError(t, m.comments.Delete(ctx, c.ID))
	assert.ErrorIs(t, m.comments.Delete(ctx, c.ID), blog.ErrNotFound)
}
