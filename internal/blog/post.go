package blog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/daniilsolovey/blog-portal/internal/db"
	"github.com/daniilsolovey/blog-portal/internal/metrics"
)

type PostManager struct {
	db *db.Repository
}

func NewPostManager(repo *db.Repository) *PostManager {
	return &PostManager{
		db: repo,
	}
}

var _ PostService = (*PostManager)(nil)

// ListAll returns posts matching filter with their authors and tags, newest first.
func (m *PostManager) ListAll(ctx context.Context, filter PostFilter) ([]Post, error) {
	list, err := m.db.Posts(ctx, filter.dbFilter())
	if err != nil {
		return nil, fmt.Errorf("db get posts: %w", err)
	}

	posts := Posts(NewPosts(list))
	if err := fillTags(ctx, m.db, posts); err != nil {
		return nil, fmt.Errorf("failed to attach tags to posts: %w", err)
	}

	return posts, nil
}

func (m *PostManager) Count(ctx context.Context, filter PostFilter) (int, error) {
	count, err := m.db.PostCount(ctx, filter.dbFilter())
	if err != nil {
		return 0, fmt.Errorf("db get posts count: %w", err)
	}

	return count, nil
}

func (m *PostManager) GetByID(ctx context.Context, id int) (*Post, error) {
	return postByID(ctx, m.db, id)
}

// Details returns the post with its comments and records one view. The reads and the
// increment share a transaction, so a failed read leaves the counter unchanged.
func (m *PostManager) Details(ctx context.Context, id int) (*PostDetails, error) {
	var details *PostDetails
	err := m.db.InTransaction(ctx, func(tx *db.Repository) error {
		post, err := postByID(ctx, tx, id)
		if err != nil {
			return err
		}

		comments, err := tx.CommentsByPostID(ctx, id)
		if err != nil {
			return fmt.Errorf("db get post comments: %w", err)
		}

		views, err := incrementViews(ctx, tx, id)
		if err != nil {
			return err
		}
		post.ViewCount = views

		details = &PostDetails{Post: *post, Comments: NewComments(comments)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PostViews.Inc()

	return details, nil
}

// Create stores the post and attaches the requested tags that exist.
func (m *PostManager) Create(ctx context.Context, in PostInput) (*Post, error) {
	in = normalizePost(in)
	if err := validatePost(in); err != nil {
		return nil, err
	}

	var post *Post
	err := m.db.InTransaction(ctx, func(tx *db.Repository) error {
		if err := ensureUser(ctx, tx, in.AuthorID); err != nil {
			return err
		}

		created, err := tx.CreatePost(ctx, &db.Post{
			Title:    in.Title,
			Summary:  in.Summary,
			Content:  in.Content,
			AuthorID: in.AuthorID,
		})
		if err != nil {
			return fmt.Errorf("db create post: %w", err)
		}

		if err := syncPostTags(ctx, tx, created.ID, in.TagIDs); err != nil {
			return err
		}

		post, err = postByID(ctx, tx, created.ID)
		return err
	})
	if err != nil {
		return nil, conflict(err)
	}

	return post, nil
}

// Update rewrites the post and reconciles its tags with in.TagIDs. The author never changes.
func (m *PostManager) Update(ctx context.Context, id int, in PostInput) (*Post, error) {
	in = normalizePost(in)
	if err := validatePost(in); err != nil {
		return nil, err
	}

	var post *Post
	err := m.db.InTransaction(ctx, func(tx *db.Repository) error {
		updated, err := tx.UpdatePost(ctx, &db.Post{
			ID:      id,
			Title:   in.Title,
			Summary: in.Summary,
			Content: in.Content,
		})
		if err != nil {
			return fmt.Errorf("db update post: %w", err)
		} else if updated == nil {
			return fmt.Errorf("post %d: %w", id, ErrNotFound)
		}

		if err := syncPostTags(ctx, tx, id, in.TagIDs); err != nil {
			return err
		}

		post, err = postByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, conflict(err)
	}

	return post, nil
}

func (m *PostManager) Delete(ctx context.Context, id int) error {
	deleted, err := m.db.DeletePost(ctx, id)
	if err != nil {
		return conflict(fmt.Errorf("db delete post: %w", err))
	} else if !deleted {
		return fmt.Errorf("post %d: %w", id, ErrNotFound)
	}

	return nil
}

// RecordView increments the view counter by one and returns the new value.
func (m *PostManager) RecordView(ctx context.Context, id int) (int, error) {
	views, err := incrementViews(ctx, m.db, id)
	if err != nil {
		return 0, err
	}

	metrics.PostViews.Inc()

	return views, nil
}

func incrementViews(ctx context.Context, repo *db.Repository, id int) (int, error) {
	views, err := repo.IncrementPostViews(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("db record post view: %w", err)
	} else if views == 0 {
		return 0, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}

	return views, nil
}

func postByID(ctx context.Context, repo *db.Repository, id int) (*Post, error) {
	dbPost, err := repo.PostByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get post by id: %w", err)
	} else if dbPost == nil {
		return nil, fmt.Errorf("post %d: %w", id, ErrNotFound)
	}

	posts := Posts{NewPost(dbPost)}
	if err := fillTags(ctx, repo, posts); err != nil {
		return nil, fmt.Errorf("failed to attach tags to post: %w", err)
	}

	return &posts[0], nil
}

func fillTags(ctx context.Context, repo *db.Repository, posts Posts) error {
	if len(posts) == 0 {
		return nil
	}

	rows, err := repo.PostTagsByPostIDs(ctx, posts.IDs())
	if err != nil {
		return err
	}

	posts.SetTags(rows)

	return nil
}

// syncPostTags brings the post's tag rows in line with desired, touching only the difference.
func syncPostTags(ctx context.Context, tx *db.Repository, postID int, desired []int) error {
	current, err := tx.PostTagIDs(ctx, postID)
	if err != nil {
		return fmt.Errorf("db get post tags: %w", err)
	}

	valid, err := tx.TagIDsByIDs(ctx, desired)
	if err != nil {
		return fmt.Errorf("db get tags: %w", err)
	}

	toAdd, toRemove := Reconcile(current, desired, valid)

	if err := tx.RemovePostTags(ctx, postID, toRemove); err != nil {
		return fmt.Errorf("db remove post tags: %w", err)
	}

	if err := tx.AddPostTags(ctx, postID, toAdd); err != nil {
		return fmt.Errorf("db add post tags: %w", err)
	}

	return nil
}

func ensureUser(ctx context.Context, repo *db.Repository, userID string) error {
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("user %q: %w", userID, ErrNotFound)
	}

	user, err := repo.UserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("db get user: %w", err)
	} else if user == nil {
		return fmt.Errorf("user %q: %w", userID, ErrNotFound)
	}

	return nil
}

// conflict translates storage constraint violations into ErrConflict.
func conflict(err error) error {
	if errors.Is(err, db.ErrConflict) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
