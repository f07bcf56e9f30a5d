package blog

import (
	"context"
	"fmt"

	"github.com/daniilsolovey/blog-portal/internal/db"
)

type CommentManager struct {
	db *db.Repository
}

func NewCommentManager(repo *db.Repository) *CommentManager {
	return &CommentManager{
		db: repo,
	}
}

var _ CommentService = (*CommentManager)(nil)

func (m *CommentManager) ListAll(ctx context.Context) ([]Comment, error) {
	list, err := m.db.Comments(ctx)
	if err != nil {
		return nil, fmt.Errorf("db get comments: %w", err)
	}

	return NewComments(list), nil
}

func (m *CommentManager) ListByPost(ctx context.Context, postID int) ([]Comment, error) {
	list, err := m.db.CommentsByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("db get comments by post: %w", err)
	}

	return NewComments(list), nil
}

func (m *CommentManager) GetByID(ctx context.Context, id int) (*Comment, error) {
	comment, err := m.db.CommentByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get comment by id: %w", err)
	} else if comment == nil {
		return nil, fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}

	c := NewComment(comment)
	return &c, nil
}

// Create stores a comment on an existing post.
func (m *CommentManager) Create(ctx context.Context, in CommentInput) (*Comment, error) {
	in.Content = sanitize(in.Content)
	if err := validateComment(in); err != nil {
		return nil, err
	}

	var comment *db.Comment
	err := m.db.InTransaction(ctx, func(tx *db.Repository) error {
		if err := ensurePost(ctx, tx, in.PostID); err != nil {
			return err
		}

		if err := ensureUser(ctx, tx, in.AuthorID); err != nil {
			return err
		}

		var err error
		comment, err = tx.CreateComment(ctx, &db.Comment{
			Content:  in.Content,
			PostID:   in.PostID,
			AuthorID: in.AuthorID,
		})
		if err != nil {
			return fmt.Errorf("db create comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, conflict(err)
	}

	c := NewComment(comment)
	return &c, nil
}

// Update rewrites content and post of the comment. in.ID must equal id. PostID 0 keeps the current post.
func (m *CommentManager) Update(ctx context.Context, id int, in CommentInput) (*Comment, error) {
	if in.ID != id {
		return nil, NewValidationError("id", fmt.Sprintf("id %d does not match comment %d", in.ID, id))
	}

	in.Content = sanitize(in.Content)

	var comment *db.Comment
	err := m.db.InTransaction(ctx, func(tx *db.Repository) error {
		current, err := tx.CommentByID(ctx, id)
		if err != nil {
			return fmt.Errorf("db get comment by id: %w", err)
		} else if current == nil {
			return fmt.Errorf("comment %d: %w", id, ErrNotFound)
		}

		if in.PostID == 0 {
			in.PostID = current.PostID
		}

		if err := validateComment(in); err != nil {
			return err
		}

		if in.PostID != current.PostID {
			if err := ensurePost(ctx, tx, in.PostID); err != nil {
				return err
			}
		}

		comment, err = tx.UpdateComment(ctx, &db.Comment{ID: id, Content: in.Content, PostID: in.PostID})
		if err != nil {
			return fmt.Errorf("db update comment: %w", err)
		} else if comment == nil {
			return fmt.Errorf("comment %d: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, conflict(err)
	}

	c := NewComment(comment)
	return &c, nil
}

func (m *CommentManager) Delete(ctx context.Context, id int) error {
	deleted, err := m.db.DeleteComment(ctx, id)
	if err != nil {
		return fmt.Errorf("db delete comment: %w", err)
	} else if !deleted {
		return fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}

	return nil
}

func ensurePost(ctx context.Context, repo *db.Repository, postID int) error {
	post, err := repo.PostByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("db get post by id: %w", err)
	} else if post == nil {
		return fmt.Errorf("post %d: %w", postID, ErrNotFound)
	}

	return nil
}
