package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pg/pg/v10"
)

// Comments returns all comments with their authors and posts, newest first.
func (r *Repository) Comments(ctx context.Context) ([]Comment, error) {
	var comments []Comment
	err := r.db.ModelContext(ctx, &comments).
		Relation("Author").
		Relation("Post").
		OrderExpr(`"t"."createdAt" DESC, "t"."commentId" DESC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}

	return comments, nil
}

// CommentsByPostID returns comments of a post in the order they were written.
func (r *Repository) CommentsByPostID(ctx context.Context, postID int) ([]Comment, error) {
	var comments []Comment
	err := r.db.ModelContext(ctx, &comments).
		Relation("Author").
		Where(`"t"."postId" = ?`, postID).
		OrderExpr(`"t"."createdAt" ASC, "t"."commentId" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query comments by post: %w", err)
	}

	return comments, nil
}

func (r *Repository) CommentByID(ctx context.Context, commentID int) (*Comment, error) {
	comment := &Comment{}
	err := r.db.ModelContext(ctx, comment).
		Relation("Author").
		Relation("Post").
		Where(`"t"."commentId" = ?`, commentID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get comment by id: %w", err)
	}

	return comment, nil
}

func (r *Repository) CreateComment(ctx context.Context, comment *Comment) (*Comment, error) {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	if _, err := r.db.ModelContext(ctx, comment).Insert(); err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", mapError(err))
	}

	return r.CommentByID(ctx, comment.ID)
}

// UpdateComment rewrites content and post of the comment. It returns nil, nil when the comment does not exist.
func (r *Repository) UpdateComment(ctx context.Context, comment *Comment) (*Comment, error) {
	res, err := r.db.ModelContext(ctx, comment).
		Column(Columns.Comment.Content, Columns.Comment.PostID).
		WherePK().
		Update()

	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", mapError(err))
	}

	if res.RowsAffected() == 0 {
		return nil, nil
	}

	return r.CommentByID(ctx, comment.ID)
}

func (r *Repository) DeleteComment(ctx context.Context, commentID int) (bool, error) {
	res, err := r.db.ModelContext(ctx, &Comment{ID: commentID}).
		WherePK().
		Delete()

	if err != nil {
		return false, fmt.Errorf("failed to delete comment: %w", mapError(err))
	}

	return res.RowsAffected() > 0, nil
}
