package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

// PostFilter narrows post listings. Zero values disable the corresponding condition,
// PageSize 0 returns every matching post.
type PostFilter struct {
	TagID    *int
	AuthorID *string
	Page     int
	PageSize int
}

func (f PostFilter) apply(query *orm.Query) *orm.Query {
	if f.TagID != nil {
		query = query.Where(`EXISTS (SELECT 1 FROM "postTags" pt WHERE pt."postId" = "t"."postId" AND pt."tagId" = ?)`, *f.TagID)
	}

	if f.AuthorID != nil {
		query = query.Where(`"t"."authorId" = ?`, *f.AuthorID)
	}

	return query
}

// Posts returns posts with their authors, newest first.
func (r *Repository) Posts(ctx context.Context, filter PostFilter) ([]Post, error) {
	var posts []Post
	query := filter.apply(r.db.ModelContext(ctx, &posts).Relation("Author"))

	if filter.PageSize > 0 {
		page := max(filter.Page, 1)
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	err := query.
		OrderExpr(`"t"."createdAt" DESC, "t"."postId" DESC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}

	return posts, nil
}

func (r *Repository) PostCount(ctx context.Context, filter PostFilter) (int, error) {
	count, err := filter.apply(r.db.ModelContext(ctx, (*Post)(nil))).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to get posts count: %w", err)
	}

	return count, nil
}

func (r *Repository) PostByID(ctx context.Context, postID int) (*Post, error) {
	post := &Post{}
	err := r.db.ModelContext(ctx, post).
		Relation("Author").
		Where(`"t"."postId" = ?`, postID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	return post, nil
}

// CreatePost inserts the post and returns it with the generated id and defaults.
func (r *Repository) CreatePost(ctx context.Context, post *Post) (*Post, error) {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ModelContext(ctx, post).
		Returning("*").
		Insert()

	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", mapError(err))
	}

	return post, nil
}

// UpdatePost rewrites title, summary and content. It returns nil, nil when the post does not exist.
func (r *Repository) UpdatePost(ctx context.Context, post *Post) (*Post, error) {
	res, err := r.db.ModelContext(ctx, post).
		Column(Columns.Post.Title, Columns.Post.Summary, Columns.Post.Content).
		WherePK().
		Update()

	if err != nil {
		return nil, fmt.Errorf("failed to update post: %w", mapError(err))
	}

	if res.RowsAffected() == 0 {
		return nil, nil
	}

	return r.PostByID(ctx, post.ID)
}

// DeletePost removes the post; tag associations and comments go with it.
func (r *Repository) DeletePost(ctx context.Context, postID int) (bool, error) {
	res, err := r.db.ModelContext(ctx, &Post{ID: postID}).
		WherePK().
		Delete()

	if err != nil {
		return false, fmt.Errorf("failed to delete post: %w", mapError(err))
	}

	return res.RowsAffected() > 0, nil
}

// IncrementPostViews adds one view to the post and returns the new counter.
// It returns 0 when the post does not exist.
func (r *Repository) IncrementPostViews(ctx context.Context, postID int) (int, error) {
	var views int
	_, err := r.db.QueryOneContext(ctx, pg.Scan(&views),
		`UPDATE "posts" SET "viewCount" = "viewCount" + 1 WHERE "postId" = ? RETURNING "viewCount"`, postID)

	if errors.Is(err, pg.ErrNoRows) {
		return 0, nil
	} else if err != nil {
		return 0, fmt.Errorf("failed to increment post views: %w", err)
	}

	return views, nil
}

// PostTagsByPostIDs returns association rows with their tags, ordered by tag name.
func (r *Repository) PostTagsByPostIDs(ctx context.Context, postIDs []int) ([]PostTag, error) {
	if len(postIDs) == 0 {
		return []PostTag{}, nil
	}

	var rows []PostTag
	err := r.db.ModelContext(ctx, &rows).
		Relation("Tag").
		Where(`"t"."postId" IN (?)`, pg.In(postIDs)).
		OrderExpr(`"tag"."name" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query post tags: %w", err)
	}

	return rows, nil
}

// PostTagIDs returns ids of tags attached to the post.
func (r *Repository) PostTagIDs(ctx context.Context, postID int) ([]int, error) {
	var ids []int
	err := r.db.ModelContext(ctx, (*PostTag)(nil)).
		ColumnExpr(`"t"."tagId"`).
		Where(`"t"."postId" = ?`, postID).
		Select(&ids)

	if err != nil {
		return nil, fmt.Errorf("failed to query post tag ids: %w", err)
	}

	return ids, nil
}

func (r *Repository) AddPostTags(ctx context.Context, postID int, tagIDs []int) error {
	if len(tagIDs) == 0 {
		return nil
	}

	rows := make([]PostTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, PostTag{PostID: postID, TagID: tagID})
	}

	if _, err := r.db.ModelContext(ctx, &rows).Insert(); err != nil {
		return fmt.Errorf("failed to insert post tags: %w", mapError(err))
	}

	return nil
}

func (r *Repository) RemovePostTags(ctx context.Context, postID int, tagIDs []int) error {
	if len(tagIDs) == 0 {
		return nil
	}

	_, err := r.db.ModelContext(ctx, (*PostTag)(nil)).
		Where(`"postId" = ?`, postID).
		Where(`"tagId" IN (?)`, pg.In(tagIDs)).
		Delete()

	if err != nil {
		return fmt.Errorf("failed to delete post tags: %w", err)
	}

	return nil
}
