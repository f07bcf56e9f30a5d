package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pg/pg/v10"
)

func (r *Repository) Tags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	err := r.db.ModelContext(ctx, &tags).
		OrderExpr(`"name" ASC`).
		Select()

	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}

	return tags, nil
}

func (r *Repository) TagByID(ctx context.Context, tagID int) (*Tag, error) {
	tag := &Tag{}
	err := r.db.ModelContext(ctx, tag).
		Where(`"t"."tagId" = ?`, tagID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get tag by id: %w", err)
	}

	return tag, nil
}

// TagIDsByIDs returns the subset of tagIDs that exist.
func (r *Repository) TagIDsByIDs(ctx context.Context, tagIDs []int) ([]int, error) {
	if len(tagIDs) == 0 {
		return []int{}, nil
	}

	var ids []int
	err := r.db.ModelContext(ctx, (*Tag)(nil)).
		ColumnExpr(`"t"."tagId"`).
		Where(`"t"."tagId" IN (?)`, pg.In(tagIDs)).
		Select(&ids)

	if err != nil {
		return nil, fmt.Errorf("failed to query tag ids: %w", err)
	}

	return ids, nil
}

func (r *Repository) CreateTag(ctx context.Context, tag *Tag) (*Tag, error) {
	if _, err := r.db.ModelContext(ctx, tag).Insert(); err != nil {
		return nil, fmt.Errorf("failed to insert tag: %w", mapError(err))
	}

	return tag, nil
}

// UpdateTag renames the tag. It returns nil, nil when the tag does not exist.
func (r *Repository) UpdateTag(ctx context.Context, tag *Tag) (*Tag, error) {
	res, err := r.db.ModelContext(ctx, tag).
		Column(Columns.Tag.Name).
		WherePK().
		Update()

	if err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", mapError(err))
	}

	if res.RowsAffected() == 0 {
		return nil, nil
	}

	return tag, nil
}

// DeleteTag removes the tag together with its post associations.
func (r *Repository) DeleteTag(ctx context.Context, tagID int) (bool, error) {
	res, err := r.db.ModelContext(ctx, &Tag{ID: tagID}).
		WherePK().
		Delete()

	if err != nil {
		return false, fmt.Errorf("failed to delete tag: %w", mapError(err))
	}

	return res.RowsAffected() > 0, nil
}
