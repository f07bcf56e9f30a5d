package blog

import (
	"context"
	"fmt"
	"strings"

	"github.com/daniilsolovey/blog-portal/internal/db"
)

type TagManager struct {
	db *db.Repository
}

func NewTagManager(repo *db.Repository) *TagManager {
	return &TagManager{
		db: repo,
	}
}

var _ TagService = (*TagManager)(nil)

func (m *TagManager) ListAll(ctx context.Context) ([]Tag, error) {
	list, err := m.db.Tags(ctx)
	if err != nil {
		return nil, fmt.Errorf("db get tags: %w", err)
	}

	return NewTags(list), nil
}

func (m *TagManager) GetByID(ctx context.Context, id int) (*Tag, error) {
	tag, err := m.db.TagByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("db get tag by id: %w", err)
	} else if tag == nil {
		return nil, fmt.Errorf("tag %d: %w", id, ErrNotFound)
	}

	t := NewTag(tag)
	return &t, nil
}

func (m *TagManager) Create(ctx context.Context, name string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if err := validateTagName(name); err != nil {
		return nil, err
	}

	var tag *db.Tag
	err := m.db.InTransaction(ctx, func(tx *db.Repository) error {
		var err error
		tag, err = tx.CreateTag(ctx, &db.Tag{Name: name})
		return err
	})
	if err != nil {
		return nil, conflict(fmt.Errorf("db create tag: %w", err))
	}

	t := NewTag(tag)
	return &t, nil
}

// Update renames the tag. in.ID must equal id; a mismatch is rejected before storage is touched.
func (m *TagManager) Update(ctx context.Context, id int, in TagInput) (*Tag, error) {
	if in.ID != id {
		return nil, NewValidationError("id", fmt.Sprintf("id %d does not match tag %d", in.ID, id))
	}

	name := strings.TrimSpace(in.Name)
	if err := validateTagName(name); err != nil {
		return nil, err
	}

	var tag *db.Tag
	err := m.db.InTransaction(ctx, func(tx *db.Repository) error {
		var err error
		tag, err = tx.UpdateTag(ctx, &db.Tag{ID: id, Name: name})
		if err != nil {
			return err
		} else if tag == nil {
			return fmt.Errorf("tag %d: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, conflict(fmt.Errorf("db update tag: %w", err))
	}

	t := NewTag(tag)
	return &t, nil
}

// Delete removes the tag and detaches it from every post.
func (m *TagManager) Delete(ctx context.Context, id int) error {
	deleted, err := m.db.DeleteTag(ctx, id)
	if err != nil {
		return conflict(fmt.Errorf("db delete tag: %w", err))
	} else if !deleted {
		return fmt.Errorf("tag %d: %w", id, ErrNotFound)
	}

	return nil
}
