package rpc

import (
	"context"
	"errors"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/blog-portal/internal/blog"
)

// PostService provides read-only RPC methods for posts.
type PostService struct {
	zenrpc.Service
	posts blog.PostService
}

func NewPostService(posts blog.PostService) *PostService {
	return &PostService{posts: posts}
}

// List retrieves posts with optional filtering by tagId and authorId, with pagination.
// Returns PostSummary (without content) sorted by createdAt DESC.
//
//zenrpc:filter tagId, authorId, page and pageSize
//zenrpc:return list of post summaries
//zenrpc:400 invalid filter
//zenrpc:500 internal server error
func (s *PostService) List(ctx context.Context, filter PostFilter) ([]PostSummary, error) {
	f := filter.ToModel()
	if err := validateFilter(f); err != nil {
		return nil, err
	}

	posts, err := s.posts.ListAll(ctx, f)
	if err != nil {
		return nil, err
	}

	return Map(posts, NewPostSummary), nil
}

// Count returns the count of posts matching the optional tagId and authorId filters.
//
//zenrpc:filter tagId and authorId
//zenrpc:return count of posts
//zenrpc:500 internal server error
func (s *PostService) Count(ctx context.Context, filter PostFilter) (int, error) {
	return s.posts.Count(ctx, blog.PostFilter{TagID: filter.TagID, AuthorID: filter.AuthorID})
}

// ByID retrieves a single post by ID with full content and tags. Views are not counted.
//
//zenrpc:id post numeric ID
//zenrpc:return post with full content
//zenrpc:400 id must be positive
//zenrpc:404 post not found
//zenrpc:500 internal server error
func (s *PostService) ByID(ctx context.Context, id int) (*Post, error) {
	if id <= 0 {
		return nil, zenrpc.NewStringError(400, "id must be positive")
	}

	post, err := s.posts.GetByID(ctx, id)
	if errors.Is(err, blog.ErrNotFound) {
		return nil, zenrpc.NewStringError(404, "post not found")
	} else if err != nil {
		return nil, err
	}

	result := NewPost(*post)
	return &result, nil
}

func validateFilter(f blog.PostFilter) error {
	switch {
	case f.TagID != nil && *f.TagID <= 0:
		return zenrpc.NewStringError(400, "tagId must be positive")
	case f.Page < 1:
		return zenrpc.NewStringError(400, "page must be positive")
	case f.PageSize < 1 || f.PageSize > maxPageSize:
		return zenrpc.NewStringError(400, "pageSize must be between 1 and 100")
	}

	return nil
}
