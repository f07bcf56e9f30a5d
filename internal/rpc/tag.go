package rpc

import (
	"context"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/blog-portal/internal/blog"
)

//go:generate zenrpc

// TagService provides RPC methods for tags.
type TagService struct {
	zenrpc.Service
	tags blog.TagService
}

func NewTagService(tags blog.TagService) *TagService {
	return &TagService{tags: tags}
}

// List retrieves all tags ordered by name.
//
//zenrpc:return list of tags
//zenrpc:500 internal server error
func (s *TagService) List(ctx context.Context) ([]Tag, error) {
	tags, err := s.tags.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return Map(tags, NewTag), nil
}
