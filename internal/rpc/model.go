package rpc

import (
	"time"

	"github.com/daniilsolovey/blog-portal/internal/blog"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type PostFilter struct {
	//tagId optional tag filter
	TagID *int `json:"tagId,omitempty"`
	//authorId optional author filter
	AuthorID *string `json:"authorId,omitempty"`
	//page=1 page number (1-based)
	Page *int `json:"page,omitempty"`
	//pageSize=10 items per page
	PageSize *int `json:"pageSize,omitempty"`
}

func (f PostFilter) ToModel() blog.PostFilter {
	filter := blog.PostFilter{
		TagID:    f.TagID,
		AuthorID: f.AuthorID,
		Page:     1,
		PageSize: defaultPageSize,
	}
	if f.Page != nil {
		filter.Page = *f.Page
	}
	if f.PageSize != nil {
		filter.PageSize = *f.PageSize
	}

	return filter
}

type Author struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

type Tag struct {
	TagID int    `json:"tagId"`
	Name  string `json:"name"`
}

type Post struct {
	PostID    int       `json:"postId"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	ViewCount int       `json:"viewCount"`
	AuthorID  string    `json:"authorId"`
	Author    *Author   `json:"author,omitempty"`
	Tags      []Tag     `json:"tags"`
}

type PostSummary struct {
	PostID    int       `json:"postId"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
	ViewCount int       `json:"viewCount"`
	AuthorID  string    `json:"authorId"`
	Author    *Author   `json:"author,omitempty"`
	Tags      []Tag     `json:"tags"`
}
