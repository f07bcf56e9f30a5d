package rpc

import (
	"github.com/daniilsolovey/blog-portal/internal/blog"
	"github.com/daniilsolovey/blog-portal/internal/db"
)

func Map[From, To any](list []From, converter func(From) To) []To {
	result := make([]To, len(list))
	for i := range list {
		result[i] = converter(list[i])
	}
	return result
}

func NewAuthor(u *db.User) *Author {
	if u == nil {
		return nil
	}

	return &Author{
		UserID:   u.ID,
		UserName: u.UserName,
	}
}

func NewTag(t blog.Tag) Tag {
	return Tag{
		TagID: t.ID,
		Name:  t.Name,
	}
}

func NewPost(p blog.Post) Post {
	return Post{
		PostID:    p.ID,
		Title:     p.Title,
		Summary:   p.Summary,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		ViewCount: p.ViewCount,
		AuthorID:  p.AuthorID,
		Author:    NewAuthor(p.Author),
		Tags:      Map(p.Tags, NewTag),
	}
}

func NewPostSummary(p blog.Post) PostSummary {
	return PostSummary{
		PostID:    p.ID,
		Title:     p.Title,
		Summary:   p.Summary,
		CreatedAt: p.CreatedAt,
		ViewCount: p.ViewCount,
		AuthorID:  p.AuthorID,
		Author:    NewAuthor(p.Author),
		Tags:      Map(p.Tags, NewTag),
	}
}
