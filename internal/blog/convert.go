package blog

import "github.com/daniilsolovey/blog-portal/internal/db"

func NewUser(u *db.User) User {
	return User{User: *u}
}

func NewRole(r *db.Role) Role {
	return Role{Role: *r}
}

func NewTag(t *db.Tag) Tag {
	return Tag{Tag: *t}
}

func NewPost(p *db.Post) Post {
	return Post{Post: *p}
}

func NewComment(c *db.Comment) Comment {
	return Comment{Comment: *c}
}

func NewRoles(in []db.Role) []Role {
	out := make([]Role, len(in))
	for i := range in {
		out[i] = NewRole(&in[i])
	}
	return out
}

func NewTags(in []db.Tag) []Tag {
	out := make([]Tag, len(in))
	for i := range in {
		out[i] = NewTag(&in[i])
	}
	return out
}

func NewPosts(in []db.Post) []Post {
	out := make([]Post, len(in))
	for i := range in {
		out[i] = NewPost(&in[i])
	}
	return out
}

func NewComments(in []db.Comment) []Comment {
	out := make([]Comment, len(in))
	for i := range in {
		out[i] = NewComment(&in[i])
	}
	return out
}

func (f PostFilter) dbFilter() db.PostFilter {
	return db.PostFilter{
		TagID:    f.TagID,
		AuthorID: f.AuthorID,
		Page:     f.Page,
		PageSize: f.PageSize,
	}
}
