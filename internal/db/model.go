// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"
)

var Columns = struct {
	Comment struct {
		ID, Content, CreatedAt, PostID, AuthorID string

		Post, Author string
	}
	GooseDbVersion struct {
		ID, VersionID, IsApplied, Tstamp string
	}
	Post struct {
		ID, Title, Summary, Content, CreatedAt, ViewCount, AuthorID string

		Author string
	}
	PostTag struct {
		PostID, TagID string

		Tag string
	}
	Role struct {
		ID, Name, Description string
	}
	Tag struct {
		ID, Name string
	}
	User struct {
		ID, UserName, Email, PasswordHash, CreatedAt string
	}
	UserRole struct {
		UserID, RoleID string

		Role string
	}
}{
	Comment: struct {
		ID, Content, CreatedAt, PostID, AuthorID string

		Post, Author string
	}{
		ID:        "commentId",
		Content:   "content",
		CreatedAt: "createdAt",
		PostID:    "postId",
		AuthorID:  "authorId",

		Post:   "Post",
		Author: "Author",
	},
	GooseDbVersion: struct {
		ID, VersionID, IsApplied, Tstamp string
	}{
		ID:        "id",
		VersionID: "version_id",
		IsApplied: "is_applied",
		Tstamp:    "tstamp",
	},
	Post: struct {
		ID, Title, Summary, Content, CreatedAt, ViewCount, AuthorID string

		Author string
	}{
		ID:        "postId",
		Title:     "title",
		Summary:   "summary",
		Content:   "content",
		CreatedAt: "createdAt",
		ViewCount: "viewCount",
		AuthorID:  "authorId",

		Author: "Author",
	},
	PostTag: struct {
		PostID, TagID string

		Tag string
	}{
		PostID: "postId",
		TagID:  "tagId",

		Tag: "Tag",
	},
	Role: struct {
		ID, Name, Description string
	}{
		ID:          "roleId",
		Name:        "name",
		Description: "description",
	},
	Tag: struct {
		ID, Name string
	}{
		ID:   "tagId",
		Name: "name",
	},
	User: struct {
		ID, UserName, Email, PasswordHash, CreatedAt string
	}{
		ID:           "userId",
		UserName:     "userName",
		Email:        "email",
		PasswordHash: "passwordHash",
		CreatedAt:    "createdAt",
	},
	UserRole: struct {
		UserID, RoleID string

		Role string
	}{
		UserID: "userId",
		RoleID: "roleId",

		Role: "Role",
	},
}

var Tables = struct {
	Comment struct {
		Name, Alias string
	}
	GooseDbVersion struct {
		Name, Alias string
	}
	Post struct {
		Name, Alias string
	}
	PostTag struct {
		Name, Alias string
	}
	Role struct {
		Name, Alias string
	}
	Tag struct {
		Name, Alias string
	}
	User struct {
		Name, Alias string
	}
	UserRole struct {
		Name, Alias string
	}
}{
	Comment: struct {
		Name, Alias string
	}{
		Name:  "comments",
		Alias: "t",
	},
	GooseDbVersion: struct {
		Name, Alias string
	}{
		Name:  "goose_db_version",
		Alias: "t",
	},
	Post: struct {
		Name, Alias string
	}{
		Name:  "posts",
		Alias: "t",
	},
	PostTag: struct {
		Name, Alias string
	}{
		Name:  "postTags",
		Alias: "t",
	},
	Role: struct {
		Name, Alias string
	}{
		Name:  "roles",
		Alias: "t",
	},
	Tag: struct {
		Name, Alias string
	}{
		Name:  "tags",
		Alias: "t",
	},
	User: struct {
		Name, Alias string
	}{
		Name:  "users",
		Alias: "t",
	},
	UserRole: struct {
		Name, Alias string
	}{
		Name:  "userRoles",
		Alias: "t",
	},
}

type Comment struct {
	tableName struct{} `pg:"comments,alias:t,discard_unknown_columns"`

	ID        int       `pg:"commentId,pk"`
	Content   string    `pg:"content,use_zero"`
	CreatedAt time.Time `pg:"createdAt,use_zero"`
	PostID    int       `pg:"postId,use_zero"`
	AuthorID  string    `pg:"authorId,type:uuid,use_zero"`

	Post   *Post `pg:"fk:postId,rel:has-one"`
	Author *User `pg:"fk:authorId,rel:has-one"`
}

type GooseDbVersion struct {
	tableName struct{} `pg:"goose_db_version,alias:t,discard_unknown_columns"`

	ID        int       `pg:"id,pk"`
	VersionID int64     `pg:"version_id,use_zero"`
	IsApplied bool      `pg:"is_applied,use_zero"`
	Tstamp    time.Time `pg:"tstamp,use_zero"`
}

type Post struct {
	tableName struct{} `pg:"posts,alias:t,discard_unknown_columns"`

	ID        int       `pg:"postId,pk"`
	Title     string    `pg:"title,use_zero"`
	Summary   string    `pg:"summary,use_zero"`
	Content   string    `pg:"content,use_zero"`
	CreatedAt time.Time `pg:"createdAt,use_zero"`
	ViewCount int       `pg:"viewCount,use_zero"`
	AuthorID  string    `pg:"authorId,type:uuid,use_zero"`

	Author *User `pg:"fk:authorId,rel:has-one"`
}

type PostTag struct {
	tableName struct{} `pg:"postTags,alias:t,discard_unknown_columns"`

	PostID int `pg:"postId,pk"`
	TagID  int `pg:"tagId,pk"`

	Tag *Tag `pg:"fk:tagId,rel:has-one"`
}

type Role struct {
	tableName struct{} `pg:"roles,alias:t,discard_unknown_columns"`

	ID          string `pg:"roleId,pk,type:uuid"`
	Name        string `pg:"name,use_zero"`
	Description string `pg:"description,use_zero"`
}

type Tag struct {
	tableName struct{} `pg:"tags,alias:t,discard_unknown_columns"`

	ID   int    `pg:"tagId,pk"`
	Name string `pg:"name,use_zero"`
}

type User struct {
	tableName struct{} `pg:"users,alias:t,discard_unknown_columns"`

	ID           string    `pg:"userId,pk,type:uuid"`
	UserName     string    `pg:"userName,use_zero"`
	Email        string    `pg:"email,use_zero"`
	PasswordHash string    `pg:"passwordHash,use_zero"`
	CreatedAt    time.Time `pg:"createdAt,use_zero"`
}

type UserRole struct {
	tableName struct{} `pg:"userRoles,alias:t,discard_unknown_columns"`

	UserID string `pg:"userId,pk,type:uuid"`
	RoleID string `pg:"roleId,pk,type:uuid"`

	Role *Role `pg:"fk:roleId,rel:has-one"`
}
