package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/blog-portal/internal/blog"
	"github.com/daniilsolovey/blog-portal/internal/blog/blogtest"
	"github.com/daniilsolovey/blog-portal/internal/db"
)

const authorID = "11111111-1111-4111-8111-111111111111"

func testPost(id int) blog.Post {
	return blog.Post{
		Post: db.Post{
			ID:        id,
			Title:     fmt.Sprintf("Post %d", id),
			Summary:   "summary",
			Content:   "content",
			CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			ViewCount: 3,
			AuthorID:  authorID,
			Author:    &db.User{ID: authorID, UserName: "alice"},
		},
		Tags: []blog.Tag{{Tag: db.Tag{ID: 1, Name: "go"}}},
	}
}

func requireRPCError(t *testing.T, err error, code int) {
	t.Helper()
	var rpcErr *zenrpc.Error
	require.True(t, errors.As(err, &rpcErr), "unexpected error %v", err)
	assert.Equal(t, code, rpcErr.Code)
}

func TestPostService_List(t *testing.T) {
	var got blog.PostFilter
	svc := NewPostService(&blogtest.Posts{
		ListAllFn: func(_ context.Context, filter blog.PostFilter) ([]blog.Post, error) {
			got = filter
			return []blog.Post{testPost(2), testPost(1)}, nil
		},
	})

	tagID, page := 1, 2
	list, err := svc.List(context.Background(), PostFilter{TagID: &tagID, Page: &page})
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].PostID)
	assert.Equal(t, "alice", list[0].Author.UserName)
	assert.Equal(t, []Tag{{TagID: 1, Name: "go"}}, list[0].Tags)
	assert.Equal(t, blog.PostFilter{TagID: &tagID, Page: 2, PageSize: defaultPageSize}, got)
}

func TestPostService_ListInvalidFilter(t *testing.T) {
	svc := NewPostService(&blogtest.Posts{})
	zero, big := 0, maxPageSize+1

	tests := []struct {
		name   string
		filter PostFilter
	}{
		{name: "tag", filter: PostFilter{TagID: &zero}},
		{name: "page", filter: PostFilter{Page: &zero}},
		{name: "page size", filter: PostFilter{PageSize: &big}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.List(context.Background(), tt.filter)
			requireRPCError(t, err, http.StatusBadRequest)
		})
	}
}

func TestPostService_Count(t *testing.T) {
	svc := NewPostService(&blogtest.Posts{
		CountFn: func(_ context.Context, filter blog.PostFilter) (int, error) {
			assert.Zero(t, filter.Page)
			require.NotNil(t, filter.AuthorID)
			assert.Equal(t, authorID, *filter.AuthorID)
			return 7, nil
		},
	})

	author := authorID
	count, err := svc.Count(context.Background(), PostFilter{AuthorID: &author})
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestPostService_ByID(t *testing.T) {
	svc := NewPostService(&blogtest.Posts{
		GetByIDFn: func(_ context.Context, id int) (*blog.Post, error) {
			if id == 5 {
				p := testPost(5)
				return &p, nil
			}
			return nil, fmt.Errorf("post %d: %w", id, blog.ErrNotFound)
		},
	})

	post, err := svc.ByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "content", post.Content)
	assert.Equal(t, 3, post.ViewCount)

	_, err = svc.ByID(context.Background(), 0)
	requireRPCError(t, err, http.StatusBadRequest)

	_, err = svc.ByID(context.Background(), 9)
	requireRPCError(t, err, http.StatusNotFound)
}

func TestServer(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	posts := &blogtest.Posts{
		GetByIDFn: func(_ context.Context, id int) (*blog.Post, error) {
			return nil, blog.ErrNotFound
		},
	}
	tags := &blogtest.Tags{
		ListAllFn: func(context.Context) ([]blog.Tag, error) {
			return []blog.Tag{{Tag: db.Tag{ID: 1, Name: "go"}}, {Tag: db.Tag{ID: 2, Name: "rust"}}}, nil
		},
	}
	srv := httptest.NewServer(New(log, posts, tags))
	defer srv.Close()

	call := func(body string) map[string]json.RawMessage {
		resp, err := http.Post(srv.URL, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()

		var out map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return out
	}

	out := call(`{"jsonrpc":"2.0","id":1,"method":"tag.list"}`)
	var list []Tag
	require.NoError(t, json.Unmarshal(out["result"], &list))
	assert.Equal(t, []Tag{{TagID: 1, Name: "go"}, {TagID: 2, Name: "rust"}}, list)

	out = call(`{"jsonrpc":"2.0","id":2,"method":"post.byID","params":{"id":4}}`)
	var rpcErr struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(out["error"], &rpcErr))
	assert.Equal(t, http.StatusNotFound, rpcErr.Code)
	assert.Equal(t, "post not found", rpcErr.Message)
}
