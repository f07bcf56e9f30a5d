package rpc

import (
	"context"
	"encoding/json"

	"github.com/vmkteam/zenrpc/v2"
	"github.com/vmkteam/zenrpc/v2/smd"
)

var RPC = struct {
	PostService struct{ List, Count, ByID string }
	TagService  struct{ List string }
}{
	PostService: struct{ List, Count, ByID string }{
		List:  "list",
		Count: "count",
		ByID:  "byID",
	},
	TagService: struct{ List string }{
		List: "list",
	},
}

func (PostService) SMD() smd.ServiceInfo {
	return smd.ServiceInfo{
		Description: `PostService provides read-only RPC methods for posts.`,
		Methods: map[string]smd.Service{
			"list": {
				Description: `List retrieves posts with optional filtering by tagId and authorId, with pagination.
Returns PostSummary (without content) sorted by createdAt DESC.`,
				Parameters: []smd.JSONSchema{
					{
						Name:        "filter",
						Optional:    false,
						Description: `tagId, authorId, page and pageSize`,
						Type:        smd.Object,
					},
				},
				Returns: smd.JSONSchema{
					Description: `list of post summaries`,
					Optional:    false,
					Type:        smd.Array,
				},
				Errors: map[int]string{
					400: "invalid filter",
					500: "internal server error",
				},
			},
			"count": {
				Description: `Count returns the count of posts matching the optional tagId and authorId filters.`,
				Parameters: []smd.JSONSchema{
					{
						Name:        "filter",
						Optional:    false,
						Description: `tagId and authorId`,
						Type:        smd.Object,
					},
				},
				Returns: smd.JSONSchema{
					Description: `count of posts`,
					Optional:    false,
					Type:        smd.Integer,
				},
				Errors: map[int]string{
					500: "internal server error",
				},
			},
			"byID": {
				Description: `ByID retrieves a single post by ID with full content and tags. Views are not counted.`,
				Parameters: []smd.JSONSchema{
					{
						Name:        "id",
						Optional:    false,
						Description: `post numeric ID`,
						Type:        smd.Integer,
					},
				},
				Returns: smd.JSONSchema{
					Description: `post with full content`,
					Optional:    true,
					Type:        smd.Object,
				},
				Errors: map[int]string{
					400: "id must be positive",
					404: "post not found",
					500: "internal server error",
				},
			},
		},
	}
}

// Invoke dispatches a JSON-RPC call to the service method.
func (s PostService) Invoke(ctx context.Context, method string, params json.RawMessage) zenrpc.Response {
	resp := zenrpc.Response{}
	var err error

	switch method {
	case RPC.PostService.List:
		var args = struct {
			Filter PostFilter `json:"filter"`
		}{}

		if zenrpc.IsArray(params) {
			if params, err = zenrpc.ConvertToObject([]string{"filter"}, params); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		if len(params) > 0 {
			if err := json.Unmarshal(params, &args); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		resp.Set(s.List(ctx, args.Filter))

	case RPC.PostService.Count:
		var args = struct {
			Filter PostFilter `json:"filter"`
		}{}

		if zenrpc.IsArray(params) {
			if params, err = zenrpc.ConvertToObject([]string{"filter"}, params); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		if len(params) > 0 {
			if err := json.Unmarshal(params, &args); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		resp.Set(s.Count(ctx, args.Filter))

	case RPC.PostService.ByID:
		var args = struct {
			ID int `json:"id"`
		}{}

		if zenrpc.IsArray(params) {
			if params, err = zenrpc.ConvertToObject([]string{"id"}, params); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		if len(params) > 0 {
			if err := json.Unmarshal(params, &args); err != nil {
				return zenrpc.NewResponseError(nil, zenrpc.InvalidParams, "", err.Error())
			}
		}

		resp.Set(s.ByID(ctx, args.ID))

	default:
		resp = zenrpc.NewResponseError(nil, zenrpc.MethodNotFound, "", nil)
	}

	return resp
}

func (TagService) SMD() smd.ServiceInfo {
	return smd.ServiceInfo{
		Description: `TagService provides RPC methods for tags.`,
		Methods: map[string]smd.Service{
			"list": {
				Description: `List retrieves all tags ordered by name.`,
				Parameters:  []smd.JSONSchema{},
				Returns: smd.JSONSchema{
					Description: `list of tags`,
					Optional:    false,
					Type:        smd.Array,
				},
				Errors: map[int]string{
					500: "internal server error",
				},
			},
		},
	}
}

// Invoke dispatches a JSON-RPC call to the service method.
func (s TagService) Invoke(ctx context.Context, method string, params json.RawMessage) zenrpc.Response {
	resp := zenrpc.Response{}

	switch method {
	case RPC.TagService.List:
		resp.Set(s.List(ctx))

	default:
		resp = zenrpc.NewResponseError(nil, zenrpc.MethodNotFound, "", nil)
	}

	return resp
}
