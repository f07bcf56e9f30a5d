package rpc

import (
	"log/slog"

	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/daniilsolovey/blog-portal/internal/blog"
)

// New returns the JSON-RPC 2.0 server exposing the "post" and "tag" namespaces.
func New(logger *slog.Logger, posts blog.PostService, tags blog.TagService) *zenrpc.Server {
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true})
	rpcServer.Register("post", NewPostService(posts))
	rpcServer.Register("tag", NewTagService(tags))
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, "blog-portal", nil))

	return rpcServer
}
