package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/go-pg/pg/v10"
	"github.com/namsral/flag"

	"github.com/daniilsolovey/blog-portal/config"
	"github.com/daniilsolovey/blog-portal/internal/app"
	"github.com/daniilsolovey/blog-portal/internal/db"
	"github.com/daniilsolovey/blog-portal/internal/identity"
	"github.com/daniilsolovey/blog-portal/internal/seed"
)

var (
	flConfig = flag.String("config", "config.toml", "path to TOML configuration file")
	flPosts  = flag.Int("posts", 0, "number of demo posts to create")
	flSeed   = flag.Int64("seed", 0, "random seed for demo content, 0 picks one")
	cfg      config.Config
	lg       = slog.New(slog.NewTextHandler(os.Stdout, nil))
)

func main() {
	flag.Parse()

	_, err := toml.DecodeFile(*flConfig, &cfg)
	exitOnError(err)
	cfg.Defaults()

	ctx := context.Background()
	exitOnError(db.Migrate(ctx, db.DSN(cfg.Database)))

	dbc := pg.Connect(&cfg.Database)
	defer dbc.Close()

	repo := db.New(dbc)
	store := identity.New(repo, identity.DefaultPasswordPolicy, cfg.Auth.BcryptCost)
	s := seed.New(store, app.NewServices(repo, store), lg, *flSeed)

	exitOnError(s.Roles(ctx))
	exitOnError(s.Users(ctx))
	if *flPosts > 0 {
		exitOnError(s.Demo(ctx, *flPosts))
	}

	lg.Info("seeding finished")
}

func exitOnError(err error) {
	if err != nil {
		lg.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}
