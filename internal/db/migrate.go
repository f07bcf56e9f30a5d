package db

import (
	"context"
	"embed"
	"fmt"
	"net"
	"net/url"

	"github.com/go-pg/pg/v10"
	"github.com/jackc/pgx"
	"github.com/jackc/pgx/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies pending schema migrations to the database at dsn.
func Migrate(ctx context.Context, dsn string) error {
	config, err := pgx.ParseConnectionString(dsn)
	if err != nil {
		return fmt.Errorf("parse connection string: %w", err)
	}

	sqldb := stdlib.OpenDB(config)
	defer sqldb.Close()

	if err := sqldb.PingContext(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, sqldb, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// DSN builds a postgres:// connection string from go-pg options.
func DSN(opt pg.Options) string {
	host, port := opt.Addr, "5432"
	if h, p, err := net.SplitHostPort(opt.Addr); err == nil {
		host, port = h, p
	}
	if host == "" {
		host = "localhost"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(opt.User, opt.Password),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + opt.Database,
		RawQuery: "sslmode=disable",
	}
	if opt.TLSConfig != nil {
		u.RawQuery = "sslmode=require"
	}

	return u.String()
}
