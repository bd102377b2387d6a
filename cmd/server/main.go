package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/goliatone/portfolio-api/auth"
	"github.com/goliatone/portfolio-api/config"
	"github.com/goliatone/portfolio-api/server"
	"github.com/goliatone/portfolio-api/store"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func main() {
	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Info),
		glog.WithName("portfolio"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg, err := config.Load()
	if err != nil {
		lgr.GetLogger("config").Error("Unable to load configuration", "error", err)
		os.Exit(1)
	}

	if cfg.Debug {
		fmt.Println(print.MaybeHighlightJSON(cfg))
	}

	ctx := context.Background()

	db, err := openDatabase(cfg.DSN)
	if err != nil {
		lgr.GetLogger("store").Error("Unable to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := bootstrap(ctx, db, cfg, lgr.GetLogger("store")); err != nil {
		lgr.GetLogger("store").Error("Unable to bootstrap database", "error", err)
		os.Exit(1)
	}

	repos := store.NewRepositoryManager(db)
	repos.MustValidate()

	provider := auth.NewUserProvider(store.NewAuthAdapter(repos.Users())).
		WithLogger(lgr.GetLogger("auth"))

	auther := auth.NewAuthenticator(provider, cfg).
		WithLogger(lgr.GetLogger("auth"))

	mdw := auth.NewMiddleware(auther.TokenService(), cfg).
		WithLogger(lgr.GetLogger("http"))

	srv := server.New(cfg, auther, mdw, repos, lgr.GetLogger("http"))

	go func() {
		if err := srv.Start(); err != nil {
			lgr.GetLogger("http").Error("Server stopped", "error", err)
			os.Exit(1)
		}
	}()

	waitExitSignal()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lgr.GetLogger("http").Error("Shutdown failed", "error", err)
	}
}

func openDatabase(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// bootstrap creates the schema and seeds the admin account when one was
// configured and the users table is empty.
func bootstrap(ctx context.Context, db *bun.DB, cfg *config.Config, logger glog.Logger) error {
	if err := store.Migrate(ctx, db); err != nil {
		return err
	}

	if cfg.AdminPassword == "" {
		logger.Warn("No admin password configured, skipping admin seed")
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	return store.SeedAdmin(ctx, db, cfg.AdminUsername, cfg.AdminEmail, hash)
}

func waitExitSignal() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-sigs
}
