package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"greenjobs/internal/api"
	"greenjobs/internal/cache"
	"greenjobs/internal/config"
	"greenjobs/internal/db"
	"greenjobs/internal/session"
	"greenjobs/internal/tokenstore"
)

const usage = `usage: jobboard [-api URL] [-store KIND] [-v] <command> [flags] [args]

commands:
  login          -email -password
  register       -name -email -password -role [-company-id | -company-name ...]
  google         [-role employee|employer]
  logout
  whoami
  refresh
  profile        [-summary] [-skills a,b] [-resume PATH]
  jobs           [-title] [-location] [-sector] [-type]
  featured
  job ID
  apply ID
  company ID
  verify ID
  employer-jobs
  stats
`

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}
	cfg := config.Load()

	fs := flag.NewFlagSet("jobboard", flag.ExitOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	apiURL := fs.String("api", cfg.APIURL, "API base address (default derived from JOBBOARD_HOST)")
	storeKind := fs.String("store", cfg.TokenStore, "token store: file, redis, mysql or memory")
	verbose := fs.Bool("v", false, "log session and request activity to stderr")
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}
	cfg.APIURL = *apiURL
	cfg.TokenStore = *storeKind

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(io.Discard, "", log.LstdFlags)
	if *verbose {
		logger.SetOutput(os.Stderr)
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("token store: %v", err)
	}
	defer closeStore()

	state := session.NewState()
	client := api.NewClient(cfg.BaseURL(), state, api.WithTimeout(cfg.HTTPTimeout), api.WithLogger(logger))
	logger.Printf("[CLI] api=%s store=%s", client.BaseURL(), cfg.TokenStore)
	mgr := session.NewManager(state, client, store, session.WithLogger(logger))
	mgr.Initialize(ctx)

	app := &app{mgr: mgr, client: client, out: os.Stdout, errOut: os.Stderr}
	if err := app.run(ctx, fs.Arg(0), fs.Args()[1:]); err != nil {
		closeStore()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// openStore builds the token store named by cfg.TokenStore. The returned
// func releases its connections.
func openStore(ctx context.Context, cfg *config.Config) (tokenstore.Store, func(), error) {
	noop := func() {}
	kind, err := tokenstore.ParseKind(cfg.TokenStore)
	if err != nil {
		return nil, noop, err
	}

	switch kind {
	case tokenstore.KindMemory:
		return tokenstore.NewMemoryStore(""), noop, nil
	case tokenstore.KindRedis:
		c := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.RedisPrefix)
		if err := c.Ping(ctx); err != nil {
			_ = c.Close()
			return nil, noop, err
		}
		return tokenstore.NewRedisStore(c), func() { _ = c.Close() }, nil
	case tokenstore.KindMySQL:
		gdb, err := db.NewMySQL(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, noop, err
		}
		closeDB := func() { _ = db.Close(gdb) }
		if err := db.Migrate(ctx, gdb); err != nil {
			closeDB()
			return nil, noop, err
		}
		return tokenstore.NewSQLStore(gdb), closeDB, nil
	default:
		path := cfg.TokenFile
		if path == "" {
			path = tokenstore.DefaultFilePath()
		}
		return tokenstore.NewFileStore(path), noop, nil
	}
}
