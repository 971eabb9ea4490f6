package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Makepad-fr/bingo/internal/cli"
	"github.com/Makepad-fr/bingo/internal/clip"
	"github.com/Makepad-fr/bingo/internal/config"
	"github.com/Makepad-fr/bingo/internal/logging"
	"github.com/Makepad-fr/bingo/internal/store"
	"github.com/Makepad-fr/bingo/internal/store/jsonstore"
	"github.com/Makepad-fr/bingo/internal/store/memstore"
	"github.com/Makepad-fr/bingo/internal/store/redisstore"
	"github.com/Makepad-fr/bingo/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		os.Exit(1)
	}

	// Root flags (apply to every subcommand)
	verbose := flag.Bool("verbose", cfg.Verbose, "log debug details")
	storeKind := flag.String("store", cfg.Store, "where marks are kept: file, memory or redis")
	theme := flag.String("theme", cfg.Theme, "output theme: classic, neon or mono")
	baseURL := flag.String("base-url", cfg.BaseURL, "address share links point at")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	cfg.Verbose, cfg.Store, cfg.Theme, cfg.BaseURL = *verbose, *storeKind, *theme, *baseURL
	if err := cfg.Validate(); err != nil {
		ui.Fail(os.Stderr, "config: "+err.Error())
		os.Exit(2)
	}
	// mono disables color itself, so it has to come after the flag.
	ui.SetColorForcing(false, *noColor)
	ui.SetTheme(cfg.Theme)

	// No subcommand opens the interactive screen.
	args := flag.Args()
	if len(args) == 0 {
		args = []string{"tui"}
	}

	os.Exit(run(cfg, args))
}

func run(cfg config.Config, args []string) int {
	if err := cfg.EnsureDataDir(); err != nil {
		ui.Fail(os.Stderr, err.Error())
		return 1
	}

	// The full-screen UI owns the terminal, so its logs go to a file.
	logOut := "stderr"
	if args[0] == "tui" {
		logOut = cfg.LogPath()
	}
	log, err := logging.New(logging.Options{Verbose: cfg.Verbose, Output: logOut})
	if err != nil {
		ui.Fail(os.Stderr, "logger: "+err.Error())
		return 1
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, closeKV, err := openStore(ctx, cfg, log)
	if err != nil {
		ui.Fail(os.Stderr, "store: "+err.Error())
		return 1
	}
	defer closeKV()

	code := cli.Run(ctx, args, cli.Options{
		Config:    cfg,
		Log:       log,
		KV:        kv,
		Clipboard: clip.System{},
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}

func openStore(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (store.KV, func(), error) {
	switch cfg.Store {
	case config.StoreMemory:
		log.Debugw("marks kept in memory for this run")
		return memstore.New(), func() {}, nil
	case config.StoreRedis:
		dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		rs, err := redisstore.Dial(dialCtx, cfg.RedisAddr, cfg.RedisTTL)
		if err != nil {
			return nil, nil, err
		}
		log.Debugw("marks kept in redis", "addr", cfg.RedisAddr, "ttl", cfg.RedisTTL)
		return rs, func() { _ = rs.Close() }, nil
	default:
		log.Debugw("marks kept on disk", "path", cfg.MarksPath())
		return jsonstore.New(cfg.MarksPath()), func() {}, nil
	}
}
