package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"

	"github.com/edjones079/chess-ai-engine/server"
	"github.com/edjones079/chess-ai-engine/store"
)

func waitShutdown(srv *server.Server, idleConnsClosed chan<- interface{}) {
	defer close(idleConnsClosed)

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt)
	defer signal.Stop(sigint)

	<-sigint
	log.Info("received shutdown signal")

	if err := srv.Shutdown(context.Background()); err != nil {
		log.WithError(err).Error("HTTP server shutdown")
	}
}

func openStore(dsn string) (store.Store, func() error, error) {
	if dsn == "" {
		log.Info("no DSN given, games are kept in memory")
		return store.NewMemStore(), func() error { return nil }, nil
	}
	st, err := store.OpenPostgres(dsn)
	if err != nil {
		return nil, nil, err
	}
	return st, st.Close, nil
}

func main() {
	cfg := server.DefaultConfig()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	flag.StringVar(&cfg.DSN, "dsn", "", "PostgreSQL DSN (falls back to $CHESS_DSN, empty for in-memory)")
	flag.BoolVar(&cfg.UseMagics, "magic", cfg.UseMagics, "Use magic lookups for sliders")
	flag.Int64Var(&cfg.MagicSeed, "seed", cfg.MagicSeed, "Seed for the magic search")
	flag.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Grace period for in-flight requests")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	log.SetHandler(cli.Default)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if cfg.DSN == "" {
		cfg.DSN = os.Getenv("CHESS_DSN")
	}

	st, closeStore, err := openStore(cfg.DSN)
	if err != nil {
		log.WithError(err).Fatal("failed to open store")
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.WithError(err).Error("close store")
		}
	}()

	srv, err := server.New(cfg, st)
	if err != nil {
		log.WithError(err).Fatal("failed to build server")
	}

	idleConnsClosed := make(chan interface{})
	go waitShutdown(srv, idleConnsClosed)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("HTTP server end")
	}
	<-idleConnsClosed
}
