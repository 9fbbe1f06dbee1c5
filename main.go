package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	dbPath := flag.String("db", "scores.db", "Path to the score database")
	clientDir := flag.String("client", "", "Path to client directory (optional)")
	schemaOut := flag.String("dump-schema", "", "Write protocol JSON schema to this path and exit")
	flag.Parse()

	if *schemaOut != "" {
		if err := DumpProtocolSchema(*schemaOut); err != nil {
			log.Fatalf("schema dump: %v", err)
		}
		log.Printf("protocol schema written to %s", *schemaOut)
		return
	}

	scores, err := OpenScoreStore(*dbPath)
	if err != nil {
		log.Fatalf("open score store: %v", err)
	}
	defer scores.Close()

	hub := NewHub(scores)
	go hub.Run()

	server := &http.Server{Addr: *addr, Handler: SetupRoutes(hub, *clientDir)}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("Server starting on %s", *addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
