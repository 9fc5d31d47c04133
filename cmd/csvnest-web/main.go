package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"csvnest/internal/webui"

	// register all storage backends; the form selects one per request.
	_ "csvnest/internal/storage/all"
)

// main starts the web UI. The server runs until SIGINT/SIGTERM, then shuts
// down gracefully with a short drain window.
func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := webui.NewServer(webui.Config{Addr: *addr})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("webui: listening on %s", *addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("webui: %v", err)
	}
}
