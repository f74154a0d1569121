package server_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"arbor/server"
)

func TestServerServesUntilContextIsCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv, err := server.New(":0")
	if err != nil {
		t.Fatalf("creating server: %v", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/health", server.HandleHealth(ctx))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ServeHTTPHandler(ctx, mux)
	}()

	resp, err := http.Get(fmt.Sprintf("http://%s/health", srv.Addr()))
	if err != nil {
		t.Fatalf("requesting health endpoint: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status, got: %v, expected: %v", resp.StatusCode, http.StatusOK)
	}

	cancel()
	select {
	case err := <-serveErr:
		if err != nil {
			t.Errorf("serving, got error %v, expected a clean shutdown", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down after context cancellation")
	}
}
