package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"demonchart"
	dchttp "demonchart/http"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if deps.Refresher == nil {
		fmt.Fprintf(deps.Stderr, "error: refresh pipeline is not configured\n")
		return demonchart.Errorf(demonchart.EINTERNAL, "refresh pipeline is not configured")
	}

	refreshFn := func(ctx context.Context) (*demonchart.Snapshot, error) {
		result, err := deps.Refresher.Refresh(ctx, c.URL)
		if err != nil {
			return nil, err
		}
		return result.Snapshot, nil
	}

	server := dchttp.NewServer(deps.Snapshots, deps.Records,
		dchttp.WithRefresh(refreshFn),
	)

	httpServer := &http.Server{
		Addr:              c.Addr,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Shut down cleanly when the context is canceled.
	go func() {
		<-deps.Ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(deps.Stdout, "Serving chart API on %s\n", c.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(deps.Stderr, "error: %s\n", demonchart.ErrorMessage(err))
		return err
	}

	return nil
}
