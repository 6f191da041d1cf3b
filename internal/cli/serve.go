package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/crewwatch-io/crewwatch/internal/crew"
	"github.com/crewwatch-io/crewwatch/internal/history"
	"github.com/crewwatch-io/crewwatch/internal/logging"
	"github.com/crewwatch-io/crewwatch/internal/snapshot"
	"github.com/crewwatch-io/crewwatch/internal/spacefeed"
	"github.com/crewwatch-io/crewwatch/internal/store"
	"github.com/crewwatch-io/crewwatch/internal/web"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the crewwatch web view",
	Long: `Starts an HTTP server rendering the roster with a refresh button and a
loading indicator. The roster is restored from the last snapshot on boot
and re-persisted after every successful fetch.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}

	backend, err := snapshotBackend(cfg.Snapshot.Backend, cfg.Snapshot.Path, cfg.Snapshot.Options)
	if err != nil {
		return err
	}

	middlewares := []store.Middleware{store.Logging(), snapshot.Middleware(backend)}
	if cfg.HistoryPath != "" {
		journal, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer journal.Close()
		middlewares = append(middlewares, history.Middleware(journal))
	}

	st := store.New(crew.Reduce, middlewares...)

	// Restore the roster from the last snapshot so the page is not empty
	// on boot. A missing snapshot is not an error. The restore action is
	// not a fetch: it is neither re-persisted nor journaled.
	snap, err := backend.Read(cmd.Context())
	if err != nil {
		logging.Warn("could not restore snapshot", "error", err)
	} else if len(snap.Crew.Members) > 0 {
		st.Dispatch(crew.RestoredAction{Members: snap.Crew.Members, FetchedAt: snap.Crew.FetchedAt})
		logging.Info("restored roster from snapshot", "members", len(snap.Crew.Members), "serial", snap.Serial)
	}

	src := spacefeed.NewClient(cfg.FeedURL)
	handler := web.NewHandler(st, src)
	server := web.NewServer(cfg.HTTPAddr, handler)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Run(ctx)
}

// snapshotBackend resolves the snapshot backend from config, defaulting the
// local path to .crewwatch/snapshot.json under the working directory.
func snapshotBackend(backendType, path string, options map[string]string) (snapshot.Backend, error) {
	if (backendType == "" || backendType == "local") && path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		path = snapshot.DefaultPath(wd)
	}
	if path != "" {
		path = filepath.Clean(path)
	}

	backend, err := snapshot.NewBackend(snapshot.Config{Type: backendType, Path: path, Options: options})
	if err != nil {
		return nil, fmt.Errorf("configure snapshot backend: %w", err)
	}
	return backend, nil
}
