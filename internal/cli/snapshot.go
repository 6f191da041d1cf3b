package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/crewwatch-io/crewwatch/internal/crew"
	"github.com/crewwatch-io/crewwatch/internal/spacefeed"
	"github.com/crewwatch-io/crewwatch/internal/store"
	"github.com/spf13/cobra"
)

var snapshotJSON bool

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inspect and update the persisted roster snapshot",
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the persisted snapshot",
	RunE:  runSnapshotShow,
}

var snapshotSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Fetch a fresh roster and persist it as a snapshot",
	RunE:  runSnapshotSave,
}

func init() {
	snapshotCmd.PersistentFlags().BoolVar(&snapshotJSON, "json", false, "Output in JSON format")
	snapshotCmd.AddCommand(snapshotShowCmd)
	snapshotCmd.AddCommand(snapshotSaveCmd)
}

func runSnapshotShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	backend, err := snapshotBackend(cfg.Snapshot.Backend, cfg.Snapshot.Path, cfg.Snapshot.Options)
	if err != nil {
		return err
	}

	snap, err := backend.Read(cmd.Context())
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	if snapshotJSON {
		out, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	if snap.Serial == 0 && len(snap.Crew.Members) == 0 {
		fmt.Println("No snapshot persisted yet.")
		return nil
	}
	fmt.Printf("Snapshot serial %d, taken %s\n\n", snap.Serial, snap.TakenAt.Format(time.RFC3339))
	renderRoster(snap.Crew)
	return nil
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	backend, err := snapshotBackend(cfg.Snapshot.Backend, cfg.Snapshot.Path, cfg.Snapshot.Options)
	if err != nil {
		return err
	}

	if err := backend.Lock(); err != nil {
		return err
	}
	defer backend.Unlock()

	st := store.New(crew.Reduce, store.Logging())
	src := spacefeed.NewClient(cfg.FeedURL)

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	fmt.Print("Fetching roster... ")
	<-st.Run(ctx, crew.Fetch(src))

	s := st.State()
	if s.Status == crew.StatusFailed {
		fmt.Println("FAILED")
		return fmt.Errorf("fetch roster: %s", s.LastError)
	}
	fmt.Println("OK")

	prior, err := backend.Read(ctx)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	prior.TakenAt = time.Now().UTC()
	prior.Crew = s

	if err := backend.Write(ctx, prior); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	fmt.Printf("Snapshot saved (serial %d, %d members).\n", prior.Serial, len(s.Members))
	return nil
}
