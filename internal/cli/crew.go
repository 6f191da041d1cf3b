package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/crewwatch-io/crewwatch/internal/crew"
	"github.com/crewwatch-io/crewwatch/internal/history"
	"github.com/crewwatch-io/crewwatch/internal/spacefeed"
	"github.com/crewwatch-io/crewwatch/internal/store"
	"github.com/spf13/cobra"
)

var (
	crewJSON    bool
	crewTimeout time.Duration
)

var crewCmd = &cobra.Command{
	Use:   "crew",
	Short: "Fetch and print the current crew roster",
	Long:  `Fetches the list of people currently in space and prints it.`,
	RunE:  runCrew,
}

func init() {
	crewCmd.Flags().BoolVar(&crewJSON, "json", false, "Output in JSON format")
	crewCmd.Flags().DurationVar(&crewTimeout, "timeout", 30*time.Second, "Fetch timeout")
}

func runCrew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}

	middlewares := []store.Middleware{store.Logging()}
	if cfg.HistoryPath != "" {
		journal, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer journal.Close()
		middlewares = append(middlewares, history.Middleware(journal))
	}

	st := store.New(crew.Reduce, middlewares...)
	src := spacefeed.NewClient(cfg.FeedURL)

	ctx, cancel := context.WithTimeout(cmd.Context(), crewTimeout)
	defer cancel()

	fmt.Fprint(os.Stderr, "Fetching roster... ")
	<-st.Run(ctx, crew.Fetch(src))

	s := st.State()
	if s.Status == crew.StatusFailed {
		fmt.Fprintln(os.Stderr, "FAILED")
		return fmt.Errorf("fetch roster: %s", s.LastError)
	}
	fmt.Fprintln(os.Stderr, "OK")

	if crewJSON {
		out, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("encode roster: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	renderRoster(s)
	return nil
}
