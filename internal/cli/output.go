package cli

import (
	"fmt"

	"github.com/crewwatch-io/crewwatch/internal/crew"
)

// renderRoster prints the roster in a human-readable list with the fetch
// status colored like the rest of the pipeline output.
func renderRoster(s crew.State) {
	fmt.Printf("%d people currently in space", len(s.Members))
	if !s.FetchedAt.IsZero() {
		fmt.Printf(" (fetched %s)", s.FetchedAt.Format("2006-01-02 15:04:05 MST"))
	}
	fmt.Println(":")

	for _, m := range s.Members {
		if m.Craft != "" {
			fmt.Printf("  \033[32m•\033[0m %s \033[90m(%s)\033[0m\n", m.Name, m.Craft)
		} else {
			fmt.Printf("  \033[32m•\033[0m %s\n", m.Name)
		}
	}

	if s.Status == crew.StatusFailed {
		fmt.Printf("\n\033[31mLast fetch failed: %s\033[0m\n", s.LastError)
	}
}
