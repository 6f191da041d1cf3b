// Package snapshot persists point-in-time captures of the roster state to
// pluggable backends.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/crewwatch-io/crewwatch/internal/crew"
)

// Version is the current snapshot format version.
const Version = 1

// Snapshot captures the store state at a point in time. Serial increments
// on every write so divergent copies can be ordered.
type Snapshot struct {
	Version int        `json:"version"`
	Serial  int        `json:"serial"`
	TakenAt time.Time  `json:"taken_at"`
	Crew    crew.State `json:"crew"`
}

// Empty returns a fresh snapshot with the initial roster state.
func Empty() *Snapshot {
	return &Snapshot{Version: Version, Crew: crew.Initial()}
}

// Backend defines the interface for snapshot storage backends.
type Backend interface {
	// Read loads the snapshot, returning an empty one when none exists.
	Read(ctx context.Context) (*Snapshot, error)

	// Write saves the snapshot, bumping its serial.
	Write(ctx context.Context, snap *Snapshot) error

	// Lock acquires an exclusive lock on the snapshot.
	Lock() error

	// Unlock releases the lock on the snapshot.
	Unlock() error
}

// Config selects and configures a snapshot backend.
type Config struct {
	// Type is "local" or "s3". Empty selects local.
	Type string `json:"type"`
	// Path is the local snapshot file path (local backend only).
	Path string `json:"path"`
	// Options holds backend-specific settings, e.g. bucket/key/region for s3.
	Options map[string]string `json:"options"`
}

// NewBackend creates a snapshot backend from configuration.
func NewBackend(cfg Config) (Backend, error) {
	switch cfg.Type {
	case "local", "":
		return NewManager(cfg.Path), nil
	case "s3":
		return newS3Backend(cfg.Options)
	default:
		return nil, fmt.Errorf("unknown snapshot backend type: %s", cfg.Type)
	}
}
