package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// staleLockAge is how old a lock file must be before it is treated as
// abandoned and removed.
const staleLockAge = 10 * time.Minute

// Manager handles reading and writing of snapshots on the local filesystem.
type Manager struct {
	path string
}

// DefaultPath returns the default local snapshot location under dir.
func DefaultPath(dir string) string {
	return filepath.Join(dir, ".crewwatch", "snapshot.json")
}

// NewManager builds a local snapshot manager for path.
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Read loads the snapshot from the configured path. A missing file yields
// an empty snapshot. Encrypted content is transparently decrypted.
func (m *Manager) Read(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Empty(), nil
		}
		return nil, fmt.Errorf("read snapshot file %s: %w", m.path, err)
	}

	content, err := Decrypt(raw)
	if err != nil {
		return nil, fmt.Errorf("decrypt snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(content, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot file %s: %w", m.path, err)
	}
	return &snap, nil
}

// Write saves the snapshot to the configured path, bumping its serial.
// If the encryption key environment variable is set, the file is
// transparently encrypted.
func (m *Manager) Write(ctx context.Context, snap *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	out := *snap
	out.Version = Version
	out.Serial++

	content, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	encrypted, err := Encrypt(content)
	if err != nil {
		return fmt.Errorf("encrypt snapshot: %w", err)
	}

	if err := os.WriteFile(m.path, encrypted, 0o644); err != nil {
		return fmt.Errorf("write snapshot file %s: %w", m.path, err)
	}
	snap.Serial = out.Serial
	return nil
}

// Lock acquires a file lock on the snapshot to prevent concurrent writers.
func (m *Manager) Lock() error {
	lockPath := m.lockPath()
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	if info, err := os.Stat(lockPath); err == nil {
		if time.Since(info.ModTime()) > staleLockAge {
			os.Remove(lockPath)
		} else {
			return fmt.Errorf("snapshot is locked by another process (lock file: %s); "+
				"remove the lock file manually if this is an error", lockPath)
		}
	}

	content := fmt.Sprintf("pid=%d\ntime=%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339))
	if err := os.WriteFile(lockPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("create lock file: %w", err)
	}
	return nil
}

// Unlock releases the snapshot lock.
func (m *Manager) Unlock() error {
	if err := os.Remove(m.lockPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove lock file: %w", err)
	}
	return nil
}

func (m *Manager) lockPath() string {
	return m.path + ".lock"
}
