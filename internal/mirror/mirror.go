// Package mirror pushes JSON snapshots of the catalog, price list and waste
// log to a git remote after every write. It is a best-effort durability
// mechanism on top of the database: failures are logged and swallowed, a
// broken mirror never fails the request that triggered it.
package mirror

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
)

type Mirror struct {
	dir    string
	remote string
}

// New returns a mirror working in dir, pushing to remote. dir must already be
// a git checkout with the remote configured. An empty dir disables mirroring.
func New(dir, remote string) *Mirror {
	if dir == "" {
		return nil
	}
	return &Mirror{dir: dir, remote: remote}
}

// Snapshot writes v to <dir>/<name>.json and commits and pushes it.
// Safe on a nil mirror.
func (m *Mirror) Snapshot(name string, v any) {
	if m == nil {
		return
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("[WARN] mirror: could not marshal %s snapshot: %v", name, err)
		return
	}

	file := name + ".json"
	if err := os.WriteFile(filepath.Join(m.dir, file), data, 0o644); err != nil {
		log.Printf("[WARN] mirror: could not write %s: %v", file, err)
		return
	}

	if err := m.git("add", file); err != nil {
		log.Printf("[WARN] mirror: %v", err)
		return
	}
	// Commit fails when the snapshot did not change; nothing to push then.
	if err := m.git("commit", "-m", fmt.Sprintf("Update %s snapshot", name)); err != nil {
		return
	}
	if err := m.git("push", m.remote, "HEAD"); err != nil {
		log.Printf("[WARN] mirror: %v", err)
	}
}

func (m *Mirror) git(args ...string) error {
	cmd := exec.Command("git", append([]string{"-C", m.dir}, args...)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %v failed: %v (%s)", args, err, out)
	}
	return nil
}
