package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"eventdesk/internal/event"
)

// seedFile is the JSON shape a seed file carries: the same "events"
// envelope the listing endpoint serves, so a saved listing round-trips.
type seedFile struct {
	Events []*event.Event `json:"events"`
}

// LoadSeed populates the repository from a JSON file. A "~/" prefix is
// expanded against the home directory. Events without an ID are skipped.
func (r *Repo) LoadSeed(path string) (int, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return 0, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading seed file: %w", err)
	}

	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return 0, fmt.Errorf("parsing seed file: %w", err)
	}

	loaded := 0
	for _, evt := range seed.Events {
		if evt.ID == "" {
			continue
		}
		r.Put(evt)
		loaded++
	}
	return loaded, nil
}

// SaveSeed writes the repository contents back out as a seed file.
func (r *Repo) SaveSeed(path string) error {
	data, err := json.MarshalIndent(seedFile{Events: r.List()}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding seed: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing seed file: %w", err)
	}
	return nil
}
