package memory

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"mergingtonactivities/internal/domain"
)

//go:embed seed/activities.yaml
var seedFS embed.FS

// DefaultSeed returns the activities bundled with the binary.
func DefaultSeed() ([]*domain.Activity, error) {
	raw, err := seedFS.ReadFile("seed/activities.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded seed: %w", err)
	}
	return ParseSeed(bytes.NewReader(raw))
}

// LoadSeedFile reads activities from a YAML file at path.
func LoadSeedFile(path string) ([]*domain.Activity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return ParseSeed(f)
}

// ParseSeed decodes a YAML list of activities. Names must be non-empty and
// unique, capacities non-negative, and participants unique within an activity.
func ParseSeed(r io.Reader) ([]*domain.Activity, error) {
	var activities []*domain.Activity
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&activities); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	seen := make(map[string]struct{}, len(activities))
	for i, a := range activities {
		if a == nil || a.Name == "" {
			return nil, fmt.Errorf("seed entry %d: name is required", i)
		}
		if _, dup := seen[a.Name]; dup {
			return nil, fmt.Errorf("seed entry %d: duplicate activity %q", i, a.Name)
		}
		seen[a.Name] = struct{}{}
		if a.MaxParticipants < 0 {
			return nil, fmt.Errorf("seed entry %d: max_participants must be >= 0", i)
		}
		if a.Participants == nil {
			a.Participants = []string{}
		}
		emails := make(map[string]struct{}, len(a.Participants))
		for _, p := range a.Participants {
			if _, dup := emails[p]; dup {
				return nil, fmt.Errorf("seed entry %d: duplicate participant %q", i, p)
			}
			emails[p] = struct{}{}
		}
	}
	return activities, nil
}
