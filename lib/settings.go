package multiwalllib

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// MonitorState is the user's choice for a single monitor.
type MonitorState struct {
	// nil means no image, the monitor is filled with Background
	File       *string `json:"file"`
	Mode       Mode    `json:"mode"`
	Background string  `json:"background"`
}

// States maps monitor indices, as decimal strings, to their settings.
type States map[string]MonitorState

func (s States) For(i int) (MonitorState, bool) {
	st, ok := s[strconv.Itoa(i)]
	return st, ok
}

type Settings struct {
	Monitors      States `json:"monitors"`
	LastDirectory string `json:"last_directory"`
}

// LoadSettings returns empty settings if the file does not exist yet.
func LoadSettings(path string) (*Settings, error) {
	s := &Settings{Monitors: States{}}

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	} else if err != nil {
		return nil, err
	}

	if err = json.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("Error parsing settings [%s]: %w", path, err)
	}
	if s.Monitors == nil {
		s.Monitors = States{}
	}

	return s, nil
}

// SaveSettings overwrites path. Concurrent writers are not guarded against,
// the last one wins.
func SaveSettings(path string, s *Settings) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	return os.WriteFile(path, append(b, '\n'), 0644)
}
