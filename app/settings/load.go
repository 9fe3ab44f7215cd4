package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Load reads settings from path. Keys missing from the file keep their default values.
// If the file doesn't exist, it's created with defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s := DefaultSettings()

		if err = Save(path, s); err != nil {
			return nil, err
		}

		return s, nil
	} else if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	s := DefaultSettings()
	if err = json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}

	if err = s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func Save(path string, s *Settings) error {
	data, err := json.MarshalIndent(s, "", "\t")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}

	if err = os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}
