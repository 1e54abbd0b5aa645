// Package trackfile reads and writes saved games and tracks. Files ending
// in .yaml or .yml are YAML; everything else is JSON.
package trackfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-racetrack/internal/core"
	"github.com/vovakirdan/tui-racetrack/internal/race"
)

// Format selects the encoding of a record.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// FormatOf picks the format from a file name.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Decode parses a record. Any parse failure is reported as WrongMapSyntax;
// the contents are checked later when the record is loaded into a game.
func Decode(name string, data []byte) (race.Record, error) {
	var rec race.Record
	var err error
	switch FormatOf(name) {
	case YAML:
		err = yaml.Unmarshal(data, &rec)
	default:
		err = json.Unmarshal(data, &rec)
	}
	if err != nil {
		return race.Record{}, core.Errorf(core.WrongMapSyntax, "%s: %v", name, err)
	}
	return rec, nil
}

// ReadFile reads and decodes the record at path.
func ReadFile(path string) (race.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return race.Record{}, fmt.Errorf("trackfile: cannot read %s: %w", path, err)
	}
	return Decode(filepath.Base(path), data)
}

// Encode serializes rec in the given format.
func Encode(format Format, rec race.Record) ([]byte, error) {
	switch format {
	case YAML:
		return yaml.Marshal(rec)
	case JSON:
		return json.MarshalIndent(rec, "", "  ")
	default:
		return nil, fmt.Errorf("trackfile: unknown format %q", format)
	}
}

// WriteFile encodes rec by the extension of path and writes it, creating
// parent directories as needed.
func WriteFile(path string, rec race.Record) error {
	data, err := Encode(FormatOf(path), rec)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("trackfile: cannot create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("trackfile: cannot write %s: %w", path, err)
	}
	return nil
}
