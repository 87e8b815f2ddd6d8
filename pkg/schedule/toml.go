package schedule

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/timegridlabs/timegrid/pkg/errors"
)

// tomlFile is the on-disk shape of a TOML schedule:
//
//	[[entry]]
//	title = "Standup"
//	start = 2026-03-02T09:00:00Z
//	end   = 2026-03-02T09:15:00Z
type tomlFile struct {
	Entries []Entry `toml:"entry"`
}

// LoadTOML reads a TOML schedule file.
func LoadTOML(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "schedule file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to read schedule file %s", path)
	}
	return ParseTOML(data)
}

// ParseTOML decodes TOML schedule bytes.
func ParseTOML(data []byte) ([]Entry, error) {
	var file tomlFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse TOML schedule")
	}
	if err := validateAll(file.Entries); err != nil {
		return nil, err
	}
	SortByStart(file.Entries)
	return file.Entries, nil
}
