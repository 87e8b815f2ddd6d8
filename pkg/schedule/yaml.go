package schedule

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/timegridlabs/timegrid/pkg/errors"
)

// yamlFile is the on-disk shape of a YAML schedule:
//
//	entries:
//	  - title: Standup
//	    start: 2026-03-02T09:00:00Z
//	    end: 2026-03-02T09:15:00Z
type yamlFile struct {
	Entries []Entry `yaml:"entries"`
}

// LoadYAML reads a YAML schedule file.
func LoadYAML(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "schedule file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to read schedule file %s", path)
	}
	return ParseYAML(data)
}

// ParseYAML decodes YAML schedule bytes.
func ParseYAML(data []byte) ([]Entry, error) {
	var file yamlFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to parse YAML schedule")
	}
	if err := validateAll(file.Entries); err != nil {
		return nil, err
	}
	SortByStart(file.Entries)
	return file.Entries, nil
}
