package tables

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LocationFile is the on-disk form of a location override file:
//
//	locations:
//	  forest: [wolf, owlbear]
//	  haunted_mill: [ghost, specter]
type LocationFile struct {
	Locations map[string][]string `yaml:"locations"`
}

// DecodeLocations strictly decodes a location file. Unknown top level keys
// are rejected.
func DecodeLocations(r io.Reader) (*LocationFile, error) {
	var lf LocationFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&lf); err != nil {
		if err == io.EOF {
			return &LocationFile{Locations: map[string][]string{}}, nil
		}
		return nil, fmt.Errorf("failed to decode location file: %w", err)
	}
	if lf.Locations == nil {
		lf.Locations = map[string][]string{}
	}
	return &lf, nil
}

// LoadLocations reads a location file from path and returns t with the
// file's lists applied on top.
func (t *Tables) LoadLocations(path string) (*Tables, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open location file: %w", err)
	}
	defer f.Close()

	lf, err := DecodeLocations(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t.WithLocations(lf.Locations), nil
}
