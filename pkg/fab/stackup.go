// Package fab drives fabrication-output generation for a finished board file
// by shelling out to kicad-cli: gerbers per stackup layer, an excellon drill
// file, and a component position file.
package fab

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// StackupLayer names one fabrication output layer.
type StackupLayer struct {
	Name        string `mapstructure:"name"`        // Human-readable name, e.g. "Top copper"
	Layer       string `mapstructure:"layer"`       // KiCad layer identifier, e.g. "F.Cu"
	Description string `mapstructure:"description"` // Optional note for the fab house
}

// Stackup is the ordered list of layers to export, loaded from a JSON
// descriptor.
type Stackup struct {
	Layers []StackupLayer `mapstructure:"layers"`
}

// DefaultStackup covers a two-layer antenna board.
func DefaultStackup() *Stackup {
	return &Stackup{Layers: []StackupLayer{
		{Name: "top_copper", Layer: "F.Cu"},
		{Name: "bottom_copper", Layer: "B.Cu"},
		{Name: "top_mask", Layer: "F.Mask"},
		{Name: "bottom_mask", Layer: "B.Mask"},
		{Name: "outline", Layer: "Edge.Cuts"},
	}}
}

// LoadStackup reads a stackup descriptor from a JSON file. Decoding is
// weakly typed so descriptors written by other tools (which sometimes emit
// numbers for layer ids) still load.
func LoadStackup(path string) (*Stackup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stackup: %w", err)
	}
	return ParseStackup(data)
}

// ParseStackup decodes a JSON stackup descriptor.
func ParseStackup(data []byte) (*Stackup, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid stackup JSON: %w", err)
	}

	var s Stackup
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &s,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build stackup decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid stackup: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the stackup is usable for export.
func (s *Stackup) Validate() error {
	if len(s.Layers) == 0 {
		return fmt.Errorf("stackup has no layers")
	}
	seen := make(map[string]bool, len(s.Layers))
	for i, l := range s.Layers {
		if l.Name == "" {
			return fmt.Errorf("stackup layer %d has no name", i)
		}
		if l.Layer == "" {
			return fmt.Errorf("stackup layer %q has no board layer id", l.Name)
		}
		if seen[l.Name] {
			return fmt.Errorf("duplicate stackup layer name %q", l.Name)
		}
		seen[l.Name] = true
	}
	return nil
}
