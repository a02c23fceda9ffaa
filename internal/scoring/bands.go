package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Band maps a minimum percentage to a level label.
type Band struct {
	Name       string `json:"name" yaml:"name"`
	MinPercent int    `json:"min_percent" yaml:"min_percent"`
	Pass       bool   `json:"pass" yaml:"pass"`
}

// Bands is an ordered step function from percentage to band, highest
// threshold first.
type Bands []Band

// DefaultBands returns the placement bands used when none are configured.
func DefaultBands() Bands {
	return Bands{
		{Name: "Advanced", MinPercent: 80, Pass: true},
		{Name: "Upper-Intermediate", MinPercent: 60, Pass: true},
		{Name: "Intermediate", MinPercent: 40, Pass: true},
		{Name: "Below Pass", MinPercent: 0, Pass: false},
	}
}

// Validate checks that every percentage 0-100 maps to exactly one band.
func (b Bands) Validate() error {
	if len(b) == 0 {
		return fmt.Errorf("bands: at least one band is required")
	}
	seen := make(map[string]bool, len(b))
	for i, band := range b {
		if band.Name == "" {
			return fmt.Errorf("bands[%d]: name is required", i)
		}
		if seen[band.Name] {
			return fmt.Errorf("bands[%d]: duplicate name %q", i, band.Name)
		}
		seen[band.Name] = true

		if band.MinPercent < 0 || band.MinPercent > 100 {
			return fmt.Errorf("bands[%d] %q: min_percent %d out of range [0,100]", i, band.Name, band.MinPercent)
		}
		if i > 0 && band.MinPercent >= b[i-1].MinPercent {
			return fmt.Errorf("bands[%d] %q: min_percent %d must be below %d",
				i, band.Name, band.MinPercent, b[i-1].MinPercent)
		}
	}
	if last := b[len(b)-1]; last.MinPercent != 0 {
		return fmt.Errorf("bands: lowest band %q must start at 0, got %d", last.Name, last.MinPercent)
	}
	return nil
}

// PassMark returns the lowest percentage that earns a passing band, or 101
// when no band passes.
func (b Bands) PassMark() int {
	mark := 101
	for _, band := range b {
		if band.Pass && band.MinPercent < mark {
			mark = band.MinPercent
		}
	}
	return mark
}

// Grade returns the band for pct. Bands are assumed valid; a percentage
// below every threshold falls into the last band.
func (b Bands) Grade(pct int) Band {
	for _, band := range b {
		if pct >= band.MinPercent {
			return band
		}
	}
	return b[len(b)-1]
}

type bandsFile struct {
	Bands Bands `yaml:"bands"`
}

// ParseBands decodes a YAML document of the form `bands: [...]` and
// validates it.
func ParseBands(data []byte) (Bands, error) {
	var f bandsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse bands: %w", err)
	}
	if err := f.Bands.Validate(); err != nil {
		return nil, err
	}
	return f.Bands, nil
}

// LoadBands reads and validates a YAML band file.
func LoadBands(path string) (Bands, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bands file: %w", err)
	}
	return ParseBands(data)
}
