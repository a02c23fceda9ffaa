package exam

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies the encoding of an exam document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Provider supplies the exam content for a session. It is consulted once,
// before the session is constructed.
type Provider interface {
	Load(ctx context.Context) (*Definition, error)
}

// FileProvider loads an exam from a JSON or YAML file.
type FileProvider struct {
	Path string
}

var _ Provider = FileProvider{}

// Load reads, schema-checks and validates the file.
func (p FileProvider) Load(_ context.Context) (*Definition, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("read exam file: %w", err)
	}
	format, err := FormatFromPath(p.Path)
	if err != nil {
		return nil, err
	}
	def, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(p.Path), err)
	}
	return def, nil
}

//go:embed sample.yaml
var sampleExam []byte

// SampleProvider serves the bundled sample exam.
type SampleProvider struct{}

var _ Provider = SampleProvider{}

// Load decodes the embedded sample exam.
func (SampleProvider) Load(_ context.Context) (*Definition, error) {
	return Decode(sampleExam, FormatYAML)
}

// FormatFromPath picks a Format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported exam file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
}

// Decode parses an exam document, checks it against Schema and runs the
// structural validation. The returned Definition is ready for a session.
func Decode(data []byte, format Format) (*Definition, error) {
	var doc any
	def := &Definition{}

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		if err := validateSchema(doc); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, def); err != nil {
			return nil, fmt.Errorf("decode exam: %w", err)
		}
	case FormatYAML:
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		// Normalize through JSON so the schema sees the same value shapes
		// as it would for a JSON document.
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("convert YAML: %w", err)
		}
		if err := json.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("convert YAML: %w", err)
		}
		if err := validateSchema(doc); err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, def); err != nil {
			return nil, fmt.Errorf("decode exam: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown exam format %q", format)
	}

	fillQuestionCounts(def)
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}

// fillQuestionCounts sets omitted part question counts from the questions.
func fillQuestionCounts(d *Definition) {
	for i := range d.Parts {
		if d.Parts[i].QuestionCount == 0 {
			d.Parts[i].QuestionCount = len(d.QuestionsInPart(d.Parts[i].ID))
		}
	}
}
