package cmd

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// answerSheet maps question IDs to 0-based option indexes.
type answerSheet map[int]int

// loadAnswers reads a JSON or YAML answers file. Keys are question IDs.
// Values are either a 0-based option index or an option letter ("A", "b").
// Blank values leave the question unanswered.
func loadAnswers(path string) (answerSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers file: %w", err)
	}
	return parseAnswers(data)
}

func parseAnswers(data []byte) (answerSheet, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}

	sheet := make(answerSheet, len(raw))
	for k, v := range raw {
		id, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("question id %q: not a number", k)
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		opt, err := parseOption(v)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", id, err)
		}
		sheet[id] = opt
	}
	return sheet, nil
}

func parseOption(v string) (int, error) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	if len(v) == 1 {
		c := v[0] | 0x20 // lower-case ASCII letters
		if c >= 'a' && c <= 'z' {
			return int(c - 'a'), nil
		}
	}
	return 0, fmt.Errorf("option %q: want an index or a letter", v)
}

// IDs returns the answered question IDs in ascending order.
func (s answerSheet) IDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
