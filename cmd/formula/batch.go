package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// savedFormula is a named formula with the values last used with it.
type savedFormula struct {
	Name        string             `yaml:"name"`
	Formula     string             `yaml:"formula"`
	Description string             `yaml:"description"`
	Values      map[string]float64 `yaml:"values"`
}

// batchFile is the YAML document read by -batch.
type batchFile struct {
	Formulas []savedFormula `yaml:"formulas"`
}

// ValidationError aggregates batch file validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "batch: invalid file"
	}
	var b strings.Builder
	b.WriteString("batch validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// loadBatch reads and validates a batch file from disk.
func loadBatch(path string) (*batchFile, error) {
	if path == "" {
		return nil, fmt.Errorf("batch: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("batch: open %s: %w", path, err)
	}
	defer file.Close()
	return decodeBatch(file, path)
}

// decodeBatch parses a batch document. Unknown fields are errors so that
// misspelled keys are not silently ignored.
func decodeBatch(r io.Reader, name string) (*batchFile, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var b batchFile
	if err := decoder.Decode(&b); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("batch: %s is empty", name)
		}
		return nil, fmt.Errorf("batch: parse %s: %w", name, err)
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

func (b *batchFile) validate() error {
	var errs ValidationError
	if len(b.Formulas) == 0 {
		errs.Issues = append(errs.Issues, "formulas must list at least one formula")
	}
	seen := make(map[string]int, len(b.Formulas))
	for i, f := range b.Formulas {
		if strings.TrimSpace(f.Name) == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("formulas[%d].name must be provided", i))
		} else if j, ok := seen[f.Name]; ok {
			errs.Issues = append(errs.Issues, fmt.Sprintf("formulas[%d].name %q duplicates formulas[%d]", i, f.Name, j))
		} else {
			seen[f.Name] = i
		}
		if strings.TrimSpace(f.Formula) == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("formulas[%d].formula must be provided", i))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}
