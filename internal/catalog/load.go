package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileQuestion is the YAML shape of one catalog entry. Index is implicit
// from file order.
type fileQuestion struct {
	Prompt  string       `yaml:"prompt"`
	Kind    string       `yaml:"kind"`
	Rubric  string       `yaml:"rubric"`
	Notice  string       `yaml:"notice"`
	Options []fileOption `yaml:"options"`
}

type fileOption struct {
	Token string `yaml:"token"`
	Label string `yaml:"label"`
	Score int    `yaml:"score"`
}

type catalogFile struct {
	Questions []fileQuestion `yaml:"questions"`
}

// Load reads a YAML catalog file and builds a validated catalog.
func Load(path string) (*Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %q: %w", path, err)
	}
	return Parse(content)
}

// Parse builds a validated catalog from YAML bytes.
func Parse(content []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	questions := make([]Question, 0, len(file.Questions))
	for i, fq := range file.Questions {
		kind := Kind(fq.Kind)
		if fq.Kind == "" {
			kind = KindFreeText
		}
		options := make([]Option, 0, len(fq.Options))
		for _, fo := range fq.Options {
			options = append(options, Option{Token: fo.Token, Label: fo.Label, Score: fo.Score})
		}
		if len(options) == 0 {
			options = nil
		}
		questions = append(questions, Question{
			Index:   i,
			Prompt:  fq.Prompt,
			Kind:    kind,
			Options: options,
			Rubric:  fq.Rubric,
			Notice:  fq.Notice,
		})
	}

	return New(questions)
}
