package experiment

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Loader reads experiment definitions from a fallback hierarchy of
// directories, first match wins.
type Loader struct {
	dataDirs []string
}

// NewLoader initializes a Loader with the given directory fallback hierarchy.
func NewLoader(dataDirs []string) *Loader {
	return &Loader{dataDirs: dataDirs}
}

// LoadExperiment finds <name>.yaml in the data directories, decodes and
// validates it.
func (l *Loader) LoadExperiment(name string) (*Experiment, error) {
	var exp Experiment
	if err := l.load(fmt.Sprintf("%s.yaml", name), &exp); err != nil {
		return nil, err
	}
	if exp.Name == "" {
		exp.Name = name
	}
	if err := exp.Validate(); err != nil {
		return nil, err
	}
	return &exp, nil
}

// LoadFile decodes and validates an experiment from an explicit path.
func LoadFile(path string) (*Experiment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open experiment file %s: %w", path, err)
	}
	defer f.Close()

	var exp Experiment
	if err := yaml.NewDecoder(f).Decode(&exp); err != nil {
		return nil, fmt.Errorf("failed to decode experiment %s: %w", path, err)
	}
	if err := exp.Validate(); err != nil {
		return nil, err
	}
	return &exp, nil
}

func (l *Loader) load(ref string, target interface{}) error {
	for _, dir := range l.dataDirs {
		path := filepath.Join(dir, ref)
		f, err := os.Open(path)
		if err == nil {
			defer f.Close()
			decoder := yaml.NewDecoder(f)
			if err := decoder.Decode(target); err != nil {
				return fmt.Errorf("failed to decode experiment %s: %w", ref, err)
			}
			return nil
		}
	}
	return fmt.Errorf("could not find experiment %s in any available data directory", ref)
}
