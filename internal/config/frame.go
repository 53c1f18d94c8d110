package config

import (
	"fmt"
	"os"

	"github.com/credalab/credence/internal/domain"
	"gopkg.in/yaml.v3"
)

type frameFile struct {
	Hypotheses []domain.Hypothesis `yaml:"hypotheses"`
}

// LoadFrame reads the frame of discernment from the YAML file at path and
// returns the resolved frame alongside the configured hypotheses.
func LoadFrame(path string) (*domain.Frame, []domain.Hypothesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read frame file: %w", err)
	}

	var f frameFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("parse frame file %s: %w", path, err)
	}

	names := make([]string, 0, len(f.Hypotheses))
	for _, h := range f.Hypotheses {
		names = append(names, h.Name)
	}
	frame, err := domain.NewFrame(names)
	if err != nil {
		return nil, nil, fmt.Errorf("frame file %s: %w", path, err)
	}
	return frame, f.Hypotheses, nil
}
