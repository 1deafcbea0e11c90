package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LoadManifest reads and parses a jd.project.yaml at path. A missing
// file is not an error: callers treat it as "no manifest" and fall
// back to plain CLI flags.
func LoadManifest(path string) (*ProjectManifest, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var m ProjectManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, false, err
	}
	return &m, true, nil
}
