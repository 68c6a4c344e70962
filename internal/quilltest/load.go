package quilltest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a Fixture from a yaml file on disk, following the teacher's
// harness.LoadScenario convention of keeping test programs as data files
// under testdata/ rather than inline Go literals.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("quilltest: reading fixture %s: %w", path, err)
	}
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("quilltest: parsing fixture %s: %w", path, err)
	}
	return &f, nil
}
