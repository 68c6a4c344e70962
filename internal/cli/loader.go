package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/quillscript/quillc/internal/quilltest"
)

// LoadError represents an error that occurred while loading fixtures.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NamedFixture pairs a loaded fixture with the file it came from, so a
// caller can report failures against the path the author will recognize.
type NamedFixture struct {
	Path    string
	Fixture *quilltest.Fixture
}

// LoadFixtures walks dir for *.yaml/*.yml program fixtures and loads each
// one through quilltest.Load, in filename order. A fixture that fails to
// parse is reported as a LoadError alongside whatever else loaded; it
// does not stop the walk, so a single bad fixture doesn't hide failures
// in its neighbors.
func LoadFixtures(dir string) ([]NamedFixture, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("fixtures directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing fixtures directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	paths, err := FindFixtureFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(paths) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no fixture files found in %s", dir)}}
	}

	var fixtures []NamedFixture
	var errs []error
	for _, path := range paths {
		fixture, err := quilltest.Load(path)
		if err != nil {
			errs = append(errs, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("%s: %v", path, err)})
			continue
		}
		fixtures = append(fixtures, NamedFixture{Path: path, Fixture: fixture})
	}

	return fixtures, errs
}

// FindFixtureFiles walks dir and returns every .yaml/.yml file path, sorted
// so a test run's ordering is stable across filesystems.
func FindFixtureFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No fixture files found
	ErrCodeLoadFailed  = "E004" // Fixture load/parse failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // Index build failed
	ErrCodeWriteFailed = "E007" // File write error
)
