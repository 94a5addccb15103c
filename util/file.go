package util

import (
	"os"

	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// ReadFileYAML unmarshals the given file into the target. The file may
// contain YAML or JSON.
func ReadFileYAML(path string, target interface{}) error {
	if !utility.FileExists(path) {
		return errors.Errorf("file %s does not exist", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "invalid file: %s", path)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return errors.Wrapf(err, "problem parsing yaml/json from file %s", path)
	}

	return nil
}
