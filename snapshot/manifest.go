package snapshot

import (
	"encoding/json"
	"os"

	"github.com/ExProbitasFiducia/deno/errors"
)

// WriteLibManifest records the library names baked into a compiler
// snapshot, beside the artifact, so consumers can check that a loaded
// snapshot carries exactly the libraries the build requested.
func WriteLibManifest(path string, libs []string) error {
	data, err := json.Marshal(libs)
	if err != nil {
		return errors.IO(errors.PhaseSnapshot, "encode lib manifest", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.IO(errors.PhaseSnapshot, "write lib manifest", err)
	}
	return nil
}

// ReadLibManifest reads a library manifest written by WriteLibManifest.
func ReadLibManifest(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO(errors.PhaseLoad, "read lib manifest", err)
	}
	var libs []string
	if err := json.Unmarshal(data, &libs); err != nil {
		return nil, errors.BadArtifact("lib manifest does not decode: " + err.Error())
	}
	return libs, nil
}
