package interfaces

import (
	"context"

	"github.com/m-mizutani/relkit/pkg/domain/model"
)

// ProjectReader defines filesystem access to a project's configuration
// files.
type ProjectReader interface {
	// ReadManifest reads and parses package.json in dir.
	ReadManifest(ctx context.Context, dir string) (*model.Manifest, error)

	// LoadReleaseConfig discovers and loads the release configuration
	// from the conventional candidate files in dir, falling back to the
	// manifest's release field. It returns the loose config object and
	// the path it was loaded from ("package.json" for the fallback).
	LoadReleaseConfig(ctx context.Context, dir string) (map[string]any, string, error)

	// LoadReleaseConfigFile loads a release configuration from an
	// explicit path, parsed by extension.
	LoadReleaseConfigFile(ctx context.Context, path string) (map[string]any, error)

	// WriteReleaseConfig writes a generated configuration as indented
	// JSON, returning the written path.
	WriteReleaseConfig(ctx context.Context, dir string, cfg *model.ReleaseConfig) (string, error)
}
