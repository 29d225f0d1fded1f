package project

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relkit/pkg/domain/interfaces"
	"github.com/m-mizutani/relkit/pkg/domain/model"
)

// ConfigCandidates are the conventional release-config filenames, in
// lookup order. The manifest's release field is tried last.
var ConfigCandidates = []string{
	".releaserc",
	".releaserc.json",
	".releaserc.yaml",
	".releaserc.yml",
	"release.config.json",
}

// ManifestFile is the project manifest filename.
const ManifestFile = "package.json"

// ReleaseConfigFile is the filename WriteReleaseConfig produces.
const ReleaseConfigFile = ".releaserc.json"

type client struct{}

// NewClient creates a filesystem-backed project reader
func NewClient() interfaces.ProjectReader {
	return &client{}
}

// ReadManifest reads and parses package.json in dir
func (c *client) ReadManifest(ctx context.Context, dir string) (*model.Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read manifest", goerr.V("path", path))
	}

	var manifest model.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, goerr.Wrap(err, "failed to parse manifest", goerr.V("path", path))
	}
	return &manifest, nil
}

// LoadReleaseConfig discovers and loads the release configuration in dir
func (c *client) LoadReleaseConfig(ctx context.Context, dir string) (map[string]any, string, error) {
	for _, name := range ConfigCandidates {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := c.LoadReleaseConfigFile(ctx, path)
		if err != nil {
			return nil, "", err
		}
		return cfg, path, nil
	}

	// Fall back to the release field of package.json
	manifest, err := c.ReadManifest(ctx, dir)
	if err == nil && len(manifest.Release) > 0 {
		var cfg map[string]any
		if err := json.Unmarshal(manifest.Release, &cfg); err != nil {
			return nil, "", goerr.Wrap(err, "failed to parse release field of manifest",
				goerr.V("dir", dir))
		}
		return cfg, filepath.Join(dir, ManifestFile), nil
	}

	return nil, "", goerr.New("no release configuration found",
		goerr.V("dir", dir), goerr.V("candidates", ConfigCandidates))
}

// LoadReleaseConfigFile loads a release configuration from an explicit
// path. Extensionless files (.releaserc) are treated as JSON.
func (c *client) LoadReleaseConfigFile(ctx context.Context, path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read release config", goerr.V("path", path))
	}

	var cfg map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, goerr.Wrap(err, "failed to parse YAML release config", goerr.V("path", path))
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, goerr.Wrap(err, "failed to parse JSON release config", goerr.V("path", path))
		}
	}
	return cfg, nil
}

// WriteReleaseConfig writes cfg as indented JSON to .releaserc.json
func (c *client) WriteReleaseConfig(ctx context.Context, dir string, cfg *model.ReleaseConfig) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal release config")
	}
	data = append(data, '\n')

	path := filepath.Join(dir, ReleaseConfigFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", goerr.Wrap(err, "failed to write release config", goerr.V("path", path))
	}
	return path, nil
}
