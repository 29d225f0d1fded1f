package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// Well-known plugin names referenced by the builder and validator.
const (
	PluginCommitAnalyzer        = "@semantic-release/commit-analyzer"
	PluginReleaseNotesGenerator = "@semantic-release/release-notes-generator"
	PluginChangelog             = "@semantic-release/changelog"
	PluginNPM                   = "@semantic-release/npm"
	PluginGit                   = "@semantic-release/git"
	PluginGitHub                = "@semantic-release/github"
	PluginFilePatch             = "semantic-release-filepatch"
)

// RequiredPlugins must be present in every release configuration for the
// pipeline to produce a version and release notes.
var RequiredPlugins = []string{
	PluginCommitAnalyzer,
	PluginReleaseNotesGenerator,
}

// Branch is a release branch entry. It marshals to a bare name string
// unless Prerelease is set, matching the compact configuration format.
type Branch struct {
	Name       string `json:"name"`
	Prerelease bool   `json:"prerelease,omitempty"`
}

// MarshalJSON emits a bare string for plain branches
func (b Branch) MarshalJSON() ([]byte, error) {
	if !b.Prerelease {
		return json.Marshal(b.Name)
	}
	type alias Branch
	return json.Marshal(alias(b))
}

// UnmarshalJSON accepts either a bare name string or a {name, prerelease}
// object
func (b *Branch) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		b.Name = name
		b.Prerelease = false
		return nil
	}

	type alias Branch
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return goerr.Wrap(err, "invalid branch entry")
	}
	*b = Branch(a)
	return nil
}

// Plugin is one stage of the release pipeline: a name plus optional
// configuration. The pipeline executes plugins in declaration order, so
// the position of a Plugin in ReleaseConfig.Plugins is significant.
type Plugin struct {
	Name    string
	Options map[string]any
}

// MarshalJSON emits a bare name string when the plugin carries no
// options, or a [name, options] tuple otherwise.
func (p Plugin) MarshalJSON() ([]byte, error) {
	if len(p.Options) == 0 {
		return json.Marshal(p.Name)
	}
	return json.Marshal([]any{p.Name, p.Options})
}

// UnmarshalJSON accepts either a bare name string or a [name, options]
// tuple
func (p *Plugin) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		p.Name = name
		p.Options = nil
		return nil
	}

	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err != nil {
		return goerr.Wrap(err, "invalid plugin entry")
	}
	if len(tuple) == 0 {
		return goerr.New("empty plugin entry")
	}
	if err := json.Unmarshal(tuple[0], &p.Name); err != nil {
		return goerr.Wrap(err, "plugin name must be a string")
	}
	if len(tuple) > 1 {
		if err := json.Unmarshal(tuple[1], &p.Options); err != nil {
			return goerr.Wrap(err, "plugin options must be an object")
		}
	}
	return nil
}

// ReleaseConfig is the plugin-pipeline descriptor consumed by the
// external release-automation tool.
type ReleaseConfig struct {
	Branches  []Branch `json:"branches,omitempty"`
	TagFormat string   `json:"tagFormat,omitempty"`
	Plugins   []Plugin `json:"plugins"`
}

// PluginNames returns pipeline plugin names in execution order.
func (c *ReleaseConfig) PluginNames() []string {
	names := make([]string, 0, len(c.Plugins))
	for _, p := range c.Plugins {
		names = append(names, p.Name)
	}
	return names
}

// AsMap converts the typed configuration to the loose map form the
// validator operates on.
func (c *ReleaseConfig) AsMap() (map[string]any, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal release config")
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, goerr.Wrap(err, "failed to convert release config")
	}
	return m, nil
}
