package model

import "encoding/json"

// Manifest is the subset of package.json the detector inspects.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private"`
	Engines         map[string]string `json:"engines"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	// Release holds an inline release configuration when the project
	// keeps it in package.json instead of a dedicated file.
	Release json.RawMessage `json:"release"`
}

// HasDependency checks dependencies and devDependencies for a package.
func (m *Manifest) HasDependency(name string) bool {
	if _, ok := m.Dependencies[name]; ok {
		return true
	}
	_, ok := m.DevDependencies[name]
	return ok
}

// ProjectDetection holds settings inferred from a project's manifest and
// release configuration. Every field has a usable default; detection
// never fails.
type ProjectDetection struct {
	Branches     []string `json:"branches"`
	NodeVersion  string   `json:"nodeVersion"`
	RunTests     bool     `json:"runTests"`
	TestCommand  string   `json:"testCommand,omitempty"`
	BuildCommand string   `json:"buildCommand,omitempty"`
	// Scripts lists auxiliary script names (lint, format, typecheck,
	// validate) present in the manifest.
	Scripts []string `json:"scripts,omitempty"`
}
