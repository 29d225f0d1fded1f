package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/relkit/pkg/domain/interfaces"
	"github.com/m-mizutani/relkit/pkg/domain/model"
)

// DefaultNodeVersion is used when the manifest declares no engine
// constraint.
const DefaultNodeVersion = "20"

// npmPlaceholderTest is the script npm init generates; its presence
// does not mean the project has tests.
const npmPlaceholderTest = "no test specified"

// testFrameworks are dependency names that make a generic "test" script
// trustworthy.
var testFrameworks = []string{"jest", "mocha", "vitest", "ava", "tap", "jasmine"}

// ciTestScripts are script names that exist specifically to run tests
// in CI.
var ciTestScripts = []string{"test:ci", "ci:test"}

// buildScripts are candidate build script names, in preference order.
var buildScripts = []string{"build", "compile", "dist"}

// auxScripts are auxiliary script names worth surfacing to the workflow.
var auxScripts = []string{"lint", "format", "typecheck", "validate"}

type detector struct {
	reader interfaces.ProjectReader
}

// NewDetector creates a new DetectorUseCase instance
func NewDetector(reader interfaces.ProjectReader) interfaces.DetectorUseCase {
	return &detector{reader: reader}
}

// Detect inspects the project in dir and infers release settings. Every
// failure degrades to a default and is only logged; detection is
// best-effort by design.
func (uc *detector) Detect(ctx context.Context, dir string) *model.ProjectDetection {
	logger := ctxlog.From(ctx)

	detection := &model.ProjectDetection{
		Branches:    []string{"main"},
		NodeVersion: DefaultNodeVersion,
	}

	if branches := uc.detectBranches(ctx, dir); len(branches) > 0 {
		detection.Branches = branches
	}

	manifest, err := uc.reader.ReadManifest(ctx, dir)
	if err != nil {
		logger.Warn("could not read manifest, using defaults", "dir", dir, "error", err)
		return detection
	}

	if v := parseNodeVersion(manifest.Engines["node"]); v != "" {
		detection.NodeVersion = v
	}

	detection.RunTests, detection.TestCommand = detectTestCommand(manifest)

	for _, name := range buildScripts {
		if _, ok := manifest.Scripts[name]; ok {
			detection.BuildCommand = "npm run " + name
			break
		}
	}

	for _, name := range auxScripts {
		if _, ok := manifest.Scripts[name]; ok {
			detection.Scripts = append(detection.Scripts, name)
		}
	}

	logger.Debug("project detection completed",
		"branches", detection.Branches,
		"node_version", detection.NodeVersion,
		"run_tests", detection.RunTests,
		"build_command", detection.BuildCommand,
	)

	return detection
}

// detectBranches pulls branch names from an existing release
// configuration, if any.
func (uc *detector) detectBranches(ctx context.Context, dir string) []string {
	logger := ctxlog.From(ctx)

	cfg, path, err := uc.reader.LoadReleaseConfig(ctx, dir)
	if err != nil {
		logger.Warn("no existing release config, defaulting branches", "dir", dir, "error", err)
		return nil
	}

	raw, ok := cfg["branches"].([]any)
	if !ok {
		return nil
	}

	var branches []string
	for _, entry := range raw {
		switch v := entry.(type) {
		case string:
			branches = append(branches, v)
		case map[string]any:
			if name, ok := v["name"].(string); ok {
				branches = append(branches, name)
			}
		}
	}

	if len(branches) > 0 {
		logger.Debug("branches taken from existing config", "path", path, "branches", branches)
	}
	return branches
}

// parseNodeVersion strips range operators from an engines constraint,
// keeping only the leading version of the first clause.
func parseNodeVersion(constraint string) string {
	first := constraint
	for _, sep := range []string{"||", " - ", ","} {
		if idx := strings.Index(first, sep); idx >= 0 {
			first = first[:idx]
		}
	}
	first = strings.TrimSpace(first)
	first = strings.TrimLeft(first, "^~>=< ")
	first = strings.TrimPrefix(first, "v")
	if idx := strings.IndexByte(first, ' '); idx >= 0 {
		first = first[:idx]
	}
	return first
}

// detectTestCommand decides whether tests should run in the workflow.
// Only a CI-specific script, or a generic test script backed by a known
// test framework, counts. A bare "test" script alone is too often the
// npm placeholder or a stale stub to trust.
func detectTestCommand(manifest *model.Manifest) (bool, string) {
	for _, name := range ciTestScripts {
		if _, ok := manifest.Scripts[name]; ok {
			return true, "npm run " + name
		}
	}

	script, ok := manifest.Scripts["test"]
	if !ok || strings.Contains(script, npmPlaceholderTest) {
		return false, ""
	}

	for _, framework := range testFrameworks {
		if manifest.HasDependency(framework) {
			return true, "npm test"
		}
	}
	return false, ""
}
