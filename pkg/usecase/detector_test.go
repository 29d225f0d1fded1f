package usecase_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relkit/pkg/infra/project"
	"github.com/m-mizutani/relkit/pkg/usecase"
)

func writeManifest(t *testing.T, dir string, manifest map[string]any) {
	t.Helper()
	data, err := json.Marshal(manifest)
	gt.NoError(t, err)
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), data, 0644))
}

func TestDetector_TestCommand(t *testing.T) {
	tests := []struct {
		name        string
		manifest    map[string]any
		wantRun     bool
		wantCommand string
	}{
		{
			name: "test script with jest dependency",
			manifest: map[string]any{
				"scripts":         map[string]any{"test": "jest"},
				"devDependencies": map[string]any{"jest": "^29.0.0"},
			},
			wantRun:     true,
			wantCommand: "npm test",
		},
		{
			name: "npm placeholder script",
			manifest: map[string]any{
				"scripts": map[string]any{"test": `echo "Error: no test specified" && exit 1`},
			},
			wantRun: false,
		},
		{
			name: "test script without framework dependency",
			manifest: map[string]any{
				"scripts": map[string]any{"test": "node test.js"},
			},
			wantRun: false,
		},
		{
			name: "ci-specific test script",
			manifest: map[string]any{
				"scripts": map[string]any{"test:ci": "jest --ci"},
			},
			wantRun:     true,
			wantCommand: "npm run test:ci",
		},
		{
			name: "mocha in dependencies",
			manifest: map[string]any{
				"scripts":      map[string]any{"test": "mocha"},
				"dependencies": map[string]any{"mocha": "^10.0.0"},
			},
			wantRun:     true,
			wantCommand: "npm test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tt.manifest)

			uc := usecase.NewDetector(project.NewClient())
			detection := uc.Detect(context.Background(), dir)

			gt.Value(t, detection.RunTests).Equal(tt.wantRun)
			gt.Value(t, detection.TestCommand).Equal(tt.wantCommand)
		})
	}
}

func TestDetector_NodeVersion(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		want       string
	}{
		{name: "caret range", constraint: "^18.17.0", want: "18.17.0"},
		{name: "gte range", constraint: ">=18.17 <21", want: "18.17"},
		{name: "v prefix", constraint: "v20.1.0", want: "20.1.0"},
		{name: "or clauses", constraint: "^18 || ^20", want: "18"},
		{name: "absent falls back", constraint: "", want: "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			manifest := map[string]any{}
			if tt.constraint != "" {
				manifest["engines"] = map[string]any{"node": tt.constraint}
			}
			writeManifest(t, dir, manifest)

			uc := usecase.NewDetector(project.NewClient())
			detection := uc.Detect(context.Background(), dir)

			gt.Value(t, detection.NodeVersion).Equal(tt.want)
		})
	}
}

func TestDetector_BuildAndAuxScripts(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, map[string]any{
		"scripts": map[string]any{
			"compile":   "tsc",
			"lint":      "eslint .",
			"typecheck": "tsc --noEmit",
			"deploy":    "echo deploy",
		},
	})

	uc := usecase.NewDetector(project.NewClient())
	detection := uc.Detect(context.Background(), dir)

	gt.Value(t, detection.BuildCommand).Equal("npm run compile")
	gt.Value(t, detection.Scripts).Equal([]string{"lint", "typecheck"})
}

func TestDetector_BranchesFromExistingConfig(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, map[string]any{})
	releaserc := `{"branches": ["main", {"name": "beta", "prerelease": true}], "plugins": []}`
	gt.NoError(t, os.WriteFile(filepath.Join(dir, ".releaserc.json"), []byte(releaserc), 0644))

	uc := usecase.NewDetector(project.NewClient())
	detection := uc.Detect(context.Background(), dir)

	gt.Value(t, detection.Branches).Equal([]string{"main", "beta"})
}

func TestDetector_DefaultsOnMissingProject(t *testing.T) {
	uc := usecase.NewDetector(project.NewClient())
	detection := uc.Detect(context.Background(), t.TempDir())

	gt.Value(t, detection.Branches).Equal([]string{"main"})
	gt.Value(t, detection.NodeVersion).Equal("20")
	gt.Value(t, detection.RunTests).Equal(false)
	gt.Value(t, detection.BuildCommand).Equal("")
}
