package usecase_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relkit/pkg/domain/model"
	"github.com/m-mizutani/relkit/pkg/usecase"
)

func TestBuildConfig_Defaults(t *testing.T) {
	cfg := usecase.BuildConfig(usecase.DefaultBuildOptions())

	gt.Value(t, len(cfg.Branches)).Equal(1)
	gt.Value(t, cfg.Branches[0].Name).Equal("main")
	gt.Value(t, cfg.PluginNames()).Equal([]string{
		model.PluginCommitAnalyzer,
		model.PluginReleaseNotesGenerator,
		model.PluginGitHub,
	})
}

func TestBuildConfig_PipelineOrder(t *testing.T) {
	cfg := usecase.BuildConfig(usecase.BuildOptions{
		Branches:  []model.Branch{{Name: "main"}, {Name: "beta", Prerelease: true}},
		NPM:       true,
		Changelog: true,
		Git:       true,
		FilePatchRules: []model.FilePatchRule{
			{Path: "version.txt", Pattern: `\d+\.\d+\.\d+`, Replacement: "{version}"},
		},
	})

	// Analysis first, publication last; file patching must run before
	// the git commit so patched files land in the release commit.
	gt.Value(t, cfg.PluginNames()).Equal([]string{
		model.PluginCommitAnalyzer,
		model.PluginReleaseNotesGenerator,
		model.PluginChangelog,
		model.PluginNPM,
		model.PluginFilePatch,
		model.PluginGit,
		model.PluginGitHub,
	})
}

func TestBuildConfig_ExplicitNPMPublish(t *testing.T) {
	cfg := usecase.BuildConfig(usecase.BuildOptions{NPM: true, NPMPublish: false})

	for _, plugin := range cfg.Plugins {
		if plugin.Name != model.PluginNPM {
			continue
		}
		gt.Value(t, plugin.Options["npmPublish"]).Equal(false)
		return
	}
	t.Fatal("npm plugin not found")
}

func TestBuildConfig_GitAssetsIncludePatchedFiles(t *testing.T) {
	cfg := usecase.BuildConfig(usecase.BuildOptions{
		Git:       true,
		Changelog: true,
		FilePatchRules: []model.FilePatchRule{
			{Path: "src/version.ts", Pattern: "x", Replacement: "y"},
		},
	})

	for _, plugin := range cfg.Plugins {
		if plugin.Name != model.PluginGit {
			continue
		}
		gt.Value(t, plugin.Options["assets"]).Equal([]string{"package.json", "CHANGELOG.md", "src/version.ts"})
		return
	}
	t.Fatal("git plugin not found")
}

func TestReleaseConfig_MarshalShapes(t *testing.T) {
	cfg := usecase.BuildConfig(usecase.BuildOptions{
		Branches: []model.Branch{{Name: "main"}, {Name: "beta", Prerelease: true}},
		NPM:      true,
	})

	data, err := json.Marshal(cfg)
	gt.NoError(t, err)

	var raw map[string]any
	gt.NoError(t, json.Unmarshal(data, &raw))

	branches := raw["branches"].([]any)
	gt.Value(t, branches[0]).Equal("main")
	beta := branches[1].(map[string]any)
	gt.Value(t, beta["name"]).Equal("beta")
	gt.Value(t, beta["prerelease"]).Equal(true)

	plugins := raw["plugins"].([]any)
	// Optionless plugins collapse to a bare name string
	gt.Value(t, plugins[0]).Equal(model.PluginCommitAnalyzer)
	// The npm plugin keeps its [name, options] tuple
	npm := plugins[2].([]any)
	gt.Value(t, npm[0]).Equal(model.PluginNPM)
}
