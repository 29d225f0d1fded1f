package usecase

import (
	"github.com/m-mizutani/relkit/pkg/domain/model"
)

// BuildOptions selects which stages the generated plugin pipeline
// contains and how they are configured.
type BuildOptions struct {
	Branches []model.Branch
	// NPMPublish enables the npm plugin; the value of npmPublish is set
	// explicitly either way.
	NPM        bool
	NPMPublish bool
	// Changelog enables changelog generation and, together with Git,
	// commits the changelog back to the repository.
	Changelog bool
	Git       bool
	// FilePatchRules, when present, inserts the file-patch plugin before
	// the git/github stages so patched files are part of the release
	// commit.
	FilePatchRules []model.FilePatchRule
	// TagFormat overrides the default tag format when set.
	TagFormat string
}

// DefaultBuildOptions is the pipeline setup generates when nothing was
// detected: main-branch releases with GitHub publication only.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		Branches: []model.Branch{{Name: "main"}},
	}
}

// BuildConfig assembles a release configuration from options and
// defaults. The plugin order is the pipeline execution order: analysis
// first, then note generation, then publication stages.
func BuildConfig(opts BuildOptions) *model.ReleaseConfig {
	cfg := &model.ReleaseConfig{
		Branches:  opts.Branches,
		TagFormat: opts.TagFormat,
	}
	if len(cfg.Branches) == 0 {
		cfg.Branches = []model.Branch{{Name: "main"}}
	}

	cfg.Plugins = append(cfg.Plugins,
		model.Plugin{Name: model.PluginCommitAnalyzer},
		model.Plugin{Name: model.PluginReleaseNotesGenerator},
	)

	if opts.Changelog {
		cfg.Plugins = append(cfg.Plugins, model.Plugin{
			Name:    model.PluginChangelog,
			Options: map[string]any{"changelogFile": "CHANGELOG.md"},
		})
	}

	if opts.NPM {
		cfg.Plugins = append(cfg.Plugins, model.Plugin{
			Name:    model.PluginNPM,
			Options: map[string]any{"npmPublish": opts.NPMPublish},
		})
	}

	if len(opts.FilePatchRules) > 0 {
		files := make([]any, 0, len(opts.FilePatchRules))
		for _, rule := range opts.FilePatchRules {
			files = append(files, rule)
		}
		cfg.Plugins = append(cfg.Plugins, model.Plugin{
			Name:    model.PluginFilePatch,
			Options: map[string]any{"files": files},
		})
	}

	if opts.Git {
		assets := []string{"package.json"}
		if opts.Changelog {
			assets = append(assets, "CHANGELOG.md")
		}
		for _, rule := range opts.FilePatchRules {
			assets = append(assets, rule.Path)
		}
		cfg.Plugins = append(cfg.Plugins, model.Plugin{
			Name: model.PluginGit,
			Options: map[string]any{
				"assets":  assets,
				"message": "chore(release): ${nextRelease.version} [skip ci]",
			},
		})
	}

	cfg.Plugins = append(cfg.Plugins, model.Plugin{Name: model.PluginGitHub})

	return cfg
}
