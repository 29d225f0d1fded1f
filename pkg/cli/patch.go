package cli

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relkit/pkg/cli/config"
	"github.com/m-mizutani/relkit/pkg/domain/model"
	"github.com/m-mizutani/relkit/pkg/infra/project"
	"github.com/m-mizutani/relkit/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdPatch() *cli.Command {
	var (
		projectCfg config.Project
		releaseCfg config.Release
	)

	flags := append(projectCfg.Flags(), releaseCfg.Flags()...)

	return &cli.Command{
		Name:  "patch",
		Usage: "Apply file-patch rules with the real release version",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			reader := project.NewClient()

			var cfg map[string]any
			var err error
			if releaseCfg.ConfigPath != "" {
				cfg, err = reader.LoadReleaseConfigFile(ctx, releaseCfg.ConfigPath)
			} else {
				cfg, _, err = reader.LoadReleaseConfig(ctx, projectCfg.Dir)
			}
			if err != nil {
				return goerr.Wrap(err, "failed to load release config")
			}

			rules, err := usecase.CollectFileRules(cfg)
			if err != nil {
				return goerr.Wrap(err, "failed to collect file-patch rules")
			}
			if len(rules) == 0 {
				logger.Info("no file-patch rules configured, nothing to do")
				return nil
			}

			patcherUC := usecase.NewPatcher(usecase.WithPatcherWorkDir(projectCfg.Dir))
			result, err := patcherUC.Apply(ctx, rules, &model.ReleaseContext{
				Version:        releaseCfg.Version,
				Now:            time.Now(),
				DatetimeFormat: model.DatetimeFormat(releaseCfg.DatetimeFormat),
			})
			if err != nil {
				return goerr.Wrap(err, "file patching failed")
			}

			logger.Info("file patching complete",
				"files", len(result.Files),
				"replacements", result.TotalReplacements,
				"version", releaseCfg.Version,
			)
			return nil
		},
	}
}
