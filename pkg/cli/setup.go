package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relkit/pkg/cli/config"
	"github.com/m-mizutani/relkit/pkg/domain/model"
	"github.com/m-mizutani/relkit/pkg/infra/project"
	"github.com/m-mizutani/relkit/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdSetup() *cli.Command {
	var (
		projectCfg config.Project
		name       string
		branches   []string
		npmPublish bool
		changelog  bool
		gitCommit  bool
		force      bool
		dryRun     bool
	)

	flags := append(projectCfg.Flags(),
		&cli.StringFlag{
			Name:        "name",
			Usage:       "Workflow name",
			Value:       "Release",
			Destination: &name,
			Sources:     cli.EnvVars("RELKIT_WORKFLOW_NAME"),
		},
		&cli.StringSliceFlag{
			Name:        "branch",
			Usage:       "Release branch (repeatable; default: detected)",
			Destination: &branches,
		},
		&cli.BoolFlag{
			Name:        "npm-publish",
			Usage:       "Publish to the npm registry",
			Destination: &npmPublish,
			Sources:     cli.EnvVars("RELKIT_NPM_PUBLISH"),
		},
		&cli.BoolFlag{
			Name:        "changelog",
			Usage:       "Generate CHANGELOG.md",
			Destination: &changelog,
		},
		&cli.BoolFlag{
			Name:        "git-commit",
			Usage:       "Commit updated files back to the repository",
			Destination: &gitCommit,
		},
		&cli.BoolFlag{
			Name:        "force",
			Usage:       "Overwrite an existing release config",
			Destination: &force,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Print generated files instead of writing them",
			Destination: &dryRun,
		},
	)

	return &cli.Command{
		Name:  "setup",
		Usage: "Detect project settings and generate release config and workflow",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			reader := project.NewClient()
			detectorUC := usecase.NewDetector(reader)
			rendererUC, err := usecase.NewRenderer()
			if err != nil {
				return err
			}

			detection := detectorUC.Detect(ctx, projectCfg.Dir)

			branchNames := branches
			if len(branchNames) == 0 {
				branchNames = detection.Branches
			}
			branchSpecs := make([]model.Branch, 0, len(branchNames))
			for _, b := range branchNames {
				branchSpecs = append(branchSpecs, model.Branch{Name: b})
			}

			cfg := usecase.BuildConfig(usecase.BuildOptions{
				Branches:   branchSpecs,
				NPM:        npmPublish,
				NPMPublish: npmPublish,
				Changelog:  changelog,
				Git:        gitCommit,
			})

			workflowOpts := &model.WorkflowOptions{
				Name:         name,
				Branches:     branchNames,
				NodeVersion:  detection.NodeVersion,
				RunTests:     detection.RunTests,
				TestCommand:  detection.TestCommand,
				BuildCommand: detection.BuildCommand,
				NPMPublish:   npmPublish,
				ExtraSteps:   auxSteps(detection.Scripts),
			}

			if dryRun {
				data, err := json.MarshalIndent(cfg, "", "  ")
				if err != nil {
					return goerr.Wrap(err, "failed to marshal release config")
				}
				text, err := rendererUC.Render(ctx, workflowOpts)
				if err != nil {
					return err
				}
				fmt.Printf("--- %s\n%s\n", project.ReleaseConfigFile, data)
				fmt.Printf("--- %s\n%s", usecase.WorkflowPath, text)
				return nil
			}

			configPath := filepath.Join(projectCfg.Dir, project.ReleaseConfigFile)
			if _, err := os.Stat(configPath); err == nil && !force {
				logger.Warn("release config already exists, keeping it (use --force to overwrite)",
					"path", configPath)
			} else {
				path, err := reader.WriteReleaseConfig(ctx, projectCfg.Dir, cfg)
				if err != nil {
					return err
				}
				logger.Info("wrote release config", "path", path)
			}

			workflowPath, err := rendererUC.WriteWorkflow(ctx, projectCfg.Dir, workflowOpts)
			if err != nil {
				return err
			}
			logger.Info("setup complete",
				"workflow", workflowPath,
				"branches", branchNames,
				"run_tests", detection.RunTests,
			)
			return nil
		},
	}
}

// auxSteps turns detected auxiliary scripts into workflow steps that run
// between install and release.
func auxSteps(scripts []string) []model.WorkflowStep {
	steps := make([]model.WorkflowStep, 0, len(scripts))
	for _, script := range scripts {
		steps = append(steps, model.WorkflowStep{
			Name: script,
			Run:  "npm run " + script,
		})
	}
	return steps
}
