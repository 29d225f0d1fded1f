package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relkit/pkg/cli/config"
	"github.com/m-mizutani/relkit/pkg/domain/model"
	"github.com/m-mizutani/relkit/pkg/infra/project"
	"github.com/m-mizutani/relkit/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var (
		projectCfg   config.Project
		strict       bool
		checkPlugins bool
		verbose      bool
	)

	flags := append(projectCfg.Flags(),
		&cli.BoolFlag{
			Name:        "strict",
			Usage:       "Treat warnings as failures",
			Destination: &strict,
			Sources:     cli.EnvVars("RELKIT_STRICT"),
		},
		&cli.BoolFlag{
			Name:        "check-plugins",
			Usage:       "Verify required plugins and dry-run file-patch rules",
			Value:       true,
			Destination: &checkPlugins,
			Sources:     cli.EnvVars("RELKIT_CHECK_PLUGINS"),
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Usage:       "Print suggestions and the full summary",
			Destination: &verbose,
			Sources:     cli.EnvVars("RELKIT_VERBOSE"),
		},
	)

	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"check"},
		Usage:     "Validate a release configuration",
		ArgsUsage: "[config path]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			reader := project.NewClient()
			validatorUC := usecase.NewValidator(reader, usecase.WithWorkDir(projectCfg.Dir))

			opts := model.ValidateOptions{
				Strict:       strict,
				CheckPlugins: checkPlugins,
				Verbose:      verbose,
			}

			var result *model.ValidationResult
			if path := c.Args().First(); path != "" {
				r, err := validatorUC.ValidateFile(ctx, path, opts)
				if err != nil {
					color.Red("✗ %v", err)
					return goerr.Wrap(err, "failed to load release config")
				}
				result = r
			} else {
				cfg, path, err := reader.LoadReleaseConfig(ctx, projectCfg.Dir)
				if err != nil {
					color.Red("✗ %v", err)
					return goerr.Wrap(err, "failed to load release config")
				}
				logger.Debug("validating release config", "path", path)
				result = validatorUC.Validate(ctx, cfg, opts)
			}

			printReport(result, verbose)

			if !result.IsValid {
				return goerr.New("configuration is invalid",
					goerr.V("errors", len(result.Errors)),
					goerr.V("warnings", len(result.Warnings)),
				)
			}
			return nil
		},
	}
}

func printReport(result *model.ValidationResult, verbose bool) {
	errHeader := color.New(color.FgRed, color.Bold)
	warnHeader := color.New(color.FgYellow, color.Bold)
	hintHeader := color.New(color.FgCyan, color.Bold)
	okHeader := color.New(color.FgGreen, color.Bold)

	if len(result.Errors) > 0 {
		errHeader.Printf("Errors (%d)\n", len(result.Errors))
		for _, msg := range result.Errors {
			fmt.Printf("  ✗ %s\n", msg)
		}
	}

	if len(result.Warnings) > 0 {
		warnHeader.Printf("Warnings (%d)\n", len(result.Warnings))
		for _, msg := range result.Warnings {
			fmt.Printf("  ! %s\n", msg)
		}
	}

	if len(result.Suggestions) > 0 && (verbose || result.IsValid) {
		hintHeader.Printf("Suggestions (%d)\n", len(result.Suggestions))
		for _, msg := range result.Suggestions {
			fmt.Printf("  → %s\n", msg)
		}
	}

	fmt.Println()
	if result.IsValid {
		okHeader.Println("✓ configuration is valid")
	} else {
		errHeader.Println("✗ configuration is invalid")
	}

	if verbose {
		s := result.Summary
		fmt.Println("Summary")
		fmt.Printf("  branches:             %d (present: %t)\n", s.BranchCount, s.HasBranches)
		fmt.Printf("  plugins:              %d\n", s.PluginCount)
		fmt.Printf("  npm plugin:           %t\n", s.HasNPMPlugin)
		fmt.Printf("  file-patch rules:     %d (present: %t)\n", s.FilePatchRules, s.HasFilePatch)
		fmt.Printf("  planned replacements: %d\n", s.PlannedReplacements)
	}
}
