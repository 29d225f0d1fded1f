package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relkit/pkg/cli/config"
	"github.com/m-mizutani/relkit/pkg/infra/project"
	"github.com/m-mizutani/relkit/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdDetect() *cli.Command {
	var projectCfg config.Project

	return &cli.Command{
		Name:  "detect",
		Usage: "Print detected project settings as JSON",
		Flags: projectCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			reader := project.NewClient()
			detectorUC := usecase.NewDetector(reader)

			detection := detectorUC.Detect(ctx, projectCfg.Dir)

			data, err := json.MarshalIndent(detection, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to marshal detection result")
			}
			fmt.Println(string(data))
			return nil
		},
	}
}
