package config

import "github.com/urfave/cli/v3"

// Project holds project location configuration
type Project struct {
	Dir string
}

// Flags returns CLI flags for project configuration
func (c *Project) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dir",
			Aliases:     []string{"C"},
			Usage:       "Project directory",
			Value:       ".",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("RELKIT_DIR"),
		},
	}
}
