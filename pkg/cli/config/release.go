package config

import "github.com/urfave/cli/v3"

// Release holds release-time values for live file patching
type Release struct {
	Version        string
	DatetimeFormat string
	ConfigPath     string
}

// Flags returns CLI flags for release configuration
func (c *Release) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "version",
			Usage:       "Version being released",
			Required:    true,
			Destination: &c.Version,
			Sources:     cli.EnvVars("RELKIT_RELEASE_VERSION"),
		},
		&cli.StringFlag{
			Name:        "datetime-format",
			Usage:       "Datetime placeholder format (iso, unix, custom)",
			Value:       "iso",
			Destination: &c.DatetimeFormat,
			Sources:     cli.EnvVars("RELKIT_DATETIME_FORMAT"),
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Release config path (default: discover in project directory)",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("RELKIT_CONFIG"),
		},
	}
}
