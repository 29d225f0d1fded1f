package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relkit/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name  string
		level string
		json  bool
	}{
		{name: "debug level", level: "debug"},
		{name: "case insensitive", level: "DEBUG"},
		{name: "info level", level: "info"},
		{name: "warn level", level: "warn"},
		{name: "error level", level: "error"},
		{name: "unknown level falls back to info", level: "trace"},
		{name: "json handler", level: "info", json: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Logger{Level: tt.level, JSON: tt.json}

			logger, err := cfg.Configure()
			gt.NoError(t, err)
			gt.Value(t, logger).NotNil()
		})
	}
}
