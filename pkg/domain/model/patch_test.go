package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relkit/pkg/domain/model"
)

func TestReleaseContext_Substitute(t *testing.T) {
	rel := &model.ReleaseContext{
		Version:        "2.1.0",
		Now:            time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC),
		DatetimeFormat: model.DatetimeISO,
	}

	tests := []struct {
		name        string
		replacement string
		want        string
	}{
		{name: "brace version", replacement: `v{version}`, want: "v2.1.0"},
		{name: "dollar version", replacement: "${version}", want: "2.1.0"},
		{name: "datetime", replacement: "{datetime}", want: "2026-08-25T09:00:00Z"},
		{name: "date", replacement: "${date}", want: "2026-08-25"},
		{name: "group refs untouched", replacement: "${1}{version}${2}", want: "${1}2.1.0${2}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, rel.Substitute(tt.replacement)).Equal(tt.want)
		})
	}
}

func TestReleaseContext_Datetime(t *testing.T) {
	now := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		format model.DatetimeFormat
		want   string
	}{
		{name: "iso", format: model.DatetimeISO, want: "2026-08-25T09:00:00Z"},
		{name: "unix", format: model.DatetimeUnix, want: "1787648400"},
		{name: "custom behaves as iso", format: model.DatetimeCustom, want: "2026-08-25T09:00:00Z"},
		{name: "unset defaults to iso", format: "", want: "2026-08-25T09:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel := &model.ReleaseContext{Version: "1.0.0", Now: now, DatetimeFormat: tt.format}
			gt.Value(t, rel.Datetime()).Equal(tt.want)
		})
	}
}
