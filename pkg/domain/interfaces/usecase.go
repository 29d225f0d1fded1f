package interfaces

import (
	"context"

	"github.com/m-mizutani/relkit/pkg/domain/model"
)

// ValidatorUseCase defines operations for release-config validation
type ValidatorUseCase interface {
	// Validate checks a loosely-typed configuration object and collects
	// diagnostics. Findings are reported through the result, never as a
	// Go error.
	Validate(ctx context.Context, cfg map[string]any, opts model.ValidateOptions) *model.ValidationResult

	// ValidateFile resolves a config file path and validates its
	// content. A missing or unparsable file is a load error.
	ValidateFile(ctx context.Context, path string, opts model.ValidateOptions) (*model.ValidationResult, error)
}

// PatcherUseCase defines the live file-patch operation run at release
// time.
type PatcherUseCase interface {
	// Apply rewrites every rule's file in place. Any non-matching
	// pattern or unreadable file aborts the whole batch.
	Apply(ctx context.Context, rules []model.FilePatchRule, rel *model.ReleaseContext) (*model.PatchResult, error)
}

// DetectorUseCase infers project settings from the manifest and any
// existing release configuration.
type DetectorUseCase interface {
	// Detect never fails; unreadable inputs degrade to defaults.
	Detect(ctx context.Context, dir string) *model.ProjectDetection
}

// RendererUseCase renders CI workflow text.
type RendererUseCase interface {
	// Render returns the workflow text for the given options.
	Render(ctx context.Context, opts *model.WorkflowOptions) (string, error)

	// WriteWorkflow renders and writes the workflow under the project's
	// CI configuration directory, returning the written path.
	WriteWorkflow(ctx context.Context, dir string, opts *model.WorkflowOptions) (string, error)
}
