package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relkit/pkg/domain/interfaces"
	"github.com/m-mizutani/relkit/pkg/domain/model"
)

type validator struct {
	reader  interfaces.ProjectReader
	workDir string
}

// ValidatorOption is a functional option for validator configuration
type ValidatorOption func(*validator)

// WithWorkDir sets the directory relative rule paths resolve against
// during the dry-run. Defaults to the current directory.
func WithWorkDir(dir string) ValidatorOption {
	return func(v *validator) {
		v.workDir = dir
	}
}

// NewValidator creates a new ValidatorUseCase instance
func NewValidator(reader interfaces.ProjectReader, opts ...ValidatorOption) interfaces.ValidatorUseCase {
	v := &validator{
		reader:  reader,
		workDir: ".",
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateFile loads a configuration file and validates its content.
func (uc *validator) ValidateFile(ctx context.Context, path string, opts model.ValidateOptions) (*model.ValidationResult, error) {
	cfg, err := uc.reader.LoadReleaseConfigFile(ctx, path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load release config", goerr.V("path", path))
	}
	return uc.Validate(ctx, cfg, opts), nil
}

// Validate checks a loose configuration object and collects diagnostics.
func (uc *validator) Validate(ctx context.Context, cfg map[string]any, opts model.ValidateOptions) *model.ValidationResult {
	logger := ctxlog.From(ctx)
	result := model.NewValidationResult()

	if cfg == nil {
		result.AddError("configuration is empty")
		return result
	}

	uc.checkBranches(cfg, result)
	names := uc.checkPluginList(cfg, result)

	if opts.CheckPlugins {
		uc.checkRequiredPlugins(names, result)
		uc.checkNPMPlugin(cfg, names, result)
		uc.checkFileRules(ctx, cfg, result)
	}

	if opts.Strict && len(result.Warnings) > 0 {
		result.IsValid = false
	}

	logger.Debug("validation completed",
		"valid", result.IsValid,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
		"suggestions", len(result.Suggestions),
	)

	return result
}

func (uc *validator) checkBranches(cfg map[string]any, result *model.ValidationResult) {
	raw, ok := cfg["branches"]
	if !ok {
		return
	}

	list, isList := raw.([]any)
	if !isList {
		result.AddError("\"branches\" must be an array")
		return
	}
	if len(list) == 0 {
		result.AddWarning("\"branches\" is empty; the release tool will fall back to its own defaults")
		return
	}

	result.Summary.HasBranches = true
	result.Summary.BranchCount = len(list)
}

// checkPluginList validates the top-level plugins shape and returns the
// plugin names it could extract.
func (uc *validator) checkPluginList(cfg map[string]any, result *model.ValidationResult) []string {
	raw, ok := cfg["plugins"]
	if !ok {
		result.AddError("configuration is missing \"plugins\"")
		return nil
	}

	list, isList := raw.([]any)
	if !isList {
		result.AddError("\"plugins\" must be an array")
		return nil
	}
	if len(list) == 0 {
		result.AddError("\"plugins\" must be a non-empty array")
		return nil
	}

	result.Summary.PluginCount = len(list)

	var names []string
	for i, entry := range list {
		switch v := entry.(type) {
		case string:
			names = append(names, v)
		case []any:
			if len(v) == 0 {
				result.AddError(fmt.Sprintf("plugins[%d] is an empty tuple", i))
				continue
			}
			name, ok := v[0].(string)
			if !ok {
				result.AddError(fmt.Sprintf("plugins[%d] must start with a plugin name", i))
				continue
			}
			names = append(names, name)
		default:
			result.AddError(fmt.Sprintf("plugins[%d] must be a name or a [name, options] tuple", i))
		}
	}
	return names
}

func (uc *validator) checkRequiredPlugins(names []string, result *model.ValidationResult) {
	for _, required := range model.RequiredPlugins {
		if !containsString(names, required) {
			result.AddError(fmt.Sprintf("missing required plugin %q", required))
		}
	}
}

// checkNPMPlugin suggests pinning the npmPublish option so publishing
// intent is explicit rather than inherited from the package's private
// flag.
func (uc *validator) checkNPMPlugin(cfg map[string]any, names []string, result *model.ValidationResult) {
	if !containsString(names, model.PluginNPM) {
		return
	}
	result.Summary.HasNPMPlugin = true

	plugins, _ := cfg["plugins"].([]any)
	for _, entry := range plugins {
		tuple, ok := entry.([]any)
		if !ok || len(tuple) < 2 {
			continue
		}
		if name, _ := tuple[0].(string); name != model.PluginNPM {
			continue
		}
		if opts, ok := tuple[1].(map[string]any); ok {
			if _, set := opts["npmPublish"]; set {
				return
			}
		}
	}

	result.AddSuggestion(fmt.Sprintf("set \"npmPublish\" explicitly on %s to make publishing intent unambiguous", model.PluginNPM))
}

func (uc *validator) checkFileRules(ctx context.Context, cfg map[string]any, result *model.ValidationResult) {
	for _, opts := range findFilePatchPlugins(cfg) {
		result.Summary.HasFilePatch = true

		files, ok := opts["files"].([]any)
		if !ok || len(files) == 0 {
			result.AddWarning("file-patch plugin has no \"files\" array")
			continue
		}

		for i, entry := range files {
			raw, ok := entry.(map[string]any)
			if !ok {
				result.AddError(fmt.Sprintf("file rule %d must be an object", i))
				continue
			}

			rule, errs := decodeFileRule(raw)
			for _, msg := range errs {
				result.AddError(msg)
			}
			if rule == nil {
				continue
			}

			result.Summary.FilePatchRules++
			planned := dryRunRule(ctx, uc.workDir, rule, result)
			result.Summary.PlannedReplacements += planned
		}
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
