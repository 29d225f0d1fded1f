package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"os"
	"path/filepath"
	"text/template"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relkit/pkg/domain/interfaces"
	"github.com/m-mizutani/relkit/pkg/domain/model"
)

// WorkflowPath is the conventional location of the generated workflow,
// relative to the project root.
const WorkflowPath = ".github/workflows/release.yml"

// The template uses [[ ]] delimiters because the emitted YAML itself
// contains ${{ }} GitHub Actions expressions.
//
//go:embed templates/release_workflow.yml.tmpl
var workflowTemplate string

type renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a new RendererUseCase instance
func NewRenderer() (interfaces.RendererUseCase, error) {
	tmpl, err := template.New("workflow").Delims("[[", "]]").Parse(workflowTemplate)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse workflow template")
	}
	return &renderer{tmpl: tmpl}, nil
}

// Render returns the workflow text for the given options. The output is
// emitted as-is; no YAML validation happens here.
func (uc *renderer) Render(ctx context.Context, opts *model.WorkflowOptions) (string, error) {
	normalized := *opts
	if normalized.Name == "" {
		normalized.Name = "Release"
	}
	if len(normalized.Branches) == 0 {
		normalized.Branches = []string{"main"}
	}
	if normalized.NodeVersion == "" {
		normalized.NodeVersion = DefaultNodeVersion
	}
	if normalized.RunTests && normalized.TestCommand == "" {
		normalized.TestCommand = "npm test"
	}
	if normalized.Permissions == nil {
		normalized.Permissions = model.DefaultPermissions()
	}
	steps := make([]model.WorkflowStep, len(opts.ExtraSteps))
	copy(steps, opts.ExtraSteps)
	for i, step := range steps {
		if step.Name == "" {
			if step.Uses != "" {
				steps[i].Name = step.Uses
			} else {
				steps[i].Name = step.Run
			}
		}
	}
	normalized.ExtraSteps = steps

	var buf bytes.Buffer
	if err := uc.tmpl.Execute(&buf, &normalized); err != nil {
		return "", goerr.Wrap(err, "failed to render workflow")
	}
	return buf.String(), nil
}

// WriteWorkflow renders and writes the workflow to its conventional
// path under dir, creating parent directories as needed.
func (uc *renderer) WriteWorkflow(ctx context.Context, dir string, opts *model.WorkflowOptions) (string, error) {
	logger := ctxlog.From(ctx)

	text, err := uc.Render(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, WorkflowPath)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", goerr.Wrap(err, "failed to create workflow directory", goerr.V("path", path))
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", goerr.Wrap(err, "failed to write workflow", goerr.V("path", path))
	}

	logger.Info("wrote workflow", "path", path)
	return path, nil
}
