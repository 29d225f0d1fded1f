package usecase_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relkit/pkg/domain/model"
	"github.com/m-mizutani/relkit/pkg/usecase"
)

func TestRenderer_Render(t *testing.T) {
	uc, err := usecase.NewRenderer()
	gt.NoError(t, err)

	text, err := uc.Render(context.Background(), &model.WorkflowOptions{
		Name:         "Release",
		Branches:     []string{"main", "next"},
		NodeVersion:  "20",
		RunTests:     true,
		TestCommand:  "npm test",
		BuildCommand: "npm run build",
	})
	gt.NoError(t, err)

	gt.String(t, text).Contains("name: Release")
	gt.String(t, text).Contains("- main")
	gt.String(t, text).Contains("- next")
	gt.String(t, text).Contains("uses: actions/checkout@v4")
	gt.String(t, text).Contains(`node-version: "20"`)
	gt.String(t, text).Contains("run: npm ci")
	gt.String(t, text).Contains("run: npm run build")
	gt.String(t, text).Contains("run: npm test")
	gt.String(t, text).Contains("run: npx semantic-release")
	gt.String(t, text).Contains("GITHUB_TOKEN: ${{ secrets.GITHUB_TOKEN }}")

	// Fixed step sequence: build before test, test before release
	gt.Value(t, strings.Index(text, "npm run build") < strings.Index(text, "npm test")).Equal(true)
	gt.Value(t, strings.Index(text, "npm test") < strings.Index(text, "npx semantic-release")).Equal(true)
}

func TestRenderer_Defaults(t *testing.T) {
	uc, err := usecase.NewRenderer()
	gt.NoError(t, err)

	text, err := uc.Render(context.Background(), &model.WorkflowOptions{})
	gt.NoError(t, err)

	gt.String(t, text).Contains("name: Release")
	gt.String(t, text).Contains("- main")
	gt.String(t, text).Contains(`node-version: "20"`)
	gt.String(t, text).Contains("contents: write")
	// No test step without RunTests
	gt.Value(t, strings.Contains(text, "npm test")).Equal(false)
	gt.Value(t, strings.Contains(text, "NPM_TOKEN")).Equal(false)
}

func TestRenderer_ExtraSteps(t *testing.T) {
	uc, err := usecase.NewRenderer()
	gt.NoError(t, err)

	text, err := uc.Render(context.Background(), &model.WorkflowOptions{
		ExtraSteps: []model.WorkflowStep{
			{
				Name: "Coverage",
				Uses: "codecov/codecov-action@v4",
				With: map[string]string{"fail_ci_if_error": "true"},
			},
			{
				Run: "npm run lint",
				Env: map[string]string{"CI": "true"},
			},
		},
	})
	gt.NoError(t, err)

	gt.String(t, text).Contains("name: Coverage")
	gt.String(t, text).Contains("uses: codecov/codecov-action@v4")
	gt.String(t, text).Contains("fail_ci_if_error: true")
	// Unnamed command steps take their command as the name
	gt.String(t, text).Contains("name: npm run lint")
	gt.String(t, text).Contains("run: npm run lint")
	gt.String(t, text).Contains("CI: true")
}

func TestRenderer_NPMPublishToken(t *testing.T) {
	uc, err := usecase.NewRenderer()
	gt.NoError(t, err)

	text, err := uc.Render(context.Background(), &model.WorkflowOptions{NPMPublish: true})
	gt.NoError(t, err)

	gt.String(t, text).Contains("NPM_TOKEN: ${{ secrets.NPM_TOKEN }}")
}

func TestRenderer_WriteWorkflow(t *testing.T) {
	dir := t.TempDir()

	uc, err := usecase.NewRenderer()
	gt.NoError(t, err)

	path, err := uc.WriteWorkflow(context.Background(), dir, &model.WorkflowOptions{})
	gt.NoError(t, err)
	gt.Value(t, path).Equal(filepath.Join(dir, ".github/workflows/release.yml"))

	data, err := os.ReadFile(path)
	gt.NoError(t, err)
	gt.String(t, string(data)).Contains("npx semantic-release")
}
