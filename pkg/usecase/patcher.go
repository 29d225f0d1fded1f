package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relkit/pkg/domain/interfaces"
	"github.com/m-mizutani/relkit/pkg/domain/model"
)

type patcher struct {
	workDir string
}

// PatcherOption is a functional option for patcher configuration
type PatcherOption func(*patcher)

// WithPatcherWorkDir sets the directory relative rule paths resolve
// against. Defaults to the current directory.
func WithPatcherWorkDir(dir string) PatcherOption {
	return func(p *patcher) {
		p.workDir = dir
	}
}

// NewPatcher creates a new PatcherUseCase instance
func NewPatcher(opts ...PatcherOption) interfaces.PatcherUseCase {
	p := &patcher{workDir: "."}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Apply rewrites every rule's file in place with real version and
// timestamp values. Any unreadable file or non-matching pattern aborts
// the whole batch; files already written before the failure stay
// written, since each file is only written after all of its own
// patterns succeed.
func (uc *patcher) Apply(ctx context.Context, rules []model.FilePatchRule, rel *model.ReleaseContext) (*model.PatchResult, error) {
	logger := ctxlog.From(ctx)
	result := &model.PatchResult{}

	for _, rule := range rules {
		outcome, err := uc.applyRule(ctx, &rule, rel)
		if err != nil {
			return nil, goerr.Wrap(err, "file patch aborted", goerr.V("path", rule.Path))
		}

		result.Files = append(result.Files, *outcome)
		result.TotalReplacements += outcome.Replacements

		logger.Info("patched file",
			"path", outcome.Path,
			"replacements", outcome.Replacements,
		)
	}

	return result, nil
}

// applyRule applies every pattern of one rule in memory, then writes the
// file once.
func (uc *patcher) applyRule(ctx context.Context, rule *model.FilePatchRule, rel *model.ReleaseContext) (*model.FilePatchOutcome, error) {
	path := rule.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(uc.workDir, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, goerr.Wrap(err, "target file not found", goerr.V("path", rule.Path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read target file", goerr.V("path", rule.Path))
	}
	content := string(data)

	replacements := 0
	for _, pair := range rule.Pairs() {
		re, err := compileRulePattern(pair.Regex)
		if err != nil {
			return nil, err
		}

		matches := re.FindAllStringIndex(content, -1)
		if len(matches) == 0 {
			return nil, goerr.New("pattern does not match",
				goerr.V("pattern", pair.Regex), goerr.V("path", rule.Path))
		}

		replacement := rel.Substitute(normalizeGroupRefs(pair.Replacement))
		content = re.ReplaceAllString(content, replacement)
		replacements += len(matches)
	}

	if err := os.WriteFile(path, []byte(content), info.Mode()); err != nil {
		return nil, goerr.Wrap(err, "failed to write target file", goerr.V("path", rule.Path))
	}

	return &model.FilePatchOutcome{
		Path:         rule.Path,
		Replacements: replacements,
	}, nil
}
