package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/relkit/pkg/domain/model"
)

// DryRunVersion is the mock version substituted into replacement text
// during validation.
const DryRunVersion = "1.0.0"

// dryRunRule simulates one file-patch rule against the real file content
// without writing anything. Findings go straight into result; the return
// value is the number of replacements the rule would make.
//
// A missing file or an uncompilable pattern is an error and marks the
// whole validation invalid. A pattern that merely fails to match only
// warns; the live patcher is the strict one.
func dryRunRule(ctx context.Context, workDir string, rule *model.FilePatchRule, result *model.ValidationResult) int {
	logger := ctxlog.From(ctx)

	path := rule.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		result.AddError(fmt.Sprintf("file not found: %s", rule.Path))
		return 0
	}
	content := string(data)

	rel := &model.ReleaseContext{
		Version:        DryRunVersion,
		Now:            time.Now(),
		DatetimeFormat: model.DatetimeISO,
	}

	total := 0
	for _, pair := range rule.Pairs() {
		re, err := compileRulePattern(pair.Regex)
		if err != nil {
			result.AddError(fmt.Sprintf("invalid pattern %q in rule for %s: %v", pair.Regex, rule.Path, err))
			continue
		}

		replacement := rel.Substitute(normalizeGroupRefs(pair.Replacement))

		matches := re.FindAllStringIndex(content, -1)
		if len(matches) == 0 {
			result.AddWarning(fmt.Sprintf("pattern %q does not match %s", pair.Regex, rule.Path))
			continue
		}

		updated := re.ReplaceAllString(content, replacement)
		if updated == content {
			result.AddWarning(fmt.Sprintf("pattern %q matches %s but produces no changes", pair.Regex, rule.Path))
			continue
		}

		for _, token := range model.PlaceholderTokens {
			if strings.Contains(updated, token) {
				result.AddWarning(fmt.Sprintf("replacement for %s leaves placeholder %q unexpanded", rule.Path, token))
			}
		}

		total += len(matches)
		result.AddSuggestion(fmt.Sprintf("rule would update %s (%d replacement(s))", rule.Path, len(matches)))

		logger.Debug("dry-run replacement",
			"path", rule.Path,
			"pattern", pair.Regex,
			"matches", len(matches),
		)
	}

	return total
}
