package usecase

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relkit/pkg/domain/model"
	"github.com/m-mizutani/relkit/pkg/utils/textmatch"
)

// findFilePatchPlugins returns the options of every file-patch plugin
// entry in a loose configuration, in pipeline order. Entries that are
// not even list-or-string shaped are ignored here; the structural checks
// report them.
func findFilePatchPlugins(cfg map[string]any) []map[string]any {
	plugins, ok := cfg["plugins"].([]any)
	if !ok {
		return nil
	}

	var found []map[string]any
	for _, entry := range plugins {
		tuple, ok := entry.([]any)
		if !ok || len(tuple) == 0 {
			continue
		}
		name, ok := tuple[0].(string)
		if !ok || name != model.PluginFilePatch {
			continue
		}

		opts := map[string]any{}
		if len(tuple) > 1 {
			if m, ok := tuple[1].(map[string]any); ok {
				opts = m
			}
		}
		found = append(found, opts)
	}
	return found
}

// decodeFileRule checks one loose file-rule object and converts it to a
// typed rule. Structural findings come back as error strings; the rule
// is only returned when it is fully well-formed.
func decodeFileRule(raw map[string]any) (*model.FilePatchRule, []string) {
	var errs []string

	for key := range raw {
		if isValidRuleField(key) {
			continue
		}
		msg := fmt.Sprintf("unknown property %q in file rule", key)
		if hint := textmatch.Suggest(key, model.RuleFields); hint != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", hint)
		}
		errs = append(errs, msg)
	}

	rule := &model.FilePatchRule{}

	path, hasPath := raw["path"].(string)
	if !hasPath || strings.TrimSpace(path) == "" {
		errs = append(errs, "file rule is missing required property \"path\"")
	}
	rule.Path = path

	pattern, hasPattern := raw["pattern"].(string)
	replacement, hasReplacement := raw["replacement"].(string)
	patternsRaw, hasPatterns := raw["patterns"]

	switch {
	case hasPatterns && (hasPattern || hasReplacement):
		errs = append(errs, "file rule must use either \"patterns\" or \"pattern\"+\"replacement\", not both")
	case hasPatterns:
		list, ok := patternsRaw.([]any)
		if !ok || len(list) == 0 {
			errs = append(errs, "file rule property \"patterns\" must be a non-empty array")
			break
		}
		for i, entry := range list {
			m, ok := entry.(map[string]any)
			if !ok {
				errs = append(errs, fmt.Sprintf("patterns[%d] must be an object", i))
				continue
			}
			regex, okRegex := m["regex"].(string)
			repl, okRepl := m["replacement"].(string)
			if !okRegex || !okRepl {
				errs = append(errs, fmt.Sprintf("patterns[%d] must have both \"regex\" and \"replacement\"", i))
				continue
			}
			rule.Patterns = append(rule.Patterns, model.ReplacePattern{
				Regex:       regex,
				Replacement: repl,
			})
		}
	case hasPattern && hasReplacement:
		rule.Pattern = pattern
		rule.Replacement = replacement
	default:
		errs = append(errs, "file rule must have either a \"patterns\" array or a \"pattern\"+\"replacement\" pair")
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return rule, nil
}

func isValidRuleField(key string) bool {
	for _, f := range model.RuleFields {
		if key == f {
			return true
		}
	}
	return false
}

// CollectFileRules extracts every file-patch rule from a loose
// configuration for live patching. Unlike validation, any malformed
// rule is a hard error here: the release must not proceed on a config
// the validator would reject.
func CollectFileRules(cfg map[string]any) ([]model.FilePatchRule, error) {
	var rules []model.FilePatchRule
	for _, opts := range findFilePatchPlugins(cfg) {
		files, ok := opts["files"].([]any)
		if !ok {
			return nil, goerr.New("file-patch plugin has no \"files\" array")
		}
		for _, entry := range files {
			raw, ok := entry.(map[string]any)
			if !ok {
				return nil, goerr.New("file rule must be an object")
			}
			rule, errs := decodeFileRule(raw)
			if len(errs) > 0 {
				return nil, goerr.New("invalid file rule", goerr.V("findings", errs))
			}
			rules = append(rules, *rule)
		}
	}
	return rules, nil
}
