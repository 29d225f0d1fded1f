package model

import (
	"strconv"
	"strings"
	"time"
)

// RuleFields is the set of valid property names of a file-patch rule.
// Unknown properties are rejected by the validator with a typo
// suggestion against this set.
var RuleFields = []string{"path", "pattern", "replacement", "patterns"}

// ReplacePattern is a single regex/replacement pair of an advanced rule.
type ReplacePattern struct {
	Regex       string `json:"regex"`
	Replacement string `json:"replacement"`
}

// FilePatchRule rewrites version/date tokens in one file. Exactly one of
// the two shapes must be populated: the simple Pattern+Replacement pair,
// or the Patterns list.
type FilePatchRule struct {
	Path        string           `json:"path"`
	Pattern     string           `json:"pattern,omitempty"`
	Replacement string           `json:"replacement,omitempty"`
	Patterns    []ReplacePattern `json:"patterns,omitempty"`
}

// IsSimple reports whether the rule uses the single pattern/replacement
// shape.
func (r *FilePatchRule) IsSimple() bool {
	return len(r.Patterns) == 0
}

// Pairs normalizes both rule shapes into an ordered list of
// regex/replacement pairs.
func (r *FilePatchRule) Pairs() []ReplacePattern {
	if r.IsSimple() {
		return []ReplacePattern{{Regex: r.Pattern, Replacement: r.Replacement}}
	}
	return r.Patterns
}

// DatetimeFormat selects how {datetime} is rendered in replacements.
type DatetimeFormat string

const (
	DatetimeISO    DatetimeFormat = "iso"
	DatetimeUnix   DatetimeFormat = "unix"
	DatetimeCustom DatetimeFormat = "custom"
)

// ReleaseContext carries the real values substituted into replacement
// text at release time.
type ReleaseContext struct {
	Version        string
	Now            time.Time
	DatetimeFormat DatetimeFormat
}

// Datetime renders the context timestamp according to DatetimeFormat.
// "custom" currently behaves as "iso"; it is reserved for future
// formats.
func (c *ReleaseContext) Datetime() string {
	switch c.DatetimeFormat {
	case DatetimeUnix:
		return strconv.FormatInt(c.Now.Unix(), 10)
	default:
		return c.Now.UTC().Format(time.RFC3339)
	}
}

// Date renders the context timestamp as a UTC calendar date, used for
// the ${date} token.
func (c *ReleaseContext) Date() string {
	return c.Now.UTC().Format("2006-01-02")
}

// PlaceholderTokens lists every token recognized in replacement text.
// An output still containing one of these after substitution indicates
// a misconfigured rule.
var PlaceholderTokens = []string{"${version}", "${date}", "{version}", "{datetime}"}

// Substitute expands all placeholder tokens in a replacement string.
func (c *ReleaseContext) Substitute(replacement string) string {
	return strings.NewReplacer(
		"${version}", c.Version,
		"${date}", c.Date(),
		"{version}", c.Version,
		"{datetime}", c.Datetime(),
	).Replace(replacement)
}

// FilePatchOutcome reports the effect of applying one rule to its file.
type FilePatchOutcome struct {
	Path         string `json:"path"`
	Replacements int    `json:"replacements"`
}

// PatchResult aggregates a whole live patch run.
type PatchResult struct {
	Files             []FilePatchOutcome `json:"files"`
	TotalReplacements int                `json:"totalReplacements"`
}
