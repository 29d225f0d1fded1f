package usecase

import (
	"testing"

	"github.com/m-mizutani/gt"
)

func TestNormalizeGroupRefs(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "bare refs", input: "$1{version}$2", want: "${1}{version}${2}"},
		{name: "already braced", input: "${1}x${2}", want: "${1}x${2}"},
		{name: "no refs", input: "{version}", want: "{version}"},
		{name: "multi digit", input: "$10", want: "${10}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, normalizeGroupRefs(tt.input)).Equal(tt.want)
		})
	}
}

func TestCompileRulePattern(t *testing.T) {
	t.Run("plain pattern", func(t *testing.T) {
		re, err := compileRulePattern(`\d+\.\d+`)
		gt.NoError(t, err)
		gt.Value(t, re.MatchString("1.2")).Equal(true)
	})

	t.Run("delimited pattern", func(t *testing.T) {
		re, err := compileRulePattern(`/abc/`)
		gt.NoError(t, err)
		gt.Value(t, re.MatchString("xabcy")).Equal(true)
	})

	t.Run("case-insensitive flag", func(t *testing.T) {
		re, err := compileRulePattern(`/abc/i`)
		gt.NoError(t, err)
		gt.Value(t, re.MatchString("ABC")).Equal(true)
	})

	t.Run("global flag is implied", func(t *testing.T) {
		re, err := compileRulePattern(`/a/g`)
		gt.NoError(t, err)
		gt.Value(t, re.ReplaceAllString("aaa", "b")).Equal("bbb")
	})

	t.Run("slash mid-pattern is not a delimiter", func(t *testing.T) {
		re, err := compileRulePattern(`a/b`)
		gt.NoError(t, err)
		gt.Value(t, re.MatchString("a/b")).Equal(true)
	})

	t.Run("invalid pattern", func(t *testing.T) {
		_, err := compileRulePattern(`([unclosed`)
		gt.Error(t, err)
	})
}
