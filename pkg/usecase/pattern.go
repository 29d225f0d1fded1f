package usecase

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

var groupRef = regexp.MustCompile(`\$(\d+)`)

// normalizeGroupRefs rewrites bare $N group references to ${N}. Token
// substitution may place a digit right after a group reference ($1 plus
// a version like 2.1.0 would otherwise read as group 12), so references
// are braced before any substitution happens.
func normalizeGroupRefs(replacement string) string {
	return groupRef.ReplaceAllString(replacement, `$${${1}}`)
}

// compileRulePattern builds a case-sensitive regexp from a rule pattern
// string. Patterns written with literal delimiters (/expr/flags) are
// unwrapped; the i, m and s flags carry over, and g is implied since
// replacement is always global.
func compileRulePattern(expr string) (*regexp.Regexp, error) {
	pattern := expr
	if strings.HasPrefix(expr, "/") {
		if idx := strings.LastIndex(expr, "/"); idx > 0 {
			body, flags := expr[1:idx], expr[idx+1:]
			if prefix, ok := flagPrefix(flags); ok {
				pattern = prefix + body
			}
		}
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid pattern", goerr.V("pattern", expr))
	}
	return re, nil
}

// flagPrefix converts JS-style regex flags to a Go inline-flag prefix.
// Unknown flag characters mean the trailing text was not a flag list at
// all, and the pattern is compiled verbatim.
func flagPrefix(flags string) (string, bool) {
	var inline []byte
	for _, f := range flags {
		switch f {
		case 'g', 'u', 'y':
			// no Go equivalent needed; replacement is global already
		case 'i', 'm', 's':
			inline = append(inline, byte(f))
		default:
			return "", false
		}
	}
	if len(inline) == 0 {
		return "", true
	}
	return "(?" + string(inline) + ")", true
}
