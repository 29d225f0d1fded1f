package textmatch

import "strings"

// Suggest returns the candidate most likely meant by input, using
// case-insensitive substring containment in either direction. An empty
// string means no candidate is close enough.
//
// Containment favors the longest overlap, which is sufficient for the
// short property-name vocabularies it is used with ("pathss" → "path").
func Suggest(input string, candidates []string) string {
	in := strings.ToLower(input)
	if in == "" {
		return ""
	}

	best := ""
	for _, cand := range candidates {
		c := strings.ToLower(cand)
		if !strings.Contains(in, c) && !strings.Contains(c, in) {
			continue
		}
		if len(cand) > len(best) {
			best = cand
		}
	}
	return best
}
