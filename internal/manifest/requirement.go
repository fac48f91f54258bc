package manifest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Requirement is one parsed dependency specification: a distribution name
// plus optional extras, version constraints, a direct reference URL, and an
// environment marker carried verbatim.
type Requirement struct {
	Name       string
	Extras     []string // sorted, deduplicated
	Constraint string   // normalized comma-joined clauses, "" when unconstrained
	URL        string
	Marker     string
}

var (
	nameRE    = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?$`)
	clauseRE  = regexp.MustCompile(`^(===|==|!=|<=|>=|~=|<|>)\s*([A-Za-z0-9*+!._-]+)$`)
	canonRuns = regexp.MustCompile(`[-_.]+`)
)

// CanonicalName normalizes a distribution name for comparison: lowercase,
// with runs of '-', '_' and '.' collapsed to a single hyphen. Two specs with
// equal canonical names refer to the same package regardless of spelling.
func CanonicalName(name string) string {
	return strings.ToLower(canonRuns.ReplaceAllString(name, "-"))
}

// Parse parses a dependency-spec string (PEP 508 subset):
//
//	name [ "[" extras "]" ] [ version-clauses | "@" url ] [ ";" marker ]
//
// Returns an error for anything the grammar does not cover; callers drop
// such entries and continue.
func Parse(spec string) (Requirement, error) {
	var r Requirement

	s := strings.TrimSpace(spec)
	if s == "" {
		return r, fmt.Errorf("empty requirement")
	}

	// Environment marker: everything after the first ";".
	if i := strings.Index(s, ";"); i >= 0 {
		r.Marker = strings.TrimSpace(s[i+1:])
		if r.Marker == "" {
			return r, fmt.Errorf("invalid requirement %q: empty marker", spec)
		}
		s = strings.TrimSpace(s[:i])
	}

	// Distribution name runs up to the first space, "[", "@" or operator.
	end := len(s)
	for i, c := range s {
		if c == ' ' || c == '[' || c == '@' || c == '(' ||
			c == '<' || c == '>' || c == '=' || c == '!' || c == '~' {
			end = i
			break
		}
	}
	r.Name = s[:end]
	if !nameRE.MatchString(r.Name) {
		return r, fmt.Errorf("invalid requirement %q: bad name", spec)
	}
	s = strings.TrimSpace(s[end:])

	// Extras: "[a,b]".
	if strings.HasPrefix(s, "[") {
		closing := strings.Index(s, "]")
		if closing < 0 {
			return r, fmt.Errorf("invalid requirement %q: unclosed extras", spec)
		}
		for _, extra := range strings.Split(s[1:closing], ",") {
			extra = strings.TrimSpace(extra)
			if !nameRE.MatchString(extra) {
				return r, fmt.Errorf("invalid requirement %q: bad extra %q", spec, extra)
			}
			r.Extras = append(r.Extras, extra)
		}
		r.Extras = dedupeSorted(r.Extras)
		s = strings.TrimSpace(s[closing+1:])
	}

	if s == "" {
		return r, nil
	}

	// Direct reference: "@ url".
	if strings.HasPrefix(s, "@") {
		r.URL = strings.TrimSpace(s[1:])
		if r.URL == "" {
			return r, fmt.Errorf("invalid requirement %q: empty URL", spec)
		}
		return r, nil
	}

	// Version clauses, optionally parenthesized.
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	clauses := strings.Split(s, ",")
	normalized := make([]string, 0, len(clauses))
	for _, clause := range clauses {
		m := clauseRE.FindStringSubmatch(strings.TrimSpace(clause))
		if m == nil {
			return r, fmt.Errorf("invalid requirement %q: bad version clause %q", spec, clause)
		}
		normalized = append(normalized, m[1]+m[2])
	}
	// Clause order is irrelevant to meaning; sort so String is canonical.
	sort.Strings(normalized)
	r.Constraint = strings.Join(normalized, ",")

	return r, nil
}

// String reconstructs the spec in normalized form. This is the identity used
// when matching against already-installed package entries.
func (r Requirement) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	if len(r.Extras) > 0 {
		b.WriteString("[")
		b.WriteString(strings.Join(r.Extras, ","))
		b.WriteString("]")
	}
	b.WriteString(r.Constraint)
	if r.URL != "" {
		b.WriteString("@ ")
		b.WriteString(r.URL)
	}
	if r.Marker != "" {
		b.WriteString("; ")
		b.WriteString(r.Marker)
	}
	return b.String()
}

func dedupeSorted(items []string) []string {
	sort.Strings(items)
	out := items[:0]
	for i, item := range items {
		if i == 0 || item != items[i-1] {
			out = append(out, item)
		}
	}
	return out
}
