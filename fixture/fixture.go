// Package fixture parses the embedded test-case language used by casecheck
// fixtures. A fixture is a text blob holding groups delimited by r""" ... """,
// each group holding cases separated by '$'. The first line of a case is a
// diagnostic label plus the argument tokens; the rest is a JSON expectation
// literal.
package fixture

import (
	"fmt"
	"strings"
)

// Grammar delimiters.
const (
	groupDelim   = `r"""`
	docDelim     = `"""`
	caseSep      = "$"
	commentStart = '#'
)

// Group is a named collection of cases. The identifier is passed as the first
// positional argument on every invocation in the group, conventionally a
// fixture path the program under test should operate on.
type Group struct {
	Identifier string
	Cases      []Case
}

// Case is one invocation specification.
type Case struct {
	Label       string   // diagnostic only, never passed to the program
	Arguments   []string // appended after the group identifier
	Expectation Expectation
	Err         error // set when the expectation literal did not parse
}

// Parse converts raw fixture text into groups, in source order. It is total:
// structurally malformed input degrades to empty groups and cases rather than
// erroring. The one strict spot is the expectation literal; a case whose
// literal is not valid JSON carries a non-nil Err instead of a guessed
// expectation, so the ambiguity surfaces downstream.
func Parse(raw string) []Group {
	s := newScanner(trimDocstring(stripComments(raw)))

	// Text before the first group delimiter is preamble, never a group.
	if _, found := s.scanUntil(groupDelim); !found {
		return nil
	}

	var groups []Group
	for {
		segment, more := s.scanUntil(groupDelim)
		groups = append(groups, parseGroup(segment))
		if !more {
			return groups
		}
	}
}

// ParseStrict is Parse with fail-fast semantics: it returns an error for the
// first case whose expectation literal is malformed.
func ParseStrict(raw string) ([]Group, error) {
	groups := Parse(raw)
	for _, g := range groups {
		for _, c := range g.Cases {
			if c.Err != nil {
				return nil, fmt.Errorf("group %q case %q: %w", g.Identifier, c.Label, c.Err)
			}
		}
	}
	return groups, nil
}

// parseGroup parses one group segment: identifier text up to the closing
// docstring delimiter, then case chunks separated by '$'. A segment with no
// closing delimiter keeps its identifier and has zero cases.
func parseGroup(segment string) Group {
	s := newScanner(segment)
	doc, found := s.scanUntil(docDelim)
	g := Group{Identifier: strings.TrimSpace(doc)}
	if !found {
		return g
	}

	// Text before the first case separator is intra-group preamble.
	if _, found := s.scanUntil(caseSep); !found {
		return g
	}
	for {
		chunk, more := s.scanUntil(caseSep)
		if c, ok := parseCase(chunk); ok {
			g.Cases = append(g.Cases, c)
		}
		if !more {
			return g
		}
	}
}

// parseCase parses one case chunk. Whitespace-only chunks, such as the text
// after a trailing '$', are not cases.
func parseCase(chunk string) (Case, bool) {
	chunk = strings.TrimSpace(chunk)
	if chunk == "" {
		return Case{}, false
	}

	s := newScanner(chunk)
	header, _ := s.scanUntil("\n")
	c := Case{}
	c.Label, c.Arguments = parseHeader(header)
	c.Expectation, c.Err = parseExpectation(s.rest())
	return c, true
}

// parseHeader splits a case header line into the diagnostic label and the
// whitespace-tokenized argument list. The label is the text before the first
// space, possibly empty.
func parseHeader(header string) (string, []string) {
	s := newScanner(strings.TrimSpace(header))
	label, found := s.scanUntil(" ")
	if !found {
		return label, nil
	}
	return label, strings.Fields(s.rest())
}

// stripComments removes line comments: everything from an unescaped '#' to
// the end of its line. Escaped markers (`\#`) are left in place. Stripping is
// idempotent. The surrounding whitespace of the whole text is trimmed.
func stripComments(raw string) string {
	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if idx := commentIndex(line); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func commentIndex(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] == commentStart && (i == 0 || line[i-1] != '\\') {
			return i
		}
	}
	return -1
}

// trimDocstring drops an optional module-level docstring opener. The rest of
// the docstring, if any, falls into the preamble the group split discards.
func trimDocstring(text string) string {
	return strings.TrimPrefix(text, docDelim)
}
