package fixture

import "strings"

// scanner is a small cursor over fixture text. Parsing proceeds as repeated
// scans to the next delimiter, which keeps missing-delimiter and empty-segment
// handling explicit instead of buried in chained substring calls.
type scanner struct {
	src string
	pos int
}

func newScanner(src string) *scanner { return &scanner{src: src} }

// rest returns the unconsumed text.
func (s *scanner) rest() string { return s.src[s.pos:] }

// scanUntil returns the text before the next occurrence of delim, advancing
// past the delimiter. When delim does not occur it consumes and returns the
// remainder and reports false.
func (s *scanner) scanUntil(delim string) (string, bool) {
	if i := strings.Index(s.rest(), delim); i >= 0 {
		text := s.src[s.pos : s.pos+i]
		s.pos += i + len(delim)
		return text, true
	}
	text := s.rest()
	s.pos = len(s.src)
	return text, false
}
