package search

import (
	"fmt"
	"regexp"
	"strings"
)

// Matcher is a predicate over a message's decoded subject line.
type Matcher interface {
	Matches(subject string) bool
}

// literalMatcher matches subjects containing a fixed substring,
// case-sensitively and without any normalization.
type literalMatcher struct {
	pattern string
}

func (m literalMatcher) Matches(subject string) bool {
	return strings.Contains(subject, m.pattern)
}

// NewLiteralMatcher returns a Matcher that tests for substring
// containment of pattern.
func NewLiteralMatcher(pattern string) Matcher {
	return literalMatcher{pattern: pattern}
}

// regexpMatcher matches subjects in which the expression finds a match
// anywhere; it is not anchored to the full subject.
type regexpMatcher struct {
	re *regexp.Regexp
}

func (m regexpMatcher) Matches(subject string) bool {
	return m.re.MatchString(subject)
}

// NewRegexpMatcher compiles pattern and returns a Matcher. A pattern
// that does not compile is rejected here, before any network activity.
func NewRegexpMatcher(pattern string) (Matcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid subject pattern %q: %w", pattern, err)
	}
	return regexpMatcher{re: re}, nil
}
