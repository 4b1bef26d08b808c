package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralMatcher(t *testing.T) {
	m := NewLiteralMatcher("invoice")

	assert.True(t, m.Matches("invoice"))
	assert.True(t, m.Matches("Your invoice for March"))
	assert.False(t, m.Matches("Invoice"), "literal matching is case-sensitive")
	assert.False(t, m.Matches("in voice"))
}

func TestLiteralMatcherEmptyPattern(t *testing.T) {
	m := NewLiteralMatcher("")

	assert.True(t, m.Matches(""))
	assert.True(t, m.Matches("anything"))
}

func TestRegexpMatcher(t *testing.T) {
	m, err := NewRegexpMatcher("^Re:")
	require.NoError(t, err)

	assert.True(t, m.Matches("Re: lunch"))
	assert.False(t, m.Matches("Fwd: Re: lunch"), "^ anchors to the start of the subject")
}

func TestRegexpMatcherUnanchored(t *testing.T) {
	m, err := NewRegexpMatcher("invoice-\\d+")
	require.NoError(t, err)

	assert.True(t, m.Matches("payment for invoice-42 attached"))
	assert.False(t, m.Matches("payment for invoice attached"))
}

func TestRegexpMatcherInvalidPattern(t *testing.T) {
	_, err := NewRegexpMatcher("[unclosed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid subject pattern")
}
