package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterFlagsQuery(t *testing.T) {
	flags := &filterFlags{
		start:   "2023-01-01T10:00:00",
		end:     "2023-01-01T18:00:00",
		reverse: true,
		mailBox: "Archive",
	}

	q, err := flags.query("report", "INBOX")
	require.NoError(t, err)

	assert.Equal(t, "Archive", q.Folder)
	assert.True(t, q.Reverse)
	assert.Equal(t, time.Date(2023, 1, 1, 10, 0, 0, 0, time.Local), q.Window.Start)
	require.NotNil(t, q.Window.End)
	assert.Equal(t, time.Date(2023, 1, 1, 18, 0, 0, 0, time.Local), *q.Window.End)
	assert.True(t, q.Matcher.Matches("weekly report"))
	assert.False(t, q.Matcher.Matches("lunch"))
}

func TestFilterFlagsQueryDefaults(t *testing.T) {
	q, err := (&filterFlags{}).query("x", "INBOX")
	require.NoError(t, err)

	assert.Equal(t, "INBOX", q.Folder, "falls back to the configured mailbox")
	assert.Nil(t, q.Window.End, "no end flag means an open-ended window")
	assert.Equal(t, todayMidnight(), q.Window.Start)
}

func TestFilterFlagsQueryRegex(t *testing.T) {
	q, err := (&filterFlags{regex: true}).query("^Re:", "INBOX")
	require.NoError(t, err)

	assert.True(t, q.Matcher.Matches("Re: lunch"))
	assert.False(t, q.Matcher.Matches("Fwd: Re: lunch"))
}

func TestFilterFlagsQueryInvalidRegex(t *testing.T) {
	_, err := (&filterFlags{regex: true}).query("[unclosed", "INBOX")
	require.Error(t, err)
}

func TestFilterFlagsQueryInvalidDates(t *testing.T) {
	_, err := (&filterFlags{start: "nope"}).query("x", "INBOX")
	require.Error(t, err)

	_, err = (&filterFlags{end: "nope"}).query("x", "INBOX")
	require.Error(t, err)
}
