package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessagePlainHeaders(t *testing.T) {
	header := []byte("Subject: weekly report\r\n" +
		"From: Alice <alice@example.com>\r\n" +
		"To: bob@example.com, carol@example.com\r\n" +
		"Cc: dave@example.com\r\n" +
		"Content-Type: text/plain\r\n")

	c, err := Message(header, []byte("hello world"))
	require.NoError(t, err)

	assert.Equal(t, "weekly report", c.Subject)
	assert.Equal(t, "Alice <alice@example.com>", c.From)
	assert.Equal(t, []string{"bob@example.com", "carol@example.com"}, c.To)
	assert.Equal(t, []string{"dave@example.com"}, c.Cc)
}

func TestMessageEncodedWordSubject(t *testing.T) {
	header := []byte("Subject: =?UTF-8?B?SMOpbGxv?=\r\n" +
		"From: alice@example.com\r\n" +
		"Content-Type: text/plain\r\n")

	c, err := Message(header, nil)
	require.NoError(t, err)

	assert.Equal(t, "Héllo", c.Subject)
}

func TestMessageEncodedWordQuotedPrintable(t *testing.T) {
	header := []byte("Subject: =?iso-8859-1?Q?caf=E9_receipt?=\r\n" +
		"Content-Type: text/plain\r\n")

	c, err := Message(header, nil)
	require.NoError(t, err)

	assert.Equal(t, "café receipt", c.Subject)
}

func TestMessageAbsentHeaders(t *testing.T) {
	header := []byte("Subject: hi\r\nContent-Type: text/plain\r\n")

	c, err := Message(header, nil)
	require.NoError(t, err)

	assert.Equal(t, "", c.From)
	assert.Nil(t, c.To)
	assert.Nil(t, c.Cc)
}

func TestMessageMultipartBody(t *testing.T) {
	header := []byte("Subject: hi\r\n" +
		"Content-Type: multipart/alternative; boundary=SEP\r\n")
	body := []byte("--SEP\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"plain text version\r\n" +
		"--SEP\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		"<p>html version</p>\r\n" +
		"--SEP--\r\n")

	c, err := Message(header, body)
	require.NoError(t, err)

	// Only the first sub-part becomes the body.
	assert.Equal(t, "plain text version", c.Body)
}

func TestMessageNonMultipartBody(t *testing.T) {
	header := []byte("Subject: hi\r\nContent-Type: text/plain\r\n")

	c, err := Message(header, []byte("just text"))
	require.NoError(t, err)

	assert.Equal(t, "", c.Body, "a body without sub-parts stays empty")
}

func TestMessageQuotedCommaInAddress(t *testing.T) {
	// The comma split is naive: a quoted display name containing a
	// comma comes back in two pieces.
	header := []byte("To: \"Doe, Jane\" <jane@example.com>\r\n" +
		"Content-Type: text/plain\r\n")

	c, err := Message(header, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"\"Doe", "Jane\" <jane@example.com>"}, c.To)
}

func TestMessageMalformed(t *testing.T) {
	header := []byte("this line is not a header field\r\n")

	_, err := Message(header, nil)
	require.ErrorIs(t, err, ErrMalformedMessage)
}
