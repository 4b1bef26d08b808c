package decode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRaw(parts ...string) []byte {
	var b strings.Builder
	b.WriteString("From: alice@example.com\r\n")
	b.WriteString("To: bob@example.com\r\n")
	b.WriteString("Subject: files\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: multipart/mixed; boundary=FRONTIER\r\n")
	b.WriteString("\r\n")
	for _, p := range parts {
		b.WriteString("--FRONTIER\r\n")
		b.WriteString(p)
		b.WriteString("\r\n")
	}
	b.WriteString("--FRONTIER--\r\n")
	return []byte(b.String())
}

func TestFiles(t *testing.T) {
	raw := multipartRaw(
		"Content-Type: text/plain\r\n\r\nsee attached",
		"Content-Type: application/pdf\r\n"+
			"Content-Disposition: attachment; filename=\"report.pdf\"\r\n"+
			"\r\n"+
			"pdf bytes",
		"Content-Type: text/csv\r\n"+
			"Content-Disposition: attachment; filename=\"data.csv\"\r\n"+
			"\r\n"+
			"a,b\r\n1,2",
	)

	files, err := Files(raw)
	require.NoError(t, err)

	require.Len(t, files, 2)
	assert.Equal(t, []byte("pdf bytes"), files["report.pdf"])
	assert.Equal(t, []byte("a,b\r\n1,2"), files["data.csv"])
}

func TestFilesInlineWithFilename(t *testing.T) {
	raw := multipartRaw(
		"Content-Type: image/png\r\n" +
			"Content-Disposition: inline; filename=\"chart.png\"\r\n" +
			"\r\n" +
			"png bytes",
	)

	files, err := Files(raw)
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, []byte("png bytes"), files["chart.png"])
}

func TestFilesBase64Attachment(t *testing.T) {
	raw := multipartRaw(
		"Content-Type: application/octet-stream\r\n" +
			"Content-Disposition: attachment; filename=\"hello.bin\"\r\n" +
			"Content-Transfer-Encoding: base64\r\n" +
			"\r\n" +
			"aGVsbG8gd29ybGQ=",
	)

	files, err := Files(raw)
	require.NoError(t, err)

	assert.Equal(t, []byte("hello world"), files["hello.bin"])
}

func TestFilesNoAttachments(t *testing.T) {
	raw := []byte("From: alice@example.com\r\n" +
		"Subject: plain\r\n" +
		"Content-Type: text/plain\r\n" +
		"\r\n" +
		"no parts here\r\n")

	files, err := Files(raw)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFilesMalformed(t *testing.T) {
	_, err := Files([]byte("not a mime message at all"))
	require.ErrorIs(t, err, ErrMalformedMessage)
}
