package decode

import (
	"bytes"
	"fmt"
	"io"
	"mime"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/mail"
)

// Files parses a complete raw message and returns the contents of
// every part that declares a Content-Disposition filename, at any
// nesting depth, keyed by decoded filename. Part bodies come back
// transfer-decoded but otherwise untouched.
func Files(raw []byte) (map[string][]byte, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil && (mr == nil || !message.IsUnknownCharset(err)) {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	defer mr.Close()

	files := make(map[string][]byte)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			break
		}

		var name string
		switch h := part.Header.(type) {
		case *mail.AttachmentHeader:
			name, _ = h.Filename()
		case *mail.InlineHeader:
			// Inline parts can still carry a filename.
			if disposition := h.Get("Content-Disposition"); disposition != "" {
				if _, params, err := mime.ParseMediaType(disposition); err == nil {
					name = decodeWords(params["filename"])
				}
			}
		}
		if name == "" {
			continue
		}

		data, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}
		files[name] = data
	}

	return files, nil
}
