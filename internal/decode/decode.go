// Package decode turns raw IMAP fetch payloads into structured mail
// data: header fields, body text, and attachment metadata/contents.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/emersion/go-message"

	// Importing charset registers decoders for non-UTF-8 charsets
	// (iso-8859-*, windows-125x, gbk, ...).
	"github.com/emersion/go-message/charset"
)

// ErrMalformedMessage is returned when fetched bytes cannot be parsed
// as a MIME message at all.
var ErrMalformedMessage = errors.New("malformed message")

// Content holds the decoded fields of one message.
type Content struct {
	Subject string
	From    string
	To      []string
	Cc      []string
	Body    string
}

// wordDecoder resolves RFC 2047 encoded-words using the same charset
// table go-message registers.
var wordDecoder = &mime.WordDecoder{CharsetReader: charset.Reader}

// Message decodes the fetched header fields and text body into a
// Content. Subject and From are the first occurrence of their header,
// encoded-word decoded; To and Cc are additionally split on commas and
// trimmed. The body is the decoded text of the first sub-part of the
// text body; a body without sub-parts yields an empty string.
//
// The comma split does not respect quoted display names that contain
// commas; such addresses come back in pieces.
func Message(rawHeader, rawText []byte) (*Content, error) {
	entity, err := parseEntity(rawHeader, rawText)
	if err != nil {
		return nil, err
	}

	c := &Content{
		Subject: headerText(entity, "Subject"),
		From:    headerText(entity, "From"),
		To:      splitAddresses(entity, "To"),
		Cc:      splitAddresses(entity, "Cc"),
	}

	if mr := entity.MultipartReader(); mr != nil {
		part, err := mr.NextPart()
		if err == nil {
			if body, err := io.ReadAll(part.Body); err == nil {
				c.Body = string(body)
			}
		}
	}

	return c, nil
}

// parseEntity reassembles the header-fields block and body text into a
// single MIME entity. The fetched header fields include Content-Type,
// which is what lets the text body parse as a proper part tree.
func parseEntity(rawHeader, rawText []byte) (*message.Entity, error) {
	header := bytes.TrimRight(rawHeader, "\r\n")

	var buf bytes.Buffer
	buf.Grow(len(header) + len(rawText) + 4)
	buf.Write(header)
	buf.WriteString("\r\n\r\n")
	buf.Write(rawText)

	entity, err := message.Read(&buf)
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return entity, nil
}

// headerText returns the decoded value of the named header, or an
// empty string when the header is absent or undecodable.
func headerText(e *message.Entity, key string) string {
	value, err := e.Header.Text(key)
	if err != nil {
		// Fall back to the raw value when the charset is unknown.
		return e.Header.Get(key)
	}
	return value
}

// splitAddresses decodes the named header and splits it on commas,
// trimming each piece. An absent header yields a nil slice.
func splitAddresses(e *message.Entity, key string) []string {
	if !e.Header.Has(key) {
		return nil
	}

	parts := strings.Split(headerText(e, key), ",")
	addrs := make([]string, len(parts))
	for i, p := range parts {
		addrs[i] = strings.TrimSpace(p)
	}
	return addrs
}

// decodeWords resolves encoded-words in s through the same decoding
// path used for header values, returning s unchanged on failure.
func decodeWords(s string) string {
	decoded, err := wordDecoder.DecodeHeader(s)
	if err != nil {
		return s
	}
	return decoded
}
