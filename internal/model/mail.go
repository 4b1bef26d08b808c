package model

import "time"

// Mail is a point-in-time snapshot of one message in a folder. It is
// assembled from a single fetch and never mutated afterwards.
type Mail struct {
	// UID is the server-assigned identifier, stable within one
	// UID-validity epoch of the folder it was fetched from.
	UID uint32

	Subject string
	From    string
	To      []string
	Cc      []string

	// Body is the decoded text of the first sub-part of the fetched
	// text body; empty when the body has no sub-parts.
	Body string

	// ReceivedAt is the server's internal date, not the Date: header.
	ReceivedAt time.Time

	Attachments []Attachment
}

// Attachment describes one attachment part of a message as reported by
// the server's body structure. Size is nil when the server did not
// report one.
type Attachment struct {
	Name string
	Size *uint32
}
