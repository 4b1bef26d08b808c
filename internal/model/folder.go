package model

// Folder holds the decoded name and server metadata of one mailbox.
// The metadata is informational; search logic only uses Name.
type Folder struct {
	Name string

	Flags          []string
	PermanentFlags []string

	// Exists is the message count reported when the folder was selected.
	Exists uint32

	// Unseen is the unseen count from STATUS; nil when the server did
	// not report one.
	Unseen *uint32

	UIDNext     uint32
	UIDValidity uint32
}
