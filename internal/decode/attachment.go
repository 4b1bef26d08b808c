package decode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/emersion/go-imap/v2"

	"github.com/ndang/mailgrep/internal/model"
)

// ErrBadAttachmentMetadata is returned when a part's reported size is
// present but not a number; that breaks a structural assumption and is
// surfaced rather than silently ignored.
var ErrBadAttachmentMetadata = errors.New("bad attachment metadata")

// Attachments enumerates the attachment parts declared in a message's
// body structure. Only the immediate children of a top-level multipart
// node are considered; nested multiparts are not descended into, and a
// single-part message (or a nil structure) yields no attachments.
//
// A child counts as an attachment when it is a single part whose
// disposition is "attachment" and carries a filename parameter. The
// filename goes through the header encoded-word decoding path, so
// encoded non-ASCII names resolve the same way subjects do.
func Attachments(structure imap.BodyStructure) ([]model.Attachment, error) {
	multipart, ok := structure.(*imap.BodyStructureMultiPart)
	if !ok {
		return nil, nil
	}

	var attachments []model.Attachment
	for _, child := range multipart.Children {
		part, ok := child.(*imap.BodyStructureSinglePart)
		if !ok || part.Extended == nil {
			continue
		}

		disposition := part.Extended.Disposition
		if disposition == nil ||
			!strings.EqualFold(disposition.Value, "attachment") ||
			len(disposition.Params) == 0 {
			continue
		}

		name, ok := disposition.Params["filename"]
		if !ok {
			continue
		}

		attachment := model.Attachment{Name: decodeWords(name)}

		if raw, ok := disposition.Params["size"]; ok {
			size, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: size %q of %s is not a number",
					ErrBadAttachmentMetadata, raw, name)
			}
			n := uint32(size)
			attachment.Size = &n
		}

		attachments = append(attachments, attachment)
	}

	return attachments, nil
}
