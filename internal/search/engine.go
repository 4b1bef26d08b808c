package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/emersion/go-imap/v2"

	"github.com/ndang/mailgrep/internal/decode"
	"github.com/ndang/mailgrep/internal/model"
)

// ErrFolderNotFound is returned when the requested folder is not among
// the folders the server lists.
var ErrFolderNotFound = errors.New("folder not found")

// MessageData is the raw per-UID payload fetched from the transport in
// one batched request. Fields the server did not return are left zero.
type MessageData struct {
	UID          imap.UID
	InternalDate time.Time

	// RawHeader holds the selected header fields
	// (Subject, From, To, Cc, Content-Type).
	RawHeader []byte

	// RawText holds the BODY[TEXT] section.
	RawText []byte

	// Structure is the extended body structure; nil when the server
	// did not report one.
	Structure imap.BodyStructure
}

// Transport is the mailbox session the engine runs against. The engine
// never manages the underlying connection; implementations must
// serialize commands so only one request is in flight at a time.
type Transport interface {
	ListFolders(ctx context.Context) ([]model.Folder, error)
	SelectFolder(ctx context.Context, name string) (*model.Folder, error)

	// SearchByDateRange issues a server-side UID search for messages
	// with internal date in [since, before). A zero before means no
	// upper bound.
	SearchByDateRange(ctx context.Context, since, before time.Time) ([]imap.UID, error)

	// FetchMessage fetches one candidate's data items. It returns
	// (nil, nil) when the server has nothing for the UID.
	FetchMessage(ctx context.Context, uid imap.UID) (*MessageData, error)

	// FetchRawBody fetches the complete raw message bytes for a UID.
	FetchRawBody(ctx context.Context, uid imap.UID) ([]byte, error)
}

// Query is the complete, immutable configuration of one search run.
type Query struct {
	Folder  string
	Matcher Matcher
	Window  Window

	// Reverse inverts the final ordering: oldest first instead of
	// newest first.
	Reverse bool
}

// Engine turns a query into an ordered list of decoded mail records.
// It holds no state across runs.
type Engine struct {
	transport Transport
	logger    *slog.Logger
}

// NewEngine creates an engine over the given transport.
func NewEngine(t Transport, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{transport: t, logger: logger}
}

// Run executes one search: resolve the folder, run the coarse
// server-side date search, then fetch, decode and filter each candidate
// in the order the server returned it. An empty result is not an error.
func (e *Engine) Run(ctx context.Context, q Query) ([]model.Mail, error) {
	if err := e.resolveFolder(ctx, q.Folder); err != nil {
		return nil, err
	}

	since, before := q.Window.CoarseQuery()
	uids, err := e.transport.SearchByDateRange(ctx, since, before)
	if err != nil {
		// A failed server search degrades to an empty result rather
		// than aborting the query.
		e.logger.Warn("server-side search failed; returning no candidates",
			"folder", q.Folder, "error", err)
		uids = nil
	}

	var mails []model.Mail
	for _, uid := range uids {
		mail, ok := e.examine(ctx, uid, q)
		if !ok {
			continue
		}
		mails = append(mails, *mail)
	}

	// Newest first, ties keeping the server's candidate order.
	sort.SliceStable(mails, func(i, j int) bool {
		return mails[i].ReceivedAt.Unix() > mails[j].ReceivedAt.Unix()
	})
	if q.Reverse {
		for i, j := 0, len(mails)-1; i < j; i, j = i+1, j-1 {
			mails[i], mails[j] = mails[j], mails[i]
		}
	}

	return mails, nil
}

// examine fetches, filters and decodes a single candidate UID. Any
// missing or malformed data drops the candidate without failing the
// run; each UID is independent of the others.
func (e *Engine) examine(ctx context.Context, uid imap.UID, q Query) (*model.Mail, bool) {
	msg, err := e.transport.FetchMessage(ctx, uid)
	if err != nil {
		e.logger.Debug("fetch failed; skipping candidate", "uid", uid, "error", err)
		return nil, false
	}
	if msg == nil || msg.InternalDate.IsZero() || msg.RawHeader == nil {
		return nil, false
	}

	// The coarse search only has day granularity; enforce the exact
	// time-of-day bounds here.
	if !q.Window.Contains(msg.InternalDate) {
		return nil, false
	}

	content, err := decode.Message(msg.RawHeader, msg.RawText)
	if err != nil {
		e.logger.Debug("undecodable message; skipping candidate", "uid", uid, "error", err)
		return nil, false
	}

	attachments, err := decode.Attachments(msg.Structure)
	if err != nil {
		e.logger.Warn("bad attachment metadata; skipping candidate", "uid", uid, "error", err)
		return nil, false
	}

	if !q.Matcher.Matches(content.Subject) {
		return nil, false
	}

	return &model.Mail{
		UID:         uint32(msg.UID),
		Subject:     content.Subject,
		From:        content.From,
		To:          content.To,
		Cc:          content.Cc,
		Body:        content.Body,
		ReceivedAt:  msg.InternalDate,
		Attachments: attachments,
	}, true
}

// Download fetches one message's complete raw body and returns its
// attachment contents keyed by decoded filename.
func (e *Engine) Download(ctx context.Context, folder string, uid imap.UID) (map[string][]byte, error) {
	if err := e.resolveFolder(ctx, folder); err != nil {
		return nil, err
	}

	raw, err := e.transport.FetchRawBody(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("fetching message %d: %w", uid, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("message %d not found in %s", uid, folder)
	}

	return decode.Files(raw)
}

// resolveFolder verifies that name is among the listed folders
// (case-sensitive exact match on the decoded name) and selects it.
func (e *Engine) resolveFolder(ctx context.Context, name string) error {
	folders, err := e.transport.ListFolders(ctx)
	if err != nil {
		return fmt.Errorf("listing folders: %w", err)
	}

	found := false
	for _, f := range folders {
		if f.Name == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrFolderNotFound, name)
	}

	if _, err := e.transport.SelectFolder(ctx, name); err != nil {
		return fmt.Errorf("selecting folder %s: %w", name, err)
	}
	return nil
}
