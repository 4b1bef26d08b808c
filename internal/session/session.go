// Package session wraps a single authenticated IMAP connection behind
// the transport interface consumed by the search engine.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"github.com/ndang/mailgrep/internal/model"
	"github.com/ndang/mailgrep/internal/search"
)

// Config holds the connection settings for one IMAP account.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string

	// StartTLS upgrades a plaintext connection instead of dialing
	// implicit TLS on the configured port.
	StartTLS bool
}

// Session is an exclusively-owned IMAP session. Every command takes the
// session lock, so at most one request is in flight at any time; a
// search and a download never interleave on the same connection.
type Session struct {
	mu     sync.Mutex
	client *imapclient.Client
	logger *slog.Logger
}

// Dial connects to the configured server, authenticates, and returns a
// ready session. Connect and login failures are always fatal.
func Dial(_ context.Context, cfg Config, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	var client *imapclient.Client
	var err error
	if cfg.StartTLS {
		client, err = imapclient.DialStartTLS(addr, nil)
	} else {
		client, err = imapclient.DialTLS(addr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}

	if err := client.Login(cfg.Username, cfg.Password).Wait(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("authenticating %s: %w", cfg.Username, err)
	}

	logger.Debug("imap session established", "server", addr, "user", cfg.Username)
	return &Session{client: client, logger: logger}, nil
}

// Close logs out and tears down the connection.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.client.Logout().Wait(); err != nil {
		return s.client.Close()
	}
	return s.client.Close()
}

// ListFolders lists every folder with its metadata, selecting each one
// for counts the way the server reports them. Folder names arrive
// already decoded from modified UTF-7 by the imap library.
func (s *Session) ListFolders(ctx context.Context) ([]model.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	boxes, err := s.client.List("", "*", nil).Collect()
	if err != nil {
		return nil, fmt.Errorf("listing folders: %w", err)
	}

	folders := make([]model.Folder, 0, len(boxes))
	for _, box := range boxes {
		folder := model.Folder{Name: box.Mailbox}
		for _, attr := range box.Attrs {
			folder.Flags = append(folder.Flags, string(attr))
		}

		selected, err := s.client.Select(box.Mailbox, &imap.SelectOptions{ReadOnly: true}).Wait()
		if err != nil {
			// Some folders (\Noselect containers) cannot be opened;
			// list them by name only.
			s.logger.Debug("cannot select folder", "folder", box.Mailbox, "error", err)
			folders = append(folders, folder)
			continue
		}
		folder.Exists = selected.NumMessages
		folder.UIDNext = uint32(selected.UIDNext)
		folder.UIDValidity = selected.UIDValidity
		for _, flag := range selected.PermanentFlags {
			folder.PermanentFlags = append(folder.PermanentFlags, string(flag))
		}

		if status, err := s.client.Status(box.Mailbox, &imap.StatusOptions{NumUnseen: true}).Wait(); err == nil {
			folder.Unseen = status.NumUnseen
		}

		folders = append(folders, folder)
	}

	return folders, nil
}

// SelectFolder opens the named folder read-only and returns its
// metadata.
func (s *Session) SelectFolder(ctx context.Context, name string) (*model.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	selected, err := s.client.Select(name, &imap.SelectOptions{ReadOnly: true}).Wait()
	if err != nil {
		return nil, fmt.Errorf("selecting %s: %w", name, err)
	}

	folder := &model.Folder{
		Name:        name,
		Exists:      selected.NumMessages,
		UIDNext:     uint32(selected.UIDNext),
		UIDValidity: selected.UIDValidity,
	}
	for _, flag := range selected.Flags {
		folder.Flags = append(folder.Flags, string(flag))
	}
	for _, flag := range selected.PermanentFlags {
		folder.PermanentFlags = append(folder.PermanentFlags, string(flag))
	}
	return folder, nil
}

// SearchByDateRange runs a UID SEARCH for internal dates in
// [since, before). IMAP compares dates at day granularity; the caller
// is responsible for exact filtering. A zero before leaves the search
// unbounded above.
func (s *Session) SearchByDateRange(ctx context.Context, since, before time.Time) ([]imap.UID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	criteria := &imap.SearchCriteria{Since: since}
	if !before.IsZero() {
		criteria.Before = before
	}

	data, err := s.client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("searching by date: %w", err)
	}
	return data.AllUIDs(), nil
}

// FetchMessage fetches one candidate's internal date, selected header
// fields, text body and extended body structure in a single request.
// It returns (nil, nil) when the server has nothing for the UID.
func (s *Session) FetchMessage(ctx context.Context, uid imap.UID) (*search.MessageData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	headerSection := &imap.FetchItemBodySection{
		Specifier:    imap.PartSpecifierHeader,
		HeaderFields: []string{"Subject", "From", "To", "Cc", "Content-Type"},
		Peek:         true,
	}
	textSection := &imap.FetchItemBodySection{
		Specifier: imap.PartSpecifierText,
		Peek:      true,
	}
	options := &imap.FetchOptions{
		UID:           true,
		InternalDate:  true,
		BodyStructure: &imap.FetchItemBodyStructure{Extended: true},
		BodySection:   []*imap.FetchItemBodySection{headerSection, textSection},
	}

	buffers, err := s.client.Fetch(imap.UIDSetNum(uid), options).Collect()
	if err != nil {
		return nil, fmt.Errorf("fetching %d: %w", uid, err)
	}
	if len(buffers) == 0 {
		return nil, nil
	}

	buf := buffers[0]
	return &search.MessageData{
		UID:          uid,
		InternalDate: buf.InternalDate,
		RawHeader:    buf.FindBodySection(headerSection),
		RawText:      buf.FindBodySection(textSection),
		Structure:    buf.BodyStructure,
	}, nil
}

// FetchRawBody fetches the complete raw message for a UID without
// setting the seen flag. It returns (nil, nil) when the UID is gone.
func (s *Session) FetchRawBody(ctx context.Context, uid imap.UID) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	section := &imap.FetchItemBodySection{Peek: true}
	options := &imap.FetchOptions{
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{section},
	}

	fetchCmd := s.client.Fetch(imap.UIDSetNum(uid), options)
	defer fetchCmd.Close()

	msg := fetchCmd.Next()
	if msg == nil {
		return nil, nil
	}

	var raw []byte
	for {
		item := msg.Next()
		if item == nil {
			break
		}
		body, ok := item.(imapclient.FetchItemDataBodySection)
		if !ok {
			continue
		}
		data, err := io.ReadAll(body.Literal)
		if err != nil {
			return nil, fmt.Errorf("reading body of %d: %w", uid, err)
		}
		raw = data
	}

	if err := fetchCmd.Close(); err != nil {
		return raw, fmt.Errorf("fetching body of %d: %w", uid, err)
	}
	return raw, nil
}
