package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndang/mailgrep/internal/model"
	"github.com/ndang/mailgrep/internal/search"
	"github.com/ndang/mailgrep/internal/store"
)

// filterFlags is the flag set shared by search and browse.
type filterFlags struct {
	start   string
	end     string
	regex   bool
	reverse bool
	mailBox string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.start, "start-datetime", "",
		"window start, YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS (default: today 00:00)")
	cmd.Flags().StringVar(&f.end, "end-datetime", "",
		"window end, inclusive (default: unbounded)")
	cmd.Flags().BoolVar(&f.regex, "regex", false,
		"treat the subject query as a regular expression")
	cmd.Flags().BoolVar(&f.reverse, "reverse", false,
		"oldest first instead of newest first")
	cmd.Flags().StringVarP(&f.mailBox, "mail-box", "m", "",
		"folder to search (default: configured mailbox)")
}

// query validates the flags and builds the immutable search query.
// Pattern and datetime errors surface here, before any connection is
// made.
func (f *filterFlags) query(subject, defaultMailBox string) (search.Query, error) {
	matcher := search.Matcher(search.NewLiteralMatcher(subject))
	if f.regex {
		var err error
		matcher, err = search.NewRegexpMatcher(subject)
		if err != nil {
			return search.Query{}, err
		}
	}

	start := todayMidnight()
	if f.start != "" {
		var err error
		start, err = parseDateTime(f.start)
		if err != nil {
			return search.Query{}, err
		}
	}

	var end time.Time
	if f.end != "" {
		var err error
		end, err = parseDateTime(f.end)
		if err != nil {
			return search.Query{}, err
		}
	}

	folder := f.mailBox
	if folder == "" {
		folder = defaultMailBox
	}

	return search.Query{
		Folder:  folder,
		Matcher: matcher,
		Window:  search.NewWindow(start, end),
		Reverse: f.reverse,
	}, nil
}

func newSearchCmd(opts *options) *cobra.Command {
	flags := &filterFlags{}
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "search <subject-query>",
		Short: "List mails matching a subject pattern within a date window",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), opts, flags, args[0], jsonOut)
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "machine-readable output")
	return cmd
}

func runSearch(ctx context.Context, opts *options, flags *filterFlags, subject string, jsonOut bool) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	query, err := flags.query(subject, cfg.Defaults.MailBox)
	if err != nil {
		return err
	}

	sess, _, err := opts.dial(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	engine := search.NewEngine(sess, opts.logger())
	mails, err := engine.Run(ctx, query)
	if err != nil {
		return err
	}

	recordHistory(ctx, opts, cfg.HistoryPath, query, subject, flags, len(mails))

	if jsonOut {
		return renderJSON(mails)
	}
	renderMailTable(mails)
	return nil
}

// recordHistory saves the run in the local history database. History
// is best-effort: failures are logged, never returned.
func recordHistory(ctx context.Context, opts *options, dbPath string, query search.Query, subject string, flags *filterFlags, count int) {
	s, err := store.Open(dbPath)
	if err != nil {
		opts.logger().Warn("cannot open history store", "path", dbPath, "error", err)
		return
	}
	defer s.Close()

	rec := store.SearchRecord{
		Folder:      query.Folder,
		Pattern:     subject,
		Regex:       flags.regex,
		Reverse:     query.Reverse,
		WindowStart: query.Window.Start,
		WindowEnd:   query.Window.End,
		ResultCount: count,
	}
	if err := s.RecordSearch(ctx, rec); err != nil {
		opts.logger().Warn("cannot record search", "error", err)
	}
}

// attachmentNames flattens attachment names for table and JSON output.
func attachmentNames(mail model.Mail) []string {
	names := make([]string, len(mail.Attachments))
	for i, att := range mail.Attachments {
		names[i] = att.Name
	}
	return names
}
