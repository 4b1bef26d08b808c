package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/emersion/go-imap/v2"
	"github.com/spf13/cobra"

	"github.com/ndang/mailgrep/internal/search"
)

func newDownloadCmd(opts *options) *cobra.Command {
	var mailBox string

	cmd := &cobra.Command{
		Use:   "download <uid>",
		Short: "Save every attachment of a message to the current directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid uid %q", args[0])
			}
			return runDownload(cmd, opts, mailBox, imap.UID(uid))
		},
	}
	cmd.Flags().StringVarP(&mailBox, "mail-box", "m", "", "mailbox holding the message")
	return cmd
}

func runDownload(cmd *cobra.Command, opts *options, mailBox string, uid imap.UID) error {
	sess, cfg, err := opts.dial(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	if mailBox == "" {
		mailBox = cfg.Defaults.MailBox
	}

	engine := search.NewEngine(sess, opts.logger())
	files, err := engine.Download(cmd.Context(), mailBox, uid)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("no attachments found")
		return nil
	}

	for name, data := range files {
		// Strip any path components a hostile filename may carry.
		name = filepath.Base(name)
		if name == "." || name == string(filepath.Separator) {
			continue
		}
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		fmt.Printf("saved %s (%d bytes)\n", name, len(data))
	}
	return nil
}
