package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ndang/mailgrep/internal/search"
	"github.com/ndang/mailgrep/internal/ui/browser"
)

func newBrowseCmd(opts *options) *cobra.Command {
	flags := &filterFlags{}

	cmd := &cobra.Command{
		Use:   "browse <subject-query>",
		Short: "Browse matching mails in an interactive terminal view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, opts, flags, args[0])
		},
	}
	flags.register(cmd)
	return cmd
}

func runBrowse(cmd *cobra.Command, opts *options, flags *filterFlags, subject string) error {
	sess, cfg, err := opts.dial(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	query, err := flags.query(subject, cfg.Defaults.MailBox)
	if err != nil {
		return err
	}

	engine := search.NewEngine(sess, opts.logger())
	program := tea.NewProgram(browser.New(engine, query), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}
