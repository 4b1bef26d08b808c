// Package cli wires the mailgrep subcommands: search, browse,
// download, folders, history and login.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndang/mailgrep/internal/config"
	"github.com/ndang/mailgrep/internal/credential"
	"github.com/ndang/mailgrep/internal/session"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	configPath string
	verbose    bool
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:          "mailgrep",
		Short:        "Search an IMAP mailbox by subject and date",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(
		&opts.configPath, "config", config.DefaultPath(), "configuration file")
	cmd.PersistentFlags().BoolVar(
		&opts.verbose, "verbose", false, "log debug detail to stderr")

	cmd.AddCommand(
		newSearchCmd(opts),
		newBrowseCmd(opts),
		newDownloadCmd(opts),
		newFoldersCmd(opts),
		newHistoryCmd(opts),
		newLoginCmd(opts),
	)
	return cmd
}

func (o *options) logger() *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if cfg.IMAP.Host == "" || cfg.IMAP.Username == "" {
		return nil, errors.New("no account configured; run `mailgrep login` first")
	}
	return cfg, nil
}

// dial loads the configuration, resolves the account password, and
// opens the IMAP session.
func (o *options) dial(ctx context.Context) (*session.Session, *config.Config, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	password := os.Getenv("MAILGREP_PASSWORD")
	if password == "" {
		password, err = credential.Get(credential.Key(cfg.IMAP.Username))
		if err != nil || password == "" {
			return nil, nil, fmt.Errorf(
				"no password for %s; run `mailgrep login` or set MAILGREP_PASSWORD",
				cfg.IMAP.Username)
		}
	}

	sess, err := session.Dial(ctx, session.Config{
		Host:     cfg.IMAP.Host,
		Port:     cfg.IMAP.Port,
		Username: cfg.IMAP.Username,
		Password: password,
		StartTLS: cfg.IMAP.StartTLS,
	}, o.logger())
	if err != nil {
		return nil, nil, err
	}
	return sess, cfg, nil
}
