package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ndang/mailgrep/internal/config"
	"github.com/ndang/mailgrep/internal/credential"
)

func newLoginCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Configure the IMAP account and store its password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(opts)
		},
	}
}

func runLogin(opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	host := cfg.IMAP.Host
	port := strconv.Itoa(cfg.IMAP.Port)
	username := cfg.IMAP.Username
	startTLS := cfg.IMAP.StartTLS
	var password string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("IMAP Host").
				Placeholder("imap.example.com").
				Value(&host).
				Validate(validateRequired("IMAP Host")),
			huh.NewInput().
				Title("IMAP Port").
				Placeholder("993").
				Value(&port).
				Validate(validatePort),
			huh.NewInput().
				Title("Username").
				Placeholder("user@example.com").
				Value(&username).
				Validate(validateRequired("Username")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(validateRequired("Password")),
			huh.NewConfirm().
				Title("Use STARTTLS").
				Description("Connect in plain text and upgrade, instead of implicit TLS").
				Value(&startTLS),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	portNum, err := strconv.Atoi(strings.TrimSpace(port))
	if err != nil {
		return fmt.Errorf("invalid port %q", port)
	}

	cfg.IMAP.Host = strings.TrimSpace(host)
	cfg.IMAP.Port = portNum
	cfg.IMAP.Username = strings.TrimSpace(username)
	cfg.IMAP.StartTLS = startTLS

	if err := config.Save(opts.configPath, cfg); err != nil {
		return err
	}
	if err := credential.Set(credential.Key(cfg.IMAP.Username), password); err != nil {
		return fmt.Errorf("storing password: %w", err)
	}

	fmt.Printf("saved account %s@%s:%d\n", cfg.IMAP.Username, cfg.IMAP.Host, cfg.IMAP.Port)
	return nil
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validatePort(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("port is required")
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	return nil
}
