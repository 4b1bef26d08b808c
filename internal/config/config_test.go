package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 993, cfg.IMAP.Port)
	assert.Equal(t, "INBOX", cfg.Defaults.MailBox)
	assert.NotEmpty(t, cfg.HistoryPath)
	assert.Empty(t, cfg.IMAP.Host)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
imap:
  host: imap.example.com
  port: 143
  username: alice
  starttls: true
defaults:
  mail_box: Work
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "imap.example.com", cfg.IMAP.Host)
	assert.Equal(t, 143, cfg.IMAP.Port)
	assert.Equal(t, "alice", cfg.IMAP.Username)
	assert.True(t, cfg.IMAP.StartTLS)
	assert.Equal(t, "Work", cfg.Defaults.MailBox)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("imap:\n  host: mail.example.com\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mail.example.com", cfg.IMAP.Host)
	assert.Equal(t, 993, cfg.IMAP.Port)
	assert.Equal(t, "INBOX", cfg.Defaults.MailBox)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	in := &Config{
		IMAP: IMAPConfig{
			Host:     "imap.example.com",
			Port:     993,
			Username: "alice",
		},
		Defaults:    DefaultsConfig{MailBox: "Archive"},
		HistoryPath: filepath.Join(t.TempDir(), "history.db"),
	}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, in.IMAP, out.IMAP)
	assert.Equal(t, in.Defaults, out.Defaults)
	assert.Equal(t, in.HistoryPath, out.HistoryPath)
}
