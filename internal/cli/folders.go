package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ndang/mailgrep/internal/theme"
)

func newFoldersCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "folders",
		Short: "List mailboxes with their server metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFolders(cmd, opts)
		},
	}
}

func runFolders(cmd *cobra.Command, opts *options) error {
	sess, _, err := opts.dial(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	folders, err := sess.ListFolders(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing folders: %w", err)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorBorder)).
		Headers("Name", "Flags", "Exists", "Unseen", "UID Next", "UID Validity").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return theme.TableHeaderStyle
			case col == 0:
				return theme.SubjectStyle
			case col == 1:
				return theme.DimStyle
			default:
				return lipgloss.NewStyle()
			}
		})

	for _, f := range folders {
		unseen := "-"
		if f.Unseen != nil {
			unseen = strconv.FormatUint(uint64(*f.Unseen), 10)
		}
		t.Row(f.Name,
			strings.Join(f.Flags, " "),
			strconv.FormatUint(uint64(f.Exists), 10),
			unseen,
			strconv.FormatUint(uint64(f.UIDNext), 10),
			strconv.FormatUint(uint64(f.UIDValidity), 10))
	}

	fmt.Println(t)
	return nil
}
