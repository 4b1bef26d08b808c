package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ndang/mailgrep/internal/store"
	"github.com/ndang/mailgrep/internal/theme"
)

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}

func runHistory(cmd *cobra.Command, opts *options, limit int) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	s, err := store.Open(cfg.HistoryPath)
	if err != nil {
		return fmt.Errorf("opening history store: %w", err)
	}
	defer s.Close()

	records, err := s.RecentSearches(cmd.Context(), limit)
	if err != nil {
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorBorder)).
		Headers("When", "Folder", "Pattern", "Mode", "Window", "Results").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return theme.TableHeaderStyle
			case col == 2:
				return theme.SubjectStyle
			case col == 0:
				return theme.DimStyle
			default:
				return lipgloss.NewStyle()
			}
		})

	for _, rec := range records {
		mode := "literal"
		if rec.Regex {
			mode = "regex"
		}
		window := rec.WindowStart.Local().Format(dateTimeLayout) + " .."
		if rec.WindowEnd != nil {
			window += " " + rec.WindowEnd.Local().Format(dateTimeLayout)
		}
		t.Row(rec.RanAt.Local().Format(time.DateTime),
			rec.Folder, rec.Pattern, mode, window,
			strconv.Itoa(rec.ResultCount))
	}

	fmt.Println(t)
	return nil
}
