package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ndang/mailgrep/internal/model"
	"github.com/ndang/mailgrep/internal/theme"
)

// searchRow is the flat, presentation-ready form of one result, shared
// by the table and JSON renderers. Multi-value fields are joined with
// newlines, matching the original output shape.
type searchRow struct {
	ID          uint32 `json:"id"`
	Subject     string `json:"subject"`
	From        string `json:"from"`
	To          string `json:"to"`
	CC          string `json:"cc"`
	Date        string `json:"date"`
	Attachments string `json:"attachments"`
}

func searchRows(mails []model.Mail) []searchRow {
	rows := make([]searchRow, len(mails))
	for i, mail := range mails {
		rows[i] = searchRow{
			ID:          mail.UID,
			Subject:     mail.Subject,
			From:        mail.From,
			To:          strings.Join(mail.To, "\n"),
			CC:          strings.Join(mail.Cc, "\n"),
			Date:        mail.ReceivedAt.Format(time.RFC3339),
			Attachments: strings.Join(attachmentNames(mail), "\n"),
		}
	}
	return rows
}

// renderJSON writes the result list to stdout as a JSON array.
func renderJSON(mails []model.Mail) error {
	data, err := json.Marshal(searchRows(mails))
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// renderMailTable writes the result list to stdout as a bordered
// table: subjects green, ids and attachments dimmed.
func renderMailTable(mails []model.Mail) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorBorder)).
		Headers("id", "Subject", "From", "To", "CC", "Date", "Attachments").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return theme.TableHeaderStyle
			case col == 1:
				return theme.SubjectStyle
			case col == 0, col == 6:
				return theme.DimStyle
			default:
				return lipgloss.NewStyle()
			}
		})

	for _, row := range searchRows(mails) {
		t.Row(strconv.FormatUint(uint64(row.ID), 10),
			row.Subject, row.From, row.To, row.CC, row.Date, row.Attachments)
	}

	fmt.Fprintln(os.Stdout, t)
}
