// Package browser is the interactive Bubble Tea viewer for search
// results: a result table with refresh, plus a per-mail preview.
package browser

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/k3a/html2text"

	"github.com/ndang/mailgrep/internal/keys"
	"github.com/ndang/mailgrep/internal/model"
	"github.com/ndang/mailgrep/internal/search"
	"github.com/ndang/mailgrep/internal/theme"
	"github.com/ndang/mailgrep/internal/ui"
)

// resultsMsg carries the outcome of one search run.
type resultsMsg struct {
	mails []model.Mail
	err   error
}

type viewState int

const (
	viewList viewState = iota
	viewPreview
)

// Model is the root browser model.
type Model struct {
	engine *search.Engine
	query  search.Query
	keys   *keys.KeyMap

	layout  ui.Layout
	table   table.Model
	preview viewport.Model

	mails   []model.Mail
	view    viewState
	status  string
	loading bool
	ready   bool
}

// New creates a browser over the given engine and query. The query is
// immutable; refresh reruns it as-is.
func New(engine *search.Engine, query search.Query) Model {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Bold(true).
		Foreground(theme.ColorRed)
	styles.Selected = styles.Selected.
		Bold(true).
		Foreground(theme.ColorWhite).
		Background(theme.ColorBlue)

	t := table.New(
		table.WithColumns(columnsFor(80)),
		table.WithFocused(true),
		table.WithStyles(styles),
	)

	return Model{
		engine:  engine,
		query:   query,
		keys:    keys.DefaultKeyMap(),
		table:   t,
		preview: viewport.New(80, 22),
		loading: true,
	}
}

// Init starts the first search run.
func (m Model) Init() tea.Cmd {
	return m.refresh()
}

// refresh returns a command that reruns the search synchronously. The
// engine serializes on the session, so an in-flight refresh never
// overlaps another request.
func (m Model) refresh() tea.Cmd {
	engine := m.engine
	query := m.query
	return func() tea.Msg {
		mails, err := engine.Run(context.Background(), query)
		return resultsMsg{mails: mails, err: err}
	}
}

// Update handles messages for the browser.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.table.SetColumns(columnsFor(msg.Width))
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(m.layout.ContentHeight())
		m.preview.Width = msg.Width
		m.preview.Height = m.layout.ContentHeight()
		return m, nil

	case resultsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.mails = msg.mails
		m.table.SetRows(rowsFor(msg.mails))
		m.status = fmt.Sprintf("%d mails", len(msg.mails))
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.status = "refreshing..."
		return m, m.refresh()

	case key.Matches(msg, m.keys.Open):
		if m.view == viewList {
			cursor := m.table.Cursor()
			if cursor >= 0 && cursor < len(m.mails) {
				m.view = viewPreview
				m.preview.SetContent(renderPreview(m.mails[cursor]))
				m.preview.GotoTop()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.view = viewList
		return m, nil
	}

	var cmd tea.Cmd
	switch m.view {
	case viewList:
		m.table, cmd = m.table.Update(msg)
	case viewPreview:
		m.preview, cmd = m.preview.Update(msg)
	}
	return m, cmd
}

// View renders the browser.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	header := m.layout.RenderHeader("Mails / "+m.query.Folder, m.status)

	var content string
	switch {
	case m.loading:
		content = theme.HelpStyle.Render("searching...")
	case m.view == viewPreview:
		content = m.preview.View()
	default:
		content = m.table.View()
	}

	hints := "q: quit  r: refresh  enter: open  esc: back"
	return m.layout.RenderWithFrame(header, content, m.layout.RenderStatusBar(hints))
}

// columnsFor splits the terminal width into the result columns,
// mirroring the original table proportions.
func columnsFor(width int) []table.Column {
	flexible := width - 5 - 20
	if flexible < 35 {
		flexible = 35
	}
	pct := func(p int) int { return flexible * p / 100 }

	return []table.Column{
		{Title: "id", Width: 5},
		{Title: "Subject", Width: pct(25)},
		{Title: "From", Width: pct(25)},
		{Title: "To", Width: pct(20)},
		{Title: "CC", Width: pct(10)},
		{Title: "Date", Width: 20},
		{Title: "Attachments", Width: pct(20)},
	}
}

func rowsFor(mails []model.Mail) []table.Row {
	rows := make([]table.Row, len(mails))
	for i, mail := range mails {
		names := make([]string, len(mail.Attachments))
		for j, att := range mail.Attachments {
			names[j] = att.Name
		}
		rows[i] = table.Row{
			strconv.FormatUint(uint64(mail.UID), 10),
			mail.Subject,
			mail.From,
			strings.Join(mail.To, ", "),
			strings.Join(mail.Cc, ", "),
			mail.ReceivedAt.Format("2006-01-02T15:04:05"),
			strings.Join(names, ", "),
		}
	}
	return rows
}

// renderPreview renders one mail's headers, body and attachment list.
// HTML-only bodies are flattened to plain text for the terminal.
func renderPreview(mail model.Mail) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s\n", mail.Subject)
	fmt.Fprintf(&b, "From: %s\n", mail.From)
	if len(mail.To) > 0 {
		fmt.Fprintf(&b, "To: %s\n", strings.Join(mail.To, ", "))
	}
	if len(mail.Cc) > 0 {
		fmt.Fprintf(&b, "CC: %s\n", strings.Join(mail.Cc, ", "))
	}
	fmt.Fprintf(&b, "Date: %s\n", mail.ReceivedAt.Format("2006-01-02T15:04:05 -0700"))

	if len(mail.Attachments) > 0 {
		b.WriteString("Attachments:\n")
		for _, att := range mail.Attachments {
			if att.Size != nil {
				fmt.Fprintf(&b, "  %s (%d bytes)\n", att.Name, *att.Size)
			} else {
				fmt.Fprintf(&b, "  %s\n", att.Name)
			}
		}
	}

	body := mail.Body
	if looksLikeHTML(body) {
		body = html2text.HTML2Text(body)
	}
	b.WriteString("\n")
	b.WriteString(body)

	return theme.PreviewStyle.Render(b.String())
}

func looksLikeHTML(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "<html") ||
		strings.Contains(lower, "<body") ||
		strings.Contains(lower, "<div") ||
		strings.Contains(lower, "<p>")
}
