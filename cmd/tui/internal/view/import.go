package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finny-import/internal/importer"
	"github.com/MrJamesThe3rd/finny-import/internal/ingest"
	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStatePreview
	importStateResult
)

type ImportModel struct {
	CommonModel
	txService     *transaction.Service
	importService *importer.Service

	state      importState
	filePicker filepicker.Model
	table      table.Model

	report          *importer.Report
	showDiagnostics bool

	status string
	err    error
}

func NewImportModel(txSvc *transaction.Service, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = importer.AllowedExtensions
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		txService:     txSvc,
		importService: impSvc,
		filePicker:    fp,
		table:         newPreviewTable(),
	}
}

func newPreviewTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Type", Width: 8},
			{Title: "Amount", Width: 12},
			{Title: "Description", Width: 30},
			{Title: "Category", Width: 14},
			{Title: "Status", Width: 10},
			{Title: "Rec", Width: 4},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m ImportModel) Title() string { return "Import Statement" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStatePreview {
		return "s: save | d: diagnostics | Esc: discard"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStatePreview {
			return m.updatePreview(msg)
		}

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(5, msg.Height-16))

	case importResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.report = msg.report
		m.state = importStatePreview
		m.showDiagnostics = false
		m.table.SetRows(previewRows(msg.report.Transactions))
		m.table.GotoTop()

		return m, nil

	case saveResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.status = fmt.Sprintf("Saved %d transactions.", msg.count)

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Parsing %s...", filepath.Base(path))

		return m, m.importCmd(path)
	}

	if didSelect, path := m.filePicker.DidSelectDisabledFile(msg); didSelect {
		m.state = importStateResult
		m.err = fmt.Errorf("%s is not an accepted file type", filepath.Base(path))
		m.status = m.err.Error()

		return m, nil
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStatePreview, importStateResult:
		m.state = importStateFilePick
		m.report = nil
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		if m.report == nil || len(m.report.Transactions) == 0 {
			m.status = "Nothing to save."
			return m, nil
		}

		m.status = "Saving..."

		return m, m.saveCmd(m.report.Transactions)
	case "d":
		m.showDiagnostics = !m.showDiagnostics
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select a statement (%s):\n\n%s",
				strings.Join(importer.AllowedExtensions, " "), m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStatePreview:
		return m.viewPreview()
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewPreview() string {
	r := m.report
	stats := r.Stats()

	header := fmt.Sprintf("%s  layout: %s  charset: %s",
		r.Filename, activeStyle(r.Layout.String()), r.Charset)

	summary := fmt.Sprintf("%d of %d rows imported  |  income %s  expense %s  balance %s  |  %d recurring, %d categories",
		len(r.Transactions), r.Rows,
		incomeStyle.Render(FormatAmount(stats.Income)),
		expenseStyle.Render(FormatAmount(stats.Expense)),
		FormatAmount(stats.Balance),
		stats.Recurring, stats.Categories,
	)

	parts := []string{
		header,
		summary,
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View()),
	}

	if n := len(r.Diagnostics); n > 0 {
		if m.showDiagnostics {
			parts = append(parts, diagnosticsView(r.Diagnostics))
		} else {
			parts = append(parts, warnStyle.Render(fmt.Sprintf("%d diagnostic(s), press d to show", n)))
		}
	}

	if m.status != "" {
		parts = append(parts, faintStyle.Render(m.status))
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func diagnosticsView(diags []ingest.Diagnostic) string {
	var sb strings.Builder

	for _, d := range diags {
		style := warnStyle
		if d.Severity == ingest.SeverityError {
			style = expenseStyle
		}

		sb.WriteString(style.Render(d.String()))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(expenseStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	return style.Render(incomeStyle.Render(m.status) + "\n\n(Esc to go back)")
}

func previewRows(txs []transaction.Transaction) []table.Row {
	rows := make([]table.Row, 0, len(txs))

	for _, tx := range txs {
		recurring := ""
		if tx.IsRecurring {
			recurring = "yes"
		}

		rows = append(rows, table.Row{
			tx.Date,
			string(tx.Type),
			SignedAmount(tx),
			tx.Description,
			tx.Category,
			string(tx.Status),
			recurring,
		})
	}

	return rows
}

// Messages

type importResultMsg struct {
	report *importer.Report
	err    error
}

type saveResultMsg struct {
	count int
	err   error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	svc := m.importService

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return importResultMsg{err: err}
		}

		if v := svc.Validate(path, info.Size()); !v.Valid {
			return importResultMsg{err: fmt.Errorf("%w: %s", importer.ErrFileRejected, v.Error)}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		report, err := svc.Import(ctx, filepath.Base(path), f)

		return importResultMsg{report: report, err: err}
	}
}

func (m ImportModel) saveCmd(txs []transaction.Transaction) tea.Cmd {
	svc := m.txService

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		if err := svc.SaveBatch(ctx, txs); err != nil {
			return saveResultMsg{err: err}
		}

		return saveResultMsg{count: len(txs)}
	}
}
