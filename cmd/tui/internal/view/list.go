package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateConfirmDelete
)

// typeFilters and statusFilters are cycled with t and s; the empty value
// means no filter.
var (
	typeFilters   = []transaction.Type{"", transaction.TypeIncome, transaction.TypeExpense}
	statusFilters = append([]transaction.Status{""}, transaction.Statuses...)
)

type ListModel struct {
	CommonModel
	txService *transaction.Service

	state listState
	table table.Model
	txs   []transaction.Transaction
	stats transaction.Stats
	form  *huh.Form

	typeIdx   int
	statusIdx int
	timeframe Timeframe

	filter  transaction.ListFilter
	loading bool
	err     error
	status  string

	// confirmDelete is shared with the huh form across model copies.
	confirmDelete *bool
}

func NewListModel(txSvc *transaction.Service) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Posted", Width: 12},
		{Title: "Amount", Width: 12},
		{Title: "Description", Width: 32},
		{Title: "Category", Width: 14},
		{Title: "Status", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
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

	return ListModel{
		txService: txSvc,
		table:     t,
		loading:   true,
	}
}

func (m ListModel) Title() string { return "Saved Transactions" }

func (m ListModel) ShortHelp() string {
	if m.state == listStateConfirmDelete {
		return "Confirm delete | Esc: cancel"
	}

	return "Esc: back | t: type | s: status | d: date | x: delete | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.txs = msg.txs
		m.stats = transaction.Summarize(msg.txs)
		m.refreshTable()

		return m, nil

	case deleteResultMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		} else {
			m.status = "Deleted."
		}

		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(5, msg.Height-10))

		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadTxsCmd()
		case "t":
			m.typeIdx = (m.typeIdx + 1) % len(typeFilters)
			m.applyFilter(time.Now())

			return m, m.loadTxsCmd()
		case "s":
			m.statusIdx = (m.statusIdx + 1) % len(statusFilters)
			m.applyFilter(time.Now())

			return m, m.loadTxsCmd()
		case "d":
			m.timeframe = m.timeframe.Next()
			m.applyFilter(time.Now())

			return m, m.loadTxsCmd()
		case "x":
			return m.enterConfirmDelete()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) enterConfirmDelete() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return m, nil
	}

	tx := m.txs[idx]
	m.confirmDelete = new(false)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q (%s)?", tx.Description, SignedAmount(tx))).
				Affirmative("Delete").
				Negative("Keep").
				Value(m.confirmDelete),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateConfirmDelete
	m.table.Blur()

	return m, m.form.Init()
}

func (m ListModel) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !*m.confirmDelete {
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	return m, m.deleteCmd(m.txs[m.table.Cursor()].ID)
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := fmt.Sprintf(
		"Filter: [t] Type: %s | [s] Status: %s | [d] Date: %s",
		activeStyle(filterLabel(string(typeFilters[m.typeIdx]))),
		activeStyle(filterLabel(string(statusFilters[m.statusIdx]))),
		activeStyle(m.timeframe.String()),
	)

	totals := fmt.Sprintf("%d transactions  |  income %s  expense %s  balance %s",
		m.stats.Count,
		incomeStyle.Render(FormatAmount(m.stats.Income)),
		expenseStyle.Render(FormatAmount(m.stats.Expense)),
		FormatAmount(m.stats.Balance),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		totals,
	)

	if m.state == listStateConfirmDelete && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func filterLabel(s string) string {
	if s == "" {
		return "All"
	}

	return s
}

func (m *ListModel) applyFilter(now time.Time) {
	m.filter = transaction.ListFilter{}

	if t := typeFilters[m.typeIdx]; t != "" {
		m.filter.Type = &t
	}

	if s := statusFilters[m.statusIdx]; s != "" {
		m.filter.Status = &s
	}

	m.filter.StartDate, m.filter.EndDate = m.timeframe.DateRange(now)
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			tx.Date,
			tx.PostingDate,
			SignedAmount(tx),
			tx.Description,
			tx.Category,
			string(tx.Status),
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadListMsg struct {
	txs []transaction.Transaction
	err error
}

type deleteResultMsg struct {
	err error
}

func (m ListModel) loadTxsCmd() tea.Cmd {
	svc, filter := m.txService, m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := svc.List(ctx, filter)

		return loadListMsg{txs: txs, err: err}
	}
}

func (m ListModel) deleteCmd(id string) tea.Cmd {
	svc := m.txService

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return deleteResultMsg{err: svc.Delete(ctx, id)}
	}
}
