package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/finny-import/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/finny-import/internal/config"
	"github.com/MrJamesThe3rd/finny-import/internal/database"
	"github.com/MrJamesThe3rd/finny-import/internal/importer"
	"github.com/MrJamesThe3rd/finny-import/internal/ingest"
	"github.com/MrJamesThe3rd/finny-import/internal/logger"
	"github.com/MrJamesThe3rd/finny-import/internal/transaction"
	txStore "github.com/MrJamesThe3rd/finny-import/internal/transaction/store"
)

type model struct {
	txService     *transaction.Service
	importService *importer.Service

	currentView View

	importView   view.ImportModel
	listView     view.ListModel
	templateView view.TemplateModel
}

type View int

const (
	ViewMenu     View = 0
	ViewImport   View = 1
	ViewList     View = 2
	ViewTemplate View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs go to stderr and only warnings
	// and above.
	log := logger.Init(os.Stderr, "warn", cfg.Log.Format)

	db, err := database.New(context.Background(), cfg.ConnectionString(), database.PoolOptions{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	txSvc := transaction.NewService(txStore.New(db))
	impSvc := importer.NewService(
		ingest.NewParser(ingest.WithDefaultCategory(cfg.Import.DefaultCategory)),
		importer.WithMaxFileSize(cfg.Import.MaxFileSize),
		importer.WithLogger(log),
	)

	return model{
		txService:     txSvc,
		importService: impSvc,
		currentView:   ViewMenu,
		importView:    view.NewImportModel(txSvc, impSvc),
		listView:      view.NewListModel(txSvc),
		templateView:  view.NewTemplateModel(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.txService, m.importService)

				return m, m.importView.Init()
			case "2":
				m.currentView = ViewList
				m.listView = view.NewListModel(m.txService)

				return m, m.listView.Init()
			case "3":
				m.currentView = ViewTemplate
				m.templateView = view.NewTemplateModel()

				return m, m.templateView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewList:
		var newModel tea.Model
		newModel, cmd = m.listView.Update(msg)
		m.listView = newModel.(view.ListModel)
	case ViewTemplate:
		var newModel tea.Model
		newModel, cmd = m.templateView.Update(msg)
		m.templateView = newModel.(view.TemplateModel)
	}

	return m, cmd
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Finny Import\n\n" +
				"1. Import Statement\n" +
				"2. Saved Transactions\n" +
				"3. Write Template\n\n" +
				"q. Quit",
		)
	case ViewImport:
		current = m.importView
	case ViewList:
		current = m.listView
	case ViewTemplate:
		current = m.templateView
	default:
		return "Unknown View"
	}

	title := lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(current.Title())
	help := lipgloss.NewStyle().Faint(true).Padding(0, 1).Render(current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, title, current.View(), help)
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
