package view

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finny-import/internal/ingest"
)

// TemplateModel writes an example file for a layout to disk.
type TemplateModel struct {
	CommonModel

	form   *huh.Form
	choice *templateChoice

	status string
	err    error
}

// templateChoice holds the form answers, shared across model copies.
type templateChoice struct {
	layout ingest.Layout
	dir    string
}

func NewTemplateModel() TemplateModel {
	choice := &templateChoice{layout: ingest.LayoutSpreadsheet}
	choice.dir, _ = os.Getwd()

	return TemplateModel{
		form:   newTemplateForm(choice),
		choice: choice,
	}
}

func newTemplateForm(choice *templateChoice) *huh.Form {
	options := make([]huh.Option[ingest.Layout], 0, len(ingest.Layouts))
	for _, l := range ingest.Layouts {
		options = append(options, huh.NewOption(ingest.TemplateFilename(l), l))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[ingest.Layout]().
				Title("Layout").
				Options(options...).
				Value(&choice.layout),
			huh.NewInput().
				Title("Directory").
				Value(&choice.dir).
				Validate(func(s string) error {
					info, err := os.Stat(strings.TrimSpace(s))
					if err != nil {
						return err
					}

					if !info.IsDir() {
						return fmt.Errorf("%s is not a directory", s)
					}

					return nil
				}),
		),
	).WithWidth(60).WithShowHelp(false)
}

func (m TemplateModel) Title() string { return "Write Template" }

func (m TemplateModel) ShortHelp() string { return "Enter: next | Esc: back" }

func (m TemplateModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m TemplateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	if res, ok := msg.(templateWrittenMsg); ok {
		m.status, m.err = res.path, res.err
		return m, nil
	}

	if m.form.State == huh.StateCompleted {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, writeTemplateCmd(m.choice.layout, strings.TrimSpace(m.choice.dir))
	}

	return m, cmd
}

func (m TemplateModel) View() string {
	style := lipgloss.NewStyle().Padding(1)

	switch {
	case m.err != nil:
		return style.Render(expenseStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	case m.status != "":
		return style.Render(incomeStyle.Render("Wrote "+m.status) + "\n\n(Esc to go back)")
	}

	return style.Render(m.form.View())
}

type templateWrittenMsg struct {
	path string
	err  error
}

func writeTemplateCmd(layout ingest.Layout, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := WriteTemplate(layout, dir)
		return templateWrittenMsg{path: path, err: err}
	}
}

// WriteTemplate writes the template for layout into dir and returns its path.
func WriteTemplate(layout ingest.Layout, dir string) (string, error) {
	content, err := ingest.Template(layout)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, ingest.TemplateFilename(layout))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write template: %w", err)
	}

	return path, nil
}
