package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"ell"
	"ell/internal/cliutil"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run the demo while rendering a live view of the scheduler's task counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		model := newMonitorModel()
		program := tea.NewProgram(model)
		_, err := program.Run()
		return err
	},
}

type tickMsg struct{}

type monitorModel struct {
	loop    *ell.EventLoop
	summary *ell.TaskHandle[string]
	spinner spinner.Model
	prog    progress.Model
	result  string
	done    bool
	err     error
	width   int
}

func newMonitorModel() *monitorModel {
	loop, summary := buildDemoLoop()
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 60
	return &monitorModel{loop: loop, summary: summary, spinner: sp, prog: prog, width: 76}
}

func (m *monitorModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(30*time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.done {
			return m, nil
		}
		if !m.summary.IsComplete() {
			// advance at most one scheduler round per tick so the TUI has
			// something to animate instead of finishing instantly
			ell.Step(m.loop)
		}
		if m.summary.IsComplete() {
			m.done = true
			if v, err := m.summary.GetResult(); err != nil {
				m.err = err
			} else {
				m.result = v
			}
			return m, tea.Quit
		}
		return m, tickCmd()
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case progress.FrameMsg:
		progModel, cmd := m.prog.Update(msg)
		m.prog = progModel.(progress.Model)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *monitorModel) View() string {
	snap := m.loop.Snapshot()
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := cliutil.Truncate("ell scheduler monitor", m.width)
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	line := fmt.Sprintf("active=%d inactive=%d sleeping=%d", snap.Active, snap.Inactive, snap.Sleeping)
	body := titleStyle.Render(header) + "\n\n" + line + "\n\n" + m.prog.View() + "\n"
	if m.done {
		if m.err != nil {
			body += fmt.Sprintf("error: %v\n", m.err)
		} else {
			body += m.result + "\n"
		}
	}
	return body
}
