package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bnema/yzterm/internal/application"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	transferSpinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	transferElapsedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	transferOKStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	transferFailStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

type transferDoneMsg struct {
	err error
	at  time.Time
}

// transferView shows one scp copy while it runs and leaves a single outcome
// line behind.
type transferView struct {
	spinner  spinner.Model
	progress application.TransferProgress
	// peer is the remote side, user@host:path.
	peer string
	now  time.Time
	run  tea.Cmd
	err  error
	done bool
}

func newTransferView(progress application.TransferProgress, peer string, run tea.Cmd) transferView {
	return transferView{
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(transferSpinnerStyle)),
		progress: progress,
		peer:     peer,
		now:      progress.StartedAt,
		run:      run,
	}
}

func (m transferView) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m transferView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		if msg.Time.After(m.now) {
			m.now = msg.Time
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case transferDoneMsg:
		m.done = true
		m.err = msg.err
		if msg.at.After(m.now) {
			m.now = msg.at
		}
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m transferView) elapsed() time.Duration {
	return m.now.Sub(m.progress.StartedAt).Round(100 * time.Millisecond)
}

func (m transferView) View() string {
	name := m.progress.FileName
	upload := m.progress.Direction == application.TransferUpload

	switch {
	case !m.done && upload:
		return fmt.Sprintf("%s Uploading %s to %s %s", m.spinner.View(), name, m.peer, transferElapsedStyle.Render(m.elapsed().String()))
	case !m.done:
		return fmt.Sprintf("%s Downloading %s from %s %s", m.spinner.View(), name, m.peer, transferElapsedStyle.Render(m.elapsed().String()))
	case m.err != nil && upload:
		return fmt.Sprintf("%s Upload of %s to %s failed after %s\n", transferFailStyle.Render("✗"), name, m.peer, m.elapsed())
	case m.err != nil:
		return fmt.Sprintf("%s Download of %s from %s failed after %s\n", transferFailStyle.Render("✗"), name, m.peer, m.elapsed())
	case upload:
		return fmt.Sprintf("%s Uploaded %s to %s in %s\n", transferOKStyle.Render("✓"), name, m.peer, m.elapsed())
	default:
		return fmt.Sprintf("%s Downloaded %s from %s in %s\n", transferOKStyle.Render("✓"), name, m.peer, m.elapsed())
	}
}

// runTransferSpinner runs transfer while rendering its progress on output.
// The transfer's own error is returned.
func runTransferSpinner(ctx context.Context, output io.Writer, progress application.TransferProgress, peer string, transfer func(context.Context) error) error {
	runCmd := func() tea.Msg {
		err := transfer(ctx)
		return transferDoneMsg{err: err, at: time.Now()}
	}

	p := tea.NewProgram(
		newTransferView(progress, peer, runCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(transferView)
	if !ok {
		return fmt.Errorf("unexpected final transfer model type %T", finalModel)
	}

	return result.err
}
