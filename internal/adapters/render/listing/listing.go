// Package listing renders a remote directory listing as aligned columns.
package listing

import (
	"fmt"
	"strings"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title       lipgloss.Style
	header      lipgloss.Style
	permissions lipgloss.Style
	size        lipgloss.Style
	directory   lipgloss.Style
	link        lipgloss.Style
	file        lipgloss.Style
	empty       lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:       lipgloss.NewStyle().Bold(true),
		header:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		permissions: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		size:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(8).Align(lipgloss.Right),
		directory:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		link:        lipgloss.NewStyle().Foreground(lipgloss.Color("87")),
		file:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		empty:       lipgloss.NewStyle().Faint(true),
	}
}

func Render(path string, files []domain.FileEntry) string {
	s := newStyles()

	lines := []string{
		s.title.Render(path),
		s.header.Render(fmt.Sprintf("entries: %d", len(files))),
	}

	if len(files) == 0 {
		lines = append(lines, s.empty.Render("Empty directory."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, entry := range files {
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.permissions.Render(entry.Permissions),
			" ",
			s.size.Render(FormatSize(entry.Size)),
			"  ",
			renderName(entry, s),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderName(entry domain.FileEntry, s styles) string {
	switch entry.Kind {
	case domain.FileKindDirectory:
		return s.directory.Render(entry.Name + "/")
	case domain.FileKindLink:
		return s.link.Render(entry.Name)
	default:
		return s.file.Render(entry.Name)
	}
}

// FormatSize prints byte counts with binary units and one decimal.
func FormatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%dB", size)
	}

	value := float64(size)
	suffixes := []string{"K", "M", "G", "T", "P"}
	i := -1
	for value >= unit && i < len(suffixes)-1 {
		value /= unit
		i++
	}

	return strings.TrimSuffix(fmt.Sprintf("%.1f", value), ".0") + suffixes[i]
}
