package hosts

import (
	"fmt"

	"github.com/bnema/yzterm/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func renderView(hosts []domain.Host, s styles) string {
	lines := []string{
		s.title.Render("Saved Hosts"),
		s.header.Render(fmt.Sprintf("hosts: %d", len(hosts))),
	}

	if len(hosts) == 0 {
		lines = append(lines, s.empty.Render("No hosts saved. Add one with: yz host add"))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, host := range hosts {
		lines = append(lines, s.section.Render(renderHost(host, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderHost(host domain.Host, s styles) string {
	title := lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.host.Render(host.DisplayName()),
		" ",
		s.id.Render(fmt.Sprintf("(%s)", host.ID)),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		s.detail.Render(host.Target().String()),
		passwordLine(host, s),
	)
}

func passwordLine(host domain.Host, s styles) string {
	if host.SecretRef == "" {
		return s.missing.Render("password: none")
	}

	return s.saved.Render("password: saved")
}
