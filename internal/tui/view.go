package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/arbcheck/internal/globalconfig"
	"github.com/MrSnakeDoc/arbcheck/internal/report"
	"github.com/MrSnakeDoc/arbcheck/internal/utils"

	"github.com/charmbracelet/lipgloss"
)

var (
	cAccent = lipgloss.Color("39")
	cMuted  = lipgloss.Color("243")
	cWarn   = lipgloss.Color("214")

	spinnerStyle = lipgloss.NewStyle().Foreground(cAccent)
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	mutedStyle   = lipgloss.NewStyle().Foreground(cMuted)
	toastStyle   = lipgloss.NewStyle().Foreground(cWarn)
	panelStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cMuted).
			Padding(0, 1)
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(globalconfig.AppName))
	b.WriteString("\n\n")

	if m.welcome {
		b.WriteString(panelStyle.Render(welcomeText()))
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("enter continue • q quit"))
		return b.String()
	}

	switch {
	case m.loading:
		fmt.Fprintf(&b, "%s %s\n", m.spinner.View(), m.stage)
	case m.err != nil:
		var buf bytes.Buffer
		report.RenderError(&buf, m.err)
		b.WriteString(buf.String())
	case m.report != nil:
		var buf bytes.Buffer
		report.RenderStatus(&buf, m.report, m.settings.LastCheckTimestamp)
		b.WriteString(buf.String())
	}

	if m.showHistory && !m.loading {
		b.WriteString("\n")
		b.WriteString(m.historyView())
	}

	if m.showSettings {
		b.WriteString("\n")
		b.WriteString(panelStyle.Render(m.settingsView()))
		b.WriteString("\n")
	}

	if m.toast != "" {
		b.WriteString("\n")
		b.WriteString(toastStyle.Render(m.toast))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) historyView() string {
	if m.report == nil || m.report.Result.Device == nil {
		return mutedStyle.Render("No version history for this device.") + "\n"
	}
	var buf bytes.Buffer
	if err := report.RenderHistory(&buf, *m.report.Result.Device, m.report.Result.MatchedKey); err != nil {
		return mutedStyle.Render(err.Error()) + "\n"
	}
	return buf.String()
}

func (m Model) settingsView() string {
	notif := "off"
	if m.settings.NotificationsEnabled {
		notif = "on"
	}
	lines := []string{
		titleStyle.Render("Settings"),
		fmt.Sprintf("Check interval: every %dh  (i)", m.settings.CheckIntervalHours),
		fmt.Sprintf("Notifications:  %s  (n)", notif),
		"Last check:     " + utils.FormatLastCheck(m.settings.LastCheckTimestamp),
	}
	return strings.Join(lines, "\n")
}

func (m Model) helpLine() string {
	parts := []string{"r re-check", "h history", "s settings"}
	if m.showSettings {
		parts = append(parts, "i interval", "n notifications")
	}
	if m.report != nil && m.err == nil {
		parts = append(parts, "c copy")
	}
	parts = append(parts, "q quit")
	return strings.Join(parts, " • ")
}

func welcomeText() string {
	return strings.Join([]string{
		titleStyle.Render("Welcome"),
		"This tool reads your device model and build, then looks them up in the",
		"community anti-rollback database to tell you whether the build has",
		"fused the anti-rollback index (ARB).",
		"",
		"Flashing a build with a lower ARB than the fused one can hard-brick the device.",
		"Background checks are off until you enable notifications in settings.",
	}, "\n")
}
