package tui

import (
	"time"

	"github.com/MrSnakeDoc/arbcheck/internal/checker"
	"github.com/MrSnakeDoc/arbcheck/internal/settings"

	tea "github.com/charmbracelet/bubbletea"
)

type stageMsg checker.Stage

type checkDoneMsg struct {
	report *checker.Report
	err    error
}

type settingsSavedMsg struct {
	settings settings.Settings
	err      error
}

type welcomeDoneMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type toastTickMsg struct{}

const toastDuration = 2 * time.Second

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg { return toastTickMsg{} })
}

// waitForStage blocks on the next stage reported by a running check.
func waitForStage(ch <-chan checker.Stage) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return nil
		}
		return stageMsg(s)
	}
}
