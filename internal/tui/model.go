package tui

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/arbcheck/internal/checker"
	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/report"
	"github.com/MrSnakeDoc/arbcheck/internal/settings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type Checker interface {
	Execute(ctx context.Context) (*checker.Report, error)
}

type Options struct {
	Checker  Checker
	Settings settings.Store
	// Stages receives the steps of a running check; optional.
	Stages <-chan checker.Stage
	// Copy writes the share text somewhere; defaults to the system clipboard.
	Copy func(string) error
}

type Model struct {
	ctx      context.Context
	checker  Checker
	store    settings.Store
	stages   <-chan checker.Stage
	copyText func(string) error

	spinner  spinner.Model
	loading  bool
	stage    checker.Stage
	report   *checker.Report
	err      error
	settings settings.Settings

	welcome      bool
	listening    bool
	showHistory  bool
	showSettings bool
	toast        string

	width int
}

// New builds the UI state. The settings are loaded once here; later changes
// made from the panel are kept in memory after a successful write.
func New(ctx context.Context, opts Options) (Model, error) {
	if opts.Checker == nil || opts.Settings == nil {
		return Model{}, errors.New("tui: checker and settings store are required")
	}
	st, err := opts.Settings.Load(ctx)
	if err != nil {
		return Model{}, err
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	copyText := opts.Copy
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	m := Model{
		ctx:      ctx,
		checker:  opts.Checker,
		store:    opts.Settings,
		stages:   opts.Stages,
		copyText: copyText,
		spinner:  sp,
		settings: st,
		welcome:  st.FirstRun,
	}
	if !m.welcome {
		// Init starts the first check.
		m.loading = true
		m.listening = true
		m.stage = checker.StageReadingDevice
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	if m.welcome {
		return nil
	}
	return m.checkCmd(true)
}

func (m *Model) startCheck() tea.Cmd {
	arm := !m.listening
	m.listening = true
	m.loading = true
	m.err = nil
	m.stage = checker.StageReadingDevice
	return m.checkCmd(arm)
}

// checkCmd runs a check. Only one stage listener is kept alive for the
// whole program; arm starts it.
func (m Model) checkCmd(arm bool) tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, runCheck(m.ctx, m.checker)}
	if arm {
		cmds = append(cmds, waitForStage(m.stages))
	}
	return tea.Batch(cmds...)
}

func runCheck(ctx context.Context, c Checker) tea.Cmd {
	return func() tea.Msg {
		rep, err := c.Execute(ctx)
		return checkDoneMsg{report: rep, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case stageMsg:
		if m.loading {
			m.stage = checker.Stage(msg)
		}
		return m, waitForStage(m.stages)

	case checkDoneMsg:
		m.loading = false
		m.report, m.err = msg.report, msg.err
		if msg.err != nil {
			logger.Debug("check failed: %v", msg.err)
			return m, nil
		}
		m.settings.LastCheckTimestamp = msg.report.CheckedAt.UnixMilli()
		return m, nil

	case settingsSavedMsg:
		if msg.err != nil {
			m.toast = "Could not save settings: " + msg.err.Error()
			return m, scheduleToastTick()
		}
		m.settings.CheckIntervalHours = msg.settings.CheckIntervalHours
		m.settings.NotificationsEnabled = msg.settings.NotificationsEnabled
		return m, nil

	case welcomeDoneMsg:
		if msg.err != nil {
			m.toast = "Could not save settings: " + msg.err.Error()
			return m, scheduleToastTick()
		}
		m.welcome = false
		m.settings.FirstRun = false
		return m, m.startCheck()

	case copiedMsg:
		if msg.err != nil {
			m.toast = "Clipboard unavailable: " + msg.err.Error()
		} else {
			m.toast = "Copied result to clipboard."
		}
		return m, scheduleToastTick()

	case toastTickMsg:
		m.toast = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == "q" {
		return m, tea.Quit
	}

	if m.welcome {
		if key == "enter" {
			return m, completeWelcome(m.ctx, m.store)
		}
		return m, nil
	}

	switch key {
	case "r":
		if m.loading {
			return m, nil
		}
		return m, m.startCheck()
	case "h":
		m.showHistory = !m.showHistory
	case "s":
		m.showSettings = !m.showSettings
	case "i":
		if m.showSettings {
			return m, saveInterval(m.ctx, m.store, m.settings, settings.NextInterval(m.settings.CheckIntervalHours))
		}
	case "n":
		if m.showSettings {
			return m, saveNotifications(m.ctx, m.store, m.settings, !m.settings.NotificationsEnabled)
		}
	case "c":
		if m.report != nil && m.err == nil {
			return m, copyShare(m.copyText, report.ShareMessage(m.report))
		}
	}
	return m, nil
}

func completeWelcome(ctx context.Context, st settings.Store) tea.Cmd {
	return func() tea.Msg {
		return welcomeDoneMsg{err: st.SetFirstRunCompleted(ctx)}
	}
}

func saveInterval(ctx context.Context, st settings.Store, cur settings.Settings, hours int) tea.Cmd {
	return func() tea.Msg {
		cur.CheckIntervalHours = hours
		return settingsSavedMsg{settings: cur, err: st.SetCheckInterval(ctx, hours)}
	}
}

func saveNotifications(ctx context.Context, st settings.Store, cur settings.Settings, enabled bool) tea.Cmd {
	return func() tea.Msg {
		cur.NotificationsEnabled = enabled
		return settingsSavedMsg{settings: cur, err: st.SetNotificationsEnabled(ctx, enabled)}
	}
}

func copyShare(copyText func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{err: copyText(text)}
	}
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(ctx context.Context, opts Options) error {
	m, err := New(ctx, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
