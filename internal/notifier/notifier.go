package notifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/printer"
	"github.com/MrSnakeDoc/arbcheck/internal/report"
	"github.com/MrSnakeDoc/arbcheck/internal/runner"
	"github.com/fatih/color"
)

const commandTimeout = 10 * time.Second

type Notification struct {
	Title  string
	Body   string
	Model  string
	MaxARB int
}

// ForMaxARB builds the alert raised when a build with a higher index is known.
func ForMaxARB(model string, maxARB int) Notification {
	return Notification{
		Title:  "Anti-rollback update detected",
		Body:   fmt.Sprintf("A build with ARB %d is available for %s. Installing it will fuse your device.", maxARB, model),
		Model:  model,
		MaxARB: maxARB,
	}
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// TerminalNotifier prints a framed banner.
type TerminalNotifier struct {
	Out io.Writer
}

func (t TerminalNotifier) Notify(_ context.Context, n Notification) error {
	w := t.Out
	if w == nil {
		w = logger.Out()
	}
	p := printer.NewColorPrinter()
	report.Box(w, color.New(color.FgYellow), []string{
		p.Warning("%s", n.Title),
		n.Body,
	})
	return nil
}

// CommandNotifier hands the alert to a desktop/phone notification helper
// such as notify-send or termux-notification.
type CommandNotifier struct {
	Runner  runner.CommandRunner
	Command []string
}

func (c CommandNotifier) Notify(ctx context.Context, n Notification) error {
	if len(c.Command) == 0 {
		return nil
	}
	r := c.Runner
	if r == nil {
		r = runner.ExecRunner{}
	}
	args := append(append([]string(nil), c.Command[1:]...), n.Title, n.Body)
	if _, err := r.Run(ctx, commandTimeout, runner.Capture, c.Command[0], args...); err != nil {
		return fmt.Errorf("notification command %s: %w", c.Command[0], err)
	}
	return nil
}

// Multi delivers to every notifier and joins the failures.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, nt := range m {
		if err := nt.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// New assembles the notifiers enabled by configuration.
func New(terminal bool, command []string, r runner.CommandRunner) Notifier {
	var m Multi
	if terminal {
		m = append(m, TerminalNotifier{})
	}
	if len(command) > 0 {
		m = append(m, CommandNotifier{Runner: r, Command: command})
	}
	return m
}
