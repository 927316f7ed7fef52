package printer

import (
	"github.com/fatih/color"
)

type ColorPrinter struct {
	Success func(format string, a ...interface{}) string
	Error   func(format string, a ...interface{}) string
	Warning func(format string, a ...interface{}) string
	Info    func(format string, a ...interface{}) string
	Debug   func(format string, a ...interface{}) string
	Muted   func(format string, a ...interface{}) string
	Title   func(format string, a ...interface{}) string
}

func NewColorPrinter() *ColorPrinter {
	return &ColorPrinter{
		Success: color.New(color.FgGreen).SprintfFunc(),
		Error:   color.New(color.FgRed).SprintfFunc(),
		Warning: color.New(color.FgYellow).SprintfFunc(),
		Info:    color.New(color.FgBlue).SprintfFunc(),
		Debug:   color.New(color.FgCyan).SprintfFunc(),
		Muted:   color.New(color.FgHiBlack).SprintfFunc(),
		Title:   color.New(color.Bold).SprintfFunc(),
	}
}

// ForARB colours an index the way the status screen does: red once fused.
func (p *ColorPrinter) ForARB(arb int) func(format string, a ...interface{}) string {
	if arb > 0 {
		return p.Error
	}
	return p.Success
}
