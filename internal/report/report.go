package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/MrSnakeDoc/arbcheck/internal/checker"
	"github.com/MrSnakeDoc/arbcheck/internal/matcher"
	"github.com/MrSnakeDoc/arbcheck/internal/printer"
	"github.com/MrSnakeDoc/arbcheck/internal/utils"
	"github.com/fatih/color"
)

func Verdict(o matcher.Outcome) string {
	switch o {
	case matcher.Fused:
		return "FUSED"
	case matcher.Safe:
		return "SAFE"
	default:
		return "UNKNOWN"
	}
}

// StatusLine is the headline under the verdict.
func StatusLine(r matcher.Result) string {
	switch r.Outcome {
	case matcher.Fused, matcher.Safe:
		return fmt.Sprintf("ARB index: %d", r.ARB())
	case matcher.UnknownVersion:
		return "Unknown version: this build is not in the database yet"
	default:
		return "Device not supported"
	}
}

func WarningLine(w matcher.FutureWarning) string {
	return fmt.Sprintf("Warning: a newer build for this device carries ARB %d. Updating will fuse your device.", w.MaxARB)
}

func DetailsLine(rep *checker.Report) string {
	if rep.Result.Device == nil {
		return fmt.Sprintf("Model: %s\nBuild: %s", rep.Props.Model, rep.Props.BuildVersion)
	}
	return fmt.Sprintf("Model: %s (%s)\nBuild: %s", rep.Props.Model, rep.Result.Device.DeviceName, rep.Props.BuildVersion)
}

func LastCheckedLine(ms int64) string {
	return "Last checked: " + utils.FormatLastCheck(ms)
}

// RenderStatus prints the full status screen for a finished check.
func RenderStatus(w io.Writer, rep *checker.Report, lastCheck int64) {
	p := printer.NewColorPrinter()
	res := rep.Result

	paint := p.Muted
	switch res.Outcome {
	case matcher.Fused:
		paint = p.Error
	case matcher.Safe:
		paint = p.Success
	}

	_, _ = fmt.Fprintln(w, p.Title("%s", paint("%s", Verdict(res.Outcome))))
	_, _ = fmt.Fprintln(w, StatusLine(res))

	if res.Warning != nil {
		_, _ = fmt.Fprintln(w)
		Box(w, color.New(color.FgYellow), []string{p.Warning("%s", WarningLine(*res.Warning))})
	}

	if res.Record != nil && !res.Exact {
		_, _ = fmt.Fprintln(w, p.Muted("matched by similarity to %q", res.MatchedKey))
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, DetailsLine(rep))

	if lastCheck > 0 {
		_, _ = fmt.Fprintln(w, p.Muted("%s", LastCheckedLine(lastCheck)))
	}
}

// RenderError is the generic failure display of an interactive check.
func RenderError(w io.Writer, err error) {
	p := printer.NewColorPrinter()
	_, _ = fmt.Fprintln(w, p.Error("Error"))
	msg := "unknown error"
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		msg = err.Error()
	}
	_, _ = fmt.Fprintln(w, msg)
}

// ShareMessage is the text offered to other apps or the clipboard.
func ShareMessage(rep *checker.Report) string {
	model := rep.Props.Model
	switch rep.Result.Outcome {
	case matcher.Fused:
		return fmt.Sprintf("My %s is FUSED (ARB index %d). Checked with arbcheck.", model, rep.Result.ARB())
	case matcher.Safe:
		return fmt.Sprintf("My %s is SAFE (ARB index 0). Checked with arbcheck.", model)
	case matcher.UnknownVersion:
		return fmt.Sprintf("arbcheck does not know the build of my %s yet.", model)
	default:
		return fmt.Sprintf("My %s is not supported by arbcheck yet.", model)
	}
}
