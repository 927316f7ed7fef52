package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/MrSnakeDoc/arbcheck/internal/utils"
	"github.com/fatih/color"
)

const padding = 2

// Box frames centred lines with a rounded border in the given colour.
func Box(w io.Writer, border *color.Color, lines []string) {
	if border == nil {
		border = color.New(color.FgHiBlue)
	}
	paint := border.SprintFunc()

	width := utils.GetMaxWidth(lines) + padding*2
	_, _ = fmt.Fprintln(w, paint("╭"+strings.Repeat("─", width)+"╮"))
	for _, line := range lines {
		visible := len([]rune(utils.StripANSI(line)))
		left := (width - visible) / 2
		right := width - visible - left
		_, _ = fmt.Fprintf(w, "%s%s%s%s%s\n", paint("│"), strings.Repeat(" ", left), line, strings.Repeat(" ", right), paint("│"))
	}
	_, _ = fmt.Fprintln(w, paint("╰"+strings.Repeat("─", width)+"╯"))
}
