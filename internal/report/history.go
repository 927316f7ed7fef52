package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/matcher"
	"github.com/MrSnakeDoc/arbcheck/internal/models"
	"github.com/MrSnakeDoc/arbcheck/internal/printer"
)

// RenderHistory prints every known build of a device, highest ARB first.
// current, when non-empty, marks the matched key.
func RenderHistory(w io.Writer, dev models.DeviceRecord, current string) error {
	p := printer.NewColorPrinter()

	if dev.DeviceName != "" {
		if _, err := fmt.Fprintln(w, p.Title("%s", dev.DeviceName)); err != nil {
			return err
		}
	}

	table := logger.CreateTable(w, []string{"Version", "ARB", "Regions", "Status", "MD5"})

	for _, e := range matcher.SortedVersions(dev) {
		key := e.Key
		if key == current {
			key = "▶ " + key
		}
		md5 := e.Record.Checksum()
		if md5 == "" {
			md5 = "—"
		}
		row := []string{
			key,
			p.ForARB(e.Record.ARB)("%d", e.Record.ARB),
			strings.Join(e.Record.Regions, ", "),
			e.Record.Status,
			md5,
		}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("an error occurred while appending to the table: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("an error occurred while rendering the table: %w", err)
	}
	return nil
}
