package globalconfig

import (
	"fmt"
	"io"
	"runtime"
)

// Set through -ldflags at release time.
var (
	Version   = "dev"
	Commit    = "unknown"
	Date      = "unknown"
	GoVersion = runtime.Version()
)

func PrintVersion(w io.Writer) {
	_, _ = fmt.Fprintln(w, "arbcheck - anti-rollback index checker")
	_, _ = fmt.Fprintf(w, "  %-12s %s\n", "Version:", Version)
	_, _ = fmt.Fprintf(w, "  %-12s %s\n", "Go Version:", GoVersion)
	_, _ = fmt.Fprintf(w, "  %-12s %s\n", "Git Commit:", Commit)
	_, _ = fmt.Fprintf(w, "  %-12s %s\n", "Built:", Date)
	_, _ = fmt.Fprintf(w, "  %-12s %s/%s\n", "OS/Arch:", runtime.GOOS, runtime.GOARCH)
}
