package utils

import (
	"github.com/MrSnakeDoc/arbcheck/internal/logger"
)

// Try runs a deferred cleanup and only logs its failure, at debug level:
// a response body that fails to close never changes the verdict.
func Try(f func() error) {
	if err := f(); err != nil {
		logger.Debug("deferred cleanup failed: %v", err)
	}
}
