package middleware

import (
	"errors"

	"github.com/MrSnakeDoc/arbcheck/internal/errs"
	"github.com/MrSnakeDoc/arbcheck/internal/logger"
)

var ErrLogged = errors.New("already logged")

// UsageError logs the catalog message for code and returns ErrLogged so the
// caller exits non-zero without printing it twice.
func UsageError(code errs.Code, a ...any) error {
	logger.LogError("%s", errs.Msg(code, a...))
	return ErrLogged
}
