package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const (
	CtxKeyConfig   contextKey = "config"
	CtxKeySettings contextKey = "settings_store"
)

var ErrMissingValue = errors.New("missing context value")

type CommandFactory func() *cobra.Command

type MiddlewareFunc func(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error

type MiddlewareChain func(factory CommandFactory) CommandFactory

type contextKey string

// UseMiddlewareChain runs the middlewares in order as the command's PreRunE.
// A PreRunE the factory already set runs once the whole chain has passed.
func UseMiddlewareChain(middlewares ...MiddlewareFunc) MiddlewareChain {
	mws := append([]MiddlewareFunc(nil), middlewares...)

	return func(factory CommandFactory) CommandFactory {
		return func() *cobra.Command {
			cmd := factory()
			final := cmd.PreRunE
			if final == nil {
				final = func(*cobra.Command, []string) error { return nil }
			}

			run := final
			for i := len(mws) - 1; i >= 0; i-- {
				mw, next := mws[i], run
				run = func(c *cobra.Command, a []string) error {
					return mw(c, a, next)
				}
			}
			cmd.PreRunE = run
			return cmd
		}
	}
}

// Set stores val under key in the command context.
func Set(cmd *cobra.Command, key contextKey, val any) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, key, val))
}

func Get[T any](cmd *cobra.Command, key contextKey) (T, error) {
	var zero T

	ctx := cmd.Context()
	if ctx == nil {
		return zero, fmt.Errorf("%q: %w (no command context)", key, ErrMissingValue)
	}

	val := ctx.Value(key)
	if val == nil {
		return zero, fmt.Errorf("%q: %w", key, ErrMissingValue)
	}

	typed, ok := val.(T)
	if !ok {
		return zero, fmt.Errorf("context value %q has type %T, want %T", key, val, zero)
	}
	return typed, nil
}
