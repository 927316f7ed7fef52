package main

import (
	"errors"
	"os"

	cmd "github.com/MrSnakeDoc/arbcheck/internal"
	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/middleware"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, middleware.ErrLogged) {
			logger.LogError(err.Error())
		}
		os.Exit(1)
	}
}
