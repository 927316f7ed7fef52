package device

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrSnakeDoc/arbcheck/internal/globalconfig"
	"github.com/MrSnakeDoc/arbcheck/internal/logger"
	"github.com/MrSnakeDoc/arbcheck/internal/runner"
)

var ErrPropertyMissing = errors.New("device property is empty")

type Properties struct {
	Model        string `json:"model"`
	BuildVersion string `json:"build"`
}

type PropertySource interface {
	Properties(ctx context.Context) (Properties, error)
}

// Reader resolves the two properties the matcher needs. Model and Build,
// when set, short-circuit the corresponding getprop call.
type Reader struct {
	Runner  runner.CommandRunner
	Serial  string
	Model   string
	Build   string
	Timeout time.Duration
}

func NewReader(r runner.CommandRunner, serial string, timeout time.Duration) *Reader {
	if r == nil {
		r = runner.ExecRunner{}
	}
	if timeout <= 0 {
		timeout = globalconfig.DeviceTimeout
	}
	return &Reader{Runner: r, Serial: serial, Timeout: timeout}
}

func (d *Reader) Properties(ctx context.Context) (Properties, error) {
	model, err := d.resolve(ctx, d.Model, globalconfig.PropModel)
	if err != nil {
		return Properties{}, err
	}
	build, err := d.resolve(ctx, d.Build, globalconfig.PropBuild)
	if err != nil {
		return Properties{}, err
	}
	return Properties{Model: model, BuildVersion: build}, nil
}

func (d *Reader) resolve(ctx context.Context, override, key string) (string, error) {
	if override != "" {
		logger.Debug("%s overridden: %s", key, override)
		return override, nil
	}
	return d.Get(ctx, key)
}

// Get runs getprop for key, through adb when a serial is configured.
func (d *Reader) Get(ctx context.Context, key string) (string, error) {
	name, args := d.command(key)

	out, err := d.Runner.Run(ctx, d.Timeout, runner.Capture, name, args...)
	if err != nil {
		logger.Debug("getprop %s failed: %v", key, err)
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}

	value := firstLine(out)
	if value == "" {
		return "", fmt.Errorf("%s: %w", key, ErrPropertyMissing)
	}
	return value, nil
}

func (d *Reader) command(key string) (string, []string) {
	if d.Serial != "" {
		return "adb", []string{"-s", d.Serial, "shell", "getprop", key}
	}
	return "getprop", []string{key}
}

func firstLine(out []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(out))
	if !sc.Scan() {
		return ""
	}
	return strings.TrimSpace(sc.Text())
}
